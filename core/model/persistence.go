package model

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// SaveModel saves a fitted estimator to a file using gob encoding.
//
// Example:
//
//	nb := negbinom.NewFitter()
//	// ... fit ...
//	err := model.SaveModel(nb, "nb.gob")
func SaveModel(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(model); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	return nil
}

// LoadModel loads a fitted estimator from a file. The model argument must be
// a pointer to the estimator type that was saved.
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(model); err != nil {
		return fmt.Errorf("failed to decode model: %w", err)
	}

	return nil
}

// SaveModelToWriter saves a fitted estimator to an io.Writer.
func SaveModelToWriter(model interface{}, w io.Writer) error {
	encoder := gob.NewEncoder(w)
	if err := encoder.Encode(model); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

// LoadModelFromReader loads a fitted estimator from an io.Reader.
func LoadModelFromReader(model interface{}, r io.Reader) error {
	decoder := gob.NewDecoder(r)
	if err := decoder.Decode(model); err != nil {
		return fmt.Errorf("failed to decode model: %w", err)
	}
	return nil
}
