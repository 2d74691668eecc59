// Testing utilities for structured logging. TestLogger captures log output
// in memory so tests can assert on emitted attributes without touching the
// process-wide logger configuration.
package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TestLogger is a Logger implementation for tests. All messages are captured
// in an internal buffer for later inspection.
type TestLogger struct {
	buffer *bytes.Buffer
	level  Level
	fields map[string]interface{}
}

// NewTestLogger creates a TestLogger with the given minimum level and
// returns it together with the capture buffer.
//
// Example:
//
//	logger, buffer := log.NewTestLogger(log.LevelDebug)
//	logger.Info("fit complete", "params.theta", 2.5)
//	// assert on buffer.String()
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{
		buffer: buffer,
		level:  level,
		fields: make(map[string]interface{}),
	}, buffer
}

// Debug implements Logger.Debug.
func (t *TestLogger) Debug(msg string, fields ...any) {
	if t.level <= LevelDebug {
		t.writeLog("DEBUG", msg, fields...)
	}
}

// Info implements Logger.Info.
func (t *TestLogger) Info(msg string, fields ...any) {
	if t.level <= LevelInfo {
		t.writeLog("INFO", msg, fields...)
	}
}

// Warn implements Logger.Warn.
func (t *TestLogger) Warn(msg string, fields ...any) {
	if t.level <= LevelWarn {
		t.writeLog("WARN", msg, fields...)
	}
}

// Error implements Logger.Error.
func (t *TestLogger) Error(msg string, fields ...any) {
	if t.level <= LevelError {
		t.writeLog("ERROR", msg, fields...)
	}
}

// With implements Logger.With.
func (t *TestLogger) With(fields ...any) Logger {
	merged := make(map[string]interface{}, len(t.fields)+len(fields)/2)
	for k, v := range t.fields {
		merged[k] = v
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", fields[i])
		}
		merged[key] = fields[i+1]
	}
	return &TestLogger{
		buffer: t.buffer,
		level:  t.level,
		fields: merged,
	}
}

// Entries returns the captured log lines.
func (t *TestLogger) Entries() []string {
	out := strings.TrimSuffix(t.buffer.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Contains reports whether any captured line contains the substring.
func (t *TestLogger) Contains(substr string) bool {
	return strings.Contains(t.buffer.String(), substr)
}

func (t *TestLogger) writeLog(level, msg string, fields ...any) {
	entry := map[string]interface{}{
		"level":   level,
		"message": msg,
	}
	for k, v := range t.fields {
		entry[k] = v
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", fields[i])
		}
		entry[key] = fields[i+1]
	}

	line, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(t.buffer, `{"level":%q,"message":%q,"marshal_error":%q}`+"\n", level, msg, err)
		return
	}
	t.buffer.Write(line)
	t.buffer.WriteByte('\n')
}
