package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	logger = nil
	InitLogger(level, format)

	fn()

	return buf.String()
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:     "info log",
			level:    "info",
			logFn:    func() { Info("packing archive") },
			contains: []string{"packing archive", "level=INFO"},
		},
		{
			name:     "debug log with debug level",
			level:    "debug",
			logFn:    func() { Debug("adding entry", Fields{"name": "LICENSE"}) },
			contains: []string{"adding entry", "level=DEBUG", "name=LICENSE"},
		},
		{
			name:     "debug log with info level",
			level:    "info",
			logFn:    func() { Debug("adding entry") },
			excludes: []string{"adding entry"},
		},
		{
			name:     "warn log with fields",
			level:    "warn",
			logFn:    func() { Warn("skipping", Fields{"path": "a.tsbuildinfo", "count": 2}) },
			contains: []string{"skipping", "level=WARN", "path=a.tsbuildinfo", "count=2"},
		},
		{
			name:     "error log",
			level:    "error",
			logFn:    func() { Error("build failed") },
			contains: []string{"build failed", "level=ERROR"},
		},
		{
			name:     "success log",
			level:    "info",
			logFn:    func() { Success("archive written") },
			contains: []string{"archive written", "status=success"},
		},
		{
			name:     "formatted info log",
			level:    "info",
			logFn:    func() { Infof("wrote %d archives", 4) },
			contains: []string{"wrote 4 archives"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, tt.level, FormatText, tt.logFn)
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, output, notWant)
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	output := captureOutput(t, "info", FormatJSON, func() {
		Info("test json message", Fields{"key1": "value1", "number": 42, "bool": true})
	})

	assert.Contains(t, output, `"msg":"test json message"`)
	assert.Contains(t, output, `"level":"INFO"`)
	assert.Contains(t, output, `"key1":"value1"`)
	assert.Contains(t, output, `"number":42`)
	assert.Contains(t, output, `"bool":true`)
}

func TestSetOutputFormat_KeepsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	logger = nil
	InitLogger("warn", FormatText)
	SetOutputFormat(FormatJSON)

	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	logger = nil
	assert.NotPanics(t, func() {
		lg := GetLogger()
		assert.NotNil(t, lg)
	})
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("bogus"))
}

func TestMergeFields(t *testing.T) {
	attrs := mergeFields(Fields{"b": 1, "a": "x"}, Fields{"b": 2})
	assert.Equal(t, []interface{}{"a", "x", "b", 2}, attrs)
}
