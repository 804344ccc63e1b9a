package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerJSONOutput(t *testing.T) {
	assert.NoError(t, os.Unsetenv("APP_ENV"))
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "allocator")
	l.Infof("placed %d activities", 3)

	var entry map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "allocator", entry["component"])
	assert.Equal(t, "placed 3 activities", entry["message"])
	assert.Equal(t, "info", entry["level"])
}
