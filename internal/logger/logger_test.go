package logger

import (
	"bytes"
	"testing"

	"tradedesk/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, config.LogConfig{Level: "info", Format: "json"})

	l.Info("balance updated", "account", "****7890")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `"msg":"balance updated"`)
	assert.Contains(t, out, `"account":"****7890"`)
	assert.NotContains(t, out, "hidden")
}

func TestNewWithWriter_FallsBackOnBadLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, config.LogConfig{Level: "loud", Format: "yaml"})

	l.Info("started")
	l.Debug("hidden")

	assert.Contains(t, buf.String(), "started")
	assert.NotContains(t, buf.String(), "hidden")
}
