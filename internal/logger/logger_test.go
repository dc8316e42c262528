package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, int(slog.LevelWarn))

	l.Info("Merge service: starting merge")
	l.Warn("Merge service: merge step failed", "step", "logins")

	out := buf.String()
	assert.NotContains(t, out, "starting merge")
	assert.Contains(t, out, "merge step failed")
	assert.Contains(t, out, "step=logins")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, 0).With("command", "merge")

	l.Info("accounts merged")

	assert.Contains(t, buf.String(), "command=merge")
}
