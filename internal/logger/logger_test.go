package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf})

	l.Infof("[Server] starting on %s", "5000")
	l.Warn("slow query", nil)
	l.Error("insert course", errors.New("boom"), map[string]interface{}{"path": "/courses/add"})

	out := buf.String()
	assert.Contains(t, out, "[Server] starting on 5000")
	assert.Contains(t, out, "WARN slow query")
	assert.Contains(t, out, "ERROR insert course: boom")
	assert.Contains(t, out, "/courses/add")
	assert.False(t, l.rollbar)
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.NotPanics(t, func() {
		l.Error("x", errors.New("y"))
		l.Close()
	})
}
