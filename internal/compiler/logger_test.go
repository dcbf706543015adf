package compiler

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(false)
	l.SetOutput(&buf)

	l.Section("Analysis")
	l.Log("states: %d", 3)
	l.Attrs("graph", "nodes", 3)

	assert.False(t, l.Enabled())
	assert.Empty(t, buf.String())
}

func TestLoggerEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWith(true, slog.New(slog.NewTextHandler(&buf, nil)))

	l.Section("Analysis")
	l.Log("states: %d", 3)
	l.Attrs("graph", "nodes", 7)

	out := buf.String()
	assert.True(t, l.Enabled())
	assert.Contains(t, out, "component=regnfa")
	assert.Contains(t, out, "name=Analysis")
	assert.Contains(t, out, `msg="states: 3"`)
	assert.Contains(t, out, "nodes=7")
}

func TestCompilerLogsAnalysis(t *testing.T) {
	var buf bytes.Buffer
	New(Config{
		Pattern: "a*",
		Graph:   graphFor(t, "a*"),
		Verbose: true,
		Logger:  slog.New(slog.NewTextHandler(&buf, nil)),
	})

	out := buf.String()
	assert.Contains(t, out, "name=\"Pattern Analysis\"")
	assert.Contains(t, out, "Has loops: true")
	assert.Contains(t, out, "bitset Thompson NFA")
}
