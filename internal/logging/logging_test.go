package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger("bg", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	l.Infof("tier=%s", "high")
	l.Warnf("slow")
	l.Errorf("lost context")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[bg] INFO: tier=high")
	assert.Contains(t, errOut.String(), "[bg] WARN: slow")
	assert.Contains(t, errOut.String(), "[bg] ERROR: lost context")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	assert.Contains(t, out.String(), "DEBUG: shown 2")
}

func TestDefaultLoggerWithoutPrefix(t *testing.T) {
	var out bytes.Buffer
	l := NewWriterLogger("", false, &out, &out)
	l.Infof("ready")
	assert.Contains(t, out.String(), "INFO: ready")
	assert.NotContains(t, out.String(), "[")
}

func TestOrNop(t *testing.T) {
	l := OrNop(nil)
	assert.NotNil(t, l)
	assert.False(t, l.DebugEnabled())
	l.Errorf("discarded")

	d := NewDefaultLogger("x", true)
	assert.Same(t, d, OrNop(d))
}
