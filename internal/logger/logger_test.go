package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(" INFO "))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("nonsense"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel(""))

	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, logrus.DebugLevel, ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("info"))
}

func TestInit_WritesAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	Init("info", &buf)
	t.Cleanup(func() { Init("", nil) })

	Debugf("hidden %d", 1)
	WithField("repo", "o/r").Info("fetching")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "fetching")
	assert.Contains(t, out, "repo=o/r")
}
