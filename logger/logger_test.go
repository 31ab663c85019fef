package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

func TestNewLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug", "text").GetLevel())
	assert.Equal(t, logrus.WarnLevel, New(" warn ", "json").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("chatty", "text").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("", "").GetLevel())
}

func TestNewFormats(t *testing.T) {
	assert.IsType(t, &logrus.JSONFormatter{}, New("info", "JSON").Formatter)
	assert.IsType(t, &prefixed.TextFormatter{}, New("info", "text").Formatter)
	assert.IsType(t, &prefixed.TextFormatter{}, New("info", "whatever").Formatter)
}

func TestComponentJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", "json")
	log.Out = &buf

	Component(log, "server").WithField("vendor", "ipapi").Info("Listening")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"prefix":"server"`)
	assert.Contains(t, out, `"vendor":"ipapi"`)
	assert.Contains(t, out, `"msg":"Listening"`)
}
