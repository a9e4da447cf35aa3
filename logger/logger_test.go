package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitReadsEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	Init()
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	_, isJSON := Log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	t.Setenv("LOG_LEVEL", "nonsense")
	t.Setenv("LOG_FORMAT", "")
	Init()
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestForTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	Log = logrus.New()
	Log.SetOutput(&buf)
	Log.SetFormatter(&logrus.JSONFormatter{})

	For("spawner").Info("hello")
	assert.Contains(t, buf.String(), `"component":"spawner"`)
}
