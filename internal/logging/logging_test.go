package logging_test

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"gstsync/internal/config"
	"gstsync/internal/logging"
)

func TestSetup(t *testing.T) {
	logging.Setup(config.LogConfig{Level: "warn", Format: "json"})
	assert.Equal(t, log.WarnLevel, log.GetLevel())
	_, isJSON := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, isJSON)

	logging.Setup(config.LogConfig{Level: "nonsense", Format: "console"})
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	_, isText := log.StandardLogger().Formatter.(*log.TextFormatter)
	assert.True(t, isText)
}
