// Package logging configures the process-wide logrus logger.
package logging

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"gstsync/internal/config"
)

// Setup applies the configured level and format to the standard logger.
// Unknown levels fall back to info; "json" selects the JSON formatter and
// anything else the text formatter.
func Setup(cfg config.LogConfig) {
	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
