package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging sends log output to stderr so that stdout only
// carries job ids and reports
func ConfigureLogging(debug bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
