package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// setupLog routes logging to stderr, or to a file when PDF_AUDIO_LOGFILE is
// set. The file sink also enables debug logging.
func setupLog() (func() error, error) {
	log.SetTimeFormat(time.Kitchen)

	if logFile := os.Getenv("PDF_AUDIO_LOGFILE"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("error setting up log: %w", err)
		}
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
		return f.Close, nil
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	return func() error { return nil }, nil
}
