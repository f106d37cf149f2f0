// Package logger builds the structured logger shared by the server and its
// middleware.
//
// Usage:
//
//	log := logger.New("web", "info")
//	log.WithField("movie_id", id).Info("detail rendered")
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logrus entry tagged with service.  An unknown or empty
// level falls back to info.
func New(service, level string) *logrus.Entry {
	return NewWithOutput(service, level, os.Stdout)
}

// NewWithOutput is New writing to w.
func NewWithOutput(service, level string, w io.Writer) *logrus.Entry {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	log.SetOutput(w)

	lvl, err := logrus.ParseLevel(level)
	if err != nil || level == "" {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log.WithField("service", service)
}
