// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the diagnostic logger used by the CLI.
package logging

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Level maps the verbose and debug options to a log level: warn by default,
// info when verbose, debug when debug is positive.
func Level(verbose bool, debug int) logrus.Level {
	switch {
	case debug > 0:
		return logrus.DebugLevel
	case verbose:
		return logrus.InfoLevel
	default:
		return logrus.WarnLevel
	}
}

// New returns a text logger writing to w. Every entry carries a run_id
// field unique to this invocation.
func New(w io.Writer, verbose bool, debug int, noColor bool) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(Level(verbose, debug))
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   noColor,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return l.WithField("run_id", uuid.NewString())
}
