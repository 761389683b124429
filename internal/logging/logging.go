// Package logging provides the structured logger used across the sfs
// module: volume initialization and defragmentation log through a
// logrus.FieldLogger rather than fmt.Println, so operators can filter and
// format volume activity like any other service log. The CLI builds the
// logger from the volume config and hands it to sfs.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logger handed to sfs.Options and the CLI.
type Logger = logrus.FieldLogger

// New builds a text-formatted logger writing to w at level. An empty level
// string defaults to "info".
func New(w io.Writer, level string) (Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	if level == "" {
		level = "info"
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(parsed)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return l, nil
}

// Discard is a Logger that drops every entry, for callers that do not
// supply one (tests, library embedders that don't want sfs's logs).
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
