// Package log wraps logrus with a per-module logger and an optional file
// hook.
package log

import (
	"io"
	"os"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

type Logger struct {
	*logrus.Entry
}

var base = newBase(os.Stderr)

func newBase(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   false,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000",
	})
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// NewLogger returns a logger tagged with the module's name.
func NewLogger(module string) *Logger {
	return &Logger{base.WithField("name", module)}
}

// SetOutput redirects every module logger.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

// SetLevel parses and applies a level name such as "debug" or "warn".
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	base.SetLevel(lvl)
	return nil
}

// AddFileHook copies every entry at or above the current level to path as
// JSON, one entry per line.
func AddFileHook(path string) {
	pathMap := lfshook.PathMap{}
	for _, lvl := range logrus.AllLevels {
		pathMap[lvl] = path
	}

	hook := lfshook.NewHook(
		pathMap,
		&logrus.JSONFormatter{
			TimestampFormat: "Jan _2 2006 15:04:05.000000",
		},
	)
	base.Hooks.Add(hook)
}
