// Package logging sets up the console and log-file logging of a run.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/level"
	"github.com/apex/log/handlers/multi"
	"github.com/apex/log/handlers/text"
	"github.com/pkg/errors"
)

// FileName is the name of the log file inside the temp directory.
const FileName = "log.txt"

// Logger logs to the console and, once OpenFile succeeded, to a log file.
// The console shows info and above, or everything in verbose mode; the
// file always receives everything.
type Logger struct {
	*log.Logger

	console log.Handler
	file    *os.File
	path    string
}

// New returns a Logger writing to console.
func New(console io.Writer, verbose bool) *Logger {
	lvl := log.InfoLevel
	if verbose {
		lvl = log.DebugLevel
	}
	h := level.New(cli.New(console), lvl)
	return &Logger{
		Logger:  &log.Logger{Handler: h, Level: log.DebugLevel},
		console: h,
	}
}

// OpenFile creates (or truncates) the log file in dir and starts
// logging to it.
func (l *Logger) OpenFile(dir string) error {
	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating log file")
	}
	if l.file != nil {
		l.file.Close()
	}
	l.file = f
	l.path = path
	l.Logger.Handler = multi.New(l.console, text.New(f))
	return nil
}

// Path returns the log file path, "" before OpenFile.
func (l *Logger) Path() string {
	return l.path
}

// Writer returns the log file, or nil before OpenFile.
func (l *Logger) Writer() io.Writer {
	if l.file == nil {
		return nil
	}
	return l.file
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.Logger.Handler = l.console
	return err
}
