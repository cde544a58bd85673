// Package monitoring holds the diagnostic logger shared by the library
// packages. Commands and tests may replace or mute it.
package monitoring

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "algo-cube",
	Level:  log.WarnLevel,
})

// Logger returns the current package logger.
func Logger() *log.Logger { return logger }

// SetLogger replaces the package logger. Passing nil installs a logger that
// discards everything.
func SetLogger(l *log.Logger) {
	if l == nil {
		logger = log.New(io.Discard)
		return
	}
	logger = l
}
