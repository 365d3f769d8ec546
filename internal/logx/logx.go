// Package logx wraps logrus for the connection driver and listener.
//
// The server's OpenLog flag decides whether logging happens at all; when
// it is false, New returns a logger with its output discarded, and the
// call sites in the connection driver and listener also check OpenLog
// before logging.
package logx

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a logger for the connection driver and listener. When
// enabled is false, every log call still runs but its output is
// discarded.
func New(enabled bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if !enabled {
		log.SetOutput(io.Discard)
	}
	return log
}
