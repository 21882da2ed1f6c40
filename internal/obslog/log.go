// Package obslog is the structured logging facade used across this module:
// a single global zerolog.Logger, configurable once at process start via
// Init or the AEONFLUX_LOG_LEVEL environment variable, with small
// key-value helpers for the call sites that actually log (issuance,
// presentation verification, batch results).
package obslog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = defaultLogger()
)

func defaultLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("AEONFLUX_LOG_LEVEL")); err == nil {
		level = lvl
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// Init replaces the global logger, e.g. so cmd/credgen can switch to a
// plain JSON writer on stderr.
func Init(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Infow logs msg at info level with the given key-value pairs.
func Infow(msg string, keyvalues ...any) {
	current().Info().Fields(keyvalues).Msg(msg)
}

// Warnw logs msg at warn level with the given key-value pairs.
func Warnw(msg string, keyvalues ...any) {
	current().Warn().Fields(keyvalues).Msg(msg)
}

// Errorw logs err at error level alongside msg.
func Errorw(err error, msg string, keyvalues ...any) {
	current().Error().Err(err).Fields(keyvalues).Msg(msg)
}

// Debugw logs msg at debug level with the given key-value pairs.
func Debugw(msg string, keyvalues ...any) {
	current().Debug().Fields(keyvalues).Msg(msg)
}
