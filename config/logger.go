package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

type Logger struct{}

// Log is the process wide logger used by every command
var Log *Logger

func (l *Logger) ZInfo() *zerolog.Event {
	return zlog.Info()
}

func (l *Logger) Info(msg string, err ...error) {
	if len(err) == 1 {
		zlog.Info().Err(err[0]).Msg(msg)
		return
	}
	zlog.Info().Msg(msg)
}

func (l *Logger) Infof(msg string, args ...interface{}) {
	zlog.Info().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Warnf(msg string, args ...interface{}) {
	zlog.Warn().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Error(msg string, err ...error) {
	if len(err) == 1 {
		zlog.Error().Err(err[0]).Msg(msg)
		return
	}
	zlog.Error().Msg(msg)
}

func (l *Logger) Errorf(msg string, args ...interface{}) {
	zlog.Error().Msg(fmt.Sprintf(msg, args...))
}

// With returns a child of the process logger that adds key to every line it writes. The
// process logger itself is left untouched.
func (l *Logger) With(key string, value string) zerolog.Logger {
	return zlog.With().Str(key, value).Logger()
}

// DoConfigureLogger sends logs to stdout and, when logPath is set, appends them to that file as well.
func DoConfigureLogger(logPath string, logLevel string, prettyLogging bool) error {
	writers := io.MultiWriter(os.Stdout)
	if len(logPath) > 0 {
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", logPath, err)
		}
		writers = io.MultiWriter(os.Stdout, file)
	}
	if prettyLogging {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: writers})
	} else {
		zlog.Logger = zlog.Output(writers)
	}

	zerolog.SetGlobalLevel(ParseLogLevel(logLevel))
	return nil
}

// ParseLogLevel maps a config value to a zerolog level (default to info)
func ParseLogLevel(logLevel string) zerolog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
