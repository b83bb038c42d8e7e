package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

// NewConsoleLogger returns an adapter writing human-readable output to
// stderr, keeping stdout free for command output.
func NewConsoleLogger(level zerolog.Level) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
	return NewZerolog(consoleWriter, level)
}

// LevelFromVerbosity maps the -v/-q CLI flags onto a zerolog level.
// quiet wins over any verbosity count.
func LevelFromVerbosity(verbose int, quiet bool) zerolog.Level {
	switch {
	case quiet:
		return zerolog.Disabled
	case verbose >= 2:
		return zerolog.TraceLevel
	case verbose == 1:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithComponent returns a copy of the adapter that tags every event with a
// component field.
func (z *ZerologAdapter) WithComponent(component string) *ZerologAdapter {
	return &ZerologAdapter{logger: z.logger.With().Str("component", component).Logger()}
}

func (z *ZerologAdapter) Debug(msg string, fields map[string]interface{}) {
	event := z.logger.Debug()
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func (z *ZerologAdapter) Info(msg string, fields map[string]interface{}) {
	event := z.logger.Info()
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func (z *ZerologAdapter) Warning(msg string, fields map[string]interface{}) {
	event := z.logger.Warn()
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func (z *ZerologAdapter) Error(msg string, err error, fields map[string]interface{}) {
	event := z.logger.Error().Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}
