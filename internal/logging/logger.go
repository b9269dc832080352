// Package logging wraps bolt for the dashboard processes.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/felixgeelhaar/bolt/v3"
)

var (
	defaultLogger *bolt.Logger
	once          sync.Once
)

type Config struct {
	// Level is one of trace, debug, info, warn or error.
	Level string
	// Format is json or console.
	Format string
	Output io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: os.Stderr,
	}
}

func parseLevel(s string) bolt.Level {
	switch strings.ToLower(s) {
	case "trace":
		return bolt.TRACE
	case "debug":
		return bolt.DEBUG
	case "warn", "warning":
		return bolt.WARN
	case "error":
		return bolt.ERROR
	default:
		return bolt.INFO
	}
}

// New builds a logger without touching the process wide default.
func New(config Config) *bolt.Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	var handler bolt.Handler
	if config.Format == "json" {
		handler = bolt.NewJSONHandler(output)
	} else {
		handler = bolt.NewConsoleHandler(output)
	}
	return bolt.New(handler).SetLevel(parseLevel(config.Level))
}

func Init(config Config) {
	once.Do(func() {
		defaultLogger = New(config)
	})
}

func Get() *bolt.Logger {
	if defaultLogger == nil {
		Init(DefaultConfig())
	}
	return defaultLogger
}

type LogEvent struct {
	event *bolt.Event
}

func (l *LogEvent) With(fs ...Field) *LogEvent {
	for _, f := range fs {
		l.event = f(l.event)
	}
	return l
}

func (l *LogEvent) Msg(msg string) {
	l.event.Msg(msg)
}

func Debug() *LogEvent {
	return &LogEvent{event: Get().Debug()}
}

func Info() *LogEvent {
	return &LogEvent{event: Get().Info()}
}

func Warn() *LogEvent {
	return &LogEvent{event: Get().Warn()}
}

func Error() *LogEvent {
	return &LogEvent{event: Get().Error()}
}
