package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// Init sets up the process-wide logger. Development gets a console writer,
// everything else JSON lines.
func Init(environment string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
		return
	}

	log = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// Info logs msg with optional alternating key/value pairs.
func Info(msg string, keysAndValues ...any) {
	withFields(log.Info(), keysAndValues).Msg(msg)
}

func Warn(msg string, keysAndValues ...any) {
	withFields(log.Warn(), keysAndValues).Msg(msg)
}

// Error accepts either alternating key/value pairs or a bare error as the
// first variadic argument, matching existing call sites.
func Error(msg string, keysAndValues ...any) {
	event := log.Error()
	if len(keysAndValues) == 1 {
		if err, ok := keysAndValues[0].(error); ok {
			event.Err(err).Msg(msg)
			return
		}
	}
	withFields(event, keysAndValues).Msg(msg)
}

func Fatal(msg string, keysAndValues ...any) {
	withFields(log.Fatal(), keysAndValues).Msg(msg)
}

func withFields(event *zerolog.Event, keysAndValues []any) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		event = event.Interface(key, keysAndValues[i+1])
	}
	return event
}
