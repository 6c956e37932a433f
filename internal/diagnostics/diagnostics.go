// Package diagnostics wraps zerolog with lumberjack rotation, following
// the monitoring example's logger package, and emits the session-failure
// diagnostic record spec §7 requires: "every session failure emits one
// structured diagnostic record with {session_id, state, kind, detail}".
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps a zerolog.Logger with the rotation and component-scoping
// conventions this module's CLI entry points use.
type Logger struct {
	logger zerolog.Logger
}

// Config mirrors the env-derived LOG_LEVEL/LOG_FILE keys from spec §6.
type Config struct {
	Level string
	File  string
}

// New builds a Logger writing to File if set, stdout otherwise, rotated
// through lumberjack whenever a file path is configured.
func New(cfg Config) (*Logger, error) {
	var w io.Writer = os.Stdout
	if cfg.File != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	l := zerolog.New(w).With().Timestamp().Logger().Level(level)
	return &Logger{logger: l}, nil
}

// WithComponent scopes subsequent events with a component field, the way
// the CLI entry points tag their logs "start-evcc" or "start-secc".
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{logger: l.logger.With().Str("component", component).Logger()}
}

// Info and Error are the two levels the core actually emits at.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	ev := l.logger.Info()
	addFields(ev, fields)
	ev.Msg(msg)
}

func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	ev := l.logger.Error().Err(err)
	addFields(ev, fields)
	ev.Msg(msg)
}

func addFields(ev *zerolog.Event, fields map[string]interface{}) {
	for k, v := range fields {
		ev.Interface(k, v)
	}
}

// FailureRecord is the {session_id, state, kind, detail} shape spec §7
// mandates for every session failure, plus a diagnostic correlation id
// distinct from the wire session id (spec's DOMAIN STACK wiring for
// google/uuid) so operators can cross-reference a single failure event
// across log aggregation even when session ids repeat across restarts.
type FailureRecord struct {
	CorrelationID string
	SessionID     string
	State         string
	Kind          string
	Detail        string
}

// NewFailureRecord stamps a fresh correlation id onto the given fields.
func NewFailureRecord(sessionID, state, kind, detail string) FailureRecord {
	return FailureRecord{
		CorrelationID: uuid.NewString(),
		SessionID:     sessionID,
		State:         state,
		Kind:          kind,
		Detail:        detail,
	}
}

// LogFailure emits rec as a single structured event — no stack trace, per
// spec §7's "no stack traces surface to peers" (nor, by the same
// principle, to the log sink; a wrapped %w chain is already flattened
// into Detail by the caller).
func (l *Logger) LogFailure(rec FailureRecord) {
	l.logger.Error().
		Str("correlation_id", rec.CorrelationID).
		Str("session_id", rec.SessionID).
		Str("state", rec.State).
		Str("kind", rec.Kind).
		Str("detail", rec.Detail).
		Msg("session terminated")
}

// ExitCode maps the §7 error kinds onto the §6 process exit codes.
type ExitCode int

const (
	ExitOK               ExitCode = 0
	ExitConfigError      ExitCode = 1
	ExitStartupFailure   ExitCode = 2
	ExitInternalError    ExitCode = 3
)

func (c ExitCode) String() string {
	switch c {
	case ExitOK:
		return "ok"
	case ExitConfigError:
		return "config_error"
	case ExitStartupFailure:
		return "startup_failure"
	case ExitInternalError:
		return "internal_error"
	default:
		return fmt.Sprintf("exit(%d)", int(c))
	}
}
