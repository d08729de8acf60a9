// Package logging is the one logger type fintrack passes around. main builds it
// from LOG_LEVEL and LOG_FORMAT and hands each consumer a child tagged with
// its component.
package logging

import "context"

// Logger takes alternating key, value args:
//
//	log.Warn(ctx, "send email failed", "user_id", id, "error", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child that adds args to every record.
	With(args ...any) Logger
}
