// Package logging provides structured request logging. Like the tracing
// package it hangs off the event bus, so handlers and the pipeline never
// carry a logger.
package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hanpama/gqlcore/internal/eventbus"
	"github.com/hanpama/gqlcore/internal/events"
	"github.com/hanpama/gqlcore/internal/reqid"
)

// New builds the process logger. level is a zap level name ("debug",
// "info", ...); development switches to the human-readable console encoder.
func New(level string, development bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	return cfg.Build()
}

// Attach subscribes request-lifecycle log statements to the global bus and
// returns a function that detaches them.
func Attach(logger *zap.Logger) (detach func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.HTTPStart) {
			logger.Debug("http request",
				append(requestFields(ctx),
					zap.String("method", e.Request.Method),
					zap.String("path", e.Request.URL.Path),
				)...)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
			logger.Info("http response",
				append(requestFields(ctx),
					zap.String("method", e.Request.Method),
					zap.String("path", e.Request.URL.Path),
					zap.Int("status", e.Status),
					zap.Duration("duration", e.Duration),
				)...)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.GraphQLStart) {
			logger.Debug("graphql operation start",
				append(requestFields(ctx),
					zap.String("operation", e.OperationName),
				)...)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.GraphQLFinish) {
			fields := append(requestFields(ctx),
				zap.String("operation", e.OperationName),
				zap.Duration("duration", e.Duration),
				zap.Int("errors", len(e.Errors)),
			)
			if len(e.Errors) > 0 {
				logger.Warn("graphql operation finished with errors",
					append(fields, zap.String("first_error", e.Errors[0].Message))...)
				return
			}
			logger.Info("graphql operation finished", fields...)
		}),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func requestFields(ctx context.Context) []zap.Field {
	if rid, ok := reqid.FromContext(ctx); ok {
		return []zap.Field{zap.String("request_id", reqid.String(rid))}
	}
	return nil
}
