// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the per-request values set by middleware.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/joycdecor/joycdecor/internal/platform/ctxkey"
	"github.com/joycdecor/joycdecor/internal/platform/sec"
)

// lookup returns the value under key, or the zero T when absent or mistyped.
func lookup[T any](ctx context.Context, key ctxkey.Key) T {
	value, _ := ctx.Value(key).(T)
	return value
}

// # Request Tracing

// WithRequestID attaches the correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.RequestID, id)
}

// RequestID returns the correlation id, or "" outside a request.
func RequestID(ctx context.Context) string {
	return lookup[string](ctx, ctxkey.RequestID)
}

// # Structured Logging

// WithLogger attaches the request logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.Logger, logger)
}

// Logger returns the request logger, falling back to [slog.Default].
func Logger(ctx context.Context) *slog.Logger {
	if logger := lookup[*slog.Logger](ctx, ctxkey.Logger); logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithClaims attaches the caller's verified token claims.
func WithClaims(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.Claims, claims)
}

// Claims returns the caller's claims, or nil for an anonymous visitor.
func Claims(ctx context.Context) *sec.AuthClaims {
	return lookup[*sec.AuthClaims](ctx, ctxkey.Claims)
}
