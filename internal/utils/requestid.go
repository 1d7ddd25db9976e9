package utils

import (
	"context" // Request scoped values

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

type requestIDKey struct{}

// WithRequestID stores the request id in ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID extracts the request id from ctx, or "" when there is none
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// Log returns a logrus entry carrying the request id of ctx
func Log(ctx context.Context) *logrus.Entry {
	return logrus.WithField("request_id", RequestID(ctx))
}
