// Package ctxutil carries request-scoped values across API boundaries.
//
// The chat facade tags each incoming command's context with a request ID;
// service log records pick it up so one command's writes can be correlated
// end to end. Actor and account IDs deliberately travel in operation inputs,
// not the context.
package ctxutil

import "context"

type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
