package logging

import "context"

type requestIDKey struct{}

// RequestIDKey is the attribute under which loggers emit the request id
// found in the context.
const RequestIDKey = "request_id"

// ContextWithRequestID returns a copy of ctx carrying id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// withRequestID appends the context's request id to args when present.
func withRequestID(ctx context.Context, args []any) []any {
	if id := RequestID(ctx); id != "" {
		out := make([]any, 0, len(args)+2)
		return append(append(out, args...), RequestIDKey, id)
	}
	return args
}
