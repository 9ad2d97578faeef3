package gateway

import "context"

type ctxKey string

const requestIDKey ctxKey = "atns.requestID"

// WithRequestID stores a correlation id that RequestIDHook will send.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx fetches the correlation id from context.
func RequestIDFromCtx(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(requestIDKey).(string)
	return v, ok && v != ""
}
