package events

import "context"

type correlationKey struct{}

// WithCorrelationID ties events published while handling ctx to one request id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the request id carried by ctx, or a fresh one.
func CorrelationID(ctx context.Context) string {
	if id, _ := ctx.Value(correlationKey{}).(string); id != "" {
		return id
	}
	return GenerateCorrelationID()
}
