package auth

import "context"

type contextKey string

const (
	tokenKey contextKey = "token"
	userKey  contextKey = "user"
)

// WithToken stores the backend bearer token for outgoing catalog calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// Token returns the bearer token stored in ctx, or "" when the caller is anonymous.
func Token(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func User(ctx context.Context) string {
	user, _ := ctx.Value(userKey).(string)
	return user
}
