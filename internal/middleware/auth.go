package middleware

import (
	"catalogconsole/pkg/auth"
	"catalogconsole/pkg/httperror"
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// NewTokenMiddleware puts the caller's backend token and user name into the
// request context. A Bearer header wins over the session; anonymous requests pass through.
func NewTokenMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		user := ""

		if token == "" && store != nil {
			sess, err := store.Get(c)
			if err != nil {
				zap.L().Warn("Failed to load session", zap.Error(err))
			} else {
				token, _ = sess.Get(SessionToken).(string)
				user, _ = sess.Get(SessionUser).(string)
			}
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}
		if token != "" {
			userCtx = auth.WithToken(userCtx, token)
		}
		if user != "" {
			userCtx = auth.WithUser(userCtx, user)
		}

		c.SetUserContext(userCtx)
		return c.Next()
	}
}

// RequireToken rejects requests that carry no backend token.
func RequireToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if auth.Token(c.UserContext()) == "" {
			return unauthorized(c)
		}
		return c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c *fiber.Ctx) error {
	err := httperror.Unauthorized(
		"auth.token.missing",
		"Sign in first",
		nil,
	)

	return c.Status(err.Status).JSON(fiber.Map{
		"code":    err.Code,
		"message": err.Message,
	})
}
