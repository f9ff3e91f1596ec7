package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	SessionCookie = "catalog_session"

	SessionToken        = "token"
	SessionUser         = "user"
	SessionNotification = "notification"
)

// NewSessionStore builds the console session store. A nil storage keeps sessions in memory.
func NewSessionStore(storage fiber.Storage, expiration time.Duration, secure bool) *session.Store {
	return session.New(session.Config{
		Expiration:     expiration,
		Storage:        storage,
		KeyLookup:      "cookie:" + SessionCookie,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieSecure:   secure,
	})
}
