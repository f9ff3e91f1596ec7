package web

import (
	"catalogconsole/app"
	"catalogconsole/internal/middleware"
	"catalogconsole/pkg/auth"
	"catalogconsole/pkg/httperror"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// Console serves the server-rendered admin pages. Every POST ends in a redirect
// carrying its notification through the session, except failed forms which are
// rendered again with what the user typed.
type Console struct {
	handlers *app.Handlers
	store    *session.Store
}

func NewConsole(handlers *app.Handlers, store *session.Store) *Console {
	return &Console{
		handlers: handlers,
		store:    store,
	}
}

func (w *Console) Register(router fiber.Router) {
	router.Use(middleware.NewTokenMiddleware(w.store))

	router.Get("/login", w.loginForm)
	router.Post("/login", w.login)

	guard := w.requireLogin
	router.Get("/", guard, func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})
	router.Post("/logout", guard, w.logout)

	router.Get("/dashboard", guard, w.dashboard)
	router.Get("/products/new", guard, w.newProduct)
	router.Post("/products", guard, w.createProduct)
	router.Get("/products/export.csv", guard, w.exportProducts)
	router.Get("/products/import", guard, w.importForm)
	router.Post("/products/import", guard, w.importProducts)
	router.Get("/products/:id/edit", guard, w.editProduct)
	router.Post("/products/:id", guard, w.updateProduct)
	router.Get("/products/:id/delete", guard, w.confirmDeleteProduct)
	router.Post("/products/:id/delete", guard, w.deleteProduct)

	router.Get("/categories", guard, w.categories)
	router.Get("/categories/new", guard, w.newCategory)
	router.Post("/categories", guard, w.createCategory)
	router.Get("/categories/:id/delete", guard, w.confirmDeleteCategory)
	router.Post("/categories/:id/delete", guard, w.deleteCategory)

	router.Get("/activity", guard, w.activity)
}

func (w *Console) requireLogin(c *fiber.Ctx) error {
	if auth.Token(c.UserContext()) == "" {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// page starts a view for the signed-in user, consuming any pending notification.
func (w *Console) page(c *fiber.Ctx, title, active string) Page {
	return Page{
		Title:        title,
		Active:       active,
		User:         auth.User(c.UserContext()),
		Notification: w.takeNotification(c),
	}
}

// formPage is the view header of a re-rendered form; the notification is set by the caller.
func formPage(c *fiber.Ctx, title, active string) Page {
	return Page{
		Title:  title,
		Active: active,
		User:   auth.User(c.UserContext()),
	}
}

func render(c *fiber.Ctx, status int, name string, data any) error {
	return c.Status(status).Render(name, data, layout)
}

// redirect stores notification for the next page and answers 303.
func (w *Console) redirect(c *fiber.Ctx, to, notification string) error {
	if notification != "" {
		w.setNotification(c, notification)
	}
	return c.Redirect(to, fiber.StatusSeeOther)
}

func (w *Console) setNotification(c *fiber.Ctx, notification string) {
	sess, err := w.store.Get(c)
	if err != nil {
		zap.L().Warn("Failed to load session", zap.Error(err))
		return
	}
	sess.Set(middleware.SessionNotification, notification)
	if err := sess.Save(); err != nil {
		zap.L().Warn("Failed to save session", zap.Error(err))
	}
}

func (w *Console) takeNotification(c *fiber.Ctx) string {
	sess, err := w.store.Get(c)
	if err != nil {
		return ""
	}

	notification, _ := sess.Get(middleware.SessionNotification).(string)
	if notification == "" {
		return ""
	}

	sess.Delete(middleware.SessionNotification)
	if err := sess.Save(); err != nil {
		zap.L().Warn("Failed to save session", zap.Error(err))
	}
	return notification
}

// failure splits a use case error into the status and message to show.
func failure(err error, fallback string) (int, string) {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		return httpErr.Status, httpErr.Message
	}

	zap.L().Error("Unhandled console error", zap.Error(err))
	return http.StatusInternalServerError, fallback
}
