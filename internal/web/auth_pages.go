package web

import (
	"catalogconsole/app/auth"
	"catalogconsole/internal/middleware"
	pkgauth "catalogconsole/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

func (w *Console) loginForm(c *fiber.Ctx) error {
	if pkgauth.Token(c.UserContext()) != "" {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	return render(c, fiber.StatusOK, "login", loginPage{
		Page: w.page(c, "Sign in", ""),
	})
}

func (w *Console) login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return render(c, fiber.StatusBadRequest, "login", loginPage{
			Page: Page{Title: "Sign in", Notification: "Username and password are required"},
		})
	}

	res, err := w.handlers.Login.Handle(c.UserContext(), &req)
	if err != nil {
		status, message := failure(err, "Sign-in failed")
		return render(c, status, "login", loginPage{
			Page:     Page{Title: "Sign in", Notification: message},
			Username: req.Username,
		})
	}

	sess, err := w.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(middleware.SessionToken, res.Token)
	sess.Set(middleware.SessionUser, res.User)
	sess.Set(middleware.SessionNotification, res.Notification)
	if err := sess.Save(); err != nil {
		return err
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (w *Console) logout(c *fiber.Ctx) error {
	sess, err := w.store.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			return err
		}
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}
