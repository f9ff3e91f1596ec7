package web

import (
	"catalogconsole/app"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

func (w *Console) activity(c *fiber.Ctx) error {
	view := activityPage{
		Page: w.page(c, "Activity", "activity"),
	}

	res, err := w.handlers.GetActivity.Handle(c.UserContext(), &app.GetActivityRequest{
		Page: c.QueryInt("page", 1),
	})
	if err != nil {
		status, message := failure(err, "Failed to load activity")
		if status == http.StatusServiceUnavailable {
			view.Unavailable = true
			return render(c, fiber.StatusOK, "activity", view)
		}
		view.Notices = append(view.Notices, message)
		return render(c, status, "activity", view)
	}

	view.Activities = res.Activities
	view.Current = res.Page
	view.TotalPages = res.TotalPages
	if res.Page > 1 {
		view.PrevPage = res.Page - 1
	}
	if res.Page < res.TotalPages {
		view.NextPage = res.Page + 1
	}

	return render(c, fiber.StatusOK, "activity", view)
}
