package web

import (
	"catalogconsole/app"
	"catalogconsole/internal/api"

	"github.com/gofiber/fiber/v2"
)

func (w *Console) exportProducts(c *fiber.Ctx) error {
	res, err := w.handlers.ExportProducts.Handle(c.UserContext(), &app.ExportProductsRequest{
		CategoryID: c.Query("category_id"),
	})
	if err != nil {
		_, message := failure(err, "Failed to export products")
		return w.redirect(c, "/dashboard", message)
	}

	c.Attachment(res.Filename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(res.Content)
}

func (w *Console) importForm(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "import", importPage{
		Page: w.page(c, "Import products", "dashboard"),
	})
}

// importProducts shows the per-row report directly instead of redirecting.
func (w *Console) importProducts(c *fiber.Ctx) error {
	view := importPage{
		Page: formPage(c, "Import products", "dashboard"),
	}

	content, err := api.ReadImportFile(c)
	if err == nil {
		var res *app.ImportProductsResponse
		res, err = w.handlers.ImportProducts.Handle(c.UserContext(), &app.ImportProductsRequest{Content: content})
		if err == nil {
			view.Result = res
			return render(c, fiber.StatusOK, "import", view)
		}
	}

	status, message := failure(err, "Invalid CSV file")
	view.Notification = message
	return render(c, status, "import", view)
}
