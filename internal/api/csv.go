package api

import (
	"catalogconsole/app"
	"catalogconsole/pkg/httperror"
	"io"

	"github.com/gofiber/fiber/v2"
)

const maxImportSize = 5 << 20

func exportProducts(handler *app.ExportProductsHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := handler.Handle(c.UserContext(), &app.ExportProductsRequest{
			CategoryID: c.Query("category_id"),
		})
		if err != nil {
			return WriteError(c, err)
		}

		if res.ArchiveKey != "" {
			c.Set("X-Archive-Key", res.ArchiveKey)
		}
		c.Attachment(res.Filename)
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.Send(res.Content)
	}
}

// importProducts accepts the CSV either as a multipart "file" field or as the raw body.
func importProducts(handler *app.ImportProductsHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		content, err := ReadImportFile(c)
		if err != nil {
			return WriteError(c, err)
		}

		res, err := handler.Handle(c.UserContext(), &app.ImportProductsRequest{Content: content})
		if err != nil {
			return WriteError(c, err)
		}

		return c.JSON(res)
	}
}

// ReadImportFile returns the uploaded CSV of an import request.
func ReadImportFile(c *fiber.Ctx) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxImportSize {
			return nil, httperror.BadRequest("product.import.too_large", "Invalid CSV file", "file exceeds 5 MB")
		}

		f, err := file.Open()
		if err != nil {
			return nil, httperror.BadRequest("product.import.unreadable", "Invalid CSV file", err.Error())
		}
		defer f.Close()

		content, err := io.ReadAll(io.LimitReader(f, maxImportSize))
		if err != nil {
			return nil, httperror.BadRequest("product.import.unreadable", "Invalid CSV file", err.Error())
		}
		return content, nil
	}

	body := c.Body()
	if len(body) > maxImportSize {
		return nil, httperror.BadRequest("product.import.too_large", "Invalid CSV file", "file exceeds 5 MB")
	}
	return append([]byte(nil), body...), nil
}
