package web

import (
	"catalogconsole/app"

	"github.com/gofiber/fiber/v2"
)

func (w *Console) categories(c *fiber.Ctx) error {
	view := categoriesPage{
		Page: w.page(c, "Categories", "categories"),
	}

	res, err := w.handlers.GetCategories.Handle(c.UserContext(), &app.GetCategoriesRequest{})
	if err != nil {
		status, message := failure(err, "Failed to load categories")
		view.Notices = append(view.Notices, message)
		return render(c, status, "categories", view)
	}

	view.Categories = res.Categories
	return render(c, fiber.StatusOK, "categories", view)
}

func (w *Console) newCategory(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "category_form", categoryFormPage{
		Page: w.page(c, "Add Category", "categories"),
	})
}

func (w *Console) createCategory(c *fiber.Ctx) error {
	req := app.CreateCategoryRequest{Name: c.FormValue("name")}

	res, err := w.handlers.CreateCategory.Handle(c.UserContext(), &req)
	if err != nil {
		status, message := failure(err, "Failed to add category")
		view := categoryFormPage{
			Page: formPage(c, "Add Category", "categories"),
			Name: c.FormValue("name"),
		}
		view.Notification = message
		return render(c, status, "category_form", view)
	}

	return w.redirect(c, "/categories", res.Notification)
}

func (w *Console) confirmDeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	res, err := w.handlers.GetCategories.Handle(c.UserContext(), &app.GetCategoriesRequest{})
	if err != nil {
		_, message := failure(err, "Failed to load categories")
		return w.redirect(c, "/categories", message)
	}

	for _, category := range res.Categories {
		if category.ID == id {
			return render(c, fiber.StatusOK, "confirm_delete", confirmPage{
				Page:    w.page(c, "Delete Category", "categories"),
				Message: "Are you sure you want to delete this category?",
				Name:    category.Name,
				Action:  "/categories/" + category.ID + "/delete",
				Cancel:  "/categories",
			})
		}
	}

	return w.redirect(c, "/categories", "Invalid category to delete")
}

func (w *Console) deleteCategory(c *fiber.Ctx) error {
	res, err := w.handlers.DeleteCategory.Handle(c.UserContext(), &app.DeleteCategoryRequest{ID: c.Params("id")})
	if err != nil {
		_, message := failure(err, "Failed to delete category")
		return w.redirect(c, "/categories", message)
	}
	return w.redirect(c, "/categories", res.Notification)
}
