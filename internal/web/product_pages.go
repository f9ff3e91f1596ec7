package web

import (
	"catalogconsole/app"
	"catalogconsole/domain"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func (w *Console) dashboard(c *fiber.Ctx) error {
	view := dashboardPage{
		Page:             w.page(c, "Dashboard", "dashboard"),
		SelectedCategory: c.Query("category_id"),
	}

	res, err := w.handlers.GetDashboard.Handle(c.UserContext(), &app.GetDashboardRequest{
		CategoryID: view.SelectedCategory,
	})
	if err != nil {
		status, message := failure(err, "Failed to load products")
		view.Notices = append(view.Notices, message)
		return render(c, status, "dashboard", view)
	}

	names := make(map[string]string, len(res.Categories))
	for _, category := range res.Categories {
		names[category.ID] = category.Name
	}

	view.Categories = res.Categories
	view.Summary = res.Summary
	view.Notices = append(view.Notices, res.Notices...)
	view.Products = make([]productCard, 0, len(res.Products))
	for _, product := range res.Products {
		view.Products = append(view.Products, productCard{
			Product:      product,
			CategoryName: names[product.CategoryID],
			LowStock:     product.Stock < res.LowStockThreshold,
		})
	}

	return render(c, fiber.StatusOK, "dashboard", view)
}

func (w *Console) newProduct(c *fiber.Ctx) error {
	return w.renderProductForm(c, fiber.StatusOK, productFormPage{
		Page:   w.page(c, "Add Product", "dashboard"),
		Action: "/products",
		Submit: "Add",
		Product: productForm{
			CategoryID: c.Query("category_id"),
		},
	})
}

func (w *Console) createProduct(c *fiber.Ctx) error {
	form := productFormFromRequest(c)
	view := productFormPage{
		Page:    formPage(c, "Add Product", "dashboard"),
		Action:  "/products",
		Submit:  "Add",
		Product: form,
	}

	input, err := form.input()
	if err != nil {
		view.Notification = "Failed to add product: " + err.Error()
		return w.renderProductForm(c, fiber.StatusBadRequest, view)
	}

	res, err := w.handlers.CreateProduct.Handle(c.UserContext(), &app.CreateProductRequest{ProductInput: input})
	if err != nil {
		status, message := failure(err, "Failed to add product")
		view.Notification = message
		return w.renderProductForm(c, status, view)
	}

	return w.redirect(c, "/dashboard", res.Notification)
}

func (w *Console) editProduct(c *fiber.Ctx) error {
	product, err := w.findProduct(c, c.Params("id"))
	if err != nil {
		_, message := failure(err, "Failed to load products")
		return w.redirect(c, "/dashboard", message)
	}

	return w.renderProductForm(c, fiber.StatusOK, productFormPage{
		Page:    w.page(c, "Edit Product", "dashboard"),
		Action:  "/products/" + product.ID,
		Submit:  "Save",
		Product: productFormFrom(product),
	})
}

func (w *Console) updateProduct(c *fiber.Ctx) error {
	form := productFormFromRequest(c)
	form.ID = c.Params("id")
	view := productFormPage{
		Page:    formPage(c, "Edit Product", "dashboard"),
		Action:  "/products/" + form.ID,
		Submit:  "Save",
		Product: form,
	}

	input, err := form.input()
	if err != nil {
		view.Notification = "Failed to update product: " + err.Error()
		return w.renderProductForm(c, fiber.StatusBadRequest, view)
	}

	res, err := w.handlers.UpdateProduct.Handle(c.UserContext(), &app.UpdateProductRequest{
		ID:           form.ID,
		ProductInput: input,
	})
	if err != nil {
		status, message := failure(err, "Failed to update product")
		view.Notification = message
		return w.renderProductForm(c, status, view)
	}

	return w.redirect(c, "/dashboard", res.Notification)
}

func (w *Console) confirmDeleteProduct(c *fiber.Ctx) error {
	product, err := w.findProduct(c, c.Params("id"))
	if err != nil {
		_, message := failure(err, "Failed to load products")
		return w.redirect(c, "/dashboard", message)
	}

	return render(c, fiber.StatusOK, "confirm_delete", confirmPage{
		Page:    w.page(c, "Delete Product", "dashboard"),
		Message: "Are you sure you want to delete this product?",
		Name:    product.Name,
		Action:  "/products/" + product.ID + "/delete",
		Cancel:  "/dashboard",
	})
}

func (w *Console) deleteProduct(c *fiber.Ctx) error {
	res, err := w.handlers.DeleteProduct.Handle(c.UserContext(), &app.DeleteProductRequest{ID: c.Params("id")})
	if err != nil {
		_, message := failure(err, "Failed to delete product")
		return w.redirect(c, "/dashboard", message)
	}
	return w.redirect(c, "/dashboard", res.Notification)
}

// renderProductForm fills the category choices; a listing failure leaves them empty with a notice.
func (w *Console) renderProductForm(c *fiber.Ctx, status int, view productFormPage) error {
	res, err := w.handlers.GetCategories.Handle(c.UserContext(), &app.GetCategoriesRequest{})
	if err != nil {
		_, message := failure(err, "Failed to load categories")
		view.Notices = append(view.Notices, message)
		view.Categories = []domain.Category{}
	} else {
		view.Categories = res.Categories
	}
	return render(c, status, "product_form", view)
}

func (w *Console) findProduct(c *fiber.Ctx, id string) (domain.Product, error) {
	res, err := w.handlers.GetProduct.Handle(c.UserContext(), &app.GetProductRequest{ID: id})
	if err != nil {
		return domain.Product{}, err
	}
	return res.Product, nil
}

func productFormFromRequest(c *fiber.Ctx) productForm {
	return productForm{
		Name:       c.FormValue("nama"),
		CategoryID: c.FormValue("category_id"),
		Price:      c.FormValue("harga"),
		Stock:      c.FormValue("jml_stok"),
	}
}

func productFormFrom(p domain.Product) productForm {
	return productForm{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Price:      p.Price.String(),
		Stock:      strconv.Itoa(p.Stock),
	}
}

// input converts the form; blank numeric fields count as zero.
func (f productForm) input() (app.ProductInput, error) {
	in := app.ProductInput{
		Name:       f.Name,
		CategoryID: f.CategoryID,
		Price:      decimal.Zero,
	}

	if price := strings.TrimSpace(f.Price); price != "" {
		d, err := decimal.NewFromString(price)
		if err != nil {
			return in, fmt.Errorf("price %q is not a number", f.Price)
		}
		in.Price = d
	}

	if stock := strings.TrimSpace(f.Stock); stock != "" {
		n, err := strconv.Atoi(stock)
		if err != nil {
			return in, fmt.Errorf("stock %q is not a whole number", f.Stock)
		}
		in.Stock = n
	}

	return in, nil
}
