package api

import (
	"catalogconsole/app"
	"catalogconsole/app/auth"
	"catalogconsole/internal/middleware"
	"catalogconsole/pkg/httperror"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Register mounts the JSON API on router. Reads are open; mutations need a token.
func Register(router fiber.Router, h *app.Handlers, store *session.Store) {
	v1 := router.Group("/api/v1", middleware.NewTokenMiddleware(store))
	requireToken := middleware.RequireToken()

	v1.Post("/login", handle[auth.LoginRequest, auth.LoginResponse](h.Login))

	v1.Get("/categories", handle[app.GetCategoriesRequest, app.GetCategoriesResponse](h.GetCategories))
	v1.Post("/categories", requireToken, handleWithStatus[app.CreateCategoryRequest, app.CreateCategoryResponse](fiber.StatusCreated, h.CreateCategory))
	v1.Delete("/categories/:id", requireToken, handle[app.DeleteCategoryRequest, app.DeleteCategoryResponse](h.DeleteCategory))

	v1.Get("/products", handle[app.GetProductsRequest, app.GetProductsResponse](h.GetProducts))
	v1.Get("/products/export.csv", exportProducts(h.ExportProducts))
	v1.Post("/products/import", requireToken, importProducts(h.ImportProducts))
	v1.Get("/products/:id", handle[app.GetProductRequest, app.GetProductResponse](h.GetProduct))
	v1.Post("/products", requireToken, handleWithStatus[app.CreateProductRequest, app.CreateProductResponse](fiber.StatusCreated, h.CreateProduct))
	v1.Put("/products/:id", requireToken, handle[app.UpdateProductRequest, app.UpdateProductResponse](h.UpdateProduct))
	v1.Delete("/products/:id", requireToken, handle[app.DeleteProductRequest, app.DeleteProductResponse](h.DeleteProduct))

	v1.Get("/dashboard", handle[app.GetDashboardRequest, app.GetDashboardResponse](h.GetDashboard))
	v1.Get("/activity", handle[app.GetActivityRequest, app.GetActivityResponse](h.GetActivity))

	v1.Use(func(c *fiber.Ctx) error {
		return WriteError(c, httperror.NotFound("route.not_found", "Route not found", nil))
	})
}
