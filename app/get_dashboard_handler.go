package app

import (
	"catalogconsole/domain"
	"context"

	"github.com/sourcegraph/conc"
)

type GetDashboardHandler struct {
	gateway           CatalogGateway
	lowStockThreshold int
}

func NewGetDashboardHandler(gateway CatalogGateway, lowStockThreshold int) *GetDashboardHandler {
	return &GetDashboardHandler{
		gateway:           gateway,
		lowStockThreshold: lowStockThreshold,
	}
}

type GetDashboardRequest struct {
	CategoryID string `query:"category_id"`
}

type GetDashboardResponse struct {
	Categories        []domain.Category `json:"categories"`
	Products          []domain.Product  `json:"products"`
	SelectedCategory  string            `json:"selectedCategory,omitempty"`
	Summary           domain.Summary    `json:"summary"`
	LowStockThreshold int               `json:"lowStockThreshold"`
	Notices           []string          `json:"notices,omitempty"`
}

// Handle loads categories and products concurrently. A failure of one listing
// is reported as a notice next to whatever the other listing returned; only a
// failure of both is an error.
func (h GetDashboardHandler) Handle(ctx context.Context, req *GetDashboardRequest) (*GetDashboardResponse, error) {
	var (
		categories    []domain.Category
		products      []domain.Product
		categoriesErr error
		productsErr   error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		categories, categoriesErr = h.gateway.ListCategories(ctx)
	})
	wg.Go(func() {
		products, productsErr = h.gateway.ListProducts(ctx, req.CategoryID)
	})
	wg.Wait()

	if categoriesErr != nil && productsErr != nil {
		return nil, upstreamFailure(
			"dashboard.index.failed",
			"Failed to load products",
			productsErr,
		)
	}

	res := &GetDashboardResponse{
		Categories:        categories,
		Products:          products,
		SelectedCategory:  req.CategoryID,
		LowStockThreshold: h.lowStockThreshold,
	}
	if categoriesErr != nil {
		res.Categories = []domain.Category{}
		res.Notices = append(res.Notices, "Failed to load categories")
	}
	if productsErr != nil {
		res.Products = []domain.Product{}
		res.Notices = append(res.Notices, "Failed to load products")
	}

	res.Summary = domain.Summarize(res.Products, res.Categories, h.lowStockThreshold)

	return res, nil
}
