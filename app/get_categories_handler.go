package app

import (
	"catalogconsole/domain"
	"context"
)

type GetCategoriesHandler struct {
	gateway CatalogGateway
}

func NewGetCategoriesHandler(gateway CatalogGateway) *GetCategoriesHandler {
	return &GetCategoriesHandler{
		gateway: gateway,
	}
}

type GetCategoriesRequest struct{}

type GetCategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

func (h GetCategoriesHandler) Handle(ctx context.Context, req *GetCategoriesRequest) (*GetCategoriesResponse, error) {
	categories, err := h.gateway.ListCategories(ctx)
	if err != nil {
		return nil, upstreamFailure(
			"category.index.failed",
			"Failed to load categories",
			err,
		)
	}

	return &GetCategoriesResponse{
		Categories: categories,
	}, nil
}
