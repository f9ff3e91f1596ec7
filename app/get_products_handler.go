package app

import (
	"catalogconsole/domain"
	"context"
)

type GetProductsHandler struct {
	gateway CatalogGateway
}

func NewGetProductsHandler(gateway CatalogGateway) *GetProductsHandler {
	return &GetProductsHandler{
		gateway: gateway,
	}
}

type GetProductsRequest struct {
	CategoryID string `query:"category_id"`
}

type GetProductsResponse struct {
	Products   []domain.Product `json:"products"`
	CategoryID string           `json:"categoryId,omitempty"`
}

func (h GetProductsHandler) Handle(ctx context.Context, req *GetProductsRequest) (*GetProductsResponse, error) {
	products, err := h.gateway.ListProducts(ctx, req.CategoryID)
	if err != nil {
		return nil, upstreamFailure(
			"product.index.failed",
			"Failed to load products",
			err,
		)
	}

	return &GetProductsResponse{
		Products:   products,
		CategoryID: req.CategoryID,
	}, nil
}
