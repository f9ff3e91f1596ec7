package app

import (
	"catalogconsole/domain"
	"catalogconsole/pkg/httperror"
	"context"
	"strings"
)

type GetProductHandler struct {
	gateway CatalogGateway
}

func NewGetProductHandler(gateway CatalogGateway) *GetProductHandler {
	return &GetProductHandler{
		gateway: gateway,
	}
}

type GetProductRequest struct {
	ID string `params:"id"`
}

type GetProductResponse struct {
	Product domain.Product `json:"product"`
}

// Handle finds the product in the full listing; the backend has no single-product read.
func (h GetProductHandler) Handle(ctx context.Context, req *GetProductRequest) (*GetProductResponse, error) {
	id := strings.TrimSpace(req.ID)

	products, err := h.gateway.ListProducts(ctx, "")
	if err != nil {
		return nil, upstreamFailure(
			"product.show.failed",
			"Failed to load products",
			err,
		)
	}

	for _, product := range products {
		if id != "" && product.ID == id {
			return &GetProductResponse{
				Product: product,
			}, nil
		}
	}

	return nil, httperror.NotFound(
		"product.show.not_found",
		"Product not found",
		nil,
	)
}
