package app

import (
	"catalogconsole/domain"
	"catalogconsole/pkg/auth"
	"catalogconsole/pkg/events"
	"context"
	"time"
)

type CreateProductHandler struct {
	gateway        CatalogGateway
	eventPublisher events.Publisher
}

type CreateProductRequest struct {
	ProductInput
}

type CreateProductResponse struct {
	Product      domain.Product `json:"product"`
	Notification string         `json:"notification"`
}

func NewCreateProductHandler(gateway CatalogGateway, eventPublisher events.Publisher) *CreateProductHandler {
	return &CreateProductHandler{
		gateway:        gateway,
		eventPublisher: eventPublisher,
	}
}

func (h CreateProductHandler) Handle(ctx context.Context, req *CreateProductRequest) (*CreateProductResponse, error) {
	req.normalize()
	if err := validateRequest(req, "product.create", "Failed to add product"); err != nil {
		return nil, err
	}

	product := req.product("")
	if err := h.gateway.CreateProduct(ctx, product); err != nil {
		return nil, upstreamFailure(
			"product.create.failed",
			"Failed to add product",
			err,
		)
	}

	publishEvent(ctx, h.eventPublisher, events.ProductCreatedEvent, events.ProductChangedPayload{
		Name:       product.Name,
		CategoryID: product.CategoryID,
		Price:      product.Price,
		Stock:      product.Stock,
		Actor:      auth.User(ctx),
		ChangedAt:  time.Now().UTC(),
	})

	return &CreateProductResponse{
		Product:      product,
		Notification: "Product added successfully",
	}, nil
}
