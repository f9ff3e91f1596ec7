package app

import (
	"catalogconsole/domain"
	"catalogconsole/pkg/auth"
	"catalogconsole/pkg/events"
	"catalogconsole/pkg/httperror"
	"context"
	"strings"
	"time"
)

type UpdateProductHandler struct {
	gateway        CatalogGateway
	eventPublisher events.Publisher
}

type UpdateProductRequest struct {
	ID string `params:"id" json:"_id"`
	ProductInput
}

type UpdateProductResponse struct {
	Product      domain.Product `json:"product"`
	Notification string         `json:"notification"`
}

func NewUpdateProductHandler(gateway CatalogGateway, eventPublisher events.Publisher) *UpdateProductHandler {
	return &UpdateProductHandler{
		gateway:        gateway,
		eventPublisher: eventPublisher,
	}
}

// Handle sends the whole product with PUT. The backend's answer body is not
// read; the submitted product is what the console shows afterwards.
func (h UpdateProductHandler) Handle(ctx context.Context, req *UpdateProductRequest) (*UpdateProductResponse, error) {
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		return nil, httperror.BadRequest(
			"product.update.invalid",
			"Failed to update product",
			nil,
		)
	}

	req.normalize()
	if err := validateRequest(req, "product.update", "Failed to update product"); err != nil {
		return nil, err
	}

	product := req.product(req.ID)
	if err := h.gateway.UpdateProduct(ctx, product); err != nil {
		return nil, upstreamFailure(
			"product.update.failed",
			"Failed to update product",
			err,
		)
	}

	publishEvent(ctx, h.eventPublisher, events.ProductUpdatedEvent, events.ProductChangedPayload{
		ID:         product.ID,
		Name:       product.Name,
		CategoryID: product.CategoryID,
		Price:      product.Price,
		Stock:      product.Stock,
		Actor:      auth.User(ctx),
		ChangedAt:  time.Now().UTC(),
	})

	return &UpdateProductResponse{
		Product:      product,
		Notification: "Product updated successfully",
	}, nil
}
