package app

import (
	"catalogconsole/pkg/auth"
	"catalogconsole/pkg/events"
	"catalogconsole/pkg/httperror"
	"context"
	"strings"
	"time"
)

type DeleteProductHandler struct {
	gateway        CatalogGateway
	eventPublisher events.Publisher
}

func NewDeleteProductHandler(gateway CatalogGateway, eventPublisher events.Publisher) *DeleteProductHandler {
	return &DeleteProductHandler{
		gateway:        gateway,
		eventPublisher: eventPublisher,
	}
}

type DeleteProductRequest struct {
	ID string `params:"id"`
}

type DeleteProductResponse struct {
	ID           string `json:"id"`
	Notification string `json:"notification"`
}

func (h DeleteProductHandler) Handle(ctx context.Context, req *DeleteProductRequest) (*DeleteProductResponse, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, httperror.BadRequest(
			"product.destroy.invalid",
			"Failed to delete product",
			nil,
		)
	}

	if err := h.gateway.DeleteProduct(ctx, id); err != nil {
		return nil, upstreamFailure(
			"product.destroy.failed",
			"Failed to delete product",
			err,
		)
	}

	publishEvent(ctx, h.eventPublisher, events.ProductDeletedEvent, events.ProductDeletedPayload{
		ID:        id,
		Actor:     auth.User(ctx),
		DeletedAt: time.Now().UTC(),
	})

	return &DeleteProductResponse{
		ID:           id,
		Notification: "Product deleted successfully",
	}, nil
}
