package app

import (
	"catalogconsole/pkg/auth"
	"catalogconsole/pkg/events"
	"catalogconsole/pkg/httperror"
	"context"
	"strings"
	"time"
)

type DeleteCategoryHandler struct {
	gateway        CatalogGateway
	eventPublisher events.Publisher
}

func NewDeleteCategoryHandler(gateway CatalogGateway, eventPublisher events.Publisher) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{
		gateway:        gateway,
		eventPublisher: eventPublisher,
	}
}

type DeleteCategoryRequest struct {
	ID string `params:"id"`
}

type DeleteCategoryResponse struct {
	ID           string `json:"id"`
	Notification string `json:"notification"`
}

func (h DeleteCategoryHandler) Handle(ctx context.Context, req *DeleteCategoryRequest) (*DeleteCategoryResponse, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, httperror.BadRequest(
			"category.destroy.invalid",
			"Invalid category to delete",
			nil,
		)
	}

	if err := h.gateway.DeleteCategory(ctx, id); err != nil {
		return nil, upstreamFailure(
			"category.destroy.failed",
			"Failed to delete category",
			err,
		)
	}

	publishEvent(ctx, h.eventPublisher, events.CategoryDeletedEvent, events.CategoryDeletedPayload{
		ID:        id,
		Actor:     auth.User(ctx),
		DeletedAt: time.Now().UTC(),
	})

	return &DeleteCategoryResponse{
		ID:           id,
		Notification: "Category deleted successfully",
	}, nil
}
