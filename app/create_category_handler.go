package app

import (
	"catalogconsole/domain"
	"catalogconsole/pkg/auth"
	"catalogconsole/pkg/events"
	"context"
	"strings"
	"time"
)

type CreateCategoryHandler struct {
	gateway        CatalogGateway
	eventPublisher events.Publisher
}

type CreateCategoryRequest struct {
	Name string `json:"name" form:"name" validate:"required"`
}

type CreateCategoryResponse struct {
	Category     domain.Category `json:"category"`
	Notification string          `json:"notification"`
}

func NewCreateCategoryHandler(gateway CatalogGateway, eventPublisher events.Publisher) *CreateCategoryHandler {
	return &CreateCategoryHandler{
		gateway:        gateway,
		eventPublisher: eventPublisher,
	}
}

func (h CreateCategoryHandler) Handle(ctx context.Context, req *CreateCategoryRequest) (*CreateCategoryResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req, "category.create", "Category name cannot be empty."); err != nil {
		return nil, err
	}

	category, err := h.gateway.CreateCategory(ctx, req.Name)
	if err != nil {
		return nil, upstreamFailure(
			"category.create.failed",
			"Failed to add category: "+upstreamMessage(err),
			err,
		)
	}
	if category.Name == "" {
		category.Name = req.Name
	}

	publishEvent(ctx, h.eventPublisher, events.CategoryCreatedEvent, events.CategoryCreatedPayload{
		ID:        category.ID,
		Name:      category.Name,
		Actor:     auth.User(ctx),
		CreatedAt: time.Now().UTC(),
	})

	return &CreateCategoryResponse{
		Category:     category,
		Notification: "Category added successfully",
	}, nil
}
