package app

import (
	"catalogconsole/domain"
	"catalogconsole/pkg/httperror"
	"context"
)

const (
	defaultActivityPageSize = 20
	maxActivityPageSize     = 100
	maxActivityPage         = 1_000_000
)

type GetActivityHandler struct {
	repository ActivityRepository
}

// NewGetActivityHandler accepts a nil repository when no activity store is configured.
func NewGetActivityHandler(repository ActivityRepository) *GetActivityHandler {
	return &GetActivityHandler{
		repository: repository,
	}
}

type GetActivityRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

type GetActivityResponse struct {
	Activities []domain.Activity `json:"activities"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalItems int               `json:"totalItems"`
	TotalPages int               `json:"totalPages"`
}

func (h GetActivityHandler) Handle(ctx context.Context, req *GetActivityRequest) (*GetActivityResponse, error) {
	if h.repository == nil {
		return nil, httperror.ServiceUnavailable(
			"activity.unavailable",
			"Activity log is not configured",
			nil,
		)
	}

	page := min(max(req.Page, 1), maxActivityPage)
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultActivityPageSize
	}
	pageSize = min(pageSize, maxActivityPageSize)

	offset := (page - 1) * pageSize

	activities, err := h.repository.GetActivities(ctx, pageSize, offset)
	if err != nil {
		return nil, httperror.InternalServerError(
			"activity.index.failed",
			"Failed to load activity",
			nil,
		)
	}

	totalItems, err := h.repository.CountActivities(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"activity.count.failed",
			"Failed to count activity",
			nil,
		)
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	return &GetActivityResponse{
		Activities: activities,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}
