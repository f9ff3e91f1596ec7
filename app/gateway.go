package app

import (
	"catalogconsole/domain"
	"context"
)

// CatalogGateway is the catalog REST backend as seen by the console. The bearer
// token travels in ctx (see pkg/auth).
type CatalogGateway interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type ActivityRepository interface {
	Close() error
	SaveActivity(ctx context.Context, activity domain.Activity) error
	GetActivities(ctx context.Context, limit, offset int) ([]domain.Activity, error)
	CountActivities(ctx context.Context) (int, error)
}

// Archive stores exported files.
type Archive interface {
	Upload(key string, data []byte) error
}
