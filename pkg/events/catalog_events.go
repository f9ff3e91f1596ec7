package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CatalogExchange = "catalog.console"
)

const (
	CategoryCreatedEvent = "category.created"
	CategoryDeletedEvent = "category.deleted"
	ProductCreatedEvent  = "product.created"
	ProductUpdatedEvent  = "product.updated"
	ProductDeletedEvent  = "product.deleted"
	ProductImportedEvent = "product.imported"
)

const (
	EventVersionV1 = "v1"
)

type CategoryCreatedPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"createdAt"`
}

type CategoryDeletedPayload struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	DeletedAt time.Time `json:"deletedAt"`
}

// ProductChangedPayload is shared by product.created and product.updated.
// ID is empty for product.created because the backend's create answer is not read.
type ProductChangedPayload struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Actor      string          `json:"actor"`
	ChangedAt  time.Time       `json:"changedAt"`
}

type ProductDeletedPayload struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	DeletedAt time.Time `json:"deletedAt"`
}

type ProductImportedPayload struct {
	Imported   int       `json:"imported"`
	Failed     int       `json:"failed"`
	Actor      string    `json:"actor"`
	ImportedAt time.Time `json:"importedAt"`
}
