package app

import (
	"catalogconsole/domain"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductInput is the editable part of a product as submitted by the console.
type ProductInput struct {
	Name       string          `json:"nama" validate:"required"`
	CategoryID string          `json:"category_id" validate:"required"`
	Price      decimal.Decimal `json:"harga"`
	Stock      int             `json:"jml_stok"`
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
}

func (in ProductInput) product(id string) domain.Product {
	return domain.Product{
		ID:         id,
		Name:       in.Name,
		CategoryID: in.CategoryID,
		Price:      in.Price,
		Stock:      in.Stock,
	}
}
