package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	products := []Product{
		{ID: "p1", Name: "Kopi", Price: decimal.RequireFromString("12.50"), Stock: 10},
		{ID: "p2", Name: "Teh", Price: decimal.RequireFromString("4"), Stock: 2},
		{ID: "p3", Name: "Gula", Price: decimal.RequireFromString("3.25"), Stock: 0},
	}
	categories := []Category{{ID: "c1", Name: "Minuman"}}

	summary := Summarize(products, categories, 5)

	assert.Equal(t, 3, summary.ProductCount)
	assert.Equal(t, 1, summary.CategoryCount)
	assert.Equal(t, 12, summary.TotalStock)
	assert.Equal(t, 2, summary.LowStockCount)
	assert.True(t, decimal.RequireFromString("133").Equal(summary.InventoryValue), summary.InventoryValue.String())
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, nil, 5)

	assert.Zero(t, summary.ProductCount)
	assert.True(t, summary.InventoryValue.IsZero())
}
