package domain

import "github.com/shopspring/decimal"

type Summary struct {
	ProductCount   int             `json:"productCount"`
	CategoryCount  int             `json:"categoryCount"`
	TotalStock     int             `json:"totalStock"`
	LowStockCount  int             `json:"lowStockCount"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
}

// Summarize computes the dashboard figures. A product is low on stock when its
// quantity is below lowStockThreshold.
func Summarize(products []Product, categories []Category, lowStockThreshold int) Summary {
	summary := Summary{
		ProductCount:   len(products),
		CategoryCount:  len(categories),
		InventoryValue: decimal.Zero,
	}

	for _, p := range products {
		summary.TotalStock += p.Stock
		summary.InventoryValue = summary.InventoryValue.Add(p.Value())
		if p.Stock < lowStockThreshold {
			summary.LowStockCount++
		}
	}

	return summary
}
