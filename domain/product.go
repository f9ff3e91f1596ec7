package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Product mirrors the catalog backend's product document; field names follow
// the backend wire format.
type Product struct {
	ID         string          `json:"_id,omitempty" csv:"id"`
	Name       string          `json:"nama" csv:"name"`
	CategoryID string          `json:"category_id" csv:"category_id"`
	Price      decimal.Decimal `json:"harga" csv:"price"`
	Stock      int             `json:"jml_stok" csv:"stock"`
}

// Value is price times stock.
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// UnmarshalJSON accepts harga and jml_stok as JSON numbers or numeric strings,
// since products saved from HTML forms carry them quoted. Blank values are zero.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var wire struct {
		*plain
		Price json.RawMessage `json:"harga"`
		Stock json.RawMessage `json:"jml_stok"`
	}
	wire.plain = (*plain)(p)

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	price, err := numberText(wire.Price)
	if err != nil {
		return fmt.Errorf("harga: %w", err)
	}
	p.Price = decimal.Zero
	if price != "" {
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return fmt.Errorf("harga: %w", err)
		}
	}

	stock, err := numberText(wire.Stock)
	if err != nil {
		return fmt.Errorf("jml_stok: %w", err)
	}
	p.Stock = 0
	if stock != "" {
		if p.Stock, err = strconv.Atoi(stock); err != nil {
			d, derr := decimal.NewFromString(stock)
			if derr != nil {
				return fmt.Errorf("jml_stok: %w", err)
			}
			p.Stock = int(d.IntPart())
		}
	}

	return nil
}

// numberText returns the digits of a JSON number or quoted number, "" for null or blank.
func numberText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] != '"' {
		return string(raw), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}
