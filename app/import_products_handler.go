package app

import (
	"catalogconsole/pkg/auth"
	"catalogconsole/pkg/events"
	"catalogconsole/pkg/httperror"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

type ImportProductsHandler struct {
	gateway        CatalogGateway
	eventPublisher events.Publisher
	concurrency    int
}

func NewImportProductsHandler(gateway CatalogGateway, eventPublisher events.Publisher, concurrency int) *ImportProductsHandler {
	return &ImportProductsHandler{
		gateway:        gateway,
		eventPublisher: eventPublisher,
		concurrency:    max(concurrency, 1),
	}
}

type ImportProductsRequest struct {
	Content []byte
}

type ImportFailure struct {
	Row    int    `json:"row"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type ImportProductsResponse struct {
	Imported     int             `json:"imported"`
	Failures     []ImportFailure `json:"failures"`
	Notification string          `json:"notification"`
}

// importRow keeps every column as text so one malformed row does not reject the file.
type importRow struct {
	Name       string `csv:"name"`
	CategoryID string `csv:"category_id"`
	Price      string `csv:"price"`
	Stock      string `csv:"stock"`
}

type importResult struct {
	row     int
	name    string
	failure string
}

// Handle creates one product per CSV row. Rows are sent with bounded
// concurrency; failures are reported per row, in file order.
func (h ImportProductsHandler) Handle(ctx context.Context, req *ImportProductsRequest) (*ImportProductsResponse, error) {
	var rows []*importRow
	if err := gocsv.UnmarshalBytes(req.Content, &rows); err != nil {
		return nil, httperror.BadRequest(
			"product.import.invalid_csv",
			"Invalid CSV file",
			err.Error(),
		)
	}
	if len(rows) == 0 {
		return nil, httperror.BadRequest(
			"product.import.empty",
			"Invalid CSV file",
			"the file contains no product rows",
		)
	}

	p := pool.NewWithResults[importResult]().WithMaxGoroutines(h.concurrency)
	for i, row := range rows {
		// header is line 1
		line := i + 2
		p.Go(func() importResult {
			return h.importRow(ctx, line, row)
		})
	}
	results := p.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].row < results[j].row
	})

	res := &ImportProductsResponse{
		Failures: []ImportFailure{},
	}
	for _, r := range results {
		if r.failure == "" {
			res.Imported++
			continue
		}
		res.Failures = append(res.Failures, ImportFailure{Row: r.row, Name: r.name, Reason: r.failure})
	}

	res.Notification = fmt.Sprintf("Imported %d products", res.Imported)
	if len(res.Failures) > 0 {
		res.Notification += fmt.Sprintf(", %d failed", len(res.Failures))
	}

	if res.Imported > 0 {
		publishEvent(ctx, h.eventPublisher, events.ProductImportedEvent, events.ProductImportedPayload{
			Imported:   res.Imported,
			Failed:     len(res.Failures),
			Actor:      auth.User(ctx),
			ImportedAt: time.Now().UTC(),
		})
	}

	return res, nil
}

func (h ImportProductsHandler) importRow(ctx context.Context, line int, row *importRow) importResult {
	result := importResult{row: line, name: strings.TrimSpace(row.Name)}

	input, err := row.input()
	if err != nil {
		result.failure = err.Error()
		return result
	}

	if err := h.gateway.CreateProduct(ctx, input.product("")); err != nil {
		result.failure = "Failed to add product: " + upstreamMessage(err)
	}
	return result
}

func (r importRow) input() (ProductInput, error) {
	in := ProductInput{
		Name:       r.Name,
		CategoryID: r.CategoryID,
	}
	in.normalize()

	if in.Name == "" {
		return in, fmt.Errorf("name is required")
	}
	if in.CategoryID == "" {
		return in, fmt.Errorf("category_id is required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return in, fmt.Errorf("price %q is not a number", r.Price)
	}
	in.Price = price

	stock, err := strconv.Atoi(strings.TrimSpace(r.Stock))
	if err != nil {
		return in, fmt.Errorf("stock %q is not a whole number", r.Stock)
	}
	in.Stock = stock

	return in, nil
}
