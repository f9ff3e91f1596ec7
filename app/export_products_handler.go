package app

import (
	"catalogconsole/pkg/httperror"
	"context"
	"fmt"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

type ExportProductsHandler struct {
	gateway CatalogGateway
	archive Archive
}

// NewExportProductsHandler builds the CSV export. archive may be nil, in which
// case exports are not kept.
func NewExportProductsHandler(gateway CatalogGateway, archive Archive) *ExportProductsHandler {
	return &ExportProductsHandler{
		gateway: gateway,
		archive: archive,
	}
}

type ExportProductsRequest struct {
	CategoryID string `query:"category_id"`
}

type ExportProductsResponse struct {
	Filename   string
	Content    []byte
	ArchiveKey string
}

func (h ExportProductsHandler) Handle(ctx context.Context, req *ExportProductsRequest) (*ExportProductsResponse, error) {
	products, err := h.gateway.ListProducts(ctx, req.CategoryID)
	if err != nil {
		return nil, upstreamFailure(
			"product.export.failed",
			"Failed to export products",
			err,
		)
	}

	content, err := gocsv.MarshalBytes(&products)
	if err != nil {
		return nil, httperror.InternalServerError(
			"product.export.encode_failed",
			"Failed to export products",
			err.Error(),
		)
	}

	filename := fmt.Sprintf("products-%s.csv", time.Now().UTC().Format("20060102-150405"))
	res := &ExportProductsResponse{
		Filename: filename,
		Content:  content,
	}

	if h.archive != nil {
		key := "exports/" + filename
		if err := h.archive.Upload(key, content); err != nil {
			zap.L().Error("Failed to archive product export",
				zap.String("key", key),
				zap.Error(err),
			)
		} else {
			res.ArchiveKey = key
		}
	}

	return res, nil
}
