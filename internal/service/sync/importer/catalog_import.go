// Package importer loads catalog inventory from CSV, the format the shop
// keeps its purchase spreadsheet in.
package importer

import (
	"context"
	"fmt"

	"github.com/cyclohire/cyclohire/internal/domain/catalog"
	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/cyclohire/cyclohire/internal/logger"
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// CatalogItemCSV represents a row in the catalog import file
type CatalogItemCSV struct {
	Name          string          `csv:"name"`
	Kind          string          `csv:"kind"`
	BikeType      string          `csv:"bike_type"`
	HourlyRate    decimal.Decimal `csv:"hourly_rate"`
	DailyRate     decimal.Decimal `csv:"daily_rate"`
	PurchasePrice decimal.Decimal `csv:"purchase_price"`
	Barcode       string          `csv:"barcode"`
}

// ImportSummary contains statistics about the import run
type ImportSummary struct {
	TotalRows    int
	ItemsCreated int
	ItemsSkipped int
	Errors       []string
}

// CatalogImporter creates catalog items from CSV rows. Bad rows are skipped
// and reported in the summary; a single typo must not abort a whole sheet.
type CatalogImporter struct {
	repo   catalog.Repository
	logger *logger.Logger
}

func NewCatalogImporter(repo catalog.Repository, log *logger.Logger) *CatalogImporter {
	return &CatalogImporter{
		repo:   repo,
		logger: log,
	}
}

// ImportFromBytes parses a catalog CSV and creates an item per valid row.
func (i *CatalogImporter) ImportFromBytes(ctx context.Context, data []byte) (*ImportSummary, error) {
	var rows []*CatalogItemCSV
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to parse catalog CSV").
			Mark(ierr.ErrValidation)
	}

	summary := &ImportSummary{TotalRows: len(rows)}
	for idx, row := range rows {
		if err := i.importRow(ctx, row); err != nil {
			summary.ItemsSkipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d (%s): %v", idx+1, row.Name, err))
			i.logger.WithContext(ctx).Warnw("skipping catalog import row",
				"row", idx+1,
				"name", row.Name,
				"error", err)
			continue
		}
		summary.ItemsCreated++
	}

	i.logger.WithContext(ctx).Infow("completed catalog import",
		"total_rows", summary.TotalRows,
		"created", summary.ItemsCreated,
		"skipped", summary.ItemsSkipped)
	return summary, nil
}

func (i *CatalogImporter) importRow(ctx context.Context, row *CatalogItemCSV) error {
	item := catalog.New(ctx, row.Name, types.ItemKind(row.Kind))
	item.BikeType = types.BikeType(row.BikeType)
	item.HourlyRate = row.HourlyRate
	item.DailyRate = row.DailyRate
	item.PurchasePrice = row.PurchasePrice
	item.Barcode = row.Barcode

	if item.Kind == types.ItemKindBike {
		if err := item.BikeType.Validate(); err != nil {
			return err
		}
	}
	if err := item.Validate(); err != nil {
		return err
	}

	return i.repo.Create(ctx, item)
}
