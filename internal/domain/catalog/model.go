/*
Package catalog provides the domain model for the shop's bike and accessory
inventory: the rates each item rents at, its commercial type, and the
purchase price used for payback reporting.
*/
package catalog

import (
	"context"

	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/shopspring/decimal"
)

// Item is a physical bike or accessory available for rental.
type Item struct {
	// ID uniquely identifies the physical item
	ID string `json:"id"`

	// Name is the display name shown on contracts and reports
	Name string `json:"name"`

	// Kind distinguishes bikes from accessories
	Kind types.ItemKind `json:"kind"`

	// BikeType is the commercial category used for per-type reporting
	BikeType types.BikeType `json:"bike_type"`

	// HourlyRate and DailyRate are the rental rates in shop currency
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	DailyRate  decimal.Decimal `json:"daily_rate"`

	// PurchasePrice is what the shop paid for the item, used to report
	// payback status
	PurchasePrice decimal.Decimal `json:"purchase_price"`

	// Barcode is the physical label scanned at the counter
	Barcode string `json:"barcode,omitempty"`

	types.BaseModel
}

// New creates a catalog item stamped with base model fields from context.
func New(ctx context.Context, name string, kind types.ItemKind) *Item {
	return &Item{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CATALOG_ITEM),
		Name:      name,
		Kind:      kind,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// Validate checks the catalog item fields.
func (i *Item) Validate() error {
	if i.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Catalog item name is required").
			Mark(ierr.ErrValidation)
	}
	if err := i.Kind.Validate(); err != nil {
		return err
	}
	if i.HourlyRate.IsNegative() || i.DailyRate.IsNegative() {
		return ierr.NewError("rates cannot be negative").
			WithHint("Hourly and daily rates must be zero or positive").
			WithReportableDetails(map[string]any{
				"id":          i.ID,
				"hourly_rate": i.HourlyRate.String(),
				"daily_rate":  i.DailyRate.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if i.PurchasePrice.IsNegative() {
		return ierr.NewError("purchase price cannot be negative").
			WithHint("Purchase price must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Snapshot is a read-only view of the catalog keyed by item ID. Aggregations
// receive a snapshot so a report run never observes catalog mutations.
type Snapshot map[string]*Item

// Get returns the catalog entry for an item ID, or nil when unknown.
func (s Snapshot) Get(itemID string) *Item {
	if s == nil {
		return nil
	}
	return s[itemID]
}

// TypeOf returns the bike type for an item ID, falling back to the accessory
// bucket for unknown items so report rows never silently disappear.
func (s Snapshot) TypeOf(itemID string) types.BikeType {
	if item := s.Get(itemID); item != nil && item.BikeType != "" {
		return item.BikeType
	}
	return types.BikeTypeAccessory
}
