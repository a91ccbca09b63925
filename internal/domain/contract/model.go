/*
Package contract provides the domain model for rental contracts: the customer,
the rented items with their rates and insurance flags, the rental window, and
any administrator-locked final amount.
*/
package contract

import (
	"context"
	"time"

	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/shopspring/decimal"
)

// RentalItem is a single line on a contract. Rates are copied from the
// catalog at contract creation so later catalog edits never change what an
// open contract bills.
type RentalItem struct {
	// ID uniquely identifies this contract line
	ID string `json:"id"`

	// CatalogItemID references the physical bike or accessory
	CatalogItemID string `json:"catalog_item_id"`

	// Kind distinguishes bikes from accessories
	Kind types.ItemKind `json:"kind"`

	// HourlyRate and DailyRate are the rates this line bills at
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	DailyRate  decimal.Decimal `json:"daily_rate"`

	// Insured marks the line as carrying the flat insurance fee
	Insured bool `json:"insured"`

	// InsuranceFee overrides the default flat fee when set
	InsuranceFee *decimal.Decimal `json:"insurance_fee,omitempty"`

	// ReturnedAt is set when the item is handed back before the contract
	// closes; billing for this line stops at that point
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// Contract is a rental agreement with one customer over one or more items.
type Contract struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`

	Items []RentalItem `json:"items"`

	// StartAt is when billing starts. EndAt is set when the contract closes;
	// while nil the contract is still running and bills to the reference time.
	StartAt time.Time  `json:"start_at"`
	EndAt   *time.Time `json:"end_at,omitempty"`

	Status types.ContractStatus `json:"status"`

	// IsReservation forces daily-rate billing regardless of duration
	IsReservation bool `json:"is_reservation"`

	// InsuranceFee is a contract-level flat insurance fee, distinct from
	// per-item insurance
	InsuranceFee *decimal.Decimal `json:"insurance_fee,omitempty"`

	// FinalAmount is an administrator-locked total overriding the computed
	// total. OverrideReason records why it was set.
	FinalAmount      *decimal.Decimal `json:"final_amount,omitempty"`
	CustomFinalPrice bool             `json:"custom_final_price"`
	OverrideReason   string           `json:"override_reason,omitempty"`

	Metadata types.Metadata `json:"metadata,omitempty"`

	types.BaseModel
}

// New creates a contract for a customer stamped with base model fields from
// context.
func New(ctx context.Context, customerID string, startAt time.Time) *Contract {
	return &Contract{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTRACT),
		CustomerID: customerID,
		StartAt:    startAt,
		Status:     types.ContractStatusReserved,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

// Validate checks the contract fields.
func (c *Contract) Validate() error {
	if c.CustomerID == "" {
		return ierr.NewError("customer_id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}
	if c.StartAt.IsZero() {
		return ierr.NewError("start_at is required").
			WithHint("Contract start time is required").
			Mark(ierr.ErrValidation)
	}
	if err := c.Status.Validate(); err != nil {
		return err
	}
	if c.EndAt != nil && c.EndAt.Before(c.StartAt) {
		return ierr.NewError("contract end time precedes start time").
			WithHint("Contract end time cannot be before its start time").
			WithReportableDetails(map[string]any{
				"contract_id": c.ID,
				"start_at":    c.StartAt,
				"end_at":      *c.EndAt,
			}).
			Mark(ierr.ErrValidation)
	}
	if c.FinalAmount != nil && c.FinalAmount.IsNegative() {
		return ierr.NewError("final amount cannot be negative").
			WithHint("Locked final amount must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	for i := range c.Items {
		if err := c.Items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single contract line.
func (i *RentalItem) Validate() error {
	if i.CatalogItemID == "" {
		return ierr.NewError("catalog_item_id is required").
			WithHint("Rental item must reference a catalog item").
			Mark(ierr.ErrValidation)
	}
	return i.Kind.Validate()
}

// IsOpen reports whether the contract is still accruing charges.
func (c *Contract) IsOpen() bool {
	return c.EndAt == nil &&
		(c.Status == types.ContractStatusReserved || c.Status == types.ContractStatusInUse)
}

// HasFinalAmount reports whether an administrator locked the total.
func (c *Contract) HasFinalAmount() bool {
	return c.FinalAmount != nil && c.FinalAmount.IsPositive()
}
