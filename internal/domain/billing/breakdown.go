/*
Package billing computes what a customer owes on a rental contract. It is the
single source of truth for charge math: displays, reports, and exports all
consume its breakdowns instead of re-deriving prices.
*/
package billing

import (
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/shopspring/decimal"
)

// ItemCharge is the audited charge for one contract line.
type ItemCharge struct {
	// ItemID is the contract line ID, CatalogItemID the physical item
	ItemID        string `json:"item_id"`
	CatalogItemID string `json:"catalog_item_id"`

	Kind types.ItemKind `json:"kind"`

	// RateUsed records which rate won the hourly/daily comparison
	RateUsed types.RateKind `json:"rate_used"`

	// ElapsedHours and ElapsedDays are this line's own billing units,
	// shortened when the item was returned early
	ElapsedHours int64 `json:"elapsed_hours"`
	ElapsedDays  int64 `json:"elapsed_days"`

	// Amount is this line's share of the contract's rental revenue, after
	// any final-amount rescale. Line amounts always sum to RentalRevenue
	// exactly.
	Amount decimal.Decimal `json:"amount"`
}

// DataQualityWarning flags a suspicious field that was defaulted rather than
// rejected, so historical contracts with incomplete records still compute.
type DataQualityWarning struct {
	ContractID string `json:"contract_id"`
	ItemID     string `json:"item_id,omitempty"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

// ChargeBreakdown is the full charge computation for one contract at one
// reference time. It is derived, never persisted: an open contract's
// breakdown changes as time passes.
type ChargeBreakdown struct {
	ContractID string `json:"contract_id"`
	Currency   string `json:"currency"`

	// ElapsedHours and ElapsedDays are the contract-level billing units
	ElapsedHours int64 `json:"elapsed_hours"`
	ElapsedDays  int64 `json:"elapsed_days"`

	// RentalRevenue and InsuranceRevenue are kept separate; Total is their
	// sum and equals the locked final amount when one is set
	RentalRevenue    decimal.Decimal `json:"rental_revenue"`
	InsuranceRevenue decimal.Decimal `json:"insurance_revenue"`
	Total            decimal.Decimal `json:"total"`

	Items []ItemCharge `json:"items"`

	Warnings []DataQualityWarning `json:"warnings,omitempty"`
}

// HasWarnings reports whether any field was defaulted during computation.
func (b *ChargeBreakdown) HasWarnings() bool {
	return len(b.Warnings) > 0
}
