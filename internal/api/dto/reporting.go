package dto

import (
	"time"

	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/cyclohire/cyclohire/internal/validator"
	"github.com/shopspring/decimal"
)

// RevenueReportRequest selects the contracts a report run covers. The time
// range filters on contract start; statuses and customer are optional.
type RevenueReportRequest struct {
	StartTime  *time.Time             `json:"start_time,omitempty"`
	EndTime    *time.Time             `json:"end_time,omitempty"`
	Statuses   []types.ContractStatus `json:"statuses,omitempty"`
	CustomerID string                 `json:"customer_id,omitempty"`

	// ReferenceTime is the "now" open contracts bill to; defaults to the
	// wall clock at computation
	ReferenceTime *time.Time `json:"reference_time,omitempty"`
}

func (r *RevenueReportRequest) Validate() error {
	if r.StartTime != nil && r.EndTime != nil && r.EndTime.Before(*r.StartTime) {
		return ierr.NewError("end_time cannot be before start_time").
			WithHint("Invalid report time range").
			Mark(ierr.ErrValidation)
	}
	for _, status := range r.Statuses {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ExcludedContract records a contract a report run skipped because its
// charge could not be computed. Report runs never abort on bad records.
type ExcludedContract struct {
	ContractID string              `json:"contract_id"`
	Error      *ierr.ErrorResponse `json:"error"`
}

// DailyRevenueRow is one calendar day's revenue in shop-local time.
type DailyRevenueRow struct {
	Date             string          `json:"date"` // YYYY-MM-DD, shop timezone
	RentalRevenue    decimal.Decimal `json:"rental_revenue"`
	InsuranceRevenue decimal.Decimal `json:"insurance_revenue"`
	Total            decimal.Decimal `json:"total"`
	ContractCount    int             `json:"contract_count"`
}

// DailyRevenueResponse is the by-day report: rows sorted by date plus the
// contracts the run had to skip.
type DailyRevenueResponse struct {
	Rows     []DailyRevenueRow  `json:"rows"`
	Currency string             `json:"currency"`
	Excluded []ExcludedContract `json:"excluded,omitempty"`
}

// TypeRevenueRow is rental revenue attributed to one bike type. Attribution
// is proportional to each line's actual charge, so type rows sum back to the
// contract totals exactly.
type TypeRevenueRow struct {
	BikeType      types.BikeType  `json:"bike_type"`
	Count         int             `json:"count"`
	RentalRevenue decimal.Decimal `json:"rental_revenue"`
	ElapsedHours  int64           `json:"elapsed_hours"`
}

// TypeRevenueResponse is the by-type report.
type TypeRevenueResponse struct {
	Rows     []TypeRevenueRow   `json:"rows"`
	Currency string             `json:"currency"`
	Excluded []ExcludedContract `json:"excluded,omitempty"`
}

// BikeRevenueRow tracks one physical bike's cumulative revenue against its
// purchase price.
type BikeRevenueRow struct {
	CatalogItemID        string          `json:"catalog_item_id"`
	Name                 string          `json:"name"`
	BikeType             types.BikeType  `json:"bike_type"`
	Rentals              int             `json:"rentals"`
	Revenue              decimal.Decimal `json:"revenue"`
	Hours                int64           `json:"hours"`
	PurchasePrice        decimal.Decimal `json:"purchase_price"`
	RemainingToBreakEven decimal.Decimal `json:"remaining_to_break_even"`
	IsRepaid             bool            `json:"is_repaid"`
}

// BikeRevenueResponse is the per-bike payback report.
type BikeRevenueResponse struct {
	Rows     []BikeRevenueRow   `json:"rows"`
	Currency string             `json:"currency"`
	Excluded []ExcludedContract `json:"excluded,omitempty"`
}

// MonthlyRevenueRow is one month's totals. The monthly report always has
// exactly twelve rows, zero-filled, for stable spreadsheet layout.
type MonthlyRevenueRow struct {
	Month            int             `json:"month"` // 1..12
	Label            string          `json:"label"` // "Jan" .. "Dec"
	RentalRevenue    decimal.Decimal `json:"rental_revenue"`
	InsuranceRevenue decimal.Decimal `json:"insurance_revenue"`
	Total            decimal.Decimal `json:"total"`
	ContractCount    int             `json:"contract_count"`
}

// MonthlyTotalsRequest selects the year for the monthly report.
type MonthlyTotalsRequest struct {
	Year int `json:"year" validate:"required,min=2000,max=2200"`

	ReferenceTime *time.Time `json:"reference_time,omitempty"`
}

func (r *MonthlyTotalsRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// MonthlyTotalsResponse is the twelve-row monthly report.
type MonthlyTotalsResponse struct {
	Year     int                 `json:"year"`
	Rows     []MonthlyRevenueRow `json:"rows"`
	Currency string              `json:"currency"`
	Excluded []ExcludedContract  `json:"excluded,omitempty"`
}
