package dto

import (
	"time"

	"github.com/cyclohire/cyclohire/internal/domain/billing"
	"github.com/cyclohire/cyclohire/internal/validator"
)

// GetChargeRequest asks for the current charge breakdown of one contract.
// ReferenceTime defaults to now; live displays poll with it unset, historical
// re-billing passes an explicit time.
type GetChargeRequest struct {
	ContractID    string     `json:"contract_id" validate:"required"`
	ReferenceTime *time.Time `json:"reference_time,omitempty"`
}

func (r *GetChargeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ChargeResponse wraps a computed breakdown.
type ChargeResponse struct {
	Breakdown *billing.ChargeBreakdown `json:"breakdown"`

	// ComputedAt is the reference time the breakdown was computed against
	ComputedAt time.Time `json:"computed_at"`
}
