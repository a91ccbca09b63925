package service

import (
	"context"
	"time"

	"github.com/cyclohire/cyclohire/internal/api/dto"
	"github.com/cyclohire/cyclohire/internal/domain/billing"
	"github.com/cyclohire/cyclohire/internal/domain/contract"
)

// BillingService computes charge breakdowns for single contracts. It is what
// the counter display polls while a contract is open and what the close
// action calls to settle.
type BillingService interface {
	// GetCharge loads a contract and computes its breakdown at the request's
	// reference time (now when unset).
	GetCharge(ctx context.Context, req *dto.GetChargeRequest) (*dto.ChargeResponse, error)

	// PreviewCharge computes a breakdown for an in-memory contract without
	// touching the repository, e.g. before the contract is saved.
	PreviewCharge(ctx context.Context, c *contract.Contract, referenceTime time.Time) (*dto.ChargeResponse, error)
}

type billingService struct {
	ServiceParams
	calculator billing.Calculator
}

// NewBillingService creates a new billing service.
func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
		calculator: billing.NewCalculator(
			params.Config.Shop.Currency,
			params.Config.Shop.DefaultInsuranceFee,
		),
	}
}

func (s *billingService) GetCharge(ctx context.Context, req *dto.GetChargeRequest) (*dto.ChargeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ContractRepo.Get(ctx, req.ContractID)
	if err != nil {
		return nil, err
	}

	referenceTime := time.Now().UTC()
	if req.ReferenceTime != nil {
		referenceTime = *req.ReferenceTime
	}

	return s.compute(ctx, c, referenceTime)
}

func (s *billingService) PreviewCharge(ctx context.Context, c *contract.Contract, referenceTime time.Time) (*dto.ChargeResponse, error) {
	if referenceTime.IsZero() {
		referenceTime = time.Now().UTC()
	}
	return s.compute(ctx, c, referenceTime)
}

func (s *billingService) compute(ctx context.Context, c *contract.Contract, referenceTime time.Time) (*dto.ChargeResponse, error) {
	breakdown, err := s.calculator.Compute(c, referenceTime)
	if err != nil {
		return nil, err
	}

	if breakdown.HasWarnings() {
		s.Logger.WithContext(ctx).Warnw("charge computed with data quality warnings",
			"contract_id", c.ID,
			"warning_count", len(breakdown.Warnings))
	}

	return &dto.ChargeResponse{
		Breakdown:  breakdown,
		ComputedAt: referenceTime,
	}, nil
}
