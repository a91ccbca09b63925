package service

import (
	"context"
	"testing"
	"time"

	"github.com/cyclohire/cyclohire/internal/api/dto"
	"github.com/cyclohire/cyclohire/internal/config"
	"github.com/cyclohire/cyclohire/internal/domain/contract"
	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/cyclohire/cyclohire/internal/logger"
	"github.com/cyclohire/cyclohire/internal/testutil"
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BillingServiceSuite struct {
	suite.Suite
	ctx          context.Context
	contractRepo *testutil.InMemoryContractStore
	billing      BillingService
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.contractRepo = testutil.NewInMemoryContractStore()

	s.billing = NewBillingService(ServiceParams{
		Logger:       logger.GetLogger(),
		Config:       config.GetDefaultConfig(),
		ContractRepo: s.contractRepo,
		CatalogRepo:  testutil.NewInMemoryCatalogStore(),
	})
}

func (s *BillingServiceSuite) TestGetCharge() {
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	c := &contract.Contract{
		ID:         "c-1",
		CustomerID: "cust-1",
		Items: []contract.RentalItem{{
			ID:            "i-1",
			CatalogItemID: "bike-1",
			Kind:          types.ItemKindBike,
			HourlyRate:    decimal.NewFromInt(5),
			DailyRate:     decimal.NewFromInt(20),
		}},
		StartAt:   start,
		Status:    types.ContractStatusInUse,
		BaseModel: types.GetDefaultBaseModel(s.ctx),
	}
	s.NoError(s.contractRepo.Create(s.ctx, c))

	// Open contract bills to the explicit reference time.
	ref := start.Add(3 * time.Hour)
	resp, err := s.billing.GetCharge(s.ctx, &dto.GetChargeRequest{
		ContractID:    "c-1",
		ReferenceTime: lo.ToPtr(ref),
	})
	s.NoError(err)
	s.True(resp.Breakdown.Total.Equal(decimal.NewFromInt(15)))
	s.Equal(ref, resp.ComputedAt)

	// Later reference time, larger charge: live displays just poll again.
	resp, err = s.billing.GetCharge(s.ctx, &dto.GetChargeRequest{
		ContractID:    "c-1",
		ReferenceTime: lo.ToPtr(start.Add(6 * time.Hour)),
	})
	s.NoError(err)
	s.True(resp.Breakdown.Total.Equal(decimal.NewFromInt(20)))
}

func (s *BillingServiceSuite) TestGetCharge_NotFound() {
	resp, err := s.billing.GetCharge(s.ctx, &dto.GetChargeRequest{ContractID: "missing"})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *BillingServiceSuite) TestGetCharge_RequiresContractID() {
	resp, err := s.billing.GetCharge(s.ctx, &dto.GetChargeRequest{})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsValidation(err))
}

func (s *BillingServiceSuite) TestPreviewCharge() {
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	c := &contract.Contract{
		ID:         "draft",
		CustomerID: "cust-1",
		Items: []contract.RentalItem{{
			ID:            "i-1",
			CatalogItemID: "bike-1",
			Kind:          types.ItemKindBike,
			HourlyRate:    decimal.NewFromInt(5),
			DailyRate:     decimal.NewFromInt(20),
			Insured:       true,
		}},
		StartAt: start,
		Status:  types.ContractStatusReserved,
	}

	// Never persisted: preview works on the in-memory contract.
	resp, err := s.billing.PreviewCharge(s.ctx, c, start.Add(2*time.Hour))
	s.NoError(err)
	s.True(resp.Breakdown.RentalRevenue.Equal(decimal.NewFromInt(10)))
	s.True(resp.Breakdown.InsuranceRevenue.Equal(decimal.NewFromInt(5)))
}
