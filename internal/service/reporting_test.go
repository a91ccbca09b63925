package service

import (
	"context"
	"testing"
	"time"

	"github.com/cyclohire/cyclohire/internal/api/dto"
	"github.com/cyclohire/cyclohire/internal/config"
	"github.com/cyclohire/cyclohire/internal/domain/catalog"
	"github.com/cyclohire/cyclohire/internal/domain/contract"
	"github.com/cyclohire/cyclohire/internal/logger"
	"github.com/cyclohire/cyclohire/internal/testutil"
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceSuite struct {
	suite.Suite
	ctx          context.Context
	cfg          *config.Configuration
	contractRepo *testutil.InMemoryContractStore
	catalogRepo  *testutil.InMemoryCatalogStore
	reporting    ReportingService
	billing      BillingService
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceSuite))
}

func (s *ReportingServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.cfg = config.GetDefaultConfig()
	s.contractRepo = testutil.NewInMemoryContractStore()
	s.catalogRepo = testutil.NewInMemoryCatalogStore()

	params := ServiceParams{
		Logger:       logger.GetLogger(),
		Config:       s.cfg,
		ContractRepo: s.contractRepo,
		CatalogRepo:  s.catalogRepo,
	}
	s.reporting = NewReportingService(params)
	s.billing = NewBillingService(params)
}

func (s *ReportingServiceSuite) seedCatalogItem(id string, bikeType types.BikeType, purchasePrice string) {
	item := &catalog.Item{
		ID:            id,
		Name:          id,
		Kind:          types.ItemKindBike,
		BikeType:      bikeType,
		PurchasePrice: decimal.RequireFromString(purchasePrice),
		BaseModel:     types.GetDefaultBaseModel(s.ctx),
	}
	s.NoError(s.catalogRepo.Create(s.ctx, item))
}

func (s *ReportingServiceSuite) seedContract(id string, startAt time.Time, elapsed time.Duration, items ...contract.RentalItem) *contract.Contract {
	c := &contract.Contract{
		ID:         id,
		CustomerID: "cust-1",
		Items:      items,
		StartAt:    startAt,
		EndAt:      lo.ToPtr(startAt.Add(elapsed)),
		Status:     types.ContractStatusClosed,
		BaseModel:  types.GetDefaultBaseModel(s.ctx),
	}
	s.NoError(s.contractRepo.Create(s.ctx, c))
	return c
}

func rentalLine(id, catalogID string, hourly, daily string) contract.RentalItem {
	return contract.RentalItem{
		ID:            id,
		CatalogItemID: catalogID,
		Kind:          types.ItemKindBike,
		HourlyRate:    decimal.RequireFromString(hourly),
		DailyRate:     decimal.RequireFromString(daily),
	}
}

func (s *ReportingServiceSuite) TestRevenueByDay_Conservation() {
	day1 := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC)

	s.seedContract("c-1", day1, 3*time.Hour, rentalLine("i-1", "bike-1", "5", "20"))
	s.seedContract("c-2", day1, 6*time.Hour, rentalLine("i-2", "bike-2", "5", "20"))
	s.seedContract("c-3", day2, 2*time.Hour, rentalLine("i-3", "bike-1", "4", "18"))

	resp, err := s.reporting.RevenueByDay(s.ctx, &dto.RevenueReportRequest{})
	s.NoError(err)
	s.Require().Len(resp.Rows, 2)
	s.Empty(resp.Excluded)

	// Bucket totals must reproduce the sum of per-contract totals exactly.
	expected := decimal.Zero
	for _, id := range []string{"c-1", "c-2", "c-3"} {
		charge, err := s.billing.GetCharge(s.ctx, &dto.GetChargeRequest{ContractID: id})
		s.NoError(err)
		expected = expected.Add(charge.Breakdown.Total)
	}

	bucketed := decimal.Zero
	for _, row := range resp.Rows {
		bucketed = bucketed.Add(row.Total)
	}
	s.True(bucketed.Equal(expected), "bucketed %s != per-contract sum %s", bucketed, expected)

	s.Equal("2024-07-01", resp.Rows[0].Date)
	s.Equal(2, resp.Rows[0].ContractCount)
	s.Equal("2024-07-02", resp.Rows[1].Date)
	s.Equal(1, resp.Rows[1].ContractCount)
}

func (s *ReportingServiceSuite) TestRevenueByDay_ShopLocalBucketing() {
	s.cfg.Shop.Timezone = "Europe/Paris"

	// 23:30 UTC on July 1st is already July 2nd in Paris (CEST, UTC+2).
	lateEvening := time.Date(2024, 7, 1, 23, 30, 0, 0, time.UTC)
	s.seedContract("c-1", lateEvening, 2*time.Hour, rentalLine("i-1", "bike-1", "5", "20"))

	resp, err := s.reporting.RevenueByDay(s.ctx, &dto.RevenueReportRequest{})
	s.NoError(err)
	s.Require().Len(resp.Rows, 1)
	s.Equal("2024-07-02", resp.Rows[0].Date)
}

func (s *ReportingServiceSuite) TestRevenueByDay_ExcludesBadContracts() {
	day := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	s.seedContract("c-good", day, 3*time.Hour, rentalLine("i-1", "bike-1", "5", "20"))

	// End before start: computation fails, the run must not abort.
	bad := &contract.Contract{
		ID:         "c-bad",
		CustomerID: "cust-1",
		Items:      []contract.RentalItem{rentalLine("i-2", "bike-2", "5", "20")},
		StartAt:    day,
		EndAt:      lo.ToPtr(day.Add(-2 * time.Hour)),
		Status:     types.ContractStatusClosed,
		BaseModel:  types.GetDefaultBaseModel(s.ctx),
	}
	s.NoError(s.contractRepo.Create(s.ctx, bad))

	resp, err := s.reporting.RevenueByDay(s.ctx, &dto.RevenueReportRequest{})
	s.NoError(err)
	s.Require().Len(resp.Excluded, 1)
	s.Equal("c-bad", resp.Excluded[0].ContractID)
	s.Require().Len(resp.Rows, 1)
	s.Equal(1, resp.Rows[0].ContractCount)
}

func (s *ReportingServiceSuite) TestRevenueByItemType_ProportionalAttribution() {
	s.seedCatalogItem("bike-e", types.BikeTypeElectric, "1000")
	s.seedCatalogItem("bike-m", types.BikeTypeMuscular, "400")

	// Electric line charges 30 (15/h), muscular 10 (5/h) over 2 hours.
	// High daily rates keep the hourly side of the comparison winning.
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	s.seedContract("c-1", start, 2*time.Hour,
		rentalLine("i-1", "bike-e", "15", "500"),
		rentalLine("i-2", "bike-m", "5", "500"),
	)

	resp, err := s.reporting.RevenueByItemType(s.ctx, &dto.RevenueReportRequest{})
	s.NoError(err)
	s.Require().Len(resp.Rows, 2)

	byType := lo.KeyBy(resp.Rows, func(r dto.TypeRevenueRow) types.BikeType { return r.BikeType })

	// Proportional to each line's actual charge, never an even split.
	s.True(byType[types.BikeTypeElectric].RentalRevenue.Equal(decimal.NewFromInt(30)),
		"electric: got %s", byType[types.BikeTypeElectric].RentalRevenue)
	s.True(byType[types.BikeTypeMuscular].RentalRevenue.Equal(decimal.NewFromInt(10)),
		"muscular: got %s", byType[types.BikeTypeMuscular].RentalRevenue)
}

func (s *ReportingServiceSuite) TestRevenueByItemType_ConservesAfterFinalAmount() {
	s.seedCatalogItem("bike-e", types.BikeTypeElectric, "1000")
	s.seedCatalogItem("bike-m", types.BikeTypeMuscular, "400")

	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	c := &contract.Contract{
		ID:         "c-1",
		CustomerID: "cust-1",
		Items: []contract.RentalItem{
			rentalLine("i-1", "bike-e", "15", "500"),
			rentalLine("i-2", "bike-m", "5", "500"),
		},
		StartAt:     start,
		EndAt:       lo.ToPtr(start.Add(2 * time.Hour)),
		Status:      types.ContractStatusClosed,
		FinalAmount: lo.ToPtr(decimal.NewFromInt(30)),
		BaseModel:   types.GetDefaultBaseModel(s.ctx),
	}
	s.NoError(s.contractRepo.Create(s.ctx, c))

	resp, err := s.reporting.RevenueByItemType(s.ctx, &dto.RevenueReportRequest{})
	s.NoError(err)

	// Raw 30/10 rescaled to a locked 30 total: 22.50 + 7.50.
	total := decimal.Zero
	for _, row := range resp.Rows {
		total = total.Add(row.RentalRevenue)
	}
	s.True(total.Equal(decimal.NewFromInt(30)), "type buckets must sum to the locked amount, got %s", total)

	byType := lo.KeyBy(resp.Rows, func(r dto.TypeRevenueRow) types.BikeType { return r.BikeType })
	s.True(byType[types.BikeTypeElectric].RentalRevenue.Equal(decimal.RequireFromString("22.50")),
		"electric: got %s", byType[types.BikeTypeElectric].RentalRevenue)
	s.True(byType[types.BikeTypeMuscular].RentalRevenue.Equal(decimal.RequireFromString("7.50")),
		"muscular: got %s", byType[types.BikeTypeMuscular].RentalRevenue)
}

func (s *ReportingServiceSuite) TestRevenueByBike_PaybackStatus() {
	s.seedCatalogItem("bike-1", types.BikeTypeMuscular, "40")
	s.seedCatalogItem("bike-2", types.BikeTypeElectric, "1000")

	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	s.seedContract("c-1", start, 6*time.Hour, rentalLine("i-1", "bike-1", "5", "20"))
	s.seedContract("c-2", start.Add(24*time.Hour), 6*time.Hour, rentalLine("i-2", "bike-1", "5", "20"))
	s.seedContract("c-3", start, 2*time.Hour, rentalLine("i-3", "bike-2", "15", "500"))

	resp, err := s.reporting.RevenueByBike(s.ctx, &dto.RevenueReportRequest{})
	s.NoError(err)
	s.Require().Len(resp.Rows, 2)

	byID := lo.KeyBy(resp.Rows, func(r dto.BikeRevenueRow) string { return r.CatalogItemID })

	// bike-1 earned 40 against a 40 purchase price: repaid.
	bike1 := byID["bike-1"]
	s.Equal(2, bike1.Rentals)
	s.True(bike1.Revenue.Equal(decimal.NewFromInt(40)))
	s.True(bike1.IsRepaid)
	s.True(bike1.RemainingToBreakEven.IsZero())

	// bike-2 earned 30 against 1000: far from repaid.
	bike2 := byID["bike-2"]
	s.Equal(1, bike2.Rentals)
	s.True(bike2.Revenue.Equal(decimal.NewFromInt(30)))
	s.False(bike2.IsRepaid)
	s.True(bike2.RemainingToBreakEven.Equal(decimal.NewFromInt(970)))
}

func (s *ReportingServiceSuite) TestMonthlyTotals_TwelveZeroFilledRows() {
	march := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	november := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)

	s.seedContract("c-1", march, 3*time.Hour, rentalLine("i-1", "bike-1", "5", "20"))
	s.seedContract("c-2", november, 6*time.Hour, rentalLine("i-2", "bike-1", "5", "20"))

	// A contract outside the year must not leak into the report.
	s.seedContract("c-3", march.AddDate(1, 0, 0), 3*time.Hour, rentalLine("i-3", "bike-1", "5", "20"))

	resp, err := s.reporting.MonthlyTotals(s.ctx, &dto.MonthlyTotalsRequest{Year: 2024})
	s.NoError(err)
	s.Require().Len(resp.Rows, 12)

	s.Equal("Mar", resp.Rows[2].Label)
	s.Equal(1, resp.Rows[2].ContractCount)
	s.True(resp.Rows[2].Total.Equal(decimal.NewFromInt(15)))

	s.Equal(1, resp.Rows[10].ContractCount)
	s.True(resp.Rows[10].Total.Equal(decimal.NewFromInt(20)))

	for i, row := range resp.Rows {
		s.Equal(i+1, row.Month)
		if i != 2 && i != 10 {
			s.Zero(row.ContractCount)
			s.True(row.Total.IsZero(), "month %d should be zero-filled", i+1)
		}
	}
}

func (s *ReportingServiceSuite) TestMonthlyTotals_RejectsBadYear() {
	_, err := s.reporting.MonthlyTotals(s.ctx, &dto.MonthlyTotalsRequest{Year: 0})
	s.Error(err)
}

func (s *ReportingServiceSuite) TestRevenueReport_TimeRangeFilter() {
	day1 := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 7, 8, 9, 0, 0, 0, time.UTC)

	s.seedContract("c-1", day1, 3*time.Hour, rentalLine("i-1", "bike-1", "5", "20"))
	s.seedContract("c-2", day2, 3*time.Hour, rentalLine("i-2", "bike-1", "5", "20"))

	resp, err := s.reporting.RevenueByDay(s.ctx, &dto.RevenueReportRequest{
		StartTime: lo.ToPtr(day2.Add(-time.Hour)),
	})
	s.NoError(err)
	s.Require().Len(resp.Rows, 1)
	s.Equal("2024-07-08", resp.Rows[0].Date)
}
