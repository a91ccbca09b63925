package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cyclohire/cyclohire/internal/api/dto"
	"github.com/cyclohire/cyclohire/internal/config"
	"github.com/cyclohire/cyclohire/internal/domain/contract"
	"github.com/cyclohire/cyclohire/internal/logger"
	"github.com/cyclohire/cyclohire/internal/service"
	"github.com/cyclohire/cyclohire/internal/testutil"
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RevenueReportExporterSuite struct {
	suite.Suite
	ctx          context.Context
	contractRepo *testutil.InMemoryContractStore
	exporter     *RevenueReportExporter
}

func TestRevenueReportExporter(t *testing.T) {
	suite.Run(t, new(RevenueReportExporterSuite))
}

func (s *RevenueReportExporterSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.contractRepo = testutil.NewInMemoryContractStore()

	reporting := service.NewReportingService(service.ServiceParams{
		Logger:       logger.GetLogger(),
		Config:       config.GetDefaultConfig(),
		ContractRepo: s.contractRepo,
		CatalogRepo:  testutil.NewInMemoryCatalogStore(),
	})
	s.exporter = NewRevenueReportExporter(reporting, logger.GetLogger())
}

func (s *RevenueReportExporterSuite) seedContract(id string, startAt time.Time, elapsed time.Duration) {
	c := &contract.Contract{
		ID:         id,
		CustomerID: "cust-1",
		Items: []contract.RentalItem{{
			ID:            "i-" + id,
			CatalogItemID: "bike-1",
			Kind:          types.ItemKindBike,
			HourlyRate:    decimal.NewFromInt(5),
			DailyRate:     decimal.NewFromInt(20),
		}},
		StartAt:   startAt,
		EndAt:     lo.ToPtr(startAt.Add(elapsed)),
		Status:    types.ContractStatusClosed,
		BaseModel: types.GetDefaultBaseModel(s.ctx),
	}
	s.NoError(s.contractRepo.Create(s.ctx, c))
}

func (s *RevenueReportExporterSuite) TestExportDailyRevenue() {
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	s.seedContract("c-1", start, 3*time.Hour)
	s.seedContract("c-2", start.AddDate(0, 0, 1), 6*time.Hour)

	csvBytes, excluded, err := s.exporter.ExportDailyRevenue(s.ctx, &dto.RevenueReportRequest{})
	s.NoError(err)
	s.Zero(excluded)

	lines := strings.Split(strings.TrimSpace(string(csvBytes)), "\n")
	require.Len(s.T(), lines, 3) // header + two days
	s.Equal("date,rental_revenue,insurance_revenue,total,contract_count", lines[0])
	s.Contains(lines[1], "2024-07-01")
	s.Contains(lines[1], "15")
	s.Contains(lines[2], "2024-07-02")
	s.Contains(lines[2], "20")
}

func (s *RevenueReportExporterSuite) TestExportDailyRevenue_CountsExcluded() {
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	s.seedContract("c-good", start, 3*time.Hour)

	bad := &contract.Contract{
		ID:         "c-bad",
		CustomerID: "cust-1",
		StartAt:    start,
		EndAt:      lo.ToPtr(start.Add(-time.Hour)),
		Status:     types.ContractStatusClosed,
		BaseModel:  types.GetDefaultBaseModel(s.ctx),
	}
	s.NoError(s.contractRepo.Create(s.ctx, bad))

	// A bad record reduces the rows and raises the excluded count; the
	// export itself still succeeds.
	csvBytes, excluded, err := s.exporter.ExportDailyRevenue(s.ctx, &dto.RevenueReportRequest{})
	s.NoError(err)
	s.Equal(1, excluded)
	s.NotEmpty(csvBytes)
}

func (s *RevenueReportExporterSuite) TestExportMonthlyTotals_AlwaysTwelveRows() {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	s.seedContract("c-1", start, 3*time.Hour)

	csvBytes, _, err := s.exporter.ExportMonthlyTotals(s.ctx, &dto.MonthlyTotalsRequest{Year: 2024})
	s.NoError(err)

	lines := strings.Split(strings.TrimSpace(string(csvBytes)), "\n")
	s.Len(lines, 13) // header + twelve months, zero-filled
	s.Contains(lines[3], "Mar")
}

func (s *RevenueReportExporterSuite) TestExportBikePayback() {
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	s.seedContract("c-1", start, 6*time.Hour)

	csvBytes, _, err := s.exporter.ExportBikePayback(s.ctx, &dto.RevenueReportRequest{})
	s.NoError(err)

	lines := strings.Split(strings.TrimSpace(string(csvBytes)), "\n")
	require.Len(s.T(), lines, 2)
	s.Contains(lines[0], "remaining_to_break_even")
	s.Contains(lines[1], "bike-1")
}
