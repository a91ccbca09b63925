package service

import (
	"context"
	"sort"
	"time"

	"github.com/cyclohire/cyclohire/internal/api/dto"
	"github.com/cyclohire/cyclohire/internal/domain/billing"
	"github.com/cyclohire/cyclohire/internal/domain/contract"
	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/shopspring/decimal"
)

// ReportingService aggregates per-contract charge breakdowns into reporting
// buckets. All reports share one guarantee: bucket totals sum to the same
// amount as the underlying per-contract totals, with no double counting and
// no omission.
type ReportingService interface {
	RevenueByDay(ctx context.Context, req *dto.RevenueReportRequest) (*dto.DailyRevenueResponse, error)
	RevenueByItemType(ctx context.Context, req *dto.RevenueReportRequest) (*dto.TypeRevenueResponse, error)
	RevenueByBike(ctx context.Context, req *dto.RevenueReportRequest) (*dto.BikeRevenueResponse, error)
	MonthlyTotals(ctx context.Context, req *dto.MonthlyTotalsRequest) (*dto.MonthlyTotalsResponse, error)
}

type reportingService struct {
	ServiceParams
	calculator billing.Calculator
}

// NewReportingService creates a new reporting service.
func NewReportingService(params ServiceParams) ReportingService {
	return &reportingService{
		ServiceParams: params,
		calculator: billing.NewCalculator(
			params.Config.Shop.Currency,
			params.Config.Shop.DefaultInsuranceFee,
		),
	}
}

// computedContract pairs a contract with its breakdown for bucketing.
type computedContract struct {
	contract  *contract.Contract
	breakdown *billing.ChargeBreakdown
}

// defaultReportStatuses excludes cancelled contracts, which never billed.
var defaultReportStatuses = []types.ContractStatus{
	types.ContractStatusReserved,
	types.ContractStatusInUse,
	types.ContractStatusClosed,
}

// loadAndCompute lists the contracts the request selects and computes each
// one's breakdown. A contract whose computation fails is excluded with its
// error recorded; a report run over thousands of historical contracts must
// survive a handful of bad records.
func (s *reportingService) loadAndCompute(ctx context.Context, req *dto.RevenueReportRequest) ([]computedContract, []dto.ExcludedContract, error) {
	statuses := req.Statuses
	if len(statuses) == 0 {
		statuses = defaultReportStatuses
	}

	contracts, err := s.ContractRepo.List(ctx, &contract.Filter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		TimeRangeFilter: &types.TimeRangeFilter{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		},
		CustomerID: req.CustomerID,
		Statuses:   statuses,
	})
	if err != nil {
		return nil, nil, err
	}

	referenceTime := time.Now().UTC()
	if req.ReferenceTime != nil {
		referenceTime = *req.ReferenceTime
	}

	computed := make([]computedContract, 0, len(contracts))
	var excluded []dto.ExcludedContract

	for _, c := range contracts {
		breakdown, err := s.calculator.Compute(c, referenceTime)
		if err != nil {
			s.Logger.WithContext(ctx).Warnw("excluding contract from report",
				"contract_id", c.ID,
				"error", err)
			excluded = append(excluded, dto.ExcludedContract{
				ContractID: c.ID,
				Error:      ierr.NewErrorResponse(err),
			})
			continue
		}
		computed = append(computed, computedContract{contract: c, breakdown: breakdown})
	}

	return computed, excluded, nil
}

// RevenueByDay buckets contracts by their start date in the shop's local
// timezone. UTC bucketing would push late-evening rentals onto the next day.
func (s *reportingService) RevenueByDay(ctx context.Context, req *dto.RevenueReportRequest) (*dto.DailyRevenueResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	loc, err := types.LoadShopLocation(s.Config.Shop.Timezone)
	if err != nil {
		return nil, err
	}

	computed, excluded, err := s.loadAndCompute(ctx, req)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*dto.DailyRevenueRow)
	for _, cc := range computed {
		key := cc.contract.StartAt.In(loc).Format("2006-01-02")
		row, ok := buckets[key]
		if !ok {
			row = &dto.DailyRevenueRow{Date: key}
			buckets[key] = row
		}
		row.RentalRevenue = row.RentalRevenue.Add(cc.breakdown.RentalRevenue)
		row.InsuranceRevenue = row.InsuranceRevenue.Add(cc.breakdown.InsuranceRevenue)
		row.Total = row.Total.Add(cc.breakdown.Total)
		row.ContractCount++
	}

	rows := make([]dto.DailyRevenueRow, 0, len(buckets))
	for _, row := range buckets {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })

	return &dto.DailyRevenueResponse{
		Rows:     rows,
		Currency: s.Config.Shop.Currency,
		Excluded: excluded,
	}, nil
}

// RevenueByItemType attributes each contract's rental revenue across bike
// types in proportion to each line's actual charge. Line amounts already sum
// to the contract's rental revenue, so type buckets reproduce contract totals
// exactly even after a final-amount rescale.
func (s *reportingService) RevenueByItemType(ctx context.Context, req *dto.RevenueReportRequest) (*dto.TypeRevenueResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := s.CatalogRepo.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	computed, excluded, err := s.loadAndCompute(ctx, req)
	if err != nil {
		return nil, err
	}

	buckets := make(map[types.BikeType]*dto.TypeRevenueRow)
	for _, cc := range computed {
		for _, item := range cc.breakdown.Items {
			bikeType := snapshot.TypeOf(item.CatalogItemID)
			row, ok := buckets[bikeType]
			if !ok {
				row = &dto.TypeRevenueRow{BikeType: bikeType}
				buckets[bikeType] = row
			}
			row.Count++
			row.RentalRevenue = row.RentalRevenue.Add(item.Amount)
			row.ElapsedHours += item.ElapsedHours
		}
	}

	rows := make([]dto.TypeRevenueRow, 0, len(buckets))
	for _, row := range buckets {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].BikeType < rows[j].BikeType })

	return &dto.TypeRevenueResponse{
		Rows:     rows,
		Currency: s.Config.Shop.Currency,
		Excluded: excluded,
	}, nil
}

// RevenueByBike tracks each physical bike's cumulative rental revenue against
// its purchase price for payback reporting.
func (s *reportingService) RevenueByBike(ctx context.Context, req *dto.RevenueReportRequest) (*dto.BikeRevenueResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := s.CatalogRepo.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	computed, excluded, err := s.loadAndCompute(ctx, req)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*dto.BikeRevenueRow)
	for _, cc := range computed {
		for _, item := range cc.breakdown.Items {
			if item.Kind != types.ItemKindBike {
				continue
			}
			row, ok := buckets[item.CatalogItemID]
			if !ok {
				row = &dto.BikeRevenueRow{CatalogItemID: item.CatalogItemID}
				if entry := snapshot.Get(item.CatalogItemID); entry != nil {
					row.Name = entry.Name
					row.BikeType = entry.BikeType
					row.PurchasePrice = entry.PurchasePrice
				}
				buckets[item.CatalogItemID] = row
			}
			row.Rentals++
			row.Revenue = row.Revenue.Add(item.Amount)
			row.Hours += item.ElapsedHours
		}
	}

	rows := make([]dto.BikeRevenueRow, 0, len(buckets))
	for _, row := range buckets {
		row.IsRepaid = row.Revenue.GreaterThanOrEqual(row.PurchasePrice)
		row.RemainingToBreakEven = decimal.Max(decimal.Zero, row.PurchasePrice.Sub(row.Revenue))
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CatalogItemID < rows[j].CatalogItemID })

	return &dto.BikeRevenueResponse{
		Rows:     rows,
		Currency: s.Config.Shop.Currency,
		Excluded: excluded,
	}, nil
}

// MonthlyTotals produces exactly twelve rows for a year, zero-filled for
// months without activity, keyed by contract start in shop-local time.
func (s *reportingService) MonthlyTotals(ctx context.Context, req *dto.MonthlyTotalsRequest) (*dto.MonthlyTotalsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	loc, err := types.LoadShopLocation(s.Config.Shop.Timezone)
	if err != nil {
		return nil, err
	}

	yearStart := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, loc)
	yearEnd := yearStart.AddDate(1, 0, 0).Add(-time.Nanosecond)

	computed, excluded, err := s.loadAndCompute(ctx, &dto.RevenueReportRequest{
		StartTime:     &yearStart,
		EndTime:       &yearEnd,
		ReferenceTime: req.ReferenceTime,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]dto.MonthlyRevenueRow, 12)
	for i := range rows {
		month := time.Month(i + 1)
		rows[i] = dto.MonthlyRevenueRow{
			Month:            i + 1,
			Label:            month.String()[:3],
			RentalRevenue:    decimal.Zero,
			InsuranceRevenue: decimal.Zero,
			Total:            decimal.Zero,
		}
	}

	for _, cc := range computed {
		local := cc.contract.StartAt.In(loc)
		if local.Year() != req.Year {
			continue
		}
		row := &rows[int(local.Month())-1]
		row.RentalRevenue = row.RentalRevenue.Add(cc.breakdown.RentalRevenue)
		row.InsuranceRevenue = row.InsuranceRevenue.Add(cc.breakdown.InsuranceRevenue)
		row.Total = row.Total.Add(cc.breakdown.Total)
		row.ContractCount++
	}

	return &dto.MonthlyTotalsResponse{
		Year:     req.Year,
		Rows:     rows,
		Currency: s.Config.Shop.Currency,
		Excluded: excluded,
	}, nil
}
