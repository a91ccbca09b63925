// Package export renders report rows produced by the reporting service into
// CSV for spreadsheet consumers.
package export

import (
	"bytes"
	"context"

	"github.com/cyclohire/cyclohire/internal/api/dto"
	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/cyclohire/cyclohire/internal/logger"
	"github.com/gocarina/gocsv"
)

// ReportingService is the subset of the reporting service the exporter needs.
// Declared here to avoid an import cycle with the service package.
type ReportingService interface {
	RevenueByDay(ctx context.Context, req *dto.RevenueReportRequest) (*dto.DailyRevenueResponse, error)
	RevenueByBike(ctx context.Context, req *dto.RevenueReportRequest) (*dto.BikeRevenueResponse, error)
	MonthlyTotals(ctx context.Context, req *dto.MonthlyTotalsRequest) (*dto.MonthlyTotalsResponse, error)
}

// RevenueReportExporter handles revenue report export operations
type RevenueReportExporter struct {
	reporting ReportingService
	logger    *logger.Logger
}

// NewRevenueReportExporter creates a new revenue report exporter
func NewRevenueReportExporter(reporting ReportingService, log *logger.Logger) *RevenueReportExporter {
	return &RevenueReportExporter{
		reporting: reporting,
		logger:    log,
	}
}

// DailyRevenueCSV represents the CSV structure for daily revenue export
type DailyRevenueCSV struct {
	Date             string `csv:"date"`
	RentalRevenue    string `csv:"rental_revenue"`
	InsuranceRevenue string `csv:"insurance_revenue"`
	Total            string `csv:"total"`
	ContractCount    int    `csv:"contract_count"`
}

// BikeRevenueCSV represents the CSV structure for per-bike payback export
type BikeRevenueCSV struct {
	CatalogItemID        string `csv:"catalog_item_id"`
	Name                 string `csv:"name"`
	BikeType             string `csv:"bike_type"`
	Rentals              int    `csv:"rentals"`
	Revenue              string `csv:"revenue"`
	Hours                int64  `csv:"hours"`
	PurchasePrice        string `csv:"purchase_price"`
	RemainingToBreakEven string `csv:"remaining_to_break_even"`
	IsRepaid             bool   `csv:"is_repaid"`
}

// MonthlyRevenueCSV represents the CSV structure for monthly totals export
type MonthlyRevenueCSV struct {
	Month            string `csv:"month"`
	RentalRevenue    string `csv:"rental_revenue"`
	InsuranceRevenue string `csv:"insurance_revenue"`
	Total            string `csv:"total"`
	ContractCount    int    `csv:"contract_count"`
}

// ExportDailyRevenue runs the by-day report and renders it to CSV. The
// returned count includes the number of contracts excluded from the run; an
// export never fails because of a handful of bad historical records.
func (e *RevenueReportExporter) ExportDailyRevenue(ctx context.Context, req *dto.RevenueReportRequest) ([]byte, int, error) {
	report, err := e.reporting.RevenueByDay(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	records := make([]*DailyRevenueCSV, 0, len(report.Rows))
	for _, row := range report.Rows {
		records = append(records, &DailyRevenueCSV{
			Date:             row.Date,
			RentalRevenue:    row.RentalRevenue.String(),
			InsuranceRevenue: row.InsuranceRevenue.String(),
			Total:            row.Total.String(),
			ContractCount:    row.ContractCount,
		})
	}

	csvBytes, err := e.marshal(records)
	if err != nil {
		return nil, 0, err
	}

	e.logExport(ctx, "daily_revenue", len(records), len(report.Excluded), len(csvBytes))
	return csvBytes, len(report.Excluded), nil
}

// ExportBikePayback runs the per-bike payback report and renders it to CSV.
func (e *RevenueReportExporter) ExportBikePayback(ctx context.Context, req *dto.RevenueReportRequest) ([]byte, int, error) {
	report, err := e.reporting.RevenueByBike(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	records := make([]*BikeRevenueCSV, 0, len(report.Rows))
	for _, row := range report.Rows {
		records = append(records, &BikeRevenueCSV{
			CatalogItemID:        row.CatalogItemID,
			Name:                 row.Name,
			BikeType:             row.BikeType.String(),
			Rentals:              row.Rentals,
			Revenue:              row.Revenue.String(),
			Hours:                row.Hours,
			PurchasePrice:        row.PurchasePrice.String(),
			RemainingToBreakEven: row.RemainingToBreakEven.String(),
			IsRepaid:             row.IsRepaid,
		})
	}

	csvBytes, err := e.marshal(records)
	if err != nil {
		return nil, 0, err
	}

	e.logExport(ctx, "bike_payback", len(records), len(report.Excluded), len(csvBytes))
	return csvBytes, len(report.Excluded), nil
}

// ExportMonthlyTotals runs the monthly report and renders its twelve rows to
// CSV, zero-filled months included, for stable spreadsheet layout.
func (e *RevenueReportExporter) ExportMonthlyTotals(ctx context.Context, req *dto.MonthlyTotalsRequest) ([]byte, int, error) {
	report, err := e.reporting.MonthlyTotals(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	records := make([]*MonthlyRevenueCSV, 0, len(report.Rows))
	for _, row := range report.Rows {
		records = append(records, &MonthlyRevenueCSV{
			Month:            row.Label,
			RentalRevenue:    row.RentalRevenue.String(),
			InsuranceRevenue: row.InsuranceRevenue.String(),
			Total:            row.Total.String(),
			ContractCount:    row.ContractCount,
		})
	}

	csvBytes, err := e.marshal(records)
	if err != nil {
		return nil, 0, err
	}

	e.logExport(ctx, "monthly_totals", len(records), len(report.Excluded), len(csvBytes))
	return csvBytes, len(report.Excluded), nil
}

func (e *RevenueReportExporter) marshal(records interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gocsv.Marshal(records, &buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to marshal report to CSV").
			Mark(ierr.ErrInternal)
	}
	return buf.Bytes(), nil
}

func (e *RevenueReportExporter) logExport(ctx context.Context, report string, rows, excluded, size int) {
	e.logger.WithContext(ctx).Infow("completed report export",
		"report", report,
		"rows", rows,
		"excluded_contracts", excluded,
		"csv_size_bytes", size)
}
