package billing

import (
	"time"

	"github.com/cyclohire/cyclohire/internal/domain/contract"
	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/shopspring/decimal"
)

// Calculator computes charge breakdowns for contracts. Implementations must
// be pure: same contract and reference time, same breakdown, safe to call
// concurrently.
type Calculator interface {
	Compute(c *contract.Contract, referenceTime time.Time) (*ChargeBreakdown, error)
}

type calculator struct {
	currency            string
	defaultInsuranceFee decimal.Decimal
}

// NewCalculator creates a calculator billing in the given currency with the
// shop's default flat insurance fee.
func NewCalculator(currency string, defaultInsuranceFee decimal.Decimal) Calculator {
	if defaultInsuranceFee.IsZero() {
		defaultInsuranceFee = types.DefaultInsuranceFee
	}
	return &calculator{
		currency:            currency,
		defaultInsuranceFee: defaultInsuranceFee,
	}
}

// Compute determines the billing window, bills each line at the cheaper of
// its hourly and daily rates, separates rental from insurance revenue, and
// reconciles against any administrator-locked final amount.
func (calc *calculator) Compute(c *contract.Contract, referenceTime time.Time) (*ChargeBreakdown, error) {
	if c == nil {
		return nil, ierr.NewError("contract cannot be nil").
			WithHint("Contract cannot be nil").
			Mark(ierr.ErrValidation)
	}

	start := c.StartAt
	end := referenceTime
	if c.EndAt != nil {
		end = *c.EndAt
	}
	if end.Before(start) {
		return nil, ierr.NewError("contract end time precedes start time").
			WithHint("Contract end time cannot be before its start time").
			WithReportableDetails(map[string]any{
				"contract_id": c.ID,
				"start_at":    start,
				"end_at":      end,
			}).
			Mark(ierr.ErrValidation)
	}

	breakdown := &ChargeBreakdown{
		ContractID: c.ID,
		Currency:   calc.currency,
	}
	breakdown.ElapsedHours, breakdown.ElapsedDays = elapsedUnits(start, end)

	rentalRaw := decimal.Zero
	insuranceRaw := decimal.Zero
	itemRaw := make([]decimal.Decimal, 0, len(c.Items))

	for idx := range c.Items {
		item := &c.Items[idx]
		charge := calc.computeItem(c, item, start, end, breakdown)
		itemRaw = append(itemRaw, charge)
		rentalRaw = rentalRaw.Add(charge)

		if item.Insured {
			insuranceRaw = insuranceRaw.Add(calc.insuranceFee(c, item, breakdown))
		}
	}

	// Contract-level flat insurance, distinct from per-item insurance.
	if c.InsuranceFee != nil {
		fee := *c.InsuranceFee
		if fee.IsNegative() {
			breakdown.Warnings = append(breakdown.Warnings, DataQualityWarning{
				ContractID: c.ID,
				Field:      "insurance_fee",
				Message:    "negative contract insurance fee defaulted to zero",
			})
			fee = decimal.Zero
		}
		insuranceRaw = insuranceRaw.Add(fee)
	}

	rental, insurance := calc.reconcile(c, rentalRaw, insuranceRaw)

	breakdown.RentalRevenue = rental
	breakdown.InsuranceRevenue = insurance
	breakdown.Total = rental.Add(insurance)

	// Distribute the (possibly rescaled) rental revenue back across lines
	// proportionally to their raw charges, so line amounts always sum to
	// the contract's rental revenue exactly.
	allocations := AllocateProportionally(rental, itemRaw, types.GetCurrencyPrecision(calc.currency))
	for i := range breakdown.Items {
		breakdown.Items[i].Amount = allocations[i]
	}

	return breakdown, nil
}

// computeItem bills one contract line over its own window and appends the
// audit row. Returns the raw, unrounded charge.
func (calc *calculator) computeItem(
	c *contract.Contract,
	item *contract.RentalItem,
	start, end time.Time,
	breakdown *ChargeBreakdown,
) decimal.Decimal {
	// An item returned before the contract end stops billing at its return.
	itemEnd := end
	if item.ReturnedAt != nil && item.ReturnedAt.Before(end) {
		itemEnd = *item.ReturnedAt
		if itemEnd.Before(start) {
			itemEnd = start
		}
	}
	hours, days := elapsedUnits(start, itemEnd)

	hourlyRate := calc.sanitizeRate(c.ID, item.ID, "hourly_rate", item.HourlyRate, breakdown)
	dailyRate := calc.sanitizeRate(c.ID, item.ID, "daily_rate", item.DailyRate, breakdown)

	if item.Kind == types.ItemKindBike && hourlyRate.IsZero() && dailyRate.IsZero() {
		breakdown.Warnings = append(breakdown.Warnings, DataQualityWarning{
			ContractID: c.ID,
			ItemID:     item.ID,
			Field:      "rates",
			Message:    "bike has no hourly or daily rate configured",
		})
	}

	hourlyTotal := hourlyRate.Mul(decimal.NewFromInt(hours))
	dailyTotal := dailyRate.Mul(decimal.NewFromInt(days))

	var charge decimal.Decimal
	var rateUsed types.RateKind

	switch {
	case c.IsReservation:
		// Reservations always bill at the daily rate.
		charge = dailyTotal
		rateUsed = types.RateKindDaily
	case dailyRate.IsZero():
		charge = hourlyTotal
		rateUsed = types.RateKindHourly
	case hourlyTotal.LessThanOrEqual(dailyTotal):
		// Ties favor hourly, the literal metered cost.
		charge = hourlyTotal
		rateUsed = types.RateKindHourly
	default:
		charge = dailyTotal
		rateUsed = types.RateKindDaily
	}

	breakdown.Items = append(breakdown.Items, ItemCharge{
		ItemID:        item.ID,
		CatalogItemID: item.CatalogItemID,
		Kind:          item.Kind,
		RateUsed:      rateUsed,
		ElapsedHours:  hours,
		ElapsedDays:   days,
	})

	return charge
}

// insuranceFee resolves the flat per-item insurance fee for an insured line.
func (calc *calculator) insuranceFee(c *contract.Contract, item *contract.RentalItem, breakdown *ChargeBreakdown) decimal.Decimal {
	if item.InsuranceFee == nil {
		return calc.defaultInsuranceFee
	}
	fee := *item.InsuranceFee
	if fee.IsNegative() {
		breakdown.Warnings = append(breakdown.Warnings, DataQualityWarning{
			ContractID: c.ID,
			ItemID:     item.ID,
			Field:      "insurance_fee",
			Message:    "negative insurance fee defaulted to zero",
		})
		return decimal.Zero
	}
	return fee
}

// sanitizeRate defaults negative rates to zero with a warning. Historical
// records can carry incomplete data; computation must not fail on them.
func (calc *calculator) sanitizeRate(contractID, itemID, field string, rate decimal.Decimal, breakdown *ChargeBreakdown) decimal.Decimal {
	if rate.IsNegative() {
		breakdown.Warnings = append(breakdown.Warnings, DataQualityWarning{
			ContractID: contractID,
			ItemID:     itemID,
			Field:      field,
			Message:    "negative rate defaulted to zero",
		})
		return decimal.Zero
	}
	return rate
}

// reconcile rounds the revenue split to currency precision and, when an
// administrator locked a final amount, rescales both categories
// proportionally so they sum to the locked amount exactly.
func (calc *calculator) reconcile(c *contract.Contract, rentalRaw, insuranceRaw decimal.Decimal) (rental, insurance decimal.Decimal) {
	if !c.HasFinalAmount() {
		return types.RoundToCurrencyPrecision(rentalRaw, calc.currency),
			types.RoundToCurrencyPrecision(insuranceRaw, calc.currency)
	}

	final := types.RoundToCurrencyPrecision(*c.FinalAmount, calc.currency)
	rawTotal := rentalRaw.Add(insuranceRaw)
	if rawTotal.IsZero() {
		// Nothing was computed to scale against: the whole override is
		// rental revenue.
		return final, decimal.Zero
	}

	rental = types.RoundToCurrencyPrecision(rentalRaw.Mul(final).Div(rawTotal), calc.currency)
	// Insurance takes the remainder so the split sums to the locked amount
	// to the cent.
	insurance = final.Sub(rental)
	return rental, insurance
}

// elapsedUnits returns the billed hours and days for a window. Any positive
// duration bills at least one hour; hours round up, days are ceil(hours/24)
// with a one-day floor.
func elapsedUnits(start, end time.Time) (hours, days int64) {
	d := end.Sub(start)
	hours = int64((d + time.Hour - 1) / time.Hour)
	if hours < 1 {
		hours = 1
	}
	days = (hours + 23) / 24
	return hours, days
}
