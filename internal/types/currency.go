package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DEFAULT_PRECISION is used for currencies missing from the precision table.
const DEFAULT_PRECISION = 2

// currencyPrecision maps ISO currency codes (lowercase) to the number of
// decimal places amounts in that currency are rounded to.
var currencyPrecision = map[string]int32{
	"usd": 2, "eur": 2, "gbp": 2, "aud": 2, "cad": 2,
	"chf": 2, "nok": 2, "sek": 2, "dkk": 2, "pln": 2,
	"czk": 2, "inr": 2, "sgd": 2, "nzd": 2, "brl": 2,

	// Currencies without fractional units.
	"jpy": 0, "krw": 0, "vnd": 0, "clp": 0,
}

// GetCurrencyPrecision returns the decimal precision for a currency code.
func GetCurrencyPrecision(currency string) int32 {
	if precision, ok := currencyPrecision[strings.ToLower(strings.TrimSpace(currency))]; ok {
		return precision
	}
	return DEFAULT_PRECISION
}

// RoundToCurrencyPrecision rounds an amount to the currency's precision using
// round half up. Rounding is applied only at output boundaries, never on
// intermediate sums.
func RoundToCurrencyPrecision(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount.Round(GetCurrencyPrecision(currency))
}
