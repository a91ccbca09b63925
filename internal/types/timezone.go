package types

import (
	"strings"
	"time"

	ierr "github.com/cyclohire/cyclohire/internal/errors"
)

// timezoneAbbreviationMap maps common three-letter timezone abbreviations to
// IANA identifiers so shop configuration can use either form.
var timezoneAbbreviationMap = map[string]string{
	"CET":  "Europe/Paris",
	"WET":  "Europe/Lisbon",
	"EET":  "Europe/Athens",
	"GMT":  "Europe/London",
	"BST":  "Europe/London",
	"EST":  "America/New_York",
	"CST":  "America/Chicago",
	"MST":  "America/Denver",
	"PST":  "America/Los_Angeles",
	"IST":  "Asia/Kolkata",
	"JST":  "Asia/Tokyo",
	"AEST": "Australia/Sydney",
}

// ResolveTimezone converts a timezone abbreviation to an IANA identifier, or
// returns the input unchanged if it is not a known abbreviation.
func ResolveTimezone(timezone string) string {
	if ianaName, exists := timezoneAbbreviationMap[strings.ToUpper(timezone)]; exists {
		return ianaName
	}
	return timezone
}

// ValidateTimezone checks that a timezone resolves to a loadable location.
func ValidateTimezone(timezone string) error {
	_, err := LoadShopLocation(timezone)
	return err
}

// LoadShopLocation loads the shop's local time zone. Revenue bucketing is
// done in shop-local time, not UTC, so a rental started late in the evening
// lands on the correct calendar day.
func LoadShopLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(ResolveTimezone(timezone))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Unknown shop timezone: %s", timezone).
			Mark(ierr.ErrValidation)
	}
	return loc, nil
}
