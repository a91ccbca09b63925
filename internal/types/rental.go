package types

import (
	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/shopspring/decimal"
)

// ContractStatus is the lifecycle state of a rental contract.
type ContractStatus string

const (
	ContractStatusReserved  ContractStatus = "reserved"
	ContractStatusInUse     ContractStatus = "in_use"
	ContractStatusClosed    ContractStatus = "closed"
	ContractStatusCancelled ContractStatus = "cancelled"
)

func (s ContractStatus) String() string {
	return string(s)
}

func (s ContractStatus) Validate() error {
	switch s {
	case ContractStatusReserved, ContractStatusInUse, ContractStatusClosed, ContractStatusCancelled:
		return nil
	default:
		return ierr.NewErrorf("invalid contract status: %s", s).
			WithHint("Contract status must be one of reserved, in_use, closed, cancelled").
			Mark(ierr.ErrValidation)
	}
}

// ItemKind distinguishes bikes from accessories on a contract line.
type ItemKind string

const (
	ItemKindBike      ItemKind = "bike"
	ItemKindAccessory ItemKind = "accessory"
)

func (k ItemKind) String() string {
	return string(k)
}

func (k ItemKind) Validate() error {
	switch k {
	case ItemKindBike, ItemKindAccessory:
		return nil
	default:
		return ierr.NewErrorf("invalid item kind: %s", k).
			WithHint("Item kind must be bike or accessory").
			Mark(ierr.ErrValidation)
	}
}

// RateKind tags which rate was applied to a billed line for auditability.
type RateKind string

const (
	RateKindHourly RateKind = "hourly"
	RateKindDaily  RateKind = "daily"
)

func (r RateKind) String() string {
	return string(r)
}

// BikeType is the commercial category of a catalog item, used for
// per-type revenue reporting.
type BikeType string

const (
	BikeTypeMuscular  BikeType = "muscular"
	BikeTypeElectric  BikeType = "electric"
	BikeTypeCargo     BikeType = "cargo"
	BikeTypeKids      BikeType = "kids"
	BikeTypeAccessory BikeType = "accessory"
)

func (t BikeType) String() string {
	return string(t)
}

func (t BikeType) Validate() error {
	switch t {
	case BikeTypeMuscular, BikeTypeElectric, BikeTypeCargo, BikeTypeKids, BikeTypeAccessory:
		return nil
	default:
		return ierr.NewErrorf("invalid bike type: %s", t).
			WithHint("Bike type must be one of muscular, electric, cargo, kids, accessory").
			Mark(ierr.ErrValidation)
	}
}

// DefaultInsuranceFee is the flat per-item insurance fee applied when a line
// is insured but carries no explicit fee.
var DefaultInsuranceFee = decimal.NewFromInt(5)
