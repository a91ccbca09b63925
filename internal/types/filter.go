package types

import (
	"time"

	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/samber/lo"
)

const (
	filterDefaultLimit = 50
	filterMaxLimit     = 1000
)

// QueryFilter carries pagination and ordering parameters common to all list
// operations.
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit"`
	Offset *int    `json:"offset,omitempty" form:"offset"`
	Order  *string `json:"order,omitempty" form:"order"`
	Sort   *string `json:"sort,omitempty" form:"sort"`
}

// NewDefaultQueryFilter returns a query filter with sane pagination defaults.
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(filterDefaultLimit),
		Offset: lo.ToPtr(0),
	}
}

// NewNoLimitQueryFilter returns a query filter without pagination, for
// exhaustive operations such as report runs and exports.
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Offset: lo.ToPtr(0),
	}
}

func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return filterDefaultLimit
	}
	return *f.Limit
}

func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return 0
	}
	return *f.Offset
}

// IsUnlimited reports whether pagination is disabled on this filter.
func (f *QueryFilter) IsUnlimited() bool {
	return f != nil && f.Limit == nil
}

func (f *QueryFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > filterMaxLimit) {
		return ierr.NewErrorf("limit must be between 1 and %d", filterMaxLimit).
			WithHint("Invalid pagination limit").
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("offset cannot be negative").
			WithHint("Invalid pagination offset").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TimeRangeFilter restricts results to records whose reference timestamp
// falls inside [StartTime, EndTime].
type TimeRangeFilter struct {
	StartTime *time.Time `json:"start_time,omitempty" form:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty" form:"end_time"`
}

func (f *TimeRangeFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.StartTime != nil && f.EndTime != nil && f.EndTime.Before(*f.StartTime) {
		return ierr.NewError("end_time cannot be before start_time").
			WithHint("Invalid time range").
			Mark(ierr.ErrValidation)
	}
	return nil
}
