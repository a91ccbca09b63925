package contract

import (
	"context"

	"github.com/cyclohire/cyclohire/internal/types"
)

// Filter defines query parameters for listing contracts.
type Filter struct {
	QueryFilter     *types.QueryFilter
	TimeRangeFilter *types.TimeRangeFilter

	ContractIDs []string
	CustomerID  string
	Statuses    []types.ContractStatus
}

// Repository is the data-access contract for rental contracts.
type Repository interface {
	Create(ctx context.Context, c *Contract) error
	Get(ctx context.Context, id string) (*Contract, error)
	List(ctx context.Context, filter *Filter) ([]*Contract, error)
	Update(ctx context.Context, c *Contract) error
	Delete(ctx context.Context, id string) error
}
