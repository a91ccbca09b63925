package testutil

import (
	"context"

	"github.com/cyclohire/cyclohire/internal/domain/contract"
	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/cyclohire/cyclohire/internal/types"
	"github.com/samber/lo"
)

// InMemoryContractStore implements contract.Repository
type InMemoryContractStore struct {
	*InMemoryStore[*contract.Contract]
}

// NewInMemoryContractStore creates a new in-memory contract store
func NewInMemoryContractStore() *InMemoryContractStore {
	return &InMemoryContractStore{
		InMemoryStore: NewInMemoryStore[*contract.Contract](),
	}
}

// copyContract deep-copies a contract so callers never share mutable state
// with the store.
func copyContract(c *contract.Contract) *contract.Contract {
	if c == nil {
		return nil
	}
	copied := *c
	copied.Items = make([]contract.RentalItem, len(c.Items))
	copy(copied.Items, c.Items)
	copied.Metadata = lo.Assign(types.Metadata{}, c.Metadata)
	return &copied
}

func (s *InMemoryContractStore) Create(ctx context.Context, c *contract.Contract) error {
	if c == nil {
		return ierr.NewError("contract cannot be nil").
			WithHint("Contract cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyContract(c))
}

func (s *InMemoryContractStore) Get(ctx context.Context, id string) (*contract.Contract, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("contract not found").
			WithHint("Contract not found").
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyContract(c), nil
}

func (s *InMemoryContractStore) List(ctx context.Context, filter *contract.Filter) ([]*contract.Contract, error) {
	contracts, err := s.InMemoryStore.List(ctx, filter, contractFilterFn, contractSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(contracts, func(c *contract.Contract, _ int) *contract.Contract {
		return copyContract(c)
	}), nil
}

func (s *InMemoryContractStore) Update(ctx context.Context, c *contract.Contract) error {
	if c == nil {
		return ierr.NewError("contract cannot be nil").
			WithHint("Contract cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyContract(c))
}

func (s *InMemoryContractStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

// contractFilterFn implements filtering logic for contracts. The time range
// filter applies to the contract's start time, matching how reports bucket.
func contractFilterFn(ctx context.Context, c *contract.Contract, filter interface{}) bool {
	if c == nil {
		return false
	}

	f, ok := filter.(*contract.Filter)
	if !ok || f == nil {
		return true
	}

	if shopID := types.GetShopID(ctx); shopID != "" && c.ShopID != shopID {
		return false
	}

	if len(f.ContractIDs) > 0 && !lo.Contains(f.ContractIDs, c.ID) {
		return false
	}
	if f.CustomerID != "" && c.CustomerID != f.CustomerID {
		return false
	}
	if len(f.Statuses) > 0 && !lo.Contains(f.Statuses, c.Status) {
		return false
	}

	if f.TimeRangeFilter != nil {
		if f.TimeRangeFilter.StartTime != nil && c.StartAt.Before(*f.TimeRangeFilter.StartTime) {
			return false
		}
		if f.TimeRangeFilter.EndTime != nil && c.StartAt.After(*f.TimeRangeFilter.EndTime) {
			return false
		}
	}

	return true
}

// contractSortFn orders by start time ascending, then ID for stability.
func contractSortFn(i, j *contract.Contract) bool {
	if i == nil || j == nil {
		return false
	}
	if !i.StartAt.Equal(j.StartAt) {
		return i.StartAt.Before(j.StartAt)
	}
	return i.ID < j.ID
}

// Clear clears the contract store
func (s *InMemoryContractStore) Clear() {
	s.InMemoryStore.Clear()
}
