package testutil

import (
	"context"

	"github.com/cyclohire/cyclohire/internal/domain/catalog"
	ierr "github.com/cyclohire/cyclohire/internal/errors"
	"github.com/samber/lo"
)

// InMemoryCatalogStore implements catalog.Repository
type InMemoryCatalogStore struct {
	*InMemoryStore[*catalog.Item]
}

// NewInMemoryCatalogStore creates a new in-memory catalog store
func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		InMemoryStore: NewInMemoryStore[*catalog.Item](),
	}
}

func copyCatalogItem(item *catalog.Item) *catalog.Item {
	if item == nil {
		return nil
	}
	copied := *item
	return &copied
}

func (s *InMemoryCatalogStore) Create(ctx context.Context, item *catalog.Item) error {
	if item == nil {
		return ierr.NewError("catalog item cannot be nil").
			WithHint("Catalog item cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, item.ID, copyCatalogItem(item))
}

func (s *InMemoryCatalogStore) Get(ctx context.Context, id string) (*catalog.Item, error) {
	item, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("catalog item not found").
			WithHint("Catalog item not found").
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyCatalogItem(item), nil
}

func (s *InMemoryCatalogStore) List(ctx context.Context, filter *catalog.Filter) ([]*catalog.Item, error) {
	items, err := s.InMemoryStore.List(ctx, filter, catalogFilterFn, catalogSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(item *catalog.Item, _ int) *catalog.Item {
		return copyCatalogItem(item)
	}), nil
}

func (s *InMemoryCatalogStore) Update(ctx context.Context, item *catalog.Item) error {
	if item == nil {
		return ierr.NewError("catalog item cannot be nil").
			WithHint("Catalog item cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, item.ID, copyCatalogItem(item))
}

func (s *InMemoryCatalogStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

// GetSnapshot returns a read-only view of all published catalog items.
func (s *InMemoryCatalogStore) GetSnapshot(ctx context.Context) (catalog.Snapshot, error) {
	items, err := s.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	snapshot := make(catalog.Snapshot, len(items))
	for _, item := range items {
		snapshot[item.ID] = item
	}
	return snapshot, nil
}

func catalogFilterFn(_ context.Context, item *catalog.Item, filter interface{}) bool {
	if item == nil {
		return false
	}

	f, ok := filter.(*catalog.Filter)
	if !ok || f == nil {
		return true
	}

	if len(f.ItemIDs) > 0 && !lo.Contains(f.ItemIDs, item.ID) {
		return false
	}
	if f.Kind != nil && item.Kind != *f.Kind {
		return false
	}
	if f.BikeType != nil && item.BikeType != *f.BikeType {
		return false
	}
	return true
}

func catalogSortFn(i, j *catalog.Item) bool {
	if i == nil || j == nil {
		return false
	}
	return i.ID < j.ID
}

// Clear clears the catalog store
func (s *InMemoryCatalogStore) Clear() {
	s.InMemoryStore.Clear()
}
