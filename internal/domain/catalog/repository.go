package catalog

import (
	"context"

	"github.com/cyclohire/cyclohire/internal/types"
)

// Filter defines query parameters for listing catalog items.
type Filter struct {
	QueryFilter *types.QueryFilter
	ItemIDs     []string
	Kind        *types.ItemKind
	BikeType    *types.BikeType
}

// Repository is the data-access contract for catalog items.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, filter *Filter) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error

	// GetSnapshot returns a read-only view of the whole catalog for use by
	// report runs.
	GetSnapshot(ctx context.Context) (Snapshot, error)
}
