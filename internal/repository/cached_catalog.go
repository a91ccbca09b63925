package repository

import (
	"context"

	"github.com/cyclohire/cyclohire/internal/cache"
	"github.com/cyclohire/cyclohire/internal/domain/catalog"
	"github.com/cyclohire/cyclohire/internal/logger"
	"github.com/cyclohire/cyclohire/internal/types"
)

const catalogSnapshotKeyPrefix = "catalog:snapshot:"

// cachedCatalogRepository decorates a catalog repository with snapshot
// caching. Report runs hit the snapshot repeatedly; writes invalidate it.
type cachedCatalogRepository struct {
	catalog.Repository
	cache  cache.Cache
	logger *logger.Logger
}

// NewCachedCatalogRepository wraps a catalog repository with snapshot caching.
func NewCachedCatalogRepository(repo catalog.Repository, c cache.Cache, log *logger.Logger) catalog.Repository {
	return &cachedCatalogRepository{
		Repository: repo,
		cache:      c,
		logger:     log,
	}
}

func (r *cachedCatalogRepository) GetSnapshot(ctx context.Context) (catalog.Snapshot, error) {
	key := catalogSnapshotKeyPrefix + types.GetShopID(ctx)

	if value, found := r.cache.Get(ctx, key); found {
		if snapshot, ok := cache.UnmarshalCacheValue[catalog.Snapshot](value); ok {
			return *snapshot, nil
		}
	}

	snapshot, err := r.Repository.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, key, snapshot, cache.ExpiryCatalogSnapshot)
	r.logger.Debugw("cached catalog snapshot", "items", len(snapshot), "key", key)
	return snapshot, nil
}

func (r *cachedCatalogRepository) Create(ctx context.Context, item *catalog.Item) error {
	if err := r.Repository.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedCatalogRepository) Update(ctx context.Context, item *catalog.Item) error {
	if err := r.Repository.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedCatalogRepository) Delete(ctx context.Context, id string) error {
	if err := r.Repository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedCatalogRepository) invalidate(ctx context.Context) {
	r.cache.DeleteByPrefix(ctx, catalogSnapshotKeyPrefix)
}
