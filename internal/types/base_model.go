package types

import (
	"context"
	"time"
)

// Status is the lifecycle status of a stored record, distinct from
// domain-specific statuses such as ContractStatus.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

// Metadata is a free-form string map attached to records.
type Metadata map[string]string

// BaseModel carries the common fields shared by all stored records.
type BaseModel struct {
	ShopID    string    `json:"shop_id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
}

// GetDefaultBaseModel stamps a new record with shop and actor information
// from the context.
func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		ShopID:    shopIDOrDefault(ctx),
		Status:    StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: GetUserID(ctx),
		UpdatedBy: GetUserID(ctx),
	}
}

func shopIDOrDefault(ctx context.Context) string {
	if shopID := GetShopID(ctx); shopID != "" {
		return shopID
	}
	return DefaultShopID
}
