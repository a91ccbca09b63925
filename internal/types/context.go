package types

import "context"

type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxShopID    ContextKey = "ctx_shop_id"
	CtxUserID    ContextKey = "ctx_user_id"
)

// DefaultShopID is used by scripts and tests that run outside a request scope.
const DefaultShopID = "shop_default"

func GetRequestID(ctx context.Context) string {
	return getString(ctx, CtxRequestID)
}

func GetShopID(ctx context.Context) string {
	return getString(ctx, CtxShopID)
}

func GetUserID(ctx context.Context) string {
	return getString(ctx, CtxUserID)
}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

func SetShopID(ctx context.Context, shopID string) context.Context {
	return context.WithValue(ctx, CtxShopID, shopID)
}

func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

func getString(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
