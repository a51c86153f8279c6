// Package auth holds the shop identity context helpers shared by the
// middleware and handler packages. Keeping them here avoids an import
// cycle: middleware imports handler for error responses, so handler
// cannot import middleware.
package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const shopContextKey contextKey = "shop"

// WithShop stores the shop domain in the context.
func WithShop(ctx context.Context, shop string) context.Context {
	return context.WithValue(ctx, shopContextKey, shop)
}

// GetShop retrieves the shop domain from the context.
// Returns "" if the request did not pass through the shop middleware.
func GetShop(ctx context.Context) string {
	shop, _ := ctx.Value(shopContextKey).(string)
	return shop
}
