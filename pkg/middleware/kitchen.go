// Package middleware provides shared context helpers for the session identity
// forwarded by the upstream gateway.
//
// This package lives in pkg/ (not internal/) so that gateway plugins can
// read the same values the service logs.
package middleware

import "context"

type contextKey string

const kitchenKey contextKey = "kitchen"

// DefaultKitchen is reported when the gateway forwarded no kitchen.
const DefaultKitchen = "default"

// GetKitchen extracts the kitchen id from the context.
// Returns "default" if no kitchen is set.
func GetKitchen(ctx context.Context) string {
	if v, ok := ctx.Value(kitchenKey).(string); ok && v != "" {
		return v
	}
	return DefaultKitchen
}

// SetKitchen stores the kitchen id in the context.
func SetKitchen(ctx context.Context, kitchen string) context.Context {
	return context.WithValue(ctx, kitchenKey, kitchen)
}
