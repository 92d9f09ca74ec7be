package middleware

import (
	"context"

	"github.com/exilekitchen/buildcraft/pkg/contracts"
)

const identityKey contextKey = "identity"

// SetIdentity stores the forwarded Identity in the context and mirrors its
// kitchen so GetKitchen sees it.
func SetIdentity(ctx context.Context, identity *contracts.Identity) context.Context {
	if identity == nil {
		return ctx
	}
	if identity.KitchenID != "" {
		ctx = SetKitchen(ctx, identity.KitchenID)
	}
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the forwarded Identity from the context.
// Returns nil if the gateway forwarded nothing.
func GetIdentity(ctx context.Context) *contracts.Identity {
	if v, ok := ctx.Value(identityKey).(*contracts.Identity); ok {
		return v
	}
	return nil
}

// GetUser returns the forwarded user id, or "" for anonymous sessions.
func GetUser(ctx context.Context) string {
	if id := GetIdentity(ctx); !id.Anonymous() {
		return id.UserID
	}
	return ""
}
