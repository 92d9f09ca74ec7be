package contracts

// ── Identity ────────────────────────────────────────────────

// Identity is the session identity forwarded by the upstream auth gateway.
// The service never authenticates; the values are used for logging and span
// attributes only.
type Identity struct {
	// KitchenID is the tenant the session belongs to. The name predates the
	// build assistant and is kept for header compatibility.
	KitchenID string `json:"kitchen_id,omitempty"`

	// UserID is the signed-in player.
	UserID string `json:"user_id,omitempty"`
}

// Anonymous reports whether the gateway forwarded no user.
func (i *Identity) Anonymous() bool {
	return i == nil || i.UserID == ""
}
