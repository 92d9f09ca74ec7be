package middleware

import (
	"net/http"
	"strings"

	"github.com/exilekitchen/buildcraft/pkg/contracts"
	pkgmw "github.com/exilekitchen/buildcraft/pkg/middleware"
)

// Identity headers set by the upstream auth gateway.
const (
	HeaderKitchenID = "X-Kitchen-Id"
	HeaderKitchen   = "X-Kitchen"
	HeaderUserID    = "X-User-Id"
)

// SessionIdentity copies the gateway-forwarded session identity into the
// request context. The kitchen comes from X-Kitchen-Id, then the older
// X-Kitchen header, then the kitchen query parameter. Nothing is verified;
// the values feed logs and spans only.
func SessionIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := &contracts.Identity{
			KitchenID: firstNonEmpty(
				r.Header.Get(HeaderKitchenID),
				r.Header.Get(HeaderKitchen),
				r.URL.Query().Get("kitchen"),
			),
			UserID: strings.TrimSpace(r.Header.Get(HeaderUserID)),
		}
		ctx := pkgmw.SetIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
