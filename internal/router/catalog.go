package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/exilekitchen/buildcraft/pkg/contracts"
)

// DefaultCatalogTTL is how long a successful model listing is trusted.
const DefaultCatalogTTL = 10 * time.Minute

// failureBackoff delays the next listing attempt after a failure.
const failureBackoff = 30 * time.Second

// ModelCatalog caches the provider's live model list. It is the only
// process-wide mutable state of the pipeline: the name set and its expiry are
// guarded by mu, and concurrent refreshes collapse into one listing call.
type ModelCatalog struct {
	lister contracts.ModelLister
	ttl    time.Duration
	now    func() time.Time
	group  singleflight.Group

	mu      sync.RWMutex
	names   map[string]bool
	known   bool
	expires time.Time
}

// CatalogOption configures a ModelCatalog.
type CatalogOption func(*ModelCatalog)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CatalogOption {
	return func(c *ModelCatalog) { c.now = now }
}

// NewModelCatalog creates a catalog backed by lister. A non-positive ttl uses
// DefaultCatalogTTL. A nil lister yields a catalog that never knows anything.
func NewModelCatalog(lister contracts.ModelLister, ttl time.Duration, opts ...CatalogOption) *ModelCatalog {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	c := &ModelCatalog{
		lister: lister,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available returns the set of served model names and whether the set is
// known. An expired entry is refreshed first. Listing failures are logged
// and never returned; the previous set, if any, stays in use.
func (c *ModelCatalog) Available(ctx context.Context) (map[string]bool, bool) {
	if c.lister == nil {
		return nil, false
	}
	c.mu.RLock()
	fresh := c.now().Before(c.expires)
	c.mu.RUnlock()
	if !fresh {
		_, _, _ = c.group.Do("list", func() (any, error) {
			c.refresh(ctx)
			return nil, nil
		})
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.names, c.known
}

func (c *ModelCatalog) refresh(ctx context.Context) {
	names, err := c.lister.ListModels(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		log.Warn().Err(err).Msg("Model listing failed, attempt chain left unfiltered")
		c.expires = c.now().Add(failureBackoff)
		return
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	c.names = set
	c.known = true
	c.expires = c.now().Add(c.ttl)
	log.Debug().Int("models", len(set)).Dur("ttl", c.ttl).Msg("Model catalog refreshed")
}

// Snapshot returns the cached names, sorted, without refreshing.
func (c *ModelCatalog) Snapshot() ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.names))
	for n := range c.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, c.known
}

// Invalidate forces the next Available call to refresh.
func (c *ModelCatalog) Invalidate() {
	c.mu.Lock()
	c.expires = time.Time{}
	c.mu.Unlock()
}
