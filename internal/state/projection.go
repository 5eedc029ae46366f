// Package state holds the application state: the shared catalog and config
// projections fed by document-store subscriptions, and the per-session
// cart, navigation and admin state containers.
package state

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/maisonaurum/aurum/internal/docstore"
	"github.com/maisonaurum/aurum/internal/domain"
)

// Projection is the single shared read cache of remote state. Only the
// subscription delivery path overwrites it; every other component reads it
// and copies before mutating. In degraded mode it serves the bundled
// defaults and never subscribes.
type Projection struct {
	store docstore.Store

	mu            sync.RWMutex
	products      []domain.Product
	config        domain.SiteConfig
	loading       bool
	degraded      bool
	configEnsured bool
	cancels       []docstore.CancelFunc
}

// NewProjection builds an unstarted projection. The config starts at the
// bundled defaults; the first settings snapshot overwrites it.
func NewProjection(store docstore.Store) *Projection {
	return &Projection{
		store:   store,
		config:  domain.DefaultSiteConfig(),
		loading: true,
	}
}

// Start subscribes to both collections, or applies the fallback data when
// the backend is unavailable.
func (p *Projection) Start() {
	if !p.store.Writable() {
		p.applyFallback()
		return
	}
	p.cancels = append(p.cancels,
		p.store.SubscribeProducts(p.onProducts),
		p.store.SubscribeSettings(p.onSettings),
	)
}

// Close cancels the subscriptions. The last-known data stays readable.
func (p *Projection) Close() {
	for _, cancel := range p.cancels {
		cancel()
	}
	p.cancels = nil
}

func (p *Projection) applyFallback() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.products = domain.DefaultCatalog()
	p.config = domain.DefaultSiteConfig()
	p.loading = false
	p.degraded = true
	zap.L().Warn("document store unavailable, serving bundled catalog in degraded mode")
}

// onProducts replaces the whole catalog. A product absent from the snapshot
// is gone locally even if this client never deleted it.
func (p *Projection) onProducts(products []domain.Product) {
	p.mu.Lock()
	p.products = products
	p.loading = false
	p.mu.Unlock()
	zap.L().Debug("catalog snapshot applied", zap.Int("products", len(products)))
}

// onSettings replaces the config document, or establishes the default one
// the first time the document is observed missing. Repeated nil snapshots
// never trigger a second creation.
func (p *Projection) onSettings(cfg *domain.SiteConfig) {
	if cfg != nil {
		p.mu.Lock()
		p.config = *cfg
		p.mu.Unlock()
		zap.L().Debug("site config snapshot applied")
		return
	}

	p.mu.Lock()
	ensure := !p.configEnsured
	p.configEnsured = true
	p.mu.Unlock()
	if !ensure {
		return
	}

	zap.L().Info("site config document missing, creating default")
	if err := p.store.CreateSettings(context.Background(), domain.DefaultSiteConfig()); err != nil {
		zap.L().Error("failed to create default site config", zap.Error(err))
	}
}

// Loading reports whether the first catalog snapshot is still pending.
// Product-dependent views must not render while true.
func (p *Projection) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Degraded reports fallback mode; writes are unavailable while true.
func (p *Projection) Degraded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.degraded
}

// Products returns the current catalog snapshot.
func (p *Projection) Products() []domain.Product {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.Product, len(p.products))
	copy(out, p.products)
	return out
}

// ProductsByCategory filters the catalog; an empty or "All" category
// returns everything.
func (p *Projection) ProductsByCategory(category string) []domain.Product {
	if category == "" || category == "All" {
		return p.Products()
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []domain.Product
	for _, prod := range p.products {
		if prod.Category == category {
			out = append(out, prod)
		}
	}
	return out
}

// Product looks up a catalog entry by id. A miss is a normal outcome, not
// an error: the id may reference a concurrently deleted document.
func (p *Projection) Product(id string) (domain.Product, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, prod := range p.products {
		if prod.ID == id {
			return prod, true
		}
	}
	return domain.Product{}, false
}

// Config returns the current site configuration document.
func (p *Projection) Config() domain.SiteConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.config
}
