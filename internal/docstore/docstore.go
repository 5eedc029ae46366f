// Package docstore is the client side of the backing document database: a
// products collection and a singleton site-settings document, each observable
// through subscriptions that push full snapshots on any change.
package docstore

import (
	"context"

	"github.com/pkg/errors"

	"github.com/maisonaurum/aurum/internal/domain"
)

var (
	// ErrNotFound is returned when a document id does not exist.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrReadOnly is returned by writes against a disabled store.
	ErrReadOnly = errors.New("docstore: store is read-only")
)

// ProductsHandler receives full products-collection snapshots. A product
// missing from a snapshot no longer exists; handlers must treat the slice
// as immutable.
type ProductsHandler func(products []domain.Product)

// SettingsHandler receives the whole settings document, or nil while the
// document does not exist.
type SettingsHandler func(cfg *domain.SiteConfig)

// CancelFunc tears down one subscription.
type CancelFunc func()

// Store is the document database client. Every mutation is followed by a
// fresh snapshot push on the matching subscription; there is no
// read-your-writes guarantee for consumers that only watch snapshots.
// Snapshot delivery order follows emission order per subscription; nothing
// is guaranteed across the two subscriptions.
type Store interface {
	// Writable reports whether the store accepts mutations. A disabled
	// store is the degraded-mode backend: reads serve nothing and writes
	// must not be attempted.
	Writable() bool

	Products(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, draft domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) error
	DeleteProduct(ctx context.Context, id string) error

	// Settings returns the singleton document, or (nil, nil) while it does
	// not exist.
	Settings(ctx context.Context) (*domain.SiteConfig, error)
	CreateSettings(ctx context.Context, cfg domain.SiteConfig) error
	UpdateSettings(ctx context.Context, patch domain.SiteConfigPatch) error

	// Subscribe delivers the current snapshot synchronously before
	// returning, then pushes a fresh one after every observed change.
	SubscribeProducts(h ProductsHandler) CancelFunc
	SubscribeSettings(h SettingsHandler) CancelFunc

	// Start launches background change detection; Close stops it and
	// releases the underlying connection.
	Start()
	Close() error
}

const (
	topicProducts = "docstore.products.snapshot"
	topicSettings = "docstore.settings.snapshot"
)

func cloneProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	for i := range out {
		materials := make(domain.Materials, len(out[i].Materials))
		copy(materials, out[i].Materials)
		out[i].Materials = materials
	}
	return out
}
