package docstore

import (
	"context"

	"github.com/maisonaurum/aurum/internal/domain"
)

// Disabled is the degraded-mode backend used when the database is
// unconfigured or unreachable at startup. Reads serve nothing, writes are
// rejected, subscriptions never fire.
type Disabled struct{}

func (Disabled) Writable() bool { return false }

func (Disabled) Start() {}

func (Disabled) Close() error { return nil }

func (Disabled) Products(ctx context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (Disabled) CreateProduct(ctx context.Context, draft domain.Product) (domain.Product, error) {
	return domain.Product{}, ErrReadOnly
}

func (Disabled) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) error {
	return ErrReadOnly
}

func (Disabled) DeleteProduct(ctx context.Context, id string) error {
	return ErrReadOnly
}

func (Disabled) Settings(ctx context.Context) (*domain.SiteConfig, error) {
	return nil, nil
}

func (Disabled) CreateSettings(ctx context.Context, cfg domain.SiteConfig) error {
	return ErrReadOnly
}

func (Disabled) UpdateSettings(ctx context.Context, patch domain.SiteConfigPatch) error {
	return ErrReadOnly
}

func (Disabled) SubscribeProducts(h ProductsHandler) CancelFunc {
	return func() {}
}

func (Disabled) SubscribeSettings(h SettingsHandler) CancelFunc {
	return func() {}
}
