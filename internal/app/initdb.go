package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/maisonaurum/aurum/internal/domain"
)

// checkCatalog seeds the bundled catalog into an empty products collection
// so a fresh deployment has something to sell. An already-populated store,
// even with different products, is left alone.
//
// The site settings document is not seeded here: its creation belongs to
// the projection, which establishes the default exactly once when it first
// observes the document missing.
func (a *Application) checkCatalog() {
	ctx := context.Background()

	products, err := a.store.Products(ctx)
	if err != nil {
		zap.L().Error("failed to query catalog for seeding", zap.Error(err))
		return
	}
	if len(products) > 0 {
		return
	}

	seeded := 0
	for _, p := range domain.DefaultCatalog() {
		p.ID = ""
		if _, err := a.store.CreateProduct(ctx, p); err != nil {
			zap.L().Error("failed to seed catalog product", zap.String("name", p.Name), zap.Error(err))
			continue
		}
		seeded++
	}
	zap.L().Info("seeded default catalog", zap.Int("products", seeded))
}
