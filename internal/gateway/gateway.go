// Package gateway is the single choke point for catalog and config writes.
// Every remote mutation passes through here; nothing in this package
// touches the local projections, which catch up through the next snapshot.
package gateway

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/maisonaurum/aurum/internal/audit"
	"github.com/maisonaurum/aurum/internal/docstore"
	"github.com/maisonaurum/aurum/internal/domain"
	"github.com/maisonaurum/aurum/pkg/metrics"
)

// Gateway serializes write intents into document-store operations and
// sequences media uploads ahead of the writes that reference them.
type Gateway struct {
	store    docstore.Store
	auditLog *audit.Logger
	uploads  *uploadRunner
}

// New builds a gateway over the given store. auditLog may be nil.
func New(store docstore.Store, uploader Uploader, auditLog *audit.Logger) (*Gateway, error) {
	uploads, err := newUploadRunner(uploader)
	if err != nil {
		return nil, err
	}
	return &Gateway{store: store, auditLog: auditLog, uploads: uploads}, nil
}

// Close releases the upload worker pool.
func (g *Gateway) Close() {
	g.uploads.close()
}

// CanWrite is the capability flag: false in degraded mode, where every
// write below becomes a silent no-op. Callers use it to disable write
// affordances instead of letting operations pretend to succeed.
func (g *Gateway) CanWrite() bool {
	return g.store.Writable()
}

// CreateProduct strips any client-assigned id from the draft and submits
// the rest as a new document. It returns the persisted product, with the
// store-assigned id, only after the store acknowledges. No retry.
func (g *Gateway) CreateProduct(ctx context.Context, draft domain.Product) (domain.Product, error) {
	if !g.CanWrite() {
		zap.L().Debug("degraded mode, create product skipped")
		return domain.Product{}, nil
	}
	if draft.Name == "" {
		return domain.Product{}, errors.New("product name is required")
	}
	if draft.Price < 0 {
		return domain.Product{}, errors.New("price must not be negative")
	}
	if !domain.ValidCategory(draft.Category) {
		return domain.Product{}, errors.Errorf("unknown category %q", draft.Category)
	}

	draft.ID = ""
	created, err := g.store.CreateProduct(ctx, draft)
	if err != nil {
		return domain.Product{}, err
	}

	metrics.IncrCounter("cms_product_create")
	g.auditLog.Record("product.create", created.ID, created.Name)
	zap.L().Info("product created", zap.String("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// UpdateProduct submits only the masked fields against an existing
// document.
func (g *Gateway) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) error {
	if !g.CanWrite() {
		zap.L().Debug("degraded mode, update product skipped", zap.String("id", id))
		return nil
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}
	if err := g.store.UpdateProduct(ctx, id, patch); err != nil {
		return err
	}

	metrics.IncrCounter("cms_product_update")
	g.auditLog.Record("product.update", id, "")
	zap.L().Info("product updated", zap.String("id", id))
	return nil
}

// DeleteProduct removes the remote document by id. Clearing any editor
// selection pointing at id is the caller's job; the gateway knows nothing
// about UI state.
func (g *Gateway) DeleteProduct(ctx context.Context, id string) error {
	if !g.CanWrite() {
		zap.L().Debug("degraded mode, delete product skipped", zap.String("id", id))
		return nil
	}
	if err := g.store.DeleteProduct(ctx, id); err != nil {
		return err
	}

	metrics.IncrCounter("cms_product_delete")
	g.auditLog.Record("product.delete", id, "")
	zap.L().Info("product deleted", zap.String("id", id))
	return nil
}

// UpdateSiteConfig submits masked fields against the singleton document.
func (g *Gateway) UpdateSiteConfig(ctx context.Context, patch domain.SiteConfigPatch) error {
	if !g.CanWrite() {
		zap.L().Debug("degraded mode, site config update skipped")
		return nil
	}
	if patch.Empty() {
		return nil
	}
	if err := g.store.UpdateSettings(ctx, patch); err != nil {
		return err
	}

	metrics.IncrCounter("cms_config_update")
	g.auditLog.Record("config.update", "site", "")
	zap.L().Info("site config updated")
	return nil
}
