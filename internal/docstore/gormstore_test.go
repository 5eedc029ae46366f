package docstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonaurum/aurum/config"
	"github.com/maisonaurum/aurum/internal/domain"
)

func openTestStore(t *testing.T) *GormStore {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(config.DBConfig{Type: "sqlite", Name: filepath.Join(dir, "test.db")}, dir)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGormStoreProductCRUD(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created, err := store.CreateProduct(ctx, domain.Product{
		ID:        "ignored",
		Name:      "Ring",
		Price:     100,
		Category:  domain.CategoryRings,
		Materials: domain.Materials{"Gold"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", created.ID)

	price := 180.0
	require.NoError(t, store.UpdateProduct(ctx, created.ID, domain.ProductPatch{Price: &price}))

	products, err := store.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 180.0, products[0].Price)
	assert.Equal(t, domain.Materials{"Gold"}, products[0].Materials)

	require.NoError(t, store.DeleteProduct(ctx, created.ID))
	products, err = store.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGormStoreUpdateMissingProduct(t *testing.T) {
	store := openTestStore(t)
	name := "x"
	err := store.UpdateProduct(context.Background(), "missing", domain.ProductPatch{Name: &name})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGormStoreSettingsUpsert(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	cfg, err := store.Settings(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	require.NoError(t, store.CreateSettings(ctx, domain.DefaultSiteConfig()))
	cfg, err = store.Settings(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, domain.DefaultSiteConfig().ContactEmail, cfg.ContactEmail)

	title := "Partial"
	require.NoError(t, store.UpdateSettings(ctx, domain.SiteConfigPatch{HeroTitle: &title}))
	cfg, err = store.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Partial", cfg.HeroTitle)
	assert.Equal(t, domain.DefaultSiteConfig().ContactEmail, cfg.ContactEmail)
}

func TestGormStoreEmitsAfterLocalWrite(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var snapshots [][]domain.Product
	cancel := store.SubscribeProducts(func(products []domain.Product) {
		snapshots = append(snapshots, products)
	})
	defer cancel()
	require.Len(t, snapshots, 1)

	_, err := store.CreateProduct(ctx, domain.Product{Name: "Ring", Category: domain.CategoryRings})
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[1], 1)
}
