package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("Bracelets"))
	assert.False(t, ValidCategory(""))
}

func TestProductPatchFieldsAndApply(t *testing.T) {
	name := "Renamed"
	price := 950.0
	materials := []string{"Silver", "Onyx"}
	isNew := false
	patch := ProductPatch{Name: &name, Price: &price, Materials: &materials, IsNew: &isNew}

	fields := patch.Fields()
	assert.Equal(t, "Renamed", fields["name"])
	assert.Equal(t, 950.0, fields["price"])
	assert.Equal(t, Materials{"Silver", "Onyx"}, fields["materials"])
	assert.Equal(t, false, fields["is_new"])
	assert.NotContains(t, fields, "category")

	target := Product{Name: "Old", Price: 100, Category: CategoryRings, Description: "keep", IsNew: true}
	patch.Apply(&target)
	assert.Equal(t, "Renamed", target.Name)
	assert.Equal(t, 950.0, target.Price)
	assert.Equal(t, "keep", target.Description)
	assert.Equal(t, CategoryRings, target.Category)
	assert.False(t, target.IsNew)
}

func TestProductPatchValidate(t *testing.T) {
	bad := -1.0
	assert.Error(t, ProductPatch{Price: &bad}.Validate())

	category := "Bracelets"
	assert.Error(t, ProductPatch{Category: &category}.Validate())

	good := 10.0
	assert.NoError(t, ProductPatch{Price: &good}.Validate())
	assert.NoError(t, ProductPatch{}.Validate())
	assert.True(t, ProductPatch{}.Empty())
}

func TestMaterialsRoundTrip(t *testing.T) {
	m := Materials{"18k Gold", "Tsavorite"}
	value, err := m.Value()
	require.NoError(t, err)

	var decoded Materials
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, m, decoded)

	var fromNil Materials
	require.NoError(t, fromNil.Scan(nil))
	assert.Equal(t, Materials{}, fromNil)
}

func TestSiteConfigPatchValues(t *testing.T) {
	title := "New Title"
	patch := SiteConfigPatch{HeroTitle: &title}
	assert.False(t, patch.Empty())
	assert.Equal(t, map[string]string{"heroTitle": "New Title"}, patch.Values())

	var cfg SiteConfig
	patch.Apply(&cfg)
	assert.Equal(t, "New Title", cfg.HeroTitle)

	assert.True(t, SiteConfigPatch{}.Empty())
}

func TestCartItemSubtotal(t *testing.T) {
	item := CartItem{Product: Product{Price: 250}, Quantity: 3}
	assert.Equal(t, 750.0, item.Subtotal())
}

func TestValidViewAndTab(t *testing.T) {
	assert.True(t, ValidView(ViewCheckout))
	assert.False(t, ValidView(View("GALLERY")))
	assert.True(t, ValidAdminTab(TabContent))
	assert.False(t, ValidAdminTab(AdminTab("SETTINGS")))
}
