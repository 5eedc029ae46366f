package shopapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonaurum/aurum/config"
	"github.com/maisonaurum/aurum/internal/docstore"
	"github.com/maisonaurum/aurum/internal/domain"
	"github.com/maisonaurum/aurum/internal/gateway"
	"github.com/maisonaurum/aurum/internal/state"
	"github.com/maisonaurum/aurum/internal/webserver"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type stubUploader struct{}

func (stubUploader) Upload(data []byte, mediaType string) (string, error) {
	return "https://cdn.example.com/upload.png", nil
}

type apiClient struct {
	t   *testing.T
	e   *echo.Echo
	sid string
}

func newTestAPI(t *testing.T, store docstore.Store) *apiClient {
	t.Helper()
	proj := state.NewProjection(store)
	proj.Start()
	t.Cleanup(proj.Close)

	gw, err := gateway.New(store, stubUploader{}, nil)
	require.NoError(t, err)
	t.Cleanup(gw.Close)

	cfg := &config.AppConfig{Web: config.WebConfig{Secret: "12345"}}
	webserver.Init(webserver.Deps{
		Config:     cfg,
		Projection: proj,
		Gateway:    gw,
		Sessions:   state.NewManager(),
	})
	InitRouter()
	return &apiClient{t: t, e: webserver.Instance().Echo()}
}

func (c *apiClient) do(method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if c.sid != "" {
		req.AddCookie(&http.Cookie{Name: webserver.SessionCookie, Value: c.sid})
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == webserver.SessionCookie {
			c.sid = cookie.Value
		}
	}

	var envelope map[string]interface{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	}
	return rec, envelope
}

func seedProduct(t *testing.T, store docstore.Store, name, category string, price float64) domain.Product {
	t.Helper()
	p, err := store.CreateProduct(context.Background(), domain.Product{
		Name: name, Category: category, Price: price,
	})
	require.NoError(t, err)
	return p
}

func TestCatalogListAndFilter(t *testing.T) {
	store := docstore.NewMemStore()
	seedProduct(t, store, "Ring", domain.CategoryRings, 100)
	seedProduct(t, store, "Watch", domain.CategoryWatches, 500)
	c := newTestAPI(t, store)

	rec, body := c.do(http.MethodGet, "/api/shop/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["loading"])
	assert.Len(t, data["products"], 2)

	_, body = c.do(http.MethodGet, "/api/shop/catalog?category="+domain.CategoryWatches, nil)
	data = body["data"].(map[string]interface{})
	assert.Len(t, data["products"], 1)

	_, body = c.do(http.MethodGet, "/api/shop/catalog?category=All", nil)
	data = body["data"].(map[string]interface{})
	assert.Len(t, data["products"], 2)
}

func TestProductDetailMissReturns404(t *testing.T) {
	c := newTestAPI(t, docstore.NewMemStore())
	rec, body := c.do(http.MethodGet, "/api/shop/catalog/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestSiteContent(t *testing.T) {
	store := docstore.NewMemStore()
	c := newTestAPI(t, store)

	// The projection self-heals the missing document, so the storefront
	// sees the default content immediately.
	rec, body := c.do(http.MethodGet, "/api/shop/content", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	cfg := data["config"].(map[string]interface{})
	assert.Equal(t, domain.DefaultSiteConfig().HeroTitle, cfg["heroTitle"])
}

func TestCartFlowOverAPI(t *testing.T) {
	store := docstore.NewMemStore()
	ring := seedProduct(t, store, "Ring", domain.CategoryRings, 1000)
	pendant := seedProduct(t, store, "Pendant", domain.CategoryNecklaces, 1500)
	c := newTestAPI(t, store)

	_, body := c.do(http.MethodPost, "/api/shop/cart/items", map[string]string{"id": ring.ID})
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["count"])

	c.do(http.MethodPost, "/api/shop/cart/items", map[string]string{"id": ring.ID})
	_, body = c.do(http.MethodPost, "/api/shop/cart/items", map[string]string{"id": pendant.ID})
	data = body["data"].(map[string]interface{})
	assert.EqualValues(t, 3, data["count"])
	assert.EqualValues(t, 3500, data["total"])

	// Removing drops the whole line, not one unit.
	_, body = c.do(http.MethodDelete, "/api/shop/cart/items/"+ring.ID, nil)
	data = body["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["count"])
	assert.EqualValues(t, 1500, data["total"])
}

func TestCartPriceSurvivesCatalogEdit(t *testing.T) {
	store := docstore.NewMemStore()
	ring := seedProduct(t, store, "Ring", domain.CategoryRings, 1000)
	c := newTestAPI(t, store)

	c.do(http.MethodPost, "/api/shop/cart/items", map[string]string{"id": ring.ID})

	price := 9999.0
	require.NoError(t, store.UpdateProduct(context.Background(), ring.ID, domain.ProductPatch{Price: &price}))

	_, body := c.do(http.MethodGet, "/api/shop/cart", nil)
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 1000, data["total"])
}

func TestAddUnknownProductToCart(t *testing.T) {
	c := newTestAPI(t, docstore.NewMemStore())
	rec, _ := c.do(http.MethodPost, "/api/shop/cart/items", map[string]string{"id": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartToggle(t *testing.T) {
	c := newTestAPI(t, docstore.NewMemStore())
	_, body := c.do(http.MethodPost, "/api/shop/cart/toggle", nil)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["open"])
	_, body = c.do(http.MethodPost, "/api/shop/cart/toggle", nil)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, false, data["open"])
}

func TestNavigationFlow(t *testing.T) {
	store := docstore.NewMemStore()
	ring := seedProduct(t, store, "Ring", domain.CategoryRings, 100)
	c := newTestAPI(t, store)

	_, body := c.do(http.MethodGet, "/api/shop/view", nil)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, string(domain.ViewHome), data["view"])

	rec, _ := c.do(http.MethodPost, "/api/shop/view", map[string]string{"view": "SHOP"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = c.do(http.MethodPost, "/api/shop/view", map[string]string{"view": "GALLERY"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, body = c.do(http.MethodPost, "/api/shop/view/product", map[string]string{"id": ring.ID})
	data = body["data"].(map[string]interface{})
	assert.Equal(t, string(domain.ViewProduct), data["view"])

	_, body = c.do(http.MethodGet, "/api/shop/view", nil)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, true, data["found"])
}

func TestSelectedProductResolvedAtReadTime(t *testing.T) {
	store := docstore.NewMemStore()
	ring := seedProduct(t, store, "Ring", domain.CategoryRings, 100)
	c := newTestAPI(t, store)

	c.do(http.MethodPost, "/api/shop/view/product", map[string]string{"id": ring.ID})
	require.NoError(t, store.DeleteProduct(context.Background(), ring.ID))

	// The pointer survives the delete; resolution happens on read and
	// reports the miss instead of failing.
	rec, body := c.do(http.MethodGet, "/api/shop/view", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["found"])
	assert.Equal(t, ring.ID, data["selected_id"])
}

func TestLeavingProductViewClearsSelection(t *testing.T) {
	store := docstore.NewMemStore()
	ring := seedProduct(t, store, "Ring", domain.CategoryRings, 100)
	c := newTestAPI(t, store)

	c.do(http.MethodPost, "/api/shop/view/product", map[string]string{"id": ring.ID})
	c.do(http.MethodPost, "/api/shop/view", map[string]string{"view": "HOME"})

	_, body := c.do(http.MethodGet, "/api/shop/view", nil)
	data := body["data"].(map[string]interface{})
	_, hasSelection := data["selected_id"]
	assert.False(t, hasSelection)
}
