package adminapi

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

// apiClient drives the echo instance like a browser, carrying the session
// cookie between requests.
type apiClient struct {
	t   *testing.T
	e   *echo.Echo
	sid string
}

func newTestAPI(t *testing.T) (*apiClient, *docstore.MemStore) {
	t.Helper()
	store := docstore.NewMemStore()
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
	return &apiClient{t: t, e: webserver.Instance().Echo()}, store
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

func (c *apiClient) login() {
	c.t.Helper()
	rec, _ := c.do(http.MethodPost, "/api/admin/login", map[string]string{"code": "12345"})
	require.Equal(c.t, http.StatusOK, rec.Code)
}

func TestAdminGateRequiresLogin(t *testing.T) {
	c, _ := newTestAPI(t)
	rec, body := c.do(http.MethodGet, "/api/admin/products", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestStatusIsReachableBeforeLogin(t *testing.T) {
	c, _ := newTestAPI(t)
	rec, body := c.do(http.MethodGet, "/api/admin/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["authenticated"])
	assert.Equal(t, true, data["can_write"])
}

func TestLoginFlow(t *testing.T) {
	c, _ := newTestAPI(t)

	rec, _ := c.do(http.MethodPost, "/api/admin/login", map[string]string{"code": "99999"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The failed attempt raises the transient error flag.
	_, body := c.do(http.MethodGet, "/api/admin/status", nil)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["login_error"])
	assert.Equal(t, false, data["authenticated"])

	c.login()
	_, body = c.do(http.MethodGet, "/api/admin/status", nil)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, true, data["authenticated"])
}

func TestProductCRUDOverAPI(t *testing.T) {
	c, _ := newTestAPI(t)
	c.login()

	rec, body := c.do(http.MethodPost, "/api/admin/products", map[string]interface{}{
		"name":      "Test Ring",
		"price":     1500.0,
		"category":  domain.CategoryRings,
		"materials": []string{"Gold"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	created := body["data"].(map[string]interface{})
	id := created["id"].(string)
	require.NotEmpty(t, id)

	rec, body = c.do(http.MethodGet, "/api/admin/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := body["data"].(map[string]interface{})
	assert.EqualValues(t, 1, page["total"])

	rec, _ = c.do(http.MethodPut, "/api/admin/products/"+id, map[string]interface{}{"price": 1800.0})
	require.Equal(t, http.StatusOK, rec.Code)
	_, body = c.do(http.MethodGet, "/api/admin/products/"+id, nil)
	product := body["data"].(map[string]interface{})
	assert.EqualValues(t, 1800, product["price"])

	rec, _ = c.do(http.MethodDelete, "/api/admin/products/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = c.do(http.MethodGet, "/api/admin/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductValidationOverAPI(t *testing.T) {
	c, _ := newTestAPI(t)
	c.login()

	rec, _ := c.do(http.MethodPost, "/api/admin/products", map[string]interface{}{
		"name": "Bad", "category": "Bracelets",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = c.do(http.MethodPost, "/api/admin/products", map[string]interface{}{
		"name": "", "category": domain.CategoryRings,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftSaveFlow(t *testing.T) {
	c, store := newTestAPI(t)
	c.login()

	rec, body := c.do(http.MethodPost, "/api/admin/draft", map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_new"])

	rec, _ = c.do(http.MethodPut, "/api/admin/draft", map[string]interface{}{
		"name": "Drafted Ring", "price": 900.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = c.do(http.MethodPost, "/api/admin/draft/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	created := body["data"].(map[string]interface{})
	assert.NotEmpty(t, created["id"])

	products, err := store.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Drafted Ring", products[0].Name)

	// Saving closed the draft.
	rec, _ = c.do(http.MethodGet, "/api/admin/draft", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentUpdateOverAPI(t *testing.T) {
	c, _ := newTestAPI(t)
	c.login()

	rec, _ := c.do(http.MethodPut, "/api/admin/content", map[string]string{
		"heroTitle": "New Season",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	_, body := c.do(http.MethodGet, "/api/admin/content", nil)
	cfg := body["data"].(map[string]interface{})
	assert.Equal(t, "New Season", cfg["heroTitle"])
}

func TestEmptyContentUpdateRejected(t *testing.T) {
	c, _ := newTestAPI(t)
	c.login()
	rec, _ := c.do(http.MethodPut, "/api/admin/content", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportProductsCSV(t *testing.T) {
	c, store := newTestAPI(t)
	_, err := store.CreateProduct(context.Background(), domain.Product{
		Name: "Export Ring", Category: domain.CategoryRings, Price: 100,
	})
	require.NoError(t, err)
	c.login()

	rec, _ := c.do(http.MethodGet, "/api/admin/export/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	assert.Contains(t, rec.Body.String(), "Export Ring")
}

func TestDashboardSummary(t *testing.T) {
	c, store := newTestAPI(t)
	ctx := context.Background()
	_, err := store.CreateProduct(ctx, domain.Product{Name: "A", Category: domain.CategoryRings, Price: 100, IsNew: true})
	require.NoError(t, err)
	_, err = store.CreateProduct(ctx, domain.Product{Name: "B", Category: domain.CategoryWatches, Price: 300})
	require.NoError(t, err)
	c.login()

	rec, body := c.do(http.MethodGet, "/api/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 2, data["product_count"])
	assert.EqualValues(t, 400, data["inventory_value"])
	assert.EqualValues(t, 200, data["average_price"])
	assert.EqualValues(t, 300, data["highest_price"])
	assert.EqualValues(t, 1, data["new_arrivals"])
	assert.Equal(t, true, data["can_write"])
}
