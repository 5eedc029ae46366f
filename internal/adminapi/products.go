package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maisonaurum/aurum/internal/domain"
	"github.com/maisonaurum/aurum/internal/webserver"
)

type productPayload struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Materials   []string `json:"materials"`
	IsNew       bool     `json:"isNew"`
}

// registerProductRoutes registers the inventory editor endpoints.
func registerProductRoutes() {
	webserver.AdminGET("/products", listProducts)
	webserver.AdminGET("/products/:id", getProduct)
	webserver.AdminPOST("/products", createProduct)
	webserver.AdminPUT("/products/:id", updateProduct)
	webserver.AdminDELETE("/products/:id", deleteProduct)

	webserver.AdminGET("/draft", getDraft)
	webserver.AdminPOST("/draft", beginDraft)
	webserver.AdminPUT("/draft", patchDraft)
	webserver.AdminDELETE("/draft", discardDraft)
	webserver.AdminPOST("/draft/save", saveDraft)
}

// listProducts serves the inventory list from the local projection. Reads
// never hit the remote store directly.
func listProducts(c echo.Context) error {
	page, pageSize := webserver.ParsePagination(c)
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))

	all := webserver.GetProjection(c).Products()
	filtered := all[:0:0]
	for _, p := range all {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) {
			filtered = append(filtered, p)
		}
	}

	total := int64(len(filtered))
	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return webserver.Paged(c, filtered[start:end], total, page, pageSize)
}

func getProduct(c echo.Context) error {
	p, ok := webserver.GetProjection(c).Product(c.Param("id"))
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return webserver.OK(c, p)
}

func createProduct(c echo.Context) error {
	gw := webserver.GetGateway(c)
	if !gw.CanWrite() {
		return webserver.Fail(c, http.StatusServiceUnavailable, "READ_ONLY", "Backend unavailable, writes are disabled", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if !domain.ValidCategory(payload.Category) {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown category", payload.Category)
	}
	if payload.Price < 0 {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must not be negative", nil)
	}

	created, err := gw.CreateProduct(c.Request().Context(), domain.Product{
		Name:        payload.Name,
		Price:       payload.Price,
		Category:    payload.Category,
		Image:       strings.TrimSpace(payload.Image),
		Description: payload.Description,
		Materials:   domain.Materials(payload.Materials),
		IsNew:       payload.IsNew,
	})
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Failed to create product", err.Error())
	}
	return webserver.OK(c, created)
}

func updateProduct(c echo.Context) error {
	gw := webserver.GetGateway(c)
	if !gw.CanWrite() {
		return webserver.Fail(c, http.StatusServiceUnavailable, "READ_ONLY", "Backend unavailable, writes are disabled", nil)
	}

	var patch domain.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse update", err.Error())
	}
	if err := patch.Validate(); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	id := c.Param("id")
	if err := gw.UpdateProduct(c.Request().Context(), id, patch); err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Failed to update product", err.Error())
	}
	return webserver.OK(c, map[string]interface{}{"id": id})
}

func deleteProduct(c echo.Context) error {
	gw := webserver.GetGateway(c)
	if !gw.CanWrite() {
		return webserver.Fail(c, http.StatusServiceUnavailable, "READ_ONLY", "Backend unavailable, writes are disabled", nil)
	}

	id := c.Param("id")
	if err := gw.DeleteProduct(c.Request().Context(), id); err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Failed to delete product", err.Error())
	}
	// The gateway knows nothing about editor state; dropping a dangling
	// draft is this layer's responsibility.
	webserver.GetSession(c).ClearDraftIf(id)
	return webserver.OK(c, map[string]interface{}{"id": id})
}

func getDraft(c echo.Context) error {
	draft, isNew, ok := webserver.GetSession(c).Draft()
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "NO_DRAFT", "No product draft open", nil)
	}
	return webserver.OK(c, map[string]interface{}{"draft": draft, "is_new": isNew})
}

// beginDraft opens an editor draft: a copy of an existing product when an
// id is given, a fresh template otherwise. The draft is session-local;
// incoming snapshots never touch it.
func beginDraft(c echo.Context) error {
	var payload struct {
		ID string `json:"id"`
	}
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}

	sess := webserver.GetSession(c)
	if payload.ID == "" {
		sess.BeginCreate()
	} else {
		p, ok := webserver.GetProjection(c).Product(payload.ID)
		if !ok {
			return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		sess.BeginEdit(p)
	}
	draft, isNew, _ := sess.Draft()
	return webserver.OK(c, map[string]interface{}{"draft": draft, "is_new": isNew})
}

func patchDraft(c echo.Context) error {
	var patch domain.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse update", err.Error())
	}
	sess := webserver.GetSession(c)
	sess.UpdateDraft(patch)
	draft, isNew, ok := sess.Draft()
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "NO_DRAFT", "No product draft open", nil)
	}
	return webserver.OK(c, map[string]interface{}{"draft": draft, "is_new": isNew})
}

func discardDraft(c echo.Context) error {
	webserver.GetSession(c).ClearDraft()
	return webserver.OK(c, nil)
}

// saveDraft commits the open draft through the gateway: create for a new
// product, masked update for an existing one. The projection catches up
// when the write's snapshot arrives.
func saveDraft(c echo.Context) error {
	sess := webserver.GetSession(c)
	draft, isNew, ok := sess.Draft()
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "NO_DRAFT", "No product draft open", nil)
	}

	gw := webserver.GetGateway(c)
	if !gw.CanWrite() {
		return webserver.Fail(c, http.StatusServiceUnavailable, "READ_ONLY", "Backend unavailable, writes are disabled", nil)
	}

	if isNew {
		created, err := gw.CreateProduct(c.Request().Context(), draft)
		if err != nil {
			return webserver.Fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Failed to create product", err.Error())
		}
		sess.ClearDraft()
		return webserver.OK(c, created)
	}

	materials := []string(draft.Materials)
	patch := domain.ProductPatch{
		Name:        &draft.Name,
		Price:       &draft.Price,
		Category:    &draft.Category,
		Image:       &draft.Image,
		Description: &draft.Description,
		Materials:   &materials,
		IsNew:       &draft.IsNew,
	}
	if err := gw.UpdateProduct(c.Request().Context(), draft.ID, patch); err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Failed to update product", err.Error())
	}
	sess.ClearDraft()
	return webserver.OK(c, map[string]interface{}{"id": draft.ID})
}
