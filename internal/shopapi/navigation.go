package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maisonaurum/aurum/internal/domain"
	"github.com/maisonaurum/aurum/internal/webserver"
)

func registerNavigationRoutes() {
	webserver.ShopGET("/view", getView)
	webserver.ShopPOST("/view", setView)
	webserver.ShopPOST("/view/product", selectProduct)
}

// getView reports the session's navigation state. The selected product is
// resolved against the live catalog here, at read time: a pointer to a
// deleted product yields found=false and the client shows its not-found
// screen.
func getView(c echo.Context) error {
	sess := webserver.GetSession(c)
	body := map[string]interface{}{
		"view": sess.View(),
	}
	if id := sess.SelectedProductID(); id != "" {
		p, ok := webserver.GetProjection(c).Product(id)
		body["selected_id"] = id
		body["found"] = ok
		if ok {
			body["product"] = p
		}
	}
	return webserver.OK(c, body)
}

// setView switches screens unconditionally. There is no guard, no dirty
// check and no history stack; leaving the product screen also drops the
// selection so a stale pointer cannot leak into the next visit.
func setView(c echo.Context) error {
	var payload struct {
		View domain.View `json:"view"`
	}
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if !domain.ValidView(payload.View) {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown view", payload.View)
	}

	sess := webserver.GetSession(c)
	if payload.View != domain.ViewProduct {
		sess.ClearSelection()
	}
	sess.SetView(payload.View)
	return webserver.OK(c, map[string]interface{}{"view": payload.View})
}

// selectProduct stores the pointer and moves to the product screen. The id
// is deliberately not validated against the catalog; by the time the view
// renders the document may exist, or not, and the read path handles both.
func selectProduct(c echo.Context) error {
	var payload struct {
		ID string `json:"id"`
	}
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.ID == "" {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Product id is required", nil)
	}

	sess := webserver.GetSession(c)
	sess.SelectProduct(payload.ID)
	sess.SetView(domain.ViewProduct)
	return webserver.OK(c, map[string]interface{}{"view": domain.ViewProduct, "selected_id": payload.ID})
}
