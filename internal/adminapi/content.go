package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maisonaurum/aurum/internal/domain"
	"github.com/maisonaurum/aurum/internal/webserver"
)

func registerContentRoutes() {
	webserver.AdminGET("/content", getContent)
	webserver.AdminPUT("/content", updateContent)
}

// getContent serves the projected site configuration document.
func getContent(c echo.Context) error {
	return webserver.OK(c, webserver.GetProjection(c).Config())
}

// updateContent submits a field-level partial update against the singleton
// document. Saves are immediate; there is no batch commit.
func updateContent(c echo.Context) error {
	gw := webserver.GetGateway(c)
	if !gw.CanWrite() {
		return webserver.Fail(c, http.StatusServiceUnavailable, "READ_ONLY", "Backend unavailable, writes are disabled", nil)
	}

	var patch domain.SiteConfigPatch
	if err := c.Bind(&patch); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse update", err.Error())
	}
	if patch.Empty() {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "No fields to update", nil)
	}

	if err := gw.UpdateSiteConfig(c.Request().Context(), patch); err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Failed to update site content", err.Error())
	}
	return webserver.OK(c, map[string]interface{}{"updated": len(patch.Values())})
}
