package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/maisonaurum/aurum/internal/domain"
	"github.com/maisonaurum/aurum/internal/webserver"
)

type loginPayload struct {
	Code string `json:"code" validate:"required"`
}

func registerAuthRoutes() {
	webserver.AdminPOST("/login", adminLogin)
	webserver.AdminPOST("/logout", adminLogout)
	webserver.AdminGET("/status", adminStatus)
	webserver.AdminPOST("/tab", adminSetTab)
}

// adminLogin compares the submitted code against the shared static secret.
// This is a development-grade gate: no hashing, no rate limiting, no
// session expiry, state held only in session memory.
func adminLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", err.Error())
	}

	sess := webserver.GetSession(c)
	secret := webserver.GetConfig(c).Web.Secret
	if !sess.Login(payload.Code, secret) {
		zap.L().Warn("admin login rejected", zap.String("session", sess.ID))
		return webserver.Fail(c, http.StatusUnauthorized, "INVALID_CODE", "Invalid security credentials", nil)
	}

	zap.L().Info("admin authenticated", zap.String("session", sess.ID))
	return webserver.OK(c, map[string]interface{}{"authenticated": true})
}

func adminLogout(c echo.Context) error {
	webserver.GetSession(c).Logout()
	return webserver.OK(c, map[string]interface{}{"authenticated": false})
}

// adminStatus reports the session's gate state plus the write capability
// flag; the UI uses the flag to disable write affordances in degraded mode
// instead of letting writes silently vanish.
func adminStatus(c echo.Context) error {
	sess := webserver.GetSession(c)
	return webserver.OK(c, map[string]interface{}{
		"authenticated": sess.Authenticated(),
		"login_error":   sess.LoginError(),
		"tab":           sess.Tab(),
		"can_write":     webserver.GetGateway(c).CanWrite(),
		"degraded":      webserver.GetProjection(c).Degraded(),
	})
}

func adminSetTab(c echo.Context) error {
	var payload struct {
		Tab domain.AdminTab `json:"tab"`
	}
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if !domain.ValidAdminTab(payload.Tab) {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown tab", payload.Tab)
	}
	webserver.GetSession(c).SetTab(payload.Tab)
	return webserver.OK(c, map[string]interface{}{"tab": payload.Tab})
}
