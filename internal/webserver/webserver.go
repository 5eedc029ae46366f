// Package webserver hosts the echo HTTP server and binds every request to
// its session state container.
package webserver

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/maisonaurum/aurum/config"
	"github.com/maisonaurum/aurum/internal/audit"
	"github.com/maisonaurum/aurum/internal/gateway"
	"github.com/maisonaurum/aurum/internal/state"
)

const SessionCookie = "aurum_sid"

// Deps are the collaborators handlers reach through the request context.
type Deps struct {
	Config     *config.AppConfig
	Projection *state.Projection
	Gateway    *gateway.Gateway
	Sessions   *state.Manager
	Audit      *audit.Logger
}

var server *WebServer

// WebServer wraps the echo instance and the shared dependencies.
type WebServer struct {
	root *echo.Echo
	deps Deps
}

// Init builds the global web server.
func Init(deps Deps) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Use(middleware.Recover())
	e.Use(sessionMiddleware(deps))

	server = &WebServer{root: e, deps: deps}
	return server
}

// Instance returns the global web server.
func Instance() *WebServer { return server }

// Echo exposes the underlying echo instance, mainly for tests.
func (s *WebServer) Echo() *echo.Echo { return s.root }

// Listen starts serving until the listener fails.
func (s *WebServer) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.deps.Config.Web.Host, s.deps.Config.Web.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	err := s.root.Start(addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown closes the listener.
func (s *WebServer) Shutdown() {
	_ = s.root.Close()
}

// jsonSerializer plugs json-iterator into echo.
type jsonSerializer struct{}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

// sessionMiddleware resolves or creates the visitor session and exposes
// the shared dependencies to handlers.
func sessionMiddleware(deps Deps) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				sid = cookie.Value
			}
			sess := deps.Sessions.GetOrCreate(sid)
			if sess.ID != sid {
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(ctxSession, sess)
			c.Set(ctxProjection, deps.Projection)
			c.Set(ctxGateway, deps.Gateway)
			c.Set(ctxConfig, deps.Config)
			c.Set(ctxAudit, deps.Audit)
			return next(c)
		}
	}
}

// adminGate rejects requests from sessions that have not passed the access
// code check. The login route itself is exempt.
func adminGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.HasSuffix(c.Path(), "/login") || strings.HasSuffix(c.Path(), "/status") {
			return next(c)
		}
		if !GetSession(c).Authenticated() {
			return Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Admin authentication required", nil)
		}
		return next(c)
	}
}

// ShopGET registers a storefront route.
func ShopGET(path string, h echo.HandlerFunc) {
	server.root.GET("/api/shop"+path, h)
}

func ShopPOST(path string, h echo.HandlerFunc) {
	server.root.POST("/api/shop"+path, h)
}

func ShopDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE("/api/shop"+path, h)
}

// AdminGET registers a gated admin route.
func AdminGET(path string, h echo.HandlerFunc) {
	server.root.GET("/api/admin"+path, h, adminGate)
}

func AdminPOST(path string, h echo.HandlerFunc) {
	server.root.POST("/api/admin"+path, h, adminGate)
}

func AdminPUT(path string, h echo.HandlerFunc) {
	server.root.PUT("/api/admin"+path, h, adminGate)
}

func AdminDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE("/api/admin"+path, h, adminGate)
}
