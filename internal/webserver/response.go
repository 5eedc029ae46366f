package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/maisonaurum/aurum/config"
	"github.com/maisonaurum/aurum/internal/audit"
	"github.com/maisonaurum/aurum/internal/gateway"
	"github.com/maisonaurum/aurum/internal/state"
)

const (
	ctxSession    = "session"
	ctxProjection = "projection"
	ctxGateway    = "gateway"
	ctxConfig     = "config"
	ctxAudit      = "audit"
)

// GetSession returns the request's session state container.
func GetSession(c echo.Context) *state.Session {
	return c.Get(ctxSession).(*state.Session)
}

// GetProjection returns the shared catalog/config projection.
func GetProjection(c echo.Context) *state.Projection {
	return c.Get(ctxProjection).(*state.Projection)
}

// GetGateway returns the mutation gateway.
func GetGateway(c echo.Context) *gateway.Gateway {
	return c.Get(ctxGateway).(*gateway.Gateway)
}

// GetConfig returns the application configuration.
func GetConfig(c echo.Context) *config.AppConfig {
	return c.Get(ctxConfig).(*config.AppConfig)
}

// GetAudit returns the operator audit log, possibly nil.
func GetAudit(c echo.Context) *audit.Logger {
	l, _ := c.Get(ctxAudit).(*audit.Logger)
	return l
}

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

type pagedData struct {
	Rows     interface{} `json:"rows"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// OK writes a success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, apiResponse{Success: true, Data: data})
}

// Fail writes an error envelope with the given status.
func Fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, apiResponse{
		Success: false,
		Error:   &apiError{Code: code, Message: message, Detail: detail},
	})
}

// Paged writes a success envelope with pagination metadata.
func Paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return OK(c, pagedData{Rows: rows, Total: total, Page: page, PageSize: pageSize})
}

// ParsePagination reads page/perPage query parameters with defaults.
func ParsePagination(c echo.Context) (page, pageSize int) {
	page = cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize = cast.ToInt(c.QueryParam("perPage"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}
