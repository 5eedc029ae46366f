// Package adminapi exposes the gated CMS endpoints: access gate, content
// editor, inventory editor, media uploads and the dashboard.
package adminapi

// InitRouter registers all admin routes on the web server.
func InitRouter() {
	registerAuthRoutes()
	registerProductRoutes()
	registerContentRoutes()
	registerDashboardRoutes()
	registerUploadRoutes()
	registerExportRoutes()
}
