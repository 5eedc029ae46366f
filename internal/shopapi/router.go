// Package shopapi exposes the public storefront endpoints: catalog reads,
// site content, the session cart and view navigation.
package shopapi

// InitRouter registers all storefront routes on the web server.
func InitRouter() {
	registerCatalogRoutes()
	registerCartRoutes()
	registerNavigationRoutes()
}
