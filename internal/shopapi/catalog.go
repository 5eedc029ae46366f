package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maisonaurum/aurum/internal/webserver"
)

func registerCatalogRoutes() {
	webserver.ShopGET("/catalog", getCatalog)
	webserver.ShopGET("/catalog/:id", getCatalogProduct)
	webserver.ShopGET("/content", getSiteContent)
}

// getCatalog lists the catalog from the projection, optionally filtered by
// category. While the first snapshot is still pending the client gets an
// explicit loading response instead of an empty catalog, so "no products
// yet" is never confused with "no products".
func getCatalog(c echo.Context) error {
	proj := webserver.GetProjection(c)
	if proj.Loading() {
		return webserver.OK(c, map[string]interface{}{"loading": true, "products": []interface{}{}})
	}
	products := proj.ProductsByCategory(c.QueryParam("category"))
	return webserver.OK(c, map[string]interface{}{
		"loading":  false,
		"degraded": proj.Degraded(),
		"products": products,
	})
}

// getCatalogProduct resolves one product. A miss is served as 404 with a
// structured body rather than an error page; the document may simply have
// been deleted since the visitor followed the link.
func getCatalogProduct(c echo.Context) error {
	p, ok := webserver.GetProjection(c).Product(c.Param("id"))
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return webserver.OK(c, p)
}

// getSiteContent serves the site configuration driving the storefront
// chrome: hero, story, contact and announcement copy.
func getSiteContent(c echo.Context) error {
	proj := webserver.GetProjection(c)
	return webserver.OK(c, map[string]interface{}{
		"config":   proj.Config(),
		"degraded": proj.Degraded(),
	})
}
