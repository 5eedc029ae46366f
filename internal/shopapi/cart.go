package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maisonaurum/aurum/internal/webserver"
)

func registerCartRoutes() {
	webserver.ShopGET("/cart", getCart)
	webserver.ShopPOST("/cart/items", addCartItem)
	webserver.ShopDELETE("/cart/items/:id", removeCartItem)
	webserver.ShopPOST("/cart/toggle", toggleCart)
}

func cartBody(c echo.Context) map[string]interface{} {
	sess := webserver.GetSession(c)
	return map[string]interface{}{
		"items": sess.CartItems(),
		"total": sess.CartTotal(),
		"count": sess.CartCount(),
		"open":  sess.CartOpen(),
	}
}

func getCart(c echo.Context) error {
	return webserver.OK(c, cartBody(c))
}

// addCartItem snapshots the product out of the projection and adds one
// unit. The cart keeps that snapshot; nothing the CMS does afterwards can
// change a line already in the cart.
func addCartItem(c echo.Context) error {
	var payload struct {
		ID string `json:"id"`
	}
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}

	p, ok := webserver.GetProjection(c).Product(payload.ID)
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	webserver.GetSession(c).AddToCart(p)
	return webserver.OK(c, cartBody(c))
}

// removeCartItem drops the whole line for the id, regardless of quantity.
// Removing an id that is not in the cart is a no-op, not an error.
func removeCartItem(c echo.Context) error {
	webserver.GetSession(c).RemoveFromCart(c.Param("id"))
	return webserver.OK(c, cartBody(c))
}

func toggleCart(c echo.Context) error {
	open := webserver.GetSession(c).ToggleCart()
	return webserver.OK(c, map[string]interface{}{"open": open})
}
