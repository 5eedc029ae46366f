package domain

// CartItem is a line item in a session cart. It embeds a snapshot of the
// product taken at add time; later catalog edits or deletes never reach
// items already in a cart, so a checkout total cannot shift under the buyer.
type CartItem struct {
	Product
	Quantity int `json:"quantity"` // always >= 1
}

// Subtotal is price times quantity for this line.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// View names the storefront screens.
type View string

const (
	ViewHome     View = "HOME"
	ViewShop     View = "SHOP"
	ViewProduct  View = "PRODUCT"
	ViewAdmin    View = "ADMIN"
	ViewCheckout View = "CHECKOUT"
	ViewAbout    View = "ABOUT"
)

// ValidView reports whether v names a known screen.
func ValidView(v View) bool {
	switch v {
	case ViewHome, ViewShop, ViewProduct, ViewAdmin, ViewCheckout, ViewAbout:
		return true
	}
	return false
}

// AdminTab names the CMS panels.
type AdminTab string

const (
	TabDashboard AdminTab = "DASHBOARD"
	TabContent   AdminTab = "CMS_CONTENT"
	TabProducts  AdminTab = "CMS_PRODUCTS"
)

// ValidAdminTab reports whether t names a known panel.
func ValidAdminTab(t AdminTab) bool {
	switch t {
	case TabDashboard, TabContent, TabProducts:
		return true
	}
	return false
}
