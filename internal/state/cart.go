package state

import "github.com/maisonaurum/aurum/internal/domain"

// AddToCart adds one unit of a product. An existing line item is
// incremented in place, keeping its position; a new item is appended in
// first-addition order. The stored product data is a snapshot taken now:
// later catalog edits must never shift a price already in the cart.
func (s *Session) AddToCart(p domain.Product) {
	materials := make(domain.Materials, len(p.Materials))
	copy(materials, p.Materials)
	p.Materials = materials

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == p.ID {
			s.cart[i].Quantity++
			return
		}
	}
	s.cart = append(s.cart, domain.CartItem{Product: p, Quantity: 1})
}

// RemoveFromCart drops the whole line item for id, whatever its quantity.
// There is no decrement operation.
func (s *Session) RemoveFromCart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cart[:0]
	for _, item := range s.cart {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.cart = kept
}

// CartItems returns a copy of the cart lines in addition order.
func (s *Session) CartItems() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// CartTotal recomputes the total on every call; it is never cached.
func (s *Session) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.cart {
		total += item.Subtotal()
	}
	return total
}

// CartCount returns the number of units across all lines.
func (s *Session) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.cart {
		count += item.Quantity
	}
	return count
}

// ToggleCart flips the drawer open/closed, independent of contents.
func (s *Session) ToggleCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = !s.cartOpen
	return s.cartOpen
}

// CartOpen reports the drawer state.
func (s *Session) CartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartOpen
}
