package state

import (
	"sync"
	"time"

	"github.com/maisonaurum/aurum/internal/domain"
)

// LoginErrorTimeout is how long a failed admin login keeps the transient
// error indicator raised.
const LoginErrorTimeout = 2 * time.Second

// Session is one visitor's local state: navigation, cart, and the admin
// sub-state. None of it ever round-trips through the document store; it is
// destroyed with the session.
type Session struct {
	ID string

	mu       sync.Mutex
	lastSeen time.Time

	// navigation
	view              domain.View
	selectedProductID string

	// cart
	cart     []domain.CartItem
	cartOpen bool

	// admin
	authenticated bool
	loginError    bool
	activeTab     domain.AdminTab
	draft         *domain.Product
	draftNew      bool
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		lastSeen:  time.Now(),
		view:      domain.ViewHome,
		activeTab: domain.TabDashboard,
	}
}

// Touch marks the session as recently used.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// IdleSince reports the last activity time.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SetView switches the current view unconditionally. There is no guard and
// no history stack.
func (s *Session) SetView(v domain.View) {
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
}

// View returns the current view.
func (s *Session) View() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SelectProduct stores the selected-product pointer. The id is not checked
// against the catalog; resolving a missing id is the reader's concern.
func (s *Session) SelectProduct(id string) {
	s.mu.Lock()
	s.selectedProductID = id
	s.mu.Unlock()
}

// SelectedProductID returns the current pointer, possibly empty.
func (s *Session) SelectedProductID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedProductID
}

// ClearSelection drops the selected-product pointer.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	s.selectedProductID = ""
	s.mu.Unlock()
}
