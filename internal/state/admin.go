package state

import (
	"crypto/subtle"
	"time"

	"github.com/maisonaurum/aurum/internal/domain"
)

// Login compares the supplied code against the shared admin secret. A
// wrong code raises a transient error flag that clears itself after
// LoginErrorTimeout. Authentication lives only in this session's memory.
func (s *Session) Login(code, secret string) bool {
	ok := subtle.ConstantTimeCompare([]byte(code), []byte(secret)) == 1

	s.mu.Lock()
	if ok {
		s.authenticated = true
		s.loginError = false
	} else {
		s.loginError = true
		time.AfterFunc(LoginErrorTimeout, func() {
			s.mu.Lock()
			s.loginError = false
			s.mu.Unlock()
		})
	}
	s.mu.Unlock()
	return ok
}

// Logout drops the authenticated state and any unsaved draft.
func (s *Session) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.draft = nil
	s.draftNew = false
	s.activeTab = domain.TabDashboard
	s.mu.Unlock()
}

// Authenticated reports the admin gate state.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// LoginError reports whether the transient failed-login indicator is up.
func (s *Session) LoginError() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginError
}

// SetTab switches the active CMS panel. Switching never discards a draft;
// saves are immediate and field-level, so there is nothing batched to lose.
func (s *Session) SetTab(t domain.AdminTab) {
	s.mu.Lock()
	s.activeTab = t
	s.mu.Unlock()
}

// Tab returns the active CMS panel.
func (s *Session) Tab() domain.AdminTab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

// BeginEdit copies a projection product into a local draft. The draft is
// the only thing the editor mutates; the projection stays untouched until
// a save round-trips through the gateway and comes back as a snapshot.
func (s *Session) BeginEdit(p domain.Product) {
	materials := make(domain.Materials, len(p.Materials))
	copy(materials, p.Materials)
	p.Materials = materials

	s.mu.Lock()
	s.draft = &p
	s.draftNew = false
	s.mu.Unlock()
}

// BeginCreate opens a draft for a new product. The draft carries no id;
// the store assigns one on create.
func (s *Session) BeginCreate() {
	s.mu.Lock()
	s.draft = &domain.Product{
		Name:      "New Artifact",
		Category:  domain.CategoryRings,
		Image:     "https://picsum.photos/800/800",
		Materials: domain.Materials{},
		IsNew:     true,
	}
	s.draftNew = true
	s.mu.Unlock()
}

// UpdateDraft applies a field mask to the open draft, if any.
func (s *Session) UpdateDraft(patch domain.ProductPatch) {
	s.mu.Lock()
	if s.draft != nil {
		patch.Apply(s.draft)
	}
	s.mu.Unlock()
}

// Draft returns a copy of the open draft and whether it is a new product.
func (s *Session) Draft() (domain.Product, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return domain.Product{}, false, false
	}
	return *s.draft, s.draftNew, true
}

// DraftID returns the id of the product being edited, empty for a new one.
func (s *Session) DraftID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return ""
	}
	return s.draft.ID
}

// ClearDraft closes the editor without saving.
func (s *Session) ClearDraft() {
	s.mu.Lock()
	s.draft = nil
	s.draftNew = false
	s.mu.Unlock()
}

// ClearDraftIf closes the editor when it points at the given id. Callers
// invoke this after a delete so the editor never holds a dangling draft.
func (s *Session) ClearDraftIf(id string) {
	s.mu.Lock()
	if s.draft != nil && s.draft.ID == id {
		s.draft = nil
		s.draftNew = false
	}
	s.mu.Unlock()
}
