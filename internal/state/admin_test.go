package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonaurum/aurum/internal/domain"
)

const testSecret = "12345"

func TestLoginWithCorrectCode(t *testing.T) {
	sess := NewManager().Create()
	assert.False(t, sess.Authenticated())

	assert.True(t, sess.Login(testSecret, testSecret))
	assert.True(t, sess.Authenticated())
	assert.False(t, sess.LoginError())
}

func TestLoginWithWrongCodeRaisesTransientError(t *testing.T) {
	sess := NewManager().Create()

	assert.False(t, sess.Login("00000", testSecret))
	assert.False(t, sess.Authenticated())
	assert.True(t, sess.LoginError())

	// The indicator clears itself after the timeout.
	assert.Eventually(t, func() bool { return !sess.LoginError() },
		LoginErrorTimeout+time.Second, 50*time.Millisecond)
}

func TestSuccessfulLoginClearsError(t *testing.T) {
	sess := NewManager().Create()
	sess.Login("wrong", testSecret)
	require.True(t, sess.LoginError())

	sess.Login(testSecret, testSecret)
	assert.False(t, sess.LoginError())
	assert.True(t, sess.Authenticated())
}

func TestLogoutResetsAdminState(t *testing.T) {
	sess := NewManager().Create()
	sess.Login(testSecret, testSecret)
	sess.SetTab(domain.TabProducts)
	sess.BeginCreate()

	sess.Logout()
	assert.False(t, sess.Authenticated())
	assert.Equal(t, domain.TabDashboard, sess.Tab())
	_, _, ok := sess.Draft()
	assert.False(t, ok)
}

func TestBeginEditCopiesProduct(t *testing.T) {
	sess := NewManager().Create()
	source := testProduct("p1", "Ring", 500)
	sess.BeginEdit(source)

	name := "Renamed"
	sess.UpdateDraft(domain.ProductPatch{Name: &name})

	draft, isNew, ok := sess.Draft()
	require.True(t, ok)
	assert.False(t, isNew)
	assert.Equal(t, "Renamed", draft.Name)
	// The source product is untouched; only the draft changed.
	assert.Equal(t, "Ring", source.Name)
}

func TestBeginCreateHasNoID(t *testing.T) {
	sess := NewManager().Create()
	sess.BeginCreate()

	draft, isNew, ok := sess.Draft()
	require.True(t, ok)
	assert.True(t, isNew)
	assert.Empty(t, draft.ID)
	assert.Equal(t, domain.CategoryRings, draft.Category)
	assert.True(t, draft.IsNew)
}

func TestClearDraftIf(t *testing.T) {
	sess := NewManager().Create()
	sess.BeginEdit(testProduct("p1", "Ring", 500))

	sess.ClearDraftIf("other")
	assert.Equal(t, "p1", sess.DraftID())

	sess.ClearDraftIf("p1")
	assert.Empty(t, sess.DraftID())
}

func TestViewTransitionsAreUnguarded(t *testing.T) {
	sess := NewManager().Create()
	assert.Equal(t, domain.ViewHome, sess.View())

	sess.SetView(domain.ViewCheckout)
	assert.Equal(t, domain.ViewCheckout, sess.View())

	// Any view can follow any other; nothing validates the order.
	sess.SetView(domain.ViewAdmin)
	assert.Equal(t, domain.ViewAdmin, sess.View())
}

func TestSelectProductKeepsUnvalidatedPointer(t *testing.T) {
	sess := NewManager().Create()
	sess.SelectProduct("ghost-id")
	assert.Equal(t, "ghost-id", sess.SelectedProductID())

	sess.ClearSelection()
	assert.Empty(t, sess.SelectedProductID())
}

func TestManagerPrune(t *testing.T) {
	m := NewManager()
	stale := m.Create()
	fresh := m.Create()

	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-3 * time.Hour)
	stale.mu.Unlock()

	removed := m.Prune(2 * time.Hour)
	assert.Equal(t, 1, removed)
	_, ok := m.Get(stale.ID)
	assert.False(t, ok)
	_, ok = m.Get(fresh.ID)
	assert.True(t, ok)
}
