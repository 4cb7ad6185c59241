package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forumhub/internal/session"
	"forumhub/internal/tui/config"
)

func loggedInModel(t *testing.T) Model {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{"sub": "alice"}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	store := session.NewStore(nil)
	require.NoError(t, store.Login(token))
	return *New(config.Default(), store)
}

func navKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestChatEscReturnsToPreviousView(t *testing.T) {
	m := loggedInModel(t)
	require.Equal(t, ViewHome, m.currentView)

	model, _ := m.Update(navKey('3'))
	m = model.(Model)
	require.Equal(t, ViewChat, m.currentView)

	// The message input owns the keyboard; esc dismisses the surface.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(Model)
	assert.Equal(t, ViewHome, m.currentView)
}

func TestChatRoomListYieldsNavKeys(t *testing.T) {
	m := loggedInModel(t)
	model, _ := m.Update(navKey('3'))
	m = model.(Model)

	// Tab opens the room list, which hands the keyboard back to navigation.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(Model)
	model, _ = m.Update(navKey('1'))
	m = model.(Model)
	assert.Equal(t, ViewHome, m.currentView)
}

func TestChatSwallowsViewKeysWhileTyping(t *testing.T) {
	m := loggedInModel(t)
	model, _ := m.Update(navKey('3'))
	m = model.(Model)

	// Digits typed into the message box are text, not view switches.
	model, _ = m.Update(navKey('1'))
	m = model.(Model)
	assert.Equal(t, ViewChat, m.currentView)
}
