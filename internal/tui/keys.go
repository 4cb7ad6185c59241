package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/tui/focus"
)

// KeyMap defines all key bindings for the TUI
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Actions
	Enter   key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding

	// View switching
	Home          key.Binding
	Notifications key.Binding
	Chat          key.Binding
	Profile       key.Binding
	Admin         key.Binding
	Logout        key.Binding

	// Tab navigation
	NextTab key.Binding
	PrevTab key.Binding

	// Input/Edit
	Submit key.Binding
	Cancel key.Binding
}

// ShouldHandleKey returns true if the key should be handled based on focus mode
func (k KeyMap) ShouldHandleKey(mode focus.Mode, msg tea.KeyMsg) bool {
	// In input mode, only allow ESC, Enter, Tab
	if mode == focus.ModeInput {
		return key.Matches(msg, k.Cancel) ||
			key.Matches(msg, k.Submit) ||
			key.Matches(msg, k.NextTab) ||
			key.Matches(msg, k.PrevTab)
	}

	// In dialog mode, limited keys
	if mode == focus.ModeDialog {
		return key.Matches(msg, k.Enter) ||
			key.Matches(msg, k.Cancel) ||
			key.Matches(msg, k.Quit)
	}

	// An overlay owns the keyboard except for cancel
	if mode == focus.ModeOverlay {
		return key.Matches(msg, k.Cancel)
	}

	// Navigation mode allows all keys
	return true
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "page down"),
		),

		// Actions
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),

		// View switching
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "topics"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "notifications"),
		),
		Chat: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "chat"),
		),
		Profile: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "profile"),
		),
		Admin: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "admin"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "sign out"),
		),

		// Tab navigation
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),

		// Input/Edit
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns a short help message
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Enter, k.Back, k.Help, k.Quit,
	}
}

// FullHelp returns the full help message
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Home, k.Notifications, k.Chat, k.Profile},
		{k.Admin, k.Refresh, k.Logout, k.Quit},
	}
}
