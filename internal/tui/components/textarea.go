package components

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/tui/styles"
)

// TextArea is a multi-line composer for comments and messages
type TextArea struct {
	area  textarea.Model
	label string
	error string
}

// NewTextArea creates a new composer with the given label
func NewTextArea(label, placeholder string, charLimit int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = charLimit
	ta.SetWidth(60)
	ta.SetHeight(4)
	ta.ShowLineNumbers = false

	return TextArea{
		area:  ta,
		label: label,
	}
}

// Focus sets the composer as focused
func (t *TextArea) Focus() tea.Cmd {
	return t.area.Focus()
}

// Blur removes focus
func (t *TextArea) Blur() {
	t.area.Blur()
}

// Focused returns whether the composer is focused
func (t *TextArea) Focused() bool {
	return t.area.Focused()
}

// Value returns the current text
func (t *TextArea) Value() string {
	return t.area.Value()
}

// SetValue replaces the current text
func (t *TextArea) SetValue(value string) {
	t.area.SetValue(value)
}

// Reset clears the composer
func (t *TextArea) Reset() {
	t.area.Reset()
	t.error = ""
}

// SetError sets a validation message shown under the composer
func (t *TextArea) SetError(err string) {
	t.error = err
}

// SetWidth sets the rendered width
func (t *TextArea) SetWidth(width int) {
	t.area.SetWidth(width)
}

// Update handles composer updates
func (t *TextArea) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.area, cmd = t.area.Update(msg)
	if t.error != "" {
		t.error = ""
	}
	return cmd
}

// View renders the composer
func (t TextArea) View() string {
	labelStyle := styles.InputPromptStyle
	if t.Focused() {
		labelStyle = styles.InputFocusedStyle
	}

	result := labelStyle.Render(t.label) + "\n" + t.area.View()
	if t.error != "" {
		result += "\n" + styles.ErrorStyle.Render("✗ "+t.error)
	}
	return result
}
