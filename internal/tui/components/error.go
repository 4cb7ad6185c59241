package components

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/tui/styles"
	"forumhub/pkg/models"
)

// ErrorView displays errors with retry capability
type ErrorView struct {
	err     error
	message string
	onRetry func() tea.Msg
}

// NewErrorView creates a new error view
func NewErrorView(err error, message string, onRetry func() tea.Msg) ErrorView {
	return ErrorView{
		err:     err,
		message: message,
		onRetry: onRetry,
	}
}

// SetError updates the error
func (e *ErrorView) SetError(err error) {
	e.err = err
}

// Clear clears the error
func (e *ErrorView) Clear() {
	e.err = nil
	e.message = ""
}

// HasError returns whether an error is present
func (e ErrorView) HasError() bool {
	return e.err != nil
}

// Retry triggers the retry action
func (e ErrorView) Retry() tea.Msg {
	if e.onRetry != nil {
		return e.onRetry()
	}
	return nil
}

// headline picks a user-facing summary for the error kind.
func (e ErrorView) headline() string {
	switch {
	case models.IsAuthRequired(e.err):
		return "Sign in required"
	case models.IsNetworkError(e.err):
		return "Connection problem"
	case models.IsValidationError(e.err):
		return "Invalid input"
	default:
		var appErr *models.AppError
		if errors.As(e.err, &appErr) && appErr.Code == models.ErrCodeServer {
			return "Server error"
		}
		return "Error"
	}
}

// View renders the error
func (e ErrorView) View() string {
	if !e.HasError() {
		return ""
	}

	return styles.CardStyle.Render(
		styles.ErrorStyle.Render("⚠ "+e.headline()) + "\n\n" +
			styles.CardContentStyle.Render(e.message) + "\n" +
			styles.HelpStyle.Render(e.err.Error()) + "\n\n" +
			styles.ButtonStyle.Render("[ Press R to Retry ]") + " " +
			styles.HelpStyle.Render("or ESC to go back"),
	)
}
