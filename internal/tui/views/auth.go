package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/api"
	"forumhub/internal/tui/styles"
	"forumhub/pkg/utils"
)

// AuthMode represents the active auth form
type AuthMode int

const (
	ModeSignin AuthMode = iota
	ModeSignup
	ModeVerify
)

// AuthModel handles the signin/signup/verify forms
type AuthModel struct {
	mode      AuthMode
	apiClient *api.Client

	// Input fields
	usernameInput textinput.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	confirmInput  textinput.Model
	codeInput     textinput.Model

	// State
	focusIndex int
	loading    bool
	err        error
	notice     string

	// Window size
	width  int
	height int
}

// NewAuthModel creates a new auth model
func NewAuthModel(apiClient *api.Client) AuthModel {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "Username or email"
	usernameInput.CharLimit = 100
	usernameInput.Width = 30
	usernameInput.Focus()

	emailInput := textinput.New()
	emailInput.Placeholder = "Email"
	emailInput.CharLimit = 100
	emailInput.Width = 30

	passwordInput := textinput.New()
	passwordInput.Placeholder = "Password"
	passwordInput.CharLimit = 100
	passwordInput.Width = 30
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '•'

	confirmInput := textinput.New()
	confirmInput.Placeholder = "Confirm Password"
	confirmInput.CharLimit = 100
	confirmInput.Width = 30
	confirmInput.EchoMode = textinput.EchoPassword
	confirmInput.EchoCharacter = '•'

	codeInput := textinput.New()
	codeInput.Placeholder = "Verification code"
	codeInput.CharLimit = 12
	codeInput.Width = 30

	return AuthModel{
		mode:          ModeSignin,
		apiClient:     apiClient,
		usernameInput: usernameInput,
		emailInput:    emailInput,
		passwordInput: passwordInput,
		confirmInput:  confirmInput,
		codeInput:     codeInput,
	}
}

// Init initializes the model
func (m AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AuthModel) Update(msg tea.Msg) (AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
			return m.nextField(), nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab"))):
			return m.prevField(), nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if m.isSubmitFocused() {
				return m.submit()
			}
			return m.nextField(), nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+t"))):
			m.toggleMode()
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+o"))):
			// Resend verification code
			if m.mode == ModeVerify && m.emailInput.Value() != "" {
				return m, m.doResend()
			}
			return m, nil
		}

	case SignupDoneMsg:
		m.loading = false
		m.mode = ModeVerify
		m.focusIndex = 0
		m.notice = "Check your email for the verification code"
		m.updateFocus()
		return m, nil

	case VerifyDoneMsg:
		m.loading = false
		m.mode = ModeSignin
		m.focusIndex = 0
		m.notice = "Account verified, sign in now"
		m.updateFocus()
		return m, nil

	case CodeResentMsg:
		m.notice = "Verification code resent"
		return m, nil

	case AuthSuccessMsg:
		m.loading = false
		// Parent model handles navigation
		return m, nil

	case AuthErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	// Update the focused input
	var cmd tea.Cmd
	switch m.fieldAt(m.focusIndex) {
	case &m.usernameInput:
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	case &m.emailInput:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case &m.passwordInput:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	case &m.confirmInput:
		m.confirmInput, cmd = m.confirmInput.Update(msg)
	case &m.codeInput:
		m.codeInput, cmd = m.codeInput.Update(msg)
	}

	return m, cmd
}

// fields returns the active form's inputs in focus order
func (m *AuthModel) fields() []*textinput.Model {
	switch m.mode {
	case ModeSignup:
		return []*textinput.Model{&m.usernameInput, &m.emailInput, &m.passwordInput, &m.confirmInput}
	case ModeVerify:
		return []*textinput.Model{&m.emailInput, &m.codeInput}
	default:
		return []*textinput.Model{&m.usernameInput, &m.passwordInput}
	}
}

func (m *AuthModel) fieldAt(index int) *textinput.Model {
	fields := m.fields()
	if index < len(fields) {
		return fields[index]
	}
	return nil
}

// View renders the auth form
func (m AuthModel) View() string {
	var b strings.Builder

	title := "🔐 Sign In"
	switch m.mode {
	case ModeSignup:
		title = "📝 Sign Up"
	case ModeVerify:
		title = "✉ Verify Account"
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	var form strings.Builder
	labels := m.fieldLabels()
	for i, field := range m.fields() {
		form.WriteString(m.renderField(labels[i], field.View(), m.focusIndex == i))
		form.WriteString("\n")
	}
	form.WriteString("\n")

	submitStyle := styles.ButtonStyle
	if m.isSubmitFocused() {
		submitStyle = styles.ButtonActiveStyle
	}
	form.WriteString(submitStyle.Render("  " + m.submitLabel() + "  "))

	b.WriteString(styles.CardStyle.Render(form.String()))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + utils.SafeError(m.err, "unknown error")))
		b.WriteString("\n\n")
	}
	if m.notice != "" {
		b.WriteString(styles.SuccessStyle.Render(m.notice))
		b.WriteString("\n\n")
	}
	if m.loading {
		b.WriteString(styles.SpinnerStyle.Render("⟳ "))
		b.WriteString(styles.InfoStyle.Render("Processing..."))
		b.WriteString("\n\n")
	}

	switch m.mode {
	case ModeSignin:
		b.WriteString(styles.HelpStyle.Render("Ctrl+T sign up • browse anonymously with ESC"))
	case ModeSignup:
		b.WriteString(styles.HelpStyle.Render("Ctrl+T back to sign in"))
	case ModeVerify:
		b.WriteString(styles.HelpStyle.Render("Ctrl+O resend code • Ctrl+T back to sign in"))
	}

	return b.String()
}

func (m AuthModel) fieldLabels() []string {
	switch m.mode {
	case ModeSignup:
		return []string{"Username", "Email", "Password", "Confirm"}
	case ModeVerify:
		return []string{"Email", "Code"}
	default:
		return []string{"Username or Email", "Password"}
	}
}

func (m AuthModel) submitLabel() string {
	switch m.mode {
	case ModeSignup:
		return "Sign Up"
	case ModeVerify:
		return "Verify"
	default:
		return "Sign In"
	}
}

// renderField renders a form field with label
func (m AuthModel) renderField(label, input string, focused bool) string {
	labelStyle := styles.MetaKeyStyle
	if focused {
		labelStyle = styles.InputFocusedStyle
	}
	return fmt.Sprintf("%s\n%s", labelStyle.Render(label+":"), input)
}

// nextField moves focus to the next field
func (m AuthModel) nextField() AuthModel {
	m.focusIndex = (m.focusIndex + 1) % (len(m.fields()) + 1)
	m.updateFocus()
	return m
}

// prevField moves focus to the previous field
func (m AuthModel) prevField() AuthModel {
	m.focusIndex--
	if m.focusIndex < 0 {
		m.focusIndex = len(m.fields())
	}
	m.updateFocus()
	return m
}

// updateFocus updates input focus states
func (m *AuthModel) updateFocus() {
	m.usernameInput.Blur()
	m.emailInput.Blur()
	m.passwordInput.Blur()
	m.confirmInput.Blur()
	m.codeInput.Blur()

	if field := m.fieldAt(m.focusIndex); field != nil {
		field.Focus()
	}
}

// isSubmitFocused returns true if the submit button is focused
func (m AuthModel) isSubmitFocused() bool {
	return m.focusIndex == len(m.fields())
}

// toggleMode switches between sign-in and sign-up
func (m *AuthModel) toggleMode() {
	if m.mode == ModeSignin {
		m.mode = ModeSignup
	} else {
		m.mode = ModeSignin
	}
	m.focusIndex = 0
	m.err = nil
	m.notice = ""
	m.updateFocus()
}

// submit handles form submission
func (m AuthModel) submit() (AuthModel, tea.Cmd) {
	switch m.mode {
	case ModeSignup:
		if err := utils.ValidateUsername(m.usernameInput.Value()); err != nil {
			m.err = err
			return m, nil
		}
		if err := utils.ValidateEmail(m.emailInput.Value()); err != nil {
			m.err = err
			return m, nil
		}
		if m.passwordInput.Value() == "" {
			m.err = fmt.Errorf("password is required")
			return m, nil
		}
		if m.passwordInput.Value() != m.confirmInput.Value() {
			m.err = fmt.Errorf("passwords do not match")
			return m, nil
		}
		m.loading = true
		m.err = nil
		return m, m.doSignup()

	case ModeVerify:
		if m.emailInput.Value() == "" || m.codeInput.Value() == "" {
			m.err = fmt.Errorf("email and code are required")
			return m, nil
		}
		m.loading = true
		m.err = nil
		return m, m.doVerify()

	default:
		if m.usernameInput.Value() == "" || m.passwordInput.Value() == "" {
			m.err = fmt.Errorf("username and password are required")
			return m, nil
		}
		m.loading = true
		m.err = nil
		return m, m.doSignin()
	}
}

// doSignin performs the sign-in API call
func (m AuthModel) doSignin() tea.Cmd {
	username, password := m.usernameInput.Value(), m.passwordInput.Value()
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		token, err := m.apiClient.Signin(ctx, username, password)
		if err != nil {
			return AuthErrorMsg{Err: err}
		}
		return AuthSuccessMsg{Token: token}
	}
}

// doSignup performs the registration API call
func (m AuthModel) doSignup() tea.Cmd {
	username, email, password := m.usernameInput.Value(), m.emailInput.Value(), m.passwordInput.Value()
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.Signup(ctx, username, email, password); err != nil {
			return AuthErrorMsg{Err: err}
		}
		return SignupDoneMsg{}
	}
}

// doVerify confirms the emailed code
func (m AuthModel) doVerify() tea.Cmd {
	email, code := m.emailInput.Value(), m.codeInput.Value()
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.Verify(ctx, email, code); err != nil {
			return AuthErrorMsg{Err: err}
		}
		return VerifyDoneMsg{}
	}
}

// doResend requests a fresh verification code
func (m AuthModel) doResend() tea.Cmd {
	email := m.emailInput.Value()
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.ResendCode(ctx, email); err != nil {
			return AuthErrorMsg{Err: err}
		}
		return CodeResentMsg{}
	}
}

// Messages

// SignupDoneMsg is sent when registration succeeded and verification is pending
type SignupDoneMsg struct{}

// VerifyDoneMsg is sent when the account is verified
type VerifyDoneMsg struct{}

// CodeResentMsg is sent when a new verification code was dispatched
type CodeResentMsg struct{}

// InputActive reports whether the form is capturing keystrokes. The auth
// form always owns the keyboard while shown.
func (m AuthModel) InputActive() bool {
	return true
}
