package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/api"
	"forumhub/internal/notify"
	"forumhub/internal/session"
	"forumhub/internal/tui/config"
	"forumhub/internal/tui/focus"
	"forumhub/internal/tui/styles"
	"forumhub/internal/tui/views"
	"forumhub/pkg/logger"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

// View represents different screens in the TUI
type View int

const (
	ViewAuth View = iota
	ViewHome
	ViewTopic
	ViewNotifications
	ViewChat
	ViewProfile
	ViewAdmin
)

// Model is the root Bubble Tea model
type Model struct {
	// Configuration
	config *config.Config

	// API client
	apiClient *api.Client

	// Session store
	session *session.Store

	// Focus manager
	focusManager *focus.Manager

	// Notification feed shared with the notifications view
	feed       *notify.Feed
	pollCancel context.CancelFunc
	poller     *notify.Poller

	// Current view
	currentView  View
	previousView View

	// Key bindings
	keys KeyMap

	// Window dimensions
	width  int
	height int

	// View models
	authModel          views.AuthModel
	homeModel          views.HomeModel
	topicModel         views.TopicModel
	notificationsModel views.NotificationsModel
	chatModel          views.ChatModel
	profileModel       views.ProfileModel
	adminModel         views.AdminModel

	// Error state
	err error
}

// New creates a new TUI application
func New(cfg *config.Config, store *session.Store) *Model {
	apiClient := api.NewClient(cfg.GetHTTPBaseURL())
	focusMgr := focus.NewManager()
	feed := notify.NewFeed()

	m := &Model{
		config:       cfg,
		apiClient:    apiClient,
		session:      store,
		focusManager: focusMgr,
		feed:         feed,
		currentView:  ViewAuth,
		keys:         DefaultKeyMap(),
	}

	// Initialize view models
	m.authModel = views.NewAuthModel(apiClient)
	m.homeModel = views.NewHomeModel(apiClient)
	m.topicModel = views.NewTopicModel(apiClient, cfg.Downloads.Dir)
	m.notificationsModel = views.NewNotificationsModel(apiClient, feed)
	m.chatModel = views.NewChatModel(apiClient, cfg.GetWebSocketURL())
	m.profileModel = views.NewProfileModel(apiClient)
	m.adminModel = views.NewAdminModel(apiClient)

	// Restore a persisted session, if any
	if sess := store.Load(); sess.IsLoggedIn {
		m.applySession(sess, store.Token())
		m.currentView = ViewHome
	}

	return m
}

// applySession propagates a live session into the API client and views.
func (m *Model) applySession(sess session.Session, token string) {
	m.apiClient.SetToken(token)
	m.topicModel.SetSession(true, sess.IsAdmin)
	m.chatModel.SetSession(token, sess.Username)
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.session.Current().IsLoggedIn {
		// Poller startup happens in Update so the handle survives
		return tea.Batch(m.homeModel.Init(), func() tea.Msg { return sessionRestoredMsg{} })
	}
	return m.authModel.Init()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Propagate to views
		m.authModel, _ = m.authModel.Update(msg)
		m.homeModel, _ = m.homeModel.Update(msg)
		m.topicModel, _ = m.topicModel.Update(msg)
		m.notificationsModel, _ = m.notificationsModel.Update(msg)
		m.chatModel, _ = m.chatModel.Update(msg)
		m.profileModel, _ = m.profileModel.Update(msg)
		m.adminModel, _ = m.adminModel.Update(msg)
		return m, nil

	case tea.KeyMsg:
		// Global key bindings apply only outside text entry
		m.syncFocus()
		if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
			m.shutdown()
			return m, tea.Quit
		}
		if m.focusManager.IsNavigationMode() {
			if handled, cmd := m.handleGlobalKey(msg); handled {
				return m, cmd
			}
		} else if m.focusManager.IsOverlayMode() && m.keys.ShouldHandleKey(m.focusManager.GetMode(), msg) {
			// Esc is the only key an overlay yields; it closes the surface
			m.closeChat()
			return m, nil
		}

	// Auth lifecycle
	case views.AuthSuccessMsg:
		if err := m.session.Login(msg.Token); err != nil {
			m.err = err
			m.authModel, _ = m.authModel.Update(views.AuthErrorMsg{Err: err})
			return m, nil
		}
		sess := m.session.Current()
		m.applySession(sess, msg.Token)
		logger.WithFields(map[string]interface{}{"username": sess.Username}).Info("signed in")
		m.currentView = ViewHome
		return m, tea.Batch(m.homeModel.Init(), m.startPolling())

	case views.LogoutMsg:
		m.shutdown()
		m.session.Logout()
		m.apiClient.ClearToken()
		m.feed.Clear()
		m.topicModel.SetSession(false, false)
		m.chatModel.SetSession("", "")
		m.currentView = ViewAuth
		return m, m.authModel.Init()

	// Cross-view navigation
	case views.SelectTopicMsg:
		m.switchTo(ViewTopic)
		return m, m.topicModel.Open(msg.TopicID)

	case views.OpenProfileMsg:
		m.switchTo(ViewProfile)
		return m, m.profileModel.Open(msg.Username)

	// Background notification polling
	case sessionRestoredMsg:
		return m, m.startPolling()

	case notificationsPolledMsg:
		m.feed.Replace(msg.items)
		return m, m.waitForPoll()

	case pollStoppedMsg:
		return m, nil
	}

	// Route to current view
	return m.updateCurrentView(msg)
}

// syncFocus derives the focus mode from the active view's input state.
func (m *Model) syncFocus() {
	switch m.currentView {
	case ViewAuth:
		m.focusManager.SetMode(focus.ModeInput)
	case ViewChat:
		if m.chatModel.InputActive() {
			m.focusManager.SetMode(focus.ModeOverlay)
		} else {
			m.focusManager.SetMode(focus.ModeNavigation)
		}
	case ViewHome:
		m.setInputMode(m.homeModel.InputActive())
	case ViewTopic:
		m.setInputMode(m.topicModel.InputActive())
	case ViewAdmin:
		m.setInputMode(m.adminModel.InputActive())
	default:
		m.focusManager.SetMode(focus.ModeNavigation)
	}
}

func (m *Model) setInputMode(active bool) {
	if active {
		m.focusManager.SetMode(focus.ModeInput)
	} else {
		m.focusManager.SetMode(focus.ModeNavigation)
	}
}

// switchTo changes the active view, tearing down the chat connection
// when the chat surface is left behind.
func (m *Model) switchTo(v View) {
	if m.currentView == ViewChat && v != ViewChat {
		m.chatModel.Close()
	}
	m.previousView = m.currentView
	m.currentView = v
}

// closeChat dismisses the chat surface and returns to the view it was
// opened from.
func (m *Model) closeChat() {
	m.chatModel.Close()
	m.currentView = m.previousView
	if m.currentView == ViewChat || m.currentView == ViewAuth {
		m.currentView = ViewHome
	}
}

// handleGlobalKey processes bindings that work from any view. Returns
// false when the active view should see the key instead.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	loggedIn := m.session.Current().IsLoggedIn

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return true, tea.Quit

	case key.Matches(msg, m.keys.Home):
		if loggedIn || m.currentView != ViewAuth {
			m.switchTo(ViewHome)
			return true, m.homeModel.Init()
		}

	case key.Matches(msg, m.keys.Notifications):
		if loggedIn {
			m.switchTo(ViewNotifications)
			return true, m.notificationsModel.Init()
		}

	case key.Matches(msg, m.keys.Chat):
		if loggedIn {
			m.switchTo(ViewChat)
			return true, m.chatModel.Init()
		}

	case key.Matches(msg, m.keys.Profile):
		if loggedIn {
			m.switchTo(ViewProfile)
			return true, m.profileModel.Open(m.session.Current().Username)
		}

	case key.Matches(msg, m.keys.Admin):
		if m.session.Current().IsAdmin {
			m.switchTo(ViewAdmin)
			return true, m.adminModel.Init()
		}

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewTopic || m.currentView == ViewProfile {
			m.currentView = m.previousView
			if m.currentView == ViewTopic || m.currentView == ViewProfile {
				m.currentView = ViewHome
			}
			return true, nil
		}

	case key.Matches(msg, m.keys.Logout):
		if loggedIn && m.currentView != ViewAuth {
			return true, func() tea.Msg { return views.LogoutMsg{} }
		}
	}

	return false, nil
}

// updateCurrentView routes updates to the active view
func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authModel, cmd = m.authModel.Update(msg)
	case ViewHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case ViewTopic:
		m.topicModel, cmd = m.topicModel.Update(msg)
	case ViewNotifications:
		m.notificationsModel, cmd = m.notificationsModel.Update(msg)
	case ViewChat:
		m.chatModel, cmd = m.chatModel.Update(msg)
	case ViewProfile:
		m.profileModel, cmd = m.profileModel.Update(msg)
	case ViewAdmin:
		m.adminModel, cmd = m.adminModel.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.currentView {
	case ViewAuth:
		content = m.authModel.View()
	case ViewHome:
		content = m.homeModel.View()
	case ViewTopic:
		content = m.topicModel.View()
	case ViewNotifications:
		content = m.notificationsModel.View()
	case ViewChat:
		content = m.chatModel.View()
	case ViewProfile:
		content = m.profileModel.View()
	case ViewAdmin:
		content = m.adminModel.View()
	default:
		content = "Unknown view"
	}

	var statusBar string
	if m.session.Current().IsLoggedIn {
		statusBar = m.renderStatusBar()
	}

	return styles.AppStyle.Render(content + "\n\n" + statusBar)
}

// renderStatusBar renders the bottom status bar
func (m Model) renderStatusBar() string {
	sess := m.session.Current()

	viewName := ""
	switch m.currentView {
	case ViewHome:
		viewName = "Topics"
	case ViewTopic:
		viewName = "Topic"
	case ViewNotifications:
		viewName = "Notifications"
	case ViewChat:
		viewName = "Chat"
	case ViewProfile:
		viewName = "Profile"
	case ViewAdmin:
		viewName = "Admin"
	}

	left := styles.StatusBarActiveStyle.Render("● " + viewName)
	if unread := m.feed.UnreadCount(); unread > 0 {
		left += " " + styles.BadgePrimaryStyle.Render(strconv.Itoa(unread))
	}

	user := sess.Username
	if sess.IsAdmin {
		user += " [admin]"
	}
	right := styles.StatusBarStyle.Render("User: " + user + " | 1-4 views | q quit")

	spacing := m.width - len(left) - len(right) - 4
	if spacing < 0 {
		spacing = 0
	}
	spaces := ""
	for i := 0; i < spacing; i++ {
		spaces += " "
	}

	return left + spaces + right
}

// startPolling launches the background notification poller and returns
// the command that relays its updates into the program.
func (m *Model) startPolling() tea.Cmd {
	m.stopPolling()

	interval := m.config.NotifyInterval()
	poller := notify.NewPoller(func(ctx context.Context) ([]models.Notification, error) {
		fetchCtx, cancel := utils.WithTimeout(ctx)
		defer cancel()
		return m.apiClient.ListNotifications(fetchCtx)
	}, interval)

	ctx, cancel := context.WithCancel(context.Background())
	m.poller = poller
	m.pollCancel = cancel
	go poller.Run(ctx)

	return m.waitForPoll()
}

// waitForPoll blocks on the poller channel until the next batch arrives.
func (m Model) waitForPoll() tea.Cmd {
	poller := m.poller
	if poller == nil {
		return nil
	}
	return func() tea.Msg {
		items, ok := <-poller.Updates()
		if !ok {
			return pollStoppedMsg{}
		}
		return notificationsPolledMsg{items: items}
	}
}

func (m *Model) stopPolling() {
	if m.pollCancel != nil {
		m.pollCancel()
		m.pollCancel = nil
		m.poller = nil
	}
}

// shutdown releases background resources before the program exits.
func (m *Model) shutdown() {
	m.stopPolling()
	m.chatModel.Close()
}

type sessionRestoredMsg struct{}

type notificationsPolledMsg struct {
	items []models.Notification
}

type pollStoppedMsg struct{}
