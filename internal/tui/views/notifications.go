package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/api"
	"forumhub/internal/notify"
	"forumhub/internal/tui/styles"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

// NotificationsModel renders the notification feed grouped by day
type NotificationsModel struct {
	apiClient *api.Client
	feed      *notify.Feed

	// State
	loading bool
	err     error
	cursor  int

	// Window size
	width  int
	height int
}

// NewNotificationsModel creates a new notifications view
func NewNotificationsModel(apiClient *api.Client, feed *notify.Feed) NotificationsModel {
	return NotificationsModel{
		apiClient: apiClient,
		feed:      feed,
	}
}

// Init loads the feed
func (m NotificationsModel) Init() tea.Cmd {
	return m.load()
}

// Update handles messages
func (m NotificationsModel) Update(msg tea.Msg) (NotificationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case NotificationsLoadedMsg:
		m.loading = false
		m.feed.Replace(msg.Items)
		if m.cursor >= len(m.feed.Items()) {
			m.cursor = 0
		}
		return m, nil

	case NotificationMutatedMsg:
		// Server confirmed; apply to local state now
		msg.Apply(m.feed)
		if m.cursor >= len(m.feed.Items()) {
			m.cursor = maxInt(len(m.feed.Items())-1, 0)
		}
		return m, nil

	case NotificationsErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKey processes feed keys
func (m NotificationsModel) handleKey(msg tea.KeyMsg) (NotificationsModel, tea.Cmd) {
	items := m.feed.Items()

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		// Mark read, then open the topic it points at
		if m.cursor < len(items) {
			item := items[m.cursor]
			cmds := []tea.Cmd{}
			if !item.Read {
				cmds = append(cmds, m.markRead(item.ID))
			}
			if item.TopicID != 0 {
				topicID := item.TopicID
				cmds = append(cmds, func() tea.Msg {
					return SelectTopicMsg{TopicID: topicID}
				})
			}
			return m, tea.Batch(cmds...)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("a"))):
		return m, m.markAllRead()

	case key.Matches(msg, key.NewBinding(key.WithKeys("x"))):
		if m.cursor < len(items) {
			return m, m.delete(items[m.cursor].ID)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("X"))):
		if len(items) > 0 {
			return m, m.deleteAll()
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		m.loading = true
		m.err = nil
		return m, m.load()
	}
	return m, nil
}

// View renders the feed
func (m NotificationsModel) View() string {
	var b strings.Builder

	unread := m.feed.UnreadCount()
	b.WriteString(styles.TitleStyle.Render("🔔 Notifications"))
	if unread > 0 {
		b.WriteString("  ")
		b.WriteString(styles.BadgeDangerStyle.Render(fmt.Sprintf("%d unread", unread)))
	}
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(styles.SpinnerStyle.Render("⟳ "))
		b.WriteString(styles.InfoStyle.Render("Loading notifications..."))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Press 'r' to retry"))
		return b.String()
	}

	items := m.feed.Items()
	if len(items) == 0 {
		b.WriteString(styles.InfoStyle.Render("Nothing here yet"))
		return b.String()
	}

	groups := m.feed.Grouped(time.Now())
	index := 0
	for _, group := range []notify.DayGroup{notify.GroupToday, notify.GroupYesterday, notify.GroupOlder} {
		bucket := groups[group]
		if len(bucket) == 0 {
			continue
		}
		b.WriteString(styles.DayHeaderStyle.Render(group.Label()))
		b.WriteString("\n")
		for _, item := range bucket {
			b.WriteString(m.renderItem(item, index == m.cursor))
			b.WriteString("\n")
			index++
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("Enter open • a mark all read • x delete • X delete all • r refresh"))
	return b.String()
}

// renderItem renders one notification line
func (m NotificationsModel) renderItem(item models.Notification, selected bool) string {
	prefix := "  "
	if selected {
		prefix = "▸ "
	}

	marker := styles.ReadStyle.Render("○")
	textStyle := styles.ReadStyle
	if !item.Read {
		marker = styles.UnreadStyle.Render("●")
		textStyle = styles.CardContentStyle
	}

	icon := "💬"
	switch item.Type {
	case models.NotificationLike:
		icon = "👍"
	case models.NotificationReply:
		icon = "↩"
	}

	line := fmt.Sprintf("%s%s %s %s %s", prefix, marker, icon,
		styles.CommentAuthorStyle.Render(item.ActorUsername),
		textStyle.Render(styles.Truncate(item.Message, 50)))
	line += " " + styles.HelpStyle.Render(utils.TimeAgo(item.Timestamp))

	if selected {
		return styles.ListItemSelectedStyle.Render(line)
	}
	return line
}

// load fetches the feed
func (m NotificationsModel) load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		items, err := m.apiClient.ListNotifications(ctx)
		if err != nil {
			return NotificationsErrorMsg{Err: err}
		}
		return NotificationsLoadedMsg{Items: items}
	}
}

// Mutations confirm with the server first, then apply locally. A failed
// call leaves the feed untouched.

func (m NotificationsModel) markRead(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.MarkNotificationRead(ctx, id); err != nil {
			return NotificationsErrorMsg{Err: err}
		}
		return NotificationMutatedMsg{Apply: func(f *notify.Feed) { f.MarkRead(id) }}
	}
}

func (m NotificationsModel) markAllRead() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.MarkAllNotificationsRead(ctx); err != nil {
			return NotificationsErrorMsg{Err: err}
		}
		return NotificationMutatedMsg{Apply: func(f *notify.Feed) { f.MarkAllRead() }}
	}
}

func (m NotificationsModel) delete(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.DeleteNotification(ctx, id); err != nil {
			return NotificationsErrorMsg{Err: err}
		}
		return NotificationMutatedMsg{Apply: func(f *notify.Feed) { f.Remove(id) }}
	}
}

func (m NotificationsModel) deleteAll() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.DeleteAllNotifications(ctx); err != nil {
			return NotificationsErrorMsg{Err: err}
		}
		return NotificationMutatedMsg{Apply: func(f *notify.Feed) { f.Clear() }}
	}
}

// Messages

// NotificationsLoadedMsg carries a fresh feed listing
type NotificationsLoadedMsg struct {
	Items []models.Notification
}

// NotificationMutatedMsg carries a server-confirmed feed mutation
type NotificationMutatedMsg struct {
	Apply func(*notify.Feed)
}

// NotificationsErrorMsg is sent on feed errors
type NotificationsErrorMsg struct {
	Err error
}
