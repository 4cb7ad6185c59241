package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/api"
	"forumhub/internal/tui/styles"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

// ProfileModel shows a user's public profile with their topics
type ProfileModel struct {
	apiClient *api.Client

	// Data
	username   string
	profile    *models.Profile
	totalPages int
	page       int

	// State
	loading bool
	err     error
	cursor  int
	gen     int64

	// Window size
	width  int
	height int
}

// NewProfileModel creates a new profile view
func NewProfileModel(apiClient *api.Client) ProfileModel {
	return ProfileModel{apiClient: apiClient}
}

// Open starts loading a user's profile
func (m *ProfileModel) Open(username string) tea.Cmd {
	m.username = username
	m.gen++
	m.profile = nil
	m.page = 0
	m.cursor = 0
	m.loading = true
	m.err = nil
	return m.load(m.gen)
}

// Init is a no-op; the view loads through Open
func (m ProfileModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ProfileModel) Update(msg tea.Msg) (ProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ProfileLoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.profile = &msg.Page.Profile
		m.totalPages = msg.Page.TotalPages
		if m.cursor >= len(m.profile.Topics) {
			m.cursor = 0
		}
		return m, nil

	case ProfileErrorMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m ProfileModel) handleKey(msg tea.KeyMsg) (ProfileModel, tea.Cmd) {
	topics := m.topics()

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
		if m.cursor < len(topics)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("n", "pgdown"))):
		if m.page < m.totalPages-1 {
			m.page++
			m.cursor = 0
			m.gen++
			m.loading = true
			return m, m.load(m.gen)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("p", "pgup"))):
		if m.page > 0 {
			m.page--
			m.cursor = 0
			m.gen++
			m.loading = true
			return m, m.load(m.gen)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if m.cursor < len(topics) {
			topicID := topics[m.cursor].ID
			return m, func() tea.Msg {
				return SelectTopicMsg{TopicID: topicID}
			}
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		m.gen++
		m.loading = true
		m.err = nil
		return m, m.load(m.gen)
	}
	return m, nil
}

func (m ProfileModel) topics() []models.Topic {
	if m.profile == nil {
		return nil
	}
	return m.profile.Topics
}

// View renders the profile
func (m ProfileModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("👤 " + m.username))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(styles.SpinnerStyle.Render("⟳ "))
		b.WriteString(styles.InfoStyle.Render("Loading profile..."))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Press 'r' to retry"))
		return b.String()
	}

	if m.profile == nil {
		return b.String()
	}

	var card strings.Builder
	card.WriteString(styles.RenderKeyValue("Rating", fmt.Sprintf("%d", m.profile.Rating)))
	card.WriteString("\n")
	card.WriteString(styles.RenderKeyValue("Topics", fmt.Sprintf("%d", m.profile.TopicCount)))
	card.WriteString("\n")
	card.WriteString(styles.RenderKeyValue("Comments", fmt.Sprintf("%d", m.profile.CommentCount)))
	card.WriteString("\n")
	card.WriteString(styles.RenderKeyValue("Joined", utils.FormatTimestamp(m.profile.CreatedAt)))
	b.WriteString(styles.CardStyle.Render(card.String()))
	b.WriteString("\n")

	topics := m.topics()
	if len(topics) == 0 {
		b.WriteString(styles.InfoStyle.Render("No topics yet"))
		return b.String()
	}

	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Topics (page %d/%d)", m.page+1, maxInt(m.totalPages, 1))))
	b.WriteString("\n")
	for i, topic := range topics {
		prefix := "  "
		style := styles.ListItemStyle
		if i == m.cursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}
		line := fmt.Sprintf("%s%s %s", prefix,
			styles.ListItemTitleStyle.Render(styles.Truncate(topic.Title, 44)),
			styles.RenderRating(topic.Rating))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ navigate • Enter open • n/p pages • esc back"))
	return b.String()
}

func (m ProfileModel) load(gen int64) tea.Cmd {
	username, page := m.username, m.page
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		profile, err := m.apiClient.GetProfile(ctx, username, page)
		if err != nil {
			return ProfileErrorMsg{Gen: gen, Err: err}
		}
		return ProfileLoadedMsg{Gen: gen, Page: profile}
	}
}

// Messages

// ProfileLoadedMsg carries a fetched profile page
type ProfileLoadedMsg struct {
	Gen  int64
	Page *models.ProfilePage
}

// ProfileErrorMsg is sent on profile errors
type ProfileErrorMsg struct {
	Gen int64
	Err error
}
