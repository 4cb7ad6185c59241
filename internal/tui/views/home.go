package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/api"
	"forumhub/internal/tui/components"
	"forumhub/internal/tui/styles"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

// HomeModel shows the paginated topic listing with search and filters
type HomeModel struct {
	apiClient *api.Client

	// Data
	topics     []models.Topic
	totalPages int
	categories []models.Category

	// Search state
	searchMode   bool
	searchInput  textinput.Model
	activeSearch models.TopicSearchParams
	searching    bool

	// Category filter
	categoryMode   bool
	categoryCursor int

	// Pagination
	page int

	// State
	loading bool
	spin    components.Spinner
	err     error
	errView components.ErrorView
	cursor  int
	// gen drops responses from listings the user already navigated away from
	gen int64

	// Window size
	width  int
	height int
}

// NewHomeModel creates a new home model
func NewHomeModel(apiClient *api.Client) HomeModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search topics by title..."
	searchInput.CharLimit = 100
	searchInput.Width = 40

	return HomeModel{
		apiClient:   apiClient,
		searchInput: searchInput,
		spin:        components.NewSpinner("Loading topics..."),
	}
}

// Init initializes and loads data
func (m *HomeModel) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadTopics(m.gen), m.loadCategories(), m.spin.Tick())
}

// Update handles messages
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKey(msg)
		}
		if m.categoryMode {
			return m.handleCategoryKey(msg)
		}
		return m.handleListKey(msg)

	case TopicsLoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.topics = msg.Page.Content
		m.totalPages = msg.Page.TotalPages
		m.page = msg.Page.Number
		if m.cursor >= len(m.topics) {
			m.cursor = 0
		}
		return m, nil

	case CategoriesLoadedMsg:
		m.categories = msg.Categories
		return m, nil

	case HomeErrorMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		m.errView = components.NewErrorView(msg.Err, "Could not load topics", nil)
		return m, nil
	}

	if m.loading {
		if cmd := m.spin.Update(msg); cmd != nil {
			return m, cmd
		}
	}

	return m, nil
}

// handleListKey processes keys in normal listing mode
func (m HomeModel) handleListKey(msg tea.KeyMsg) (HomeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
		if m.cursor < len(m.topics)-1 {
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
			return m.reload()
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("p", "pgup"))):
		if m.page > 0 {
			m.page--
			m.cursor = 0
			return m.reload()
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("/"))):
		m.searchMode = true
		return m, m.searchInput.Focus()

	case key.Matches(msg, key.NewBinding(key.WithKeys("c"))):
		m.categoryMode = true
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("x"))):
		// Clear filters
		if m.searching {
			m.searching = false
			m.activeSearch = models.TopicSearchParams{}
			m.searchInput.SetValue("")
			m.page = 0
			return m.reload()
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		return m.reload()

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if len(m.topics) > 0 {
			topicID := m.topics[m.cursor].ID
			return m, func() tea.Msg {
				return SelectTopicMsg{TopicID: topicID}
			}
		}
		return m, nil
	}
	return m, nil
}

// handleSearchKey processes keys while the search input is focused
func (m HomeModel) handleSearchKey(msg tea.KeyMsg) (HomeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		m.searchMode = false
		m.searchInput.Blur()
		m.activeSearch.Title = strings.TrimSpace(m.searchInput.Value())
		m.searching = m.activeSearch.Title != "" || m.activeSearch.Category != ""
		m.page = 0
		m.cursor = 0
		return m.reload()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleCategoryKey processes keys in the category filter overlay
func (m HomeModel) handleCategoryKey(msg tea.KeyMsg) (HomeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "c"))):
		m.categoryMode = false
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
		if m.categoryCursor < len(m.categories) {
			m.categoryCursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
		if m.categoryCursor > 0 {
			m.categoryCursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		// Index 0 is "All"
		if m.categoryCursor == 0 {
			m.activeSearch.Category = ""
		} else if m.categoryCursor-1 < len(m.categories) {
			m.activeSearch.Category = m.categories[m.categoryCursor-1].Name
		}
		m.searching = m.activeSearch.Title != "" || m.activeSearch.Category != ""
		m.categoryMode = false
		m.page = 0
		m.cursor = 0
		return m.reload()
	}
	return m, nil
}

// reload bumps the generation and refetches the current listing
func (m HomeModel) reload() (HomeModel, tea.Cmd) {
	m.gen++
	m.loading = true
	m.err = nil
	return m, tea.Batch(m.loadTopics(m.gen), m.spin.Tick())
}

// View renders the home view
func (m HomeModel) View() string {
	if m.categoryMode {
		return m.renderCategoryPicker()
	}

	var b strings.Builder

	pageInfo := fmt.Sprintf("Page %d/%d", m.page+1, maxInt(m.totalPages, 1))
	b.WriteString(styles.TitleStyle.Render("🗂 Topics"))
	b.WriteString("  ")
	b.WriteString(styles.SubtitleStyle.Render(pageInfo))
	if m.activeSearch.Category != "" {
		b.WriteString("  ")
		b.WriteString(styles.BadgePrimaryStyle.Render(m.activeSearch.Category))
	}
	if m.activeSearch.Title != "" {
		b.WriteString("  ")
		b.WriteString(styles.BadgeSuccessStyle.Render("\"" + m.activeSearch.Title + "\""))
	}
	b.WriteString("\n\n")

	if m.searchMode {
		b.WriteString(styles.InputFocusedStyle.Render("🔍 "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.spin.View())
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.errView.View())
		return b.String()
	}

	if len(m.topics) == 0 {
		b.WriteString(styles.InfoStyle.Render("No topics found"))
		return b.String()
	}

	for i, topic := range m.topics {
		prefix := "  "
		style := styles.ListItemStyle
		if i == m.cursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}

		title := styles.ListItemTitleStyle.Render(styles.Truncate(topic.Title, 44))
		rating := styles.RenderRating(topic.Rating)
		line := fmt.Sprintf("%s%s %s", prefix, title, rating)
		if topic.Category != "" {
			line += " " + styles.BadgePrimaryStyle.Render(topic.Category)
		}
		b.WriteString(style.Render(line))

		if i == m.cursor {
			meta := fmt.Sprintf("by %s • %s", topic.Username, utils.TimeAgo(topic.CreatedAt))
			if len(topic.Tags) > 0 {
				meta += " • " + strings.Join(topic.Tags, ", ")
			}
			b.WriteString("\n    ")
			b.WriteString(styles.ListItemDescStyle.Render(meta))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.RenderDivider(44))
	b.WriteString("\n")

	navHelp := "↑/↓ navigate • Enter open • / search • c category"
	if m.page > 0 {
		navHelp += " • p prev"
	}
	if m.page < m.totalPages-1 {
		navHelp += " • n next"
	}
	if m.searching {
		navHelp += " • x clear"
	}
	b.WriteString(styles.HelpStyle.Render(navHelp))

	return b.String()
}

// renderCategoryPicker renders the category filter overlay
func (m HomeModel) renderCategoryPicker() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("📁 Filter by Category"))
	b.WriteString("\n\n")

	options := append([]string{"All"}, categoryNames(m.categories)...)
	for i, name := range options {
		prefix := "  "
		style := styles.ListItemStyle
		if i == m.categoryCursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}
		if (i == 0 && m.activeSearch.Category == "") || name == m.activeSearch.Category {
			name = "✓ " + name
		}
		b.WriteString(style.Render(prefix + name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ navigate • Enter select • ESC cancel"))

	return b.String()
}

// loadTopics fetches the current listing page
func (m HomeModel) loadTopics(gen int64) tea.Cmd {
	page := m.page
	params := m.activeSearch
	searching := m.searching
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		var result *models.Page[models.Topic]
		var err error
		if searching {
			result, err = m.apiClient.SearchTopics(ctx, params)
		} else {
			result, err = m.apiClient.ListTopics(ctx, page)
		}
		if err != nil {
			return HomeErrorMsg{Gen: gen, Err: err}
		}
		return TopicsLoadedMsg{Gen: gen, Page: result}
	}
}

// loadCategories fetches the category filter options
func (m HomeModel) loadCategories() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		categories, err := m.apiClient.ListCategories(ctx)
		if err != nil {
			// Filters degrade gracefully without categories
			return nil
		}
		return CategoriesLoadedMsg{Categories: categories}
	}
}

func categoryNames(categories []models.Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Messages

// TopicsLoadedMsg is sent when a topic listing page is loaded
type TopicsLoadedMsg struct {
	Gen  int64
	Page *models.Page[models.Topic]
}

// CategoriesLoadedMsg is sent when categories are loaded
type CategoriesLoadedMsg struct {
	Categories []models.Category
}

// HomeErrorMsg is sent on listing errors
type HomeErrorMsg struct {
	Gen int64
	Err error
}

// InputActive reports whether a text prompt is capturing keystrokes
func (m HomeModel) InputActive() bool {
	return m.searchMode || m.categoryMode
}
