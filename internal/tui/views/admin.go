package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/api"
	"forumhub/internal/tui/components"
	"forumhub/internal/tui/styles"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

// AdminTab selects which admin listing is active
type AdminTab int

const (
	TabDashboard AdminTab = iota
	TabCategories
	TabTags
	TabUsers
)

var adminTabNames = []string{"Dashboard", "Categories", "Tags", "Users"}

// AdminModel is the moderation surface: site counters plus category, tag,
// and user management
type AdminModel struct {
	apiClient *api.Client

	// Data
	dashboard  *models.AdminDashboard
	categories []models.Category
	tags       []models.Tag
	users      []models.AdminUser

	// State
	tab     AdminTab
	cursor  int
	loading bool
	err     error
	notice  string

	// Editor state for create/rename
	editing   bool
	creating  bool
	nameInput components.Input
	descInput components.Input

	// Window size
	width  int
	height int
}

// NewAdminModel creates the admin view
func NewAdminModel(apiClient *api.Client) AdminModel {
	nameInput := components.NewInput("Name", "Name")
	nameInput.SetRequired(true)
	nameInput.SetCharLimit(60)
	nameInput.SetWidth(30)

	descInput := components.NewInput("Description", "Description")
	descInput.SetCharLimit(200)
	descInput.SetWidth(40)

	return AdminModel{
		apiClient: apiClient,
		nameInput: nameInput,
		descInput: descInput,
	}
}

// Init loads the dashboard
func (m *AdminModel) Init() tea.Cmd {
	m.loading = true
	return m.loadTab(TabDashboard)
}

// Update handles messages
func (m AdminModel) Update(msg tea.Msg) (AdminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditorKey(msg)
		}
		return m.handleKey(msg)

	case AdminDashboardMsg:
		m.loading = false
		m.dashboard = msg.Dashboard
		return m, nil

	case AdminCategoriesMsg:
		m.loading = false
		m.categories = msg.Categories
		m.clampCursor()
		return m, nil

	case AdminTagsMsg:
		m.loading = false
		m.tags = msg.Tags
		m.clampCursor()
		return m, nil

	case AdminUsersMsg:
		m.loading = false
		m.users = msg.Users
		m.clampCursor()
		return m, nil

	case AdminMutatedMsg:
		m.notice = msg.Notice
		// Reload the active listing so the change shows
		m.loading = true
		return m, m.loadTab(m.tab)

	case AdminErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m AdminModel) handleKey(msg tea.KeyMsg) (AdminModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
		m.tab = (m.tab + 1) % 4
		m.cursor = 0
		m.err = nil
		m.notice = ""
		m.loading = true
		return m, m.loadTab(m.tab)

	case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab"))):
		m.tab = (m.tab + 3) % 4
		m.cursor = 0
		m.err = nil
		m.notice = ""
		m.loading = true
		return m, m.loadTab(m.tab)

	case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("n"))):
		// Create category/tag
		if m.tab == TabCategories || m.tab == TabTags {
			m.editing = true
			m.creating = true
			m.nameInput.SetValue("")
			m.descInput.SetValue("")
			return m, m.nameInput.Focus()
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("e"))):
		// Edit selected category/tag name
		switch m.tab {
		case TabCategories:
			if m.cursor < len(m.categories) {
				m.editing = true
				m.creating = false
				m.nameInput.SetValue(m.categories[m.cursor].Name)
				m.descInput.SetValue(m.categories[m.cursor].Description)
				return m, m.nameInput.Focus()
			}
		case TabTags:
			if m.cursor < len(m.tags) {
				m.editing = true
				m.creating = false
				m.nameInput.SetValue(m.tags[m.cursor].Name)
				return m, m.nameInput.Focus()
			}
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("x"))):
		// Delete selected category/tag
		switch m.tab {
		case TabCategories:
			if m.cursor < len(m.categories) {
				return m, m.deleteCategory(m.categories[m.cursor].ID)
			}
		case TabTags:
			if m.cursor < len(m.tags) {
				return m, m.deleteTag(m.tags[m.cursor].ID)
			}
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		m.loading = true
		m.err = nil
		return m, m.loadTab(m.tab)
	}
	return m, nil
}

func (m AdminModel) handleEditorKey(msg tea.KeyMsg) (AdminModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.editing = false
		m.nameInput.Blur()
		m.descInput.Blur()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
		if m.tab == TabCategories {
			if m.nameInput.Focused() {
				m.nameInput.Blur()
				return m, m.descInput.Focus()
			}
			m.descInput.Blur()
			return m, m.nameInput.Focus()
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.nameInput.SetError("name is required")
			return m, nil
		}
		desc := strings.TrimSpace(m.descInput.Value())
		m.editing = false
		m.nameInput.Blur()
		m.descInput.Blur()

		switch m.tab {
		case TabCategories:
			if m.creating {
				return m, m.createCategory(name, desc)
			}
			return m, m.updateCategory(m.categories[m.cursor].ID, name, desc)
		case TabTags:
			if m.creating {
				return m, m.createTag(name)
			}
			return m, m.updateTag(m.tags[m.cursor].ID, name)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.descInput.Focused() {
		cmd = m.descInput.Update(msg)
	} else {
		cmd = m.nameInput.Update(msg)
	}
	return m, cmd
}

func (m AdminModel) listLen() int {
	switch m.tab {
	case TabCategories:
		return len(m.categories)
	case TabTags:
		return len(m.tags)
	case TabUsers:
		return len(m.users)
	default:
		return 0
	}
}

func (m *AdminModel) clampCursor() {
	if m.cursor >= m.listLen() {
		m.cursor = maxInt(m.listLen()-1, 0)
	}
}

// View renders the admin surface
func (m AdminModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🛠 Admin"))
	b.WriteString("  ")
	for i, name := range adminTabNames {
		style := styles.TabStyle
		if AdminTab(i) == m.tab {
			style = styles.TabActiveStyle
		}
		b.WriteString(style.Render(name))
	}
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(styles.SpinnerStyle.Render("⟳ "))
		b.WriteString(styles.InfoStyle.Render("Loading..."))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Press 'r' to retry"))
		return b.String()
	}
	if m.notice != "" {
		b.WriteString(styles.SuccessStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	switch m.tab {
	case TabDashboard:
		b.WriteString(m.renderDashboard())
	case TabCategories:
		b.WriteString(m.renderCategories())
	case TabTags:
		b.WriteString(m.renderTags())
	case TabUsers:
		b.WriteString(m.renderUsers())
	}

	if m.editing {
		b.WriteString("\n")
		editor := m.nameInput.View()
		if m.tab == TabCategories {
			editor += "\n" + m.descInput.View()
		}
		b.WriteString(styles.DialogStyle.Render(editor))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Enter save • Tab next field • ESC cancel"))
		return b.String()
	}

	b.WriteString("\n")
	help := "Tab switch • r refresh"
	if m.tab == TabCategories || m.tab == TabTags {
		help = "↑/↓ navigate • n new • e edit • x delete • " + help
	}
	b.WriteString(styles.HelpStyle.Render(help))
	return b.String()
}

func (m AdminModel) renderDashboard() string {
	if m.dashboard == nil {
		return styles.InfoStyle.Render("No data")
	}

	var card strings.Builder
	card.WriteString(styles.RenderKeyValue("Users", fmt.Sprintf("%d (%d active today)",
		m.dashboard.TotalUsers, m.dashboard.LoggedInTodayUsers)))
	card.WriteString("\n")
	card.WriteString(styles.RenderKeyValue("Topics", fmt.Sprintf("%d (%d today)",
		m.dashboard.TotalTopics, m.dashboard.TopicsCreatedToday)))
	card.WriteString("\n")
	card.WriteString(styles.RenderKeyValue("Comments", fmt.Sprintf("%d (%d today)",
		m.dashboard.TotalComments, m.dashboard.CommentsToday)))
	return styles.CardStyle.Render(card.String())
}

func (m AdminModel) renderCategories() string {
	if len(m.categories) == 0 {
		return styles.InfoStyle.Render("No categories")
	}
	var b strings.Builder
	for i, c := range m.categories {
		prefix := "  "
		style := styles.ListItemStyle
		if i == m.cursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}
		line := prefix + styles.ListItemTitleStyle.Render(c.Name)
		if c.Description != "" {
			line += " " + styles.ListItemDescStyle.Render(styles.Truncate(c.Description, 40))
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m AdminModel) renderTags() string {
	if len(m.tags) == 0 {
		return styles.InfoStyle.Render("No tags")
	}
	var b strings.Builder
	for i, t := range m.tags {
		prefix := "  "
		style := styles.ListItemStyle
		if i == m.cursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}
		b.WriteString(style.Render(prefix + "#" + t.Name))
		b.WriteString("\n")
	}
	return b.String()
}

func (m AdminModel) renderUsers() string {
	if len(m.users) == 0 {
		return styles.InfoStyle.Render("No users")
	}
	var b strings.Builder
	for i, u := range m.users {
		prefix := "  "
		style := styles.ListItemStyle
		if i == m.cursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s %s", prefix,
			styles.ListItemTitleStyle.Render(u.Username),
			styles.ListItemDescStyle.Render(fmt.Sprintf("(id %d)", u.ID)))))
		b.WriteString("\n")
	}
	return b.String()
}

// loadTab fetches the active tab's data
func (m AdminModel) loadTab(tab AdminTab) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		switch tab {
		case TabCategories:
			categories, err := m.apiClient.ListAdminCategories(ctx)
			if err != nil {
				return AdminErrorMsg{Err: err}
			}
			return AdminCategoriesMsg{Categories: categories}
		case TabTags:
			tags, err := m.apiClient.ListTags(ctx)
			if err != nil {
				return AdminErrorMsg{Err: err}
			}
			return AdminTagsMsg{Tags: tags}
		case TabUsers:
			users, err := m.apiClient.ListUsers(ctx)
			if err != nil {
				return AdminErrorMsg{Err: err}
			}
			return AdminUsersMsg{Users: users}
		default:
			dashboard, err := m.apiClient.GetAdminDashboard(ctx)
			if err != nil {
				return AdminErrorMsg{Err: err}
			}
			return AdminDashboardMsg{Dashboard: dashboard}
		}
	}
}

func (m AdminModel) createCategory(name, description string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if _, err := m.apiClient.CreateCategory(ctx, name, description); err != nil {
			return AdminErrorMsg{Err: err}
		}
		return AdminMutatedMsg{Notice: "Category created"}
	}
}

func (m AdminModel) updateCategory(id int64, name, description string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if _, err := m.apiClient.UpdateCategory(ctx, id, name, description); err != nil {
			return AdminErrorMsg{Err: err}
		}
		return AdminMutatedMsg{Notice: "Category updated"}
	}
}

func (m AdminModel) deleteCategory(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.DeleteCategory(ctx, id); err != nil {
			return AdminErrorMsg{Err: err}
		}
		return AdminMutatedMsg{Notice: "Category deleted"}
	}
}

func (m AdminModel) createTag(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if _, err := m.apiClient.CreateTag(ctx, name); err != nil {
			return AdminErrorMsg{Err: err}
		}
		return AdminMutatedMsg{Notice: "Tag created"}
	}
}

func (m AdminModel) updateTag(id int64, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if _, err := m.apiClient.UpdateTag(ctx, id, name); err != nil {
			return AdminErrorMsg{Err: err}
		}
		return AdminMutatedMsg{Notice: "Tag updated"}
	}
}

func (m AdminModel) deleteTag(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.DeleteTag(ctx, id); err != nil {
			return AdminErrorMsg{Err: err}
		}
		return AdminMutatedMsg{Notice: "Tag deleted"}
	}
}

// Messages

// AdminDashboardMsg carries the site counters
type AdminDashboardMsg struct {
	Dashboard *models.AdminDashboard
}

// AdminCategoriesMsg carries the category listing
type AdminCategoriesMsg struct {
	Categories []models.Category
}

// AdminTagsMsg carries the tag listing
type AdminTagsMsg struct {
	Tags []models.Tag
}

// AdminUsersMsg carries the user listing
type AdminUsersMsg struct {
	Users []models.AdminUser
}

// AdminMutatedMsg confirms an admin mutation
type AdminMutatedMsg struct {
	Notice string
}

// AdminErrorMsg is sent on admin errors
type AdminErrorMsg struct {
	Err error
}

// InputActive reports whether the name editor is open
func (m AdminModel) InputActive() bool {
	return m.editing
}
