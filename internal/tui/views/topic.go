package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/api"
	"forumhub/internal/thread"
	"forumhub/internal/tui/components"
	"forumhub/internal/tui/styles"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

// TopicModel shows one topic with its threaded comments
type TopicModel struct {
	apiClient *api.Client

	// Data
	topicID int64
	state   *thread.TopicState
	rows    []thread.Row

	// Composer state: replying to a comment (parentID != 0) or the topic
	composer      components.TextArea
	composing     bool
	replyParentID int64

	// Session capabilities
	loggedIn bool
	isAdmin  bool

	// State
	loading bool
	err     error
	notice  string
	cursor  int
	// gen increments on every open/refresh; responses carrying an older gen
	// are for a view the user already left and get dropped
	gen int64

	downloadDir string

	// Window size
	width  int
	height int
}

// NewTopicModel creates a new topic view
func NewTopicModel(apiClient *api.Client, downloadDir string) TopicModel {
	return TopicModel{
		apiClient:   apiClient,
		state:       thread.NewTopicState(),
		composer:    components.NewTextArea("Reply", "Write your reply...", models.MaxCommentLength),
		downloadDir: downloadDir,
	}
}

// SetSession updates what the current user may do
func (m *TopicModel) SetSession(loggedIn, isAdmin bool) {
	m.loggedIn = loggedIn
	m.isAdmin = isAdmin
}

// Open starts loading a topic. Any in-flight responses for the previous
// topic are invalidated.
func (m *TopicModel) Open(topicID int64) tea.Cmd {
	m.topicID = topicID
	m.gen++
	m.state = thread.NewTopicState()
	m.rows = nil
	m.cursor = 0
	m.loading = true
	m.err = nil
	m.notice = ""
	m.composing = false
	return m.loadTopic(m.gen, 0)
}

// Init is a no-op; the view loads through Open
func (m TopicModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m TopicModel) Update(msg tea.Msg) (TopicModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.composer.SetWidth(minInt(m.width-8, 70))
		return m, nil

	case tea.KeyMsg:
		if m.composing {
			return m.handleComposerKey(msg)
		}
		return m.handleKey(msg)

	case TopicLoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.Page == 0 {
			m.state.Refresh(msg.Topic)
		} else {
			m.state.ApplyTopicPage(msg.Topic, msg.Page)
		}
		m.refreshRows()
		return m, nil

	case RepliesLoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.state.Tree.ApplyReplyPage(msg.ParentID, msg.Page, msg.Replies)
		m.refreshRows()
		return m, nil

	case ReplyPostedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.state.Tree.AddReply(*msg.Comment)
		m.notice = "Reply posted"
		m.composer.Reset()
		m.refreshRows()
		return m, nil

	case CommentRatingMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.state.Tree.SetRating(msg.CommentID, msg.Rating)
		return m, nil

	case CommentDeletedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.state.Tree.MarkDeleted(msg.CommentID)
		m.notice = "Comment deleted"
		return m, nil

	case AttachmentSavedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.notice = "Saved " + msg.Path
		return m, nil

	case TopicErrorMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		if parentID := msg.FailedReplyParent; parentID != 0 {
			m.state.Tree.FailReplyLoad(parentID)
		}
		m.err = msg.Err
		if msg.FailedSubmit {
			// The draft is still in the composer; reopen it for a retry
			m.composing = true
			return m, m.composer.Focus()
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keys in browse mode
func (m TopicModel) handleKey(msg tea.KeyMsg) (TopicModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter", " "))):
		// Expand/collapse replies under the cursor
		node := m.selectedNode()
		if node == nil {
			return m, nil
		}
		needLoad, page := m.state.Tree.ToggleExpand(node.Comment.ID)
		m.refreshRows()
		if needLoad {
			m.state.Tree.BeginReplyLoad(node.Comment.ID)
			return m, m.loadReplies(m.gen, node.Comment.ID, page)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("l"))):
		// Load next reply page for the selected comment
		node := m.selectedNode()
		if node == nil || node.State != thread.StateLoaded || !node.HasMore {
			return m, nil
		}
		m.state.Tree.BeginReplyLoad(node.Comment.ID)
		return m, m.loadReplies(m.gen, node.Comment.ID, node.NextPage)

	case key.Matches(msg, key.NewBinding(key.WithKeys("L"))):
		// Load next page of top-level comments
		page, more := m.state.Tree.NextTopLevelPage()
		if !more {
			return m, nil
		}
		return m, m.loadTopic(m.gen, page)

	case key.Matches(msg, key.NewBinding(key.WithKeys("a"))):
		// Reply to selected comment
		node := m.selectedNode()
		if node == nil || node.Deleted || !m.loggedIn {
			return m, nil
		}
		m.composing = true
		m.replyParentID = node.Comment.ID
		m.composer.Reset()
		return m, m.composer.Focus()

	case key.Matches(msg, key.NewBinding(key.WithKeys("t"))):
		// Top-level comment on the topic
		if !m.loggedIn {
			return m, nil
		}
		m.composing = true
		m.replyParentID = 0
		m.composer.Reset()
		return m, m.composer.Focus()

	case key.Matches(msg, key.NewBinding(key.WithKeys("u"))):
		return m.voteComment(models.VoteUp)

	case key.Matches(msg, key.NewBinding(key.WithKeys("d"))):
		return m.voteComment(models.VoteDown)

	case key.Matches(msg, key.NewBinding(key.WithKeys("U"))):
		return m.voteTopic(models.VoteUp)

	case key.Matches(msg, key.NewBinding(key.WithKeys("D"))):
		return m.voteTopic(models.VoteDown)

	case key.Matches(msg, key.NewBinding(key.WithKeys("x"))):
		// Admin delete for the selected comment
		node := m.selectedNode()
		if node == nil || !m.isAdmin || node.Deleted {
			return m, nil
		}
		return m, m.deleteComment(m.gen, node.Comment.ID)

	case key.Matches(msg, key.NewBinding(key.WithKeys("w"))):
		// Download the topic's first attachment
		if len(m.state.Topic.Attachments) > 0 {
			return m, m.download(m.state.Topic.Attachments[0])
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		// Full refresh, the single full-replace entry point
		m.gen++
		m.loading = true
		m.err = nil
		return m, m.loadTopic(m.gen, 0)
	}
	return m, nil
}

// handleComposerKey processes keys while writing a reply
func (m TopicModel) handleComposerKey(msg tea.KeyMsg) (TopicModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.composing = false
		m.composer.Blur()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+s"))):
		content := m.composer.Value()
		if err := utils.ValidateContent(content); err != nil {
			m.composer.SetError(err.Error())
			return m, nil
		}
		m.composing = false
		m.composer.Blur()
		return m, m.postReply(m.gen, m.replyParentID, content)
	}

	cmd := m.composer.Update(msg)
	return m, cmd
}

// voteComment sends the vote, then refetches the authoritative rating. The
// local rating is never adjusted arithmetically.
func (m TopicModel) voteComment(direction models.VoteDirection) (TopicModel, tea.Cmd) {
	node := m.selectedNode()
	if node == nil || node.Deleted {
		return m, nil
	}
	gen := m.gen
	commentID := node.Comment.ID
	return m, func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.VoteComment(ctx, commentID, direction); err != nil {
			return TopicErrorMsg{Gen: gen, Err: err}
		}
		rating, err := m.apiClient.GetCommentRating(ctx, commentID)
		if err != nil {
			return TopicErrorMsg{Gen: gen, Err: err}
		}
		return CommentRatingMsg{Gen: gen, CommentID: commentID, Rating: rating}
	}
}

// voteTopic sends the vote, then refetches the whole topic snapshot
func (m TopicModel) voteTopic(direction models.VoteDirection) (TopicModel, tea.Cmd) {
	gen := m.gen
	topicID := m.topicID
	return m, func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.VoteTopic(ctx, topicID, direction); err != nil {
			return TopicErrorMsg{Gen: gen, Err: err}
		}
		topic, err := m.apiClient.GetTopic(ctx, topicID, 0)
		if err != nil {
			return TopicErrorMsg{Gen: gen, Err: err}
		}
		return TopicLoadedMsg{Gen: gen, Topic: topic, Page: 0}
	}
}

func (m TopicModel) deleteComment(gen, commentID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := m.apiClient.DeleteComment(ctx, commentID); err != nil {
			return TopicErrorMsg{Gen: gen, Err: err}
		}
		return CommentDeletedMsg{Gen: gen, CommentID: commentID}
	}
}

func (m TopicModel) postReply(gen, parentID int64, content string) tea.Cmd {
	topicID := m.topicID
	return func() tea.Msg {
		ctx, cancel := utils.WithLongTimeout(context.Background())
		defer cancel()

		comment, err := m.apiClient.SubmitComment(ctx, models.SubmitCommentRequest{
			TopicID:  topicID,
			ParentID: parentID,
			Content:  content,
		})
		if err != nil {
			return TopicErrorMsg{Gen: gen, Err: err, FailedSubmit: true}
		}
		return ReplyPostedMsg{Gen: gen, Comment: comment}
	}
}

func (m TopicModel) download(attachment models.Attachment) tea.Cmd {
	gen := m.gen
	dir := m.downloadDir
	return func() tea.Msg {
		ctx, cancel := utils.WithLongTimeout(context.Background())
		defer cancel()

		path, err := m.apiClient.DownloadAttachment(ctx, attachment, dir)
		if err != nil {
			return TopicErrorMsg{Gen: gen, Err: err}
		}
		return AttachmentSavedMsg{Gen: gen, Path: path}
	}
}

func (m TopicModel) loadTopic(gen int64, page int) tea.Cmd {
	topicID := m.topicID
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		topic, err := m.apiClient.GetTopic(ctx, topicID, page)
		if err != nil {
			return TopicErrorMsg{Gen: gen, Err: err}
		}
		return TopicLoadedMsg{Gen: gen, Topic: topic, Page: page}
	}
}

func (m TopicModel) loadReplies(gen, parentID int64, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		result, err := m.apiClient.ListReplies(ctx, parentID, page)
		if err != nil {
			return TopicErrorMsg{Gen: gen, Err: err, FailedReplyParent: parentID}
		}
		return RepliesLoadedMsg{Gen: gen, ParentID: parentID, Page: page, Replies: result.Content}
	}
}

func (m *TopicModel) refreshRows() {
	m.rows = m.state.Tree.VisibleRows()
	if m.cursor >= len(m.rows) {
		m.cursor = maxInt(len(m.rows)-1, 0)
	}
}

func (m TopicModel) selectedNode() *thread.Node {
	if m.cursor >= len(m.rows) {
		return nil
	}
	return m.state.Tree.Node(m.rows[m.cursor].ID)
}

// View renders the topic view
func (m TopicModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString(styles.SpinnerStyle.Render("⟳ "))
		b.WriteString(styles.InfoStyle.Render("Loading topic..."))
		return b.String()
	}

	topic := m.state.Topic
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(topic.Title, 60)))
	b.WriteString("  ")
	b.WriteString(styles.RenderRating(topic.Rating))
	b.WriteString("\n")
	meta := fmt.Sprintf("by %s • %s", topic.Username, utils.TimeAgo(topic.CreatedAt))
	if topic.Category != "" {
		meta += " • " + topic.Category
	}
	if len(topic.Attachments) > 0 {
		meta += fmt.Sprintf(" • 📎 %d", len(topic.Attachments))
	}
	b.WriteString(styles.ListItemDescStyle.Render(meta))
	b.WriteString("\n\n")

	if topic.Content != "" {
		b.WriteString(styles.CardContentStyle.Render(topic.Content))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.RenderDivider(minInt(m.width-4, 70)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(styles.SuccessStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(m.renderComments())

	if m.composing {
		b.WriteString("\n")
		b.WriteString(m.composer.View())
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Ctrl+S submit • ESC cancel"))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

// renderComments renders the visible slice of the comment tree
func (m TopicModel) renderComments() string {
	if len(m.rows) == 0 {
		return styles.HelpStyle.Render("\n  No comments yet.\n")
	}

	var b strings.Builder

	// Window the rows around the cursor
	maxVisible := 14
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := minInt(start+maxVisible, len(m.rows))

	if start > 0 {
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}

	for i := start; i < end; i++ {
		row := m.rows[i]
		node := m.state.Tree.Node(row.ID)
		if node == nil {
			continue
		}
		b.WriteString(m.renderComment(node, row.Depth, i == m.cursor))
		b.WriteString("\n")
	}

	if end < len(m.rows) {
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("  ↓ %d more", len(m.rows)-end)))
		b.WriteString("\n")
	}

	if _, more := m.state.Tree.NextTopLevelPage(); more {
		b.WriteString(styles.HelpStyle.Render("  L load more comments"))
		b.WriteString("\n")
	}

	return b.String()
}

// renderComment renders one comment row
func (m TopicModel) renderComment(node *thread.Node, depth int, selected bool) string {
	var b strings.Builder

	indent := styles.RenderIndent(depth)
	prefix := "  "
	if selected {
		prefix = "▸ "
	}
	b.WriteString(prefix)
	b.WriteString(indent)

	if node.Deleted {
		b.WriteString(styles.CommentDeletedStyle.Render("[deleted]"))
		return b.String()
	}

	b.WriteString(styles.CommentAuthorStyle.Render(node.Comment.Username))
	b.WriteString(" ")
	b.WriteString(styles.RenderRating(node.Comment.Rating))
	b.WriteString(" ")
	b.WriteString(styles.HelpStyle.Render(utils.TimeAgo(node.Comment.CreatedAt)))

	// Reply affordance markers
	if node.Comment.ReplyCount > 0 {
		marker := fmt.Sprintf(" [%d replies]", node.Comment.ReplyCount)
		switch {
		case node.State == thread.StateLoading:
			marker = " [loading...]"
		case node.Expanded && node.HasMore:
			marker = fmt.Sprintf(" [%d replies, more available]", node.Comment.ReplyCount)
		case node.Expanded:
			marker = ""
		}
		b.WriteString(styles.CommentCollapsedStyle.Render(marker))
	}
	if len(node.Comment.Attachments) > 0 {
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf(" 📎%d", len(node.Comment.Attachments))))
	}

	b.WriteString("\n")
	content := styles.Truncate(node.Comment.Content, 76-2*depth)
	contentStyle := styles.CardContentStyle
	if selected {
		contentStyle = styles.HighlightStyle
	}
	b.WriteString("  ")
	b.WriteString(indent)
	b.WriteString(contentStyle.Render(content))

	return b.String()
}

// renderHelp renders the context-sensitive help bar
func (m TopicModel) renderHelp() string {
	parts := []string{"↑/↓ navigate", "Enter expand", "l more replies"}
	if m.loggedIn {
		parts = append(parts, "a reply", "t comment", "u/d vote", "U/D vote topic")
	}
	if m.isAdmin {
		parts = append(parts, "x delete")
	}
	if len(m.state.Topic.Attachments) > 0 {
		parts = append(parts, "w download")
	}
	parts = append(parts, "r refresh", "esc back")
	return styles.HelpStyle.Render(strings.Join(parts, " • "))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Messages

// TopicLoadedMsg carries a fetched topic page
type TopicLoadedMsg struct {
	Gen   int64
	Topic *models.Topic
	Page  int
}

// RepliesLoadedMsg carries a fetched reply page
type RepliesLoadedMsg struct {
	Gen      int64
	ParentID int64
	Page     int
	Replies  []models.Comment
}

// ReplyPostedMsg carries the server-confirmed new comment
type ReplyPostedMsg struct {
	Gen     int64
	Comment *models.Comment
}

// CommentRatingMsg carries a refetched comment rating
type CommentRatingMsg struct {
	Gen       int64
	CommentID int64
	Rating    int
}

// CommentDeletedMsg confirms a comment deletion
type CommentDeletedMsg struct {
	Gen       int64
	CommentID int64
}

// AttachmentSavedMsg reports where a download landed
type AttachmentSavedMsg struct {
	Gen  int64
	Path string
}

// TopicErrorMsg is sent on topic view errors
type TopicErrorMsg struct {
	Gen int64
	Err error
	// FailedReplyParent is set when a reply page load failed, so the node's
	// load state can be rolled back
	FailedReplyParent int64
	// FailedSubmit is set when a reply submission failed; the composer
	// reopens with the draft intact
	FailedSubmit bool
}

// InputActive reports whether the comment composer is open
func (m TopicModel) InputActive() bool {
	return m.composing
}
