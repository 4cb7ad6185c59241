package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/api"
	"forumhub/internal/chat"
	"forumhub/internal/tui/styles"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

// chatEntry is one transcript line: a relayed message or a local status note
type chatEntry struct {
	system   bool
	sender   string
	content  string
	received time.Time
}

// ChatModel handles the direct-message overlay
type ChatModel struct {
	apiClient *api.Client
	wsURL     string
	token     string
	username  string

	// Connection state
	channel    *chat.Channel
	connected  bool
	connecting bool
	// connGen increments on every (re)connect; stale reads are dropped
	connGen int64

	// Chat state
	entries      []chatEntry
	rooms        []models.ChatRoom
	roomsLoaded  bool
	currentRoom  models.ChatRoom
	showRoomList bool
	roomCursor   int

	// UI state
	messageInput textinput.Model
	scrollOffset int

	lastError error

	// Window dimensions
	width  int
	height int
}

// NewChatModel creates a new chat model
func NewChatModel(apiClient *api.Client, wsURL string) ChatModel {
	input := textinput.New()
	input.Placeholder = "Type your message... (Enter to send)"
	input.CharLimit = models.MaxChatMessageLength
	input.Width = 60
	input.Focus()

	return ChatModel{
		apiClient:    apiClient,
		wsURL:        wsURL,
		messageInput: input,
	}
}

// SetSession updates the identity used for outgoing messages
func (m *ChatModel) SetSession(token, username string) {
	m.token = token
	m.username = username
}

// Init loads the room list
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadRooms())
}

// Update handles all messages for the chat view
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.messageInput.Width = minInt(m.width-10, 60)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ChatRoomsLoadedMsg:
		m.rooms = msg.Rooms
		m.roomsLoaded = true
		if len(m.rooms) > 0 {
			m.currentRoom = m.rooms[0]
			return m.startConnect("Joining " + m.currentRoom.Recipient)
		}
		m.entries = append(m.entries, chatEntry{
			system:   true,
			content:  "No conversations yet",
			received: time.Now(),
		})
		return m, nil

	case ChatConnectedMsg:
		if msg.Gen != m.connGen {
			// The user already reconnected; this channel is orphaned
			msg.Channel.Close()
			return m, nil
		}
		m.connecting = false
		m.connected = true
		m.channel = msg.Channel
		m.lastError = nil
		m.entries = append(m.entries, chatEntry{
			system:   true,
			content:  "Connected to " + m.currentRoom.Recipient,
			received: time.Now(),
		})
		return m, tea.Batch(m.loadHistory(msg.Gen), m.listen(msg.Gen, msg.Channel))

	case ChatHistoryMsg:
		if msg.Gen != m.connGen {
			return m, nil
		}
		for _, hm := range msg.Messages {
			m.entries = append(m.entries, chatEntry{
				sender:   hm.SenderUsername,
				content:  hm.Content,
				received: time.Now(),
			})
		}
		return m, nil

	case ChatMessageReceivedMsg:
		if msg.Gen != m.connGen {
			return m, nil
		}
		m.entries = append(m.entries, chatEntry{
			sender:   msg.Message.SenderUsername,
			content:  msg.Message.Content,
			received: time.Now(),
		})
		m.scrollOffset = 0
		return m, m.listen(msg.Gen, m.channel)

	case ChatDisconnectedMsg:
		if msg.Gen != m.connGen {
			return m, nil
		}
		m.connected = false
		m.channel = nil
		m.entries = append(m.entries, chatEntry{
			system:   true,
			content:  "Disconnected",
			received: time.Now(),
		})
		return m, nil

	case ChatErrorMsg:
		if msg.Gen != m.connGen {
			return m, nil
		}
		m.lastError = msg.Err
		m.connecting = false
		m.entries = append(m.entries, chatEntry{
			system:   true,
			content:  "Error: " + msg.Err.Error(),
			received: time.Now(),
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.messageInput, cmd = m.messageInput.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input
func (m ChatModel) handleKeyPress(msg tea.KeyMsg) (ChatModel, tea.Cmd) {
	if m.showRoomList {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			m.showRoomList = false
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
			if m.roomCursor < len(m.rooms)-1 {
				m.roomCursor++
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
			if m.roomCursor > 0 {
				m.roomCursor--
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if m.roomCursor < len(m.rooms) {
				m.currentRoom = m.rooms[m.roomCursor]
				m.showRoomList = false
				m.entries = nil
				return m.startConnect("Switching to " + m.currentRoom.Recipient)
			}
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if m.messageInput.Value() != "" && m.connected {
			content := m.messageInput.Value()
			m.messageInput.SetValue("")
			// No local echo: the message shows up when the server relays it
			return m, m.send(content)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
		m.showRoomList = !m.showRoomList
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+r"))):
		// Manual reconnect; there is no automatic retry
		if m.currentRoom.ID != 0 {
			return m.startConnect("Reconnecting")
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("pgup"))):
		if m.scrollOffset < len(m.entries)-1 {
			m.scrollOffset++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("pgdown"))):
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.messageInput, cmd = m.messageInput.Update(msg)
	return m, cmd
}

// startConnect tears down any live channel and dials a fresh one
func (m ChatModel) startConnect(reason string) (ChatModel, tea.Cmd) {
	if m.channel != nil {
		m.channel.Close()
		m.channel = nil
	}
	m.connGen++
	gen := m.connGen
	m.connecting = true
	m.connected = false
	m.lastError = nil
	if reason != "" {
		m.entries = append(m.entries, chatEntry{
			system:   true,
			content:  reason + "…",
			received: time.Now(),
		})
	}
	return m, m.connect(gen)
}

// connect dials, subscribes, and fetches the room transcript
func (m ChatModel) connect(gen int64) tea.Cmd {
	wsURL, token, room := m.wsURL, m.token, m.currentRoom
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		channel, err := chat.Dial(ctx, wsURL, token)
		if err != nil {
			return ChatErrorMsg{Gen: gen, Err: err}
		}
		if err := channel.Subscribe(room.ID); err != nil {
			channel.Close()
			return ChatErrorMsg{Gen: gen, Err: err}
		}
		return ChatConnectedMsg{Gen: gen, Channel: channel}
	}
}

// loadHistory fetches the stored transcript for the current room
func (m ChatModel) loadHistory(gen int64) tea.Cmd {
	roomID := m.currentRoom.ID
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		history, err := m.apiClient.GetChatHistory(ctx, roomID)
		if err != nil {
			return ChatErrorMsg{Gen: gen, Err: err}
		}
		return ChatHistoryMsg{Gen: gen, Messages: history}
	}
}

// listen waits for the next relayed message
func (m ChatModel) listen(gen int64, channel *chat.Channel) tea.Cmd {
	return func() tea.Msg {
		if channel == nil {
			return ChatDisconnectedMsg{Gen: gen}
		}
		msg, ok := <-channel.Messages()
		if !ok {
			return ChatDisconnectedMsg{Gen: gen}
		}
		return ChatMessageReceivedMsg{Gen: gen, Message: msg}
	}
}

// send publishes a message to the room
func (m ChatModel) send(content string) tea.Cmd {
	gen := m.connGen
	channel := m.channel
	msg := models.ChatMessage{
		ChatRoomID:        m.currentRoom.ID,
		SenderUsername:    m.username,
		RecipientUsername: m.currentRoom.Recipient,
		Content:           content,
	}
	return func() tea.Msg {
		if channel == nil {
			return ChatErrorMsg{Gen: gen, Err: models.ErrNotConnected}
		}
		if err := channel.Send(msg); err != nil {
			return ChatErrorMsg{Gen: gen, Err: err}
		}
		return nil
	}
}

// loadRooms fetches the conversation list
func (m ChatModel) loadRooms() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		rooms, err := m.apiClient.ListChatRooms(ctx)
		if err != nil {
			return ChatErrorMsg{Err: err}
		}
		return ChatRoomsLoadedMsg{Rooms: rooms}
	}
}

// Close shuts down the live connection; called on quit and on overlay close
func (m *ChatModel) Close() {
	m.connGen++
	if m.channel != nil {
		m.channel.Close()
		m.channel = nil
		m.connected = false
	}
}

// View renders the chat overlay
func (m ChatModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.showRoomList {
		b.WriteString(m.renderRoomSelector())
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("↑/↓ select • Enter join • Esc cancel"))
		return b.String()
	}

	b.WriteString(m.renderEntries())
	b.WriteString("\n")
	b.WriteString(styles.RenderDivider(minInt(m.width-4, 70)))
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("Enter send • Tab rooms • Ctrl+R reconnect • PgUp/PgDn scroll • Esc close"))

	return b.String()
}

func (m ChatModel) renderHeader() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("💬 Chat"))
	b.WriteString("  ")

	roomName := m.currentRoom.Recipient
	if roomName == "" {
		roomName = "No Conversation"
	}
	b.WriteString(styles.BadgePrimaryStyle.Render("@" + roomName))
	b.WriteString("  ")

	switch {
	case m.connected:
		b.WriteString(styles.SuccessStyle.Render("● Connected"))
	case m.connecting:
		b.WriteString(styles.WarningStyle.Render("○ Connecting..."))
	default:
		b.WriteString(styles.ErrorStyle.Render("○ Disconnected"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m ChatModel) renderEntries() string {
	if len(m.entries) == 0 {
		return styles.HelpStyle.Render("\n  No messages yet. Say something!\n")
	}

	var b strings.Builder

	maxVisible := 12
	start := len(m.entries) - maxVisible - m.scrollOffset
	if start < 0 {
		start = 0
	}
	end := len(m.entries) - m.scrollOffset
	if end > len(m.entries) {
		end = len(m.entries)
	}
	if end < start {
		end = start
	}

	if start > 0 {
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("  ↑ %d more messages", start)))
		b.WriteString("\n")
	}

	for i := start; i < end; i++ {
		entry := m.entries[i]
		timeStr := entry.received.Format("15:04:05")

		if entry.system {
			b.WriteString("  ")
			b.WriteString(styles.HelpStyle.Render("━━━ " + entry.content + " ━━━"))
		} else {
			senderStyle := styles.ChatSenderStyle
			if entry.sender == m.username {
				senderStyle = styles.ChatOwnSenderStyle
			}
			b.WriteString("  ")
			b.WriteString(styles.HelpStyle.Render("[" + timeStr + "] "))
			b.WriteString(senderStyle.Render(entry.sender))
			b.WriteString(styles.CardContentStyle.Render(": " + entry.content))
		}
		b.WriteString("\n")
	}

	if m.scrollOffset > 0 {
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("  ↓ %d newer messages", m.scrollOffset)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m ChatModel) renderRoomSelector() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(styles.CardTitleStyle.Render("  Conversations"))
	b.WriteString("\n\n")

	if len(m.rooms) == 0 {
		b.WriteString(styles.HelpStyle.Render("  No conversations yet"))
		return b.String()
	}

	for i, room := range m.rooms {
		prefix := "    "
		style := styles.ListItemStyle
		if i == m.roomCursor {
			prefix = "  ▸ "
			style = styles.ListItemSelectedStyle
		}
		label := room.Recipient
		if room.ID == m.currentRoom.ID {
			label += " (current)"
		}
		b.WriteString(style.Render(prefix + "@" + label))
		b.WriteString("\n")
	}

	return b.String()
}

func (m ChatModel) renderInput() string {
	if !m.connected {
		return styles.HelpStyle.Render("  [Not connected - press Ctrl+R to reconnect]")
	}
	return "  " + styles.InputFocusedStyle.Render("> ") + m.messageInput.View()
}

// Messages

// ChatConnectedMsg signals a live, subscribed channel
type ChatConnectedMsg struct {
	Gen     int64
	Channel *chat.Channel
}

// ChatHistoryMsg carries the stored transcript
type ChatHistoryMsg struct {
	Gen      int64
	Messages []models.ChatMessage
}

// ChatMessageReceivedMsg carries one relayed message
type ChatMessageReceivedMsg struct {
	Gen     int64
	Message models.ChatMessage
}

// ChatDisconnectedMsg signals the connection ended
type ChatDisconnectedMsg struct{ Gen int64 }

// ChatErrorMsg carries a chat error
type ChatErrorMsg struct {
	Gen int64
	Err error
}

// ChatRoomsLoadedMsg carries the conversation list
type ChatRoomsLoadedMsg struct {
	Rooms []models.ChatRoom
}

// InputActive reports whether the message box owns the keyboard
func (m ChatModel) InputActive() bool {
	return !m.showRoomList
}
