package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"forumhub/pkg/logger"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

// Frame types on the chat socket.
const (
	frameSubscribe = "subscribe"
	frameSend      = "send"
	frameMessage   = "message"
)

// sendDestination is the fixed publish destination; the server routes the
// message to the room named inside the body.
const sendDestination = "/app/chat.sendMessage"

// Frame is the wire envelope for every chat exchange.
type Frame struct {
	Type        string          `json:"type"`
	Destination string          `json:"destination"`
	Body        json.RawMessage `json:"body,omitempty"`
}

// Channel is a live chat connection. One channel carries at most one room
// subscription; switching rooms means closing and dialing again, which keeps
// teardown deterministic.
type Channel struct {
	conn     *websocket.Conn
	writeMu  sync.Mutex
	incoming chan models.ChatMessage

	closeOnce sync.Once
	// quit is closed by Close; closed is closed by readLoop on exit
	quit   chan struct{}
	closed chan struct{}

	subMu      sync.Mutex
	subscribed bool
}

// Dial opens the chat socket. The token authenticates the handshake.
func Dial(ctx context.Context, wsURL, token string) (*Channel, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
			return nil, models.NewServerError(resp.StatusCode, "chat handshake rejected")
		}
		return nil, models.NewNetworkError(err)
	}
	if resp != nil {
		resp.Body.Close()
	}

	ch := &Channel{
		conn:     conn,
		incoming: make(chan models.ChatMessage, 16),
		quit:     make(chan struct{}),
		closed:   make(chan struct{}),
	}
	go ch.readLoop()
	return ch, nil
}

// Subscribe binds this channel to one room. A channel subscribes once.
func (c *Channel) Subscribe(roomID int64) error {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if c.subscribed {
		return fmt.Errorf("channel already subscribed")
	}

	err := c.writeFrame(Frame{
		Type:        frameSubscribe,
		Destination: fmt.Sprintf("/topic/messages/%d", roomID),
	})
	if err != nil {
		return err
	}
	c.subscribed = true
	logger.WebSocket(fmt.Sprintf("%d", roomID), "subscribe")
	return nil
}

// Send publishes a message. The sent message is NOT looped back locally;
// it only appears in the transcript once the server broadcasts it, so the
// transcript shows exactly what everyone else sees.
func (c *Channel) Send(msg models.ChatMessage) error {
	if err := utils.ValidateChatMessage(msg.Content); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}
	return c.writeFrame(Frame{
		Type:        frameSend,
		Destination: sendDestination,
		Body:        body,
	})
}

// Messages returns the broadcast stream. Closed when the connection ends.
func (c *Channel) Messages() <-chan models.ChatMessage {
	return c.incoming
}

// Done is closed when the connection has ended, whatever the reason.
func (c *Channel) Done() <-chan struct{} {
	return c.closed
}

// Close shuts the connection down. Safe to call more than once and safe to
// race with a server-side close.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.quit)
		c.writeMu.Lock()
		deadline := time.Now().Add(time.Second)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}

func (c *Channel) writeFrame(f Frame) error {
	select {
	case <-c.closed:
		return models.ErrNotConnected
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(f); err != nil {
		return models.NewNetworkError(err)
	}
	return nil
}

func (c *Channel) readLoop() {
	defer func() {
		close(c.incoming)
		close(c.closed)
		c.conn.Close()
	}()

	for {
		var frame Frame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if !isExpectedCloseErr(err) {
				logger.Warnf("Chat connection lost: %v", err)
			}
			return
		}

		if frame.Type != frameMessage {
			continue
		}
		var msg models.ChatMessage
		if err := json.Unmarshal(frame.Body, &msg); err != nil {
			logger.Warnf("Dropping malformed chat frame: %v", err)
			continue
		}
		// The consumer may have walked away without draining; Close must
		// still let this goroutine exit.
		select {
		case c.incoming <- msg:
		case <-c.quit:
			return
		}
	}
}

// isExpectedCloseErr reports whether the read error is an ordinary shutdown
// rather than something worth logging.
func isExpectedCloseErr(err error) bool {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "connection reset by peer")
}
