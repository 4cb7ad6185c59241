package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forumhub/pkg/models"
)

var upgrader = websocket.Upgrader{}

// chatServer is a minimal in-process chat endpoint: it records the
// subscription, then relays every sent message back as a broadcast frame.
func chatServer(t *testing.T, gotSubscribe chan Frame) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var frame Frame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			switch frame.Type {
			case "subscribe":
				if gotSubscribe != nil {
					gotSubscribe <- frame
				}
			case "send":
				relay := Frame{Type: "message", Destination: frame.Destination, Body: frame.Body}
				if err := conn.WriteJSON(relay); err != nil {
					return
				}
			}
		}
	}))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestSubscribeSendsRoomDestination(t *testing.T) {
	gotSubscribe := make(chan Frame, 1)
	server := chatServer(t, gotSubscribe)
	defer server.Close()

	ch, err := Dial(context.Background(), wsURL(server), "tok")
	require.NoError(t, err)
	defer ch.Close()

	require.NoError(t, ch.Subscribe(42))

	select {
	case frame := <-gotSubscribe:
		assert.Equal(t, "subscribe", frame.Type)
		assert.Equal(t, "/topic/messages/42", frame.Destination)
	case <-time.After(time.Second):
		t.Fatal("subscribe frame never arrived")
	}

	// A channel carries exactly one subscription.
	assert.Error(t, ch.Subscribe(43))
}

func TestSendAppearsOnlyViaRelay(t *testing.T) {
	server := chatServer(t, nil)
	defer server.Close()

	ch, err := Dial(context.Background(), wsURL(server), "tok")
	require.NoError(t, err)
	defer ch.Close()

	msg := models.ChatMessage{
		ChatRoomID:        7,
		SenderUsername:    "alice",
		RecipientUsername: "bob",
		Content:           "hello",
	}
	require.NoError(t, ch.Send(msg))

	select {
	case got := <-ch.Messages():
		assert.Equal(t, msg, got)
	case <-time.After(time.Second):
		t.Fatal("relayed message never arrived")
	}
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	server := chatServer(t, nil)
	defer server.Close()

	ch, err := Dial(context.Background(), wsURL(server), "tok")
	require.NoError(t, err)
	defer ch.Close()

	err = ch.Send(models.ChatMessage{ChatRoomID: 1, Content: "   "})
	assert.True(t, models.IsValidationError(err))
}

func TestCloseIsDeterministic(t *testing.T) {
	server := chatServer(t, nil)
	defer server.Close()

	ch, err := Dial(context.Background(), wsURL(server), "tok")
	require.NoError(t, err)

	require.NoError(t, ch.Close())
	assert.NoError(t, ch.Close(), "second close is a no-op")

	select {
	case <-ch.Done():
	case <-time.After(time.Second):
		t.Fatal("done channel never closed")
	}

	// Messages drains and closes.
	for range ch.Messages() {
	}

	err = ch.Send(models.ChatMessage{ChatRoomID: 1, Content: "late"})
	assert.Error(t, err)
}

func TestCloseUnblocksUndrainedReader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		body, _ := json.Marshal(models.ChatMessage{ChatRoomID: 1, SenderUsername: "bob", Content: "flood"})
		for i := 0; i < 64; i++ {
			if err := conn.WriteJSON(Frame{Type: "message", Body: body}); err != nil {
				return
			}
		}
		// Hold the connection open until the client is done.
		conn.ReadMessage()
	}))
	defer server.Close()

	ch, err := Dial(context.Background(), wsURL(server), "tok")
	require.NoError(t, err)

	// Nobody drains Messages, so the buffer fills and delivery stalls.
	// Close must still end the connection.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, ch.Close())

	select {
	case <-ch.Done():
	case <-time.After(time.Second):
		t.Fatal("read loop still stuck after close")
	}
}

func TestServerCloseEndsChannel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	}))
	defer server.Close()

	ch, err := Dial(context.Background(), wsURL(server), "tok")
	require.NoError(t, err)
	defer ch.Close()

	select {
	case <-ch.Done():
	case <-time.After(time.Second):
		t.Fatal("channel did not notice server close")
	}
}

func TestNonMessageFramesIgnored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		body, _ := json.Marshal(models.ChatMessage{ChatRoomID: 1, SenderUsername: "bob", Content: "real"})
		conn.WriteJSON(Frame{Type: "ack"})
		conn.WriteJSON(Frame{Type: "message", Body: json.RawMessage(`{invalid`)})
		conn.WriteJSON(Frame{Type: "message", Body: body})

		// Hold the connection open until the client is done.
		conn.ReadMessage()
	}))
	defer server.Close()

	ch, err := Dial(context.Background(), wsURL(server), "tok")
	require.NoError(t, err)
	defer ch.Close()

	select {
	case got := <-ch.Messages():
		assert.Equal(t, "real", got.Content)
	case <-time.After(time.Second):
		t.Fatal("message never delivered")
	}
}

func TestDialRejectedHandshake(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := Dial(context.Background(), wsURL(server), "")
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.StatusCode)
}
