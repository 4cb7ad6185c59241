package api

import (
	"context"
	"fmt"

	"forumhub/pkg/models"
)

// ListChatRooms returns the caller's direct-message conversations.
func (c *Client) ListChatRooms(ctx context.Context) ([]models.ChatRoom, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, "GET", "/chats", nil)
	if err != nil {
		return nil, err
	}

	var rooms []models.ChatRoom
	if err := decodeResponse(resp, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateChatRoom opens (or returns the existing) conversation with a user.
func (c *Client) CreateChatRoom(ctx context.Context, recipient string) (*models.ChatRoom, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, "POST", "/chats", map[string]string{
		"recipientUsername": recipient,
	})
	if err != nil {
		return nil, err
	}

	var room models.ChatRoom
	if err := decodeResponse(resp, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetChatHistory returns a room's stored transcript in arrival order.
func (c *Client) GetChatHistory(ctx context.Context, roomID int64) ([]models.ChatMessage, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/chats/%d/messages", roomID)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var messages []models.ChatMessage
	if err := decodeResponse(resp, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
