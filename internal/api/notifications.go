package api

import (
	"context"
	"fmt"

	"forumhub/pkg/models"
)

// Notification endpoints

// ListNotifications retrieves all notifications for the logged-in user.
func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, "GET", "/user/notifications", nil)
	if err != nil {
		return nil, err
	}

	var notifications []models.Notification
	if err := decodeResponse(resp, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks one notification read on the server. Local
// state follows only after this returns nil.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	path := fmt.Sprintf("/user/notifications/%d/mark-as-read", id)
	resp, err := c.doRequest(ctx, "POST", path, nil)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// MarkAllNotificationsRead marks every notification read on the server.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, "POST", "/user/notifications/mark-all-as-read", nil)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	path := fmt.Sprintf("/user/notifications/%d", id)
	resp, err := c.doRequest(ctx, "DELETE", path, nil)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// DeleteAllNotifications clears the user's notification list.
func (c *Client) DeleteAllNotifications(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, "DELETE", "/user/notifications/deleteAll", nil)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}
