package api

import (
	"context"
	"fmt"
	"strings"

	"forumhub/pkg/models"
)

// Admin endpoints. The server enforces the admin role on all of these; the
// client only guards for a session being present at all.

// GetAdminDashboard retrieves site-wide counters.
func (c *Client) GetAdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, "GET", "/admin/dashboard", nil)
	if err != nil {
		return nil, err
	}

	var dashboard models.AdminDashboard
	if err := decodeResponse(resp, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// Category management

func (c *Client) ListAdminCategories(ctx context.Context) ([]models.Category, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, "GET", "/admin/category/getAllCategories", nil)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := decodeResponse(resp, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, "POST", "/admin/category/create", map[string]string{
		"name":        name,
		"description": description,
	})
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := decodeResponse(resp, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, name, description string) (*models.Category, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/admin/category/update/%d", id)
	resp, err := c.doRequest(ctx, "PUT", path, map[string]string{
		"name":        name,
		"description": description,
	})
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := decodeResponse(resp, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	path := fmt.Sprintf("/admin/category/delete/%d", id)
	resp, err := c.doRequest(ctx, "DELETE", path, nil)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// Tag management

func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, "GET", "/admin/tag/getAllTags", nil)
	if err != nil {
		return nil, err
	}

	var tags []models.Tag
	if err := decodeResponse(resp, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, "POST", "/admin/tag/create", map[string]string{"name": name})
	if err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := decodeResponse(resp, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (c *Client) UpdateTag(ctx context.Context, id int64, name string) (*models.Tag, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/admin/tag/update/%d", id)
	resp, err := c.doRequest(ctx, "PUT", path, map[string]string{"name": name})
	if err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := decodeResponse(resp, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (c *Client) DeleteTag(ctx context.Context, id int64) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	path := fmt.Sprintf("/admin/tag/delete/%d", id)
	resp, err := c.doRequest(ctx, "DELETE", path, nil)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// User management

func (c *Client) ListUsers(ctx context.Context) ([]models.AdminUser, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, "GET", "/admin/users", nil)
	if err != nil {
		return nil, err
	}

	var users []models.AdminUser
	if err := decodeResponse(resp, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser renames a user and/or replaces their avatar.
func (c *Client) UpdateUser(ctx context.Context, id int64, username string, avatar *models.AttachmentUpload) (*models.AdminUser, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	fields := map[string]string{"username": username}
	var files []models.AttachmentUpload
	if avatar != nil {
		files = append(files, *avatar)
	}

	path := fmt.Sprintf("/admin/users/%d", id)
	resp, err := c.doMultipart(ctx, "PUT", path, fields, "avatar", files)
	if err != nil {
		return nil, err
	}

	var user models.AdminUser
	if err := decodeResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// EditTopic updates a topic's fields (admin capability).
func (c *Client) EditTopic(ctx context.Context, topicID int64, title, content, category string, tags []string) (*models.Topic, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"title":    title,
		"content":  content,
		"category": category,
	}
	if len(tags) > 0 {
		fields["tags"] = strings.Join(tags, ",")
	}

	path := fmt.Sprintf("/admin/topics/%d", topicID)
	resp, err := c.doMultipart(ctx, "PUT", path, fields, "attachments", nil)
	if err != nil {
		return nil, err
	}

	var topic models.Topic
	if err := decodeResponse(resp, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}
