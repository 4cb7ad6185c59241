package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

// Topic endpoints

// ListTopics retrieves one page of the homepage topic listing, newest first.
func (c *Client) ListTopics(ctx context.Context, page int) (*models.Page[models.Topic], error) {
	path := fmt.Sprintf("/homepage/getAllTopics?page=%d&sort=createdAt,desc", page)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var result models.Page[models.Topic]
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchTopics runs a filtered topic search. Zero-valued filters are left
// out of the query entirely.
func (c *Client) SearchTopics(ctx context.Context, params models.TopicSearchParams) (*models.Page[models.Topic], error) {
	q := url.Values{}
	if params.Title != "" {
		q.Set("title", params.Title)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if len(params.Tags) > 0 {
		q.Set("tags", strings.Join(params.Tags, ","))
	}
	if params.MinRating != nil {
		q.Set("minRating", strconv.Itoa(*params.MinRating))
	}
	if params.MaxRating != nil {
		q.Set("maxRating", strconv.Itoa(*params.MaxRating))
	}
	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortOrder := params.SortOrder
	if sortOrder == "" {
		sortOrder = "asc"
	}
	q.Set("sortOrder", sortBy+","+sortOrder)

	resp, err := c.doRequest(ctx, "GET", "/homepage/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result models.Page[models.Topic]
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListCategories retrieves all categories for search filters and topic
// creation.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	resp, err := c.doRequest(ctx, "GET", "/homepage/getAllCategories", nil)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := decodeResponse(resp, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetTopic retrieves one topic with the given page of its top-level
// comments embedded.
func (c *Client) GetTopic(ctx context.Context, topicID int64, page int) (*models.Topic, error) {
	path := fmt.Sprintf("/topicpage/%d?page=%d", topicID, page)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var topic models.Topic
	if err := decodeResponse(resp, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// CreateTopic submits a new topic with optional attachments and banner.
func (c *Client) CreateTopic(ctx context.Context, req models.CreateTopicRequest) (*models.Topic, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if err := utils.ValidateTopicTitle(req.Title); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"title":    req.Title,
		"content":  req.Content,
		"category": req.Category,
	}
	if len(req.Tags) > 0 {
		fields["tags"] = strings.Join(req.Tags, ",")
	}
	files := req.Attachments
	if req.Banner != nil {
		// The banner rides along as a named part next to the attachments.
		fields["bannerFilename"] = req.Banner.Filename
		files = append(files, *req.Banner)
	}

	resp, err := c.doMultipart(ctx, "POST", "/topics/create", fields, "attachments", files)
	if err != nil {
		return nil, err
	}

	var topic models.Topic
	if err := decodeResponse(resp, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// VoteTopic sends a signed vote for a topic. The caller must re-fetch the
// topic for the authoritative rating; the client never computes it locally.
func (c *Client) VoteTopic(ctx context.Context, topicID int64, direction models.VoteDirection) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	path := fmt.Sprintf("/ratings/topic/%d?value=%d", topicID, int(direction))
	resp, err := c.doRequest(ctx, "POST", path, nil)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// GetProfile retrieves a user's public profile with one page of their
// topics. Works anonymously; email is only present for the owner.
func (c *Client) GetProfile(ctx context.Context, username string, page int) (*models.ProfilePage, error) {
	path := fmt.Sprintf("/profilepage/%s?page=%d", url.PathEscape(username), page)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var profile models.ProfilePage
	if err := decodeResponse(resp, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DownloadAttachment streams an attachment into destDir and returns the
// written path. Name collisions get a random suffix rather than clobbering.
func (c *Client) DownloadAttachment(ctx context.Context, attachment models.Attachment, destDir string) (string, error) {
	path := fmt.Sprintf("/topicpage/attachments/download/%d", attachment.ID)
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.send(req, "GET", path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return "", models.NewServerError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	dest := utils.UniquePath(destDir, attachment.Filename)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(dest)
		return "", models.NewNetworkError(err)
	}
	return dest, nil
}
