package api

import (
	"context"
	"fmt"
	"strconv"

	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

// Comment endpoints

// ListReplies retrieves one page of a comment's direct replies.
func (c *Client) ListReplies(ctx context.Context, commentID int64, page int) (*models.Page[models.Comment], error) {
	path := fmt.Sprintf("/topicpage/%d/replies?page=%d", commentID, page)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var result models.Page[models.Comment]
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitComment posts a comment or reply with optional attachments and
// returns the created comment as the server recorded it. Empty content is
// rejected client-side before anything is sent.
func (c *Client) SubmitComment(ctx context.Context, req models.SubmitCommentRequest) (*models.Comment, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if err := utils.ValidateContent(req.Content); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"content": req.Content,
		"topicId": strconv.FormatInt(req.TopicID, 10),
	}
	if req.ParentID != 0 {
		fields["parentId"] = strconv.FormatInt(req.ParentID, 10)
	}

	resp, err := c.doMultipart(ctx, "POST", "/comments/add", fields, "attachments", req.Attachments)
	if err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := decodeResponse(resp, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentRating fetches the authoritative rating for one comment. Used
// after a vote instead of local arithmetic, because vote dedup lives
// server-side and is invisible here.
func (c *Client) GetCommentRating(ctx context.Context, commentID int64) (int, error) {
	path := fmt.Sprintf("/topicpage/comments/%d/rating", commentID)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return 0, err
	}

	var rating int
	if err := decodeResponse(resp, &rating); err != nil {
		return 0, err
	}
	return rating, nil
}

// VoteComment sends a signed vote for a comment; callers follow up with
// GetCommentRating for the result.
func (c *Client) VoteComment(ctx context.Context, commentID int64, direction models.VoteDirection) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	path := fmt.Sprintf("/ratings/comment/%d?value=%d", commentID, int(direction))
	resp, err := c.doRequest(ctx, "POST", path, nil)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// DeleteComment removes a comment (admin capability). The tree keeps the
// node flagged until the next refresh; deletion is not spliced eagerly.
func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	path := fmt.Sprintf("/admin/comments/%d", commentID)
	resp, err := c.doRequest(ctx, "DELETE", path, nil)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}
