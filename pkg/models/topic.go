package models

import "time"

// Attachment is a downloadable file reference hanging off a topic or comment.
type Attachment struct {
	ID       int64  `json:"attachmentId"`
	Filename string `json:"filename"`
}

// Topic represents a forum thread as the server reports it. Comments holds
// the embedded first page of top-level comments returned by the topic-detail
// endpoint; further pages arrive separately.
type Topic struct {
	ID          int64        `json:"topicId"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Rating      int          `json:"rating"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	Attachments []Attachment `json:"attachments"`
	BannerURL   string       `json:"bannerUrl,omitempty"`
	Username    string       `json:"username"`
	Comments    []Comment    `json:"comments,omitempty"`
}

// TopicSearchParams are the filters accepted by the search endpoint. Zero
// values are omitted from the query string.
type TopicSearchParams struct {
	Title     string
	Category  string
	Tags      []string
	MinRating *int
	MaxRating *int
	SortBy    string // createdAt, updatedAt, rating
	SortOrder string // asc, desc
}

// CreateTopicRequest is the multipart payload for creating a topic.
type CreateTopicRequest struct {
	Title       string
	Content     string
	Category    string
	Tags        []string
	Attachments []AttachmentUpload
	Banner      *AttachmentUpload
}

// AttachmentUpload is a staged file for a multipart submission.
type AttachmentUpload struct {
	Filename string
	Data     []byte
}
