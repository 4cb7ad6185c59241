package models

import "time"

// Comment is one reply unit. ParentID is zero for top-level comments.
// ReplyCount is the server-authoritative total and may exceed the number of
// replies loaded locally at any point.
type Comment struct {
	ID          int64        `json:"commentId"`
	TopicID     int64        `json:"topicId"`
	ParentID    int64        `json:"parentId,omitempty"`
	Username    string       `json:"username"`
	Content     string       `json:"content"`
	CreatedAt   time.Time    `json:"createdAt"`
	Rating      int          `json:"rating"`
	ReplyCount  int          `json:"replyCount"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// SubmitCommentRequest is the multipart payload for posting a comment or
// reply. ParentID zero means a top-level comment on the topic.
type SubmitCommentRequest struct {
	TopicID     int64
	ParentID    int64
	Content     string
	Attachments []AttachmentUpload
}

// VoteDirection is the signed vote value sent to the ratings endpoint.
type VoteDirection int

const (
	VoteUp   VoteDirection = 1
	VoteDown VoteDirection = -1
)

const MaxCommentLength = 5000
