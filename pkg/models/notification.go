package models

import "time"

// NotificationType enumerates the kinds the server emits.
type NotificationType string

const (
	NotificationComment NotificationType = "COMMENT"
	NotificationLike    NotificationType = "LIKE"
	NotificationReply   NotificationType = "REPLY"
)

// Notification is one per-user event from the server.
type Notification struct {
	ID            int64            `json:"id"`
	Type          NotificationType `json:"notificationType"`
	ActorUsername string           `json:"actorUsername"`
	Message       string           `json:"message"`
	TopicID       int64            `json:"topicId"`
	Timestamp     time.Time        `json:"timestamp"`
	Read          bool             `json:"read"`
}
