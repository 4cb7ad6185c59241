package utils

import (
	"regexp"
	"strings"

	"forumhub/pkg/models"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername checks the username shape before sending it anywhere.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return models.NewValidationError("username must be 3-50 characters (letters, digits, underscore)")
	}
	return nil
}

// ValidateEmail does a shape check only; the server owns real verification.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("email address is not valid")
	}
	return nil
}

// ValidateContent checks comment/reply content before dispatch. Empty
// content never reaches the server.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError(models.ErrEmptyContent.Error())
	}
	if len(content) > models.MaxCommentLength {
		return models.NewValidationError("content exceeds maximum length")
	}
	return nil
}

// ValidateChatMessage checks an outgoing chat message before it hits the
// socket.
func ValidateChatMessage(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError(models.ErrEmptyContent.Error())
	}
	if len(content) > models.MaxChatMessageLength {
		return models.NewValidationError("message exceeds maximum length")
	}
	return nil
}

// ValidateTopicTitle validates a new topic's title.
func ValidateTopicTitle(title string) error {
	if len(strings.TrimSpace(title)) < 2 {
		return models.NewValidationError("title must be at least 2 characters")
	}
	if len(title) > 255 {
		return models.NewValidationError("title exceeds 255 characters")
	}
	return nil
}
