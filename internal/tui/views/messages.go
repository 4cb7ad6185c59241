package views

// Cross-view navigation messages. Views emit these; the root model routes.

// AuthSuccessMsg is sent when sign-in succeeds
type AuthSuccessMsg struct {
	Token string
}

// AuthErrorMsg is sent when an auth operation fails
type AuthErrorMsg struct {
	Err error
}

// LogoutMsg asks the root model to end the session
type LogoutMsg struct{}

// SelectTopicMsg asks the root model to open a topic
type SelectTopicMsg struct {
	TopicID int64
}

// OpenProfileMsg asks the root model to open a user profile
type OpenProfileMsg struct {
	Username string
}
