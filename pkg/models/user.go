package models

import "time"

// SignupRequest creates an account; the server emails a verification code.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest confirms the emailed code.
type VerifyRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

// SigninRequest authenticates by username or email.
type SigninRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// SigninResponse carries the bearer token; identity is derived from its
// claims, not from any other response field.
type SigninResponse struct {
	Token string `json:"token"`
}

// PasswordResetConfirmRequest completes a password reset.
type PasswordResetConfirmRequest struct {
	Email       string `json:"email"`
	ResetCode   string `json:"resetCode"`
	NewPassword string `json:"newPassword"`
}

// Profile is the public profile page payload. Topics is the page of the
// user's topics for the requested page index.
type Profile struct {
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	Rating         int       `json:"rating"`
	CommentCount   int       `json:"commentCount"`
	TopicCount     int       `json:"topicCount"`
	CreatedAt      time.Time `json:"createdAt"`
	LastLogin      time.Time `json:"lastLogin"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Topics         []Topic   `json:"topics,omitempty"`
}

// ProfilePage wraps a profile fetch with its topic pagination totals.
type ProfilePage struct {
	Profile    Profile `json:"profile"`
	TotalPages int     `json:"totalPages"`
}
