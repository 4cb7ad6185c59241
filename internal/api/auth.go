package api

import (
	"context"
	"net/url"

	"forumhub/pkg/models"
)

// Auth endpoints

// Signup creates a new account; the server emails a verification code.
func (c *Client) Signup(ctx context.Context, username, email, password string) error {
	req := models.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
	}
	resp, err := c.doRequest(ctx, "POST", "/auth/signup", req)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// Verify confirms the emailed verification code.
func (c *Client) Verify(ctx context.Context, email, code string) error {
	req := models.VerifyRequest{
		Email:            email,
		VerificationCode: code,
	}
	resp, err := c.doRequest(ctx, "POST", "/auth/verify", req)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// ResendCode asks the server to re-send the verification code.
func (c *Client) ResendCode(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, "POST", "/auth/resend?email="+url.QueryEscape(email), nil)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// Signin authenticates and remembers the returned bearer token on the
// client. Identity (username, admin flag) comes from the token claims, not
// from this response.
func (c *Client) Signin(ctx context.Context, usernameOrEmail, password string) (string, error) {
	req := models.SigninRequest{
		UsernameOrEmail: usernameOrEmail,
		Password:        password,
	}
	resp, err := c.doRequest(ctx, "POST", "/auth/signin", req)
	if err != nil {
		return "", err
	}

	var signinResp models.SigninResponse
	if err := decodeResponse(resp, &signinResp); err != nil {
		return "", err
	}

	c.token = signinResp.Token
	return signinResp.Token, nil
}

// RequestPasswordReset starts a password reset for the given email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, "POST", "/auth/password-reset/request?email="+url.QueryEscape(email), nil)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// ConfirmPasswordReset completes a password reset with the emailed code.
func (c *Client) ConfirmPasswordReset(ctx context.Context, email, resetCode, newPassword string) error {
	req := models.PasswordResetConfirmRequest{
		Email:       email,
		ResetCode:   resetCode,
		NewPassword: newPassword,
	}
	resp, err := c.doRequest(ctx, "POST", "/auth/password-reset/confirm", req)
	if err != nil {
		return err
	}
	return drainResponse(resp)
}

// ChangeUsername renames the logged-in user. The server issues a fresh token
// for the new identity.
func (c *Client) ChangeUsername(ctx context.Context, newUsername string) (string, error) {
	if err := c.requireAuth(); err != nil {
		return "", err
	}
	resp, err := c.doRequest(ctx, "POST", "/users/change-username", map[string]string{
		"newUsername": newUsername,
	})
	if err != nil {
		return "", err
	}

	var signinResp models.SigninResponse
	if err := decodeResponse(resp, &signinResp); err != nil {
		return "", err
	}
	c.token = signinResp.Token
	return signinResp.Token, nil
}

// UploadAvatar replaces the logged-in user's avatar.
func (c *Client) UploadAvatar(ctx context.Context, avatar models.AttachmentUpload) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	resp, err := c.doMultipart(ctx, "POST", "/users/upload-avatar", nil, "avatar", []models.AttachmentUpload{avatar})
	if err != nil {
		return err
	}
	return drainResponse(resp)
}
