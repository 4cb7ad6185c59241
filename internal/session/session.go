package session

import (
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v4"

	"forumhub/pkg/logger"
	"forumhub/pkg/models"
)

// adminRole is the role marker the backend embeds in its tokens.
const adminRole = "ROLE_ADMIN"

// TokenStore persists the raw token between runs. Implementations live with
// the surface that owns configuration (viper for the CLI, yaml config for
// the TUI).
type TokenStore interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// Session is a read-only snapshot of the current identity. Zero value means
// logged out.
type Session struct {
	IsLoggedIn bool
	Username   string
	IsAdmin    bool
}

// Store owns the token and the identity derived from it. All identity state
// comes from decoding the token; nothing else is trusted.
type Store struct {
	mu      sync.RWMutex
	token   string
	current Session
	persist TokenStore
}

// NewStore creates a session store backed by the given token persistence.
// persist may be nil for ephemeral sessions.
func NewStore(persist TokenStore) *Store {
	return &Store{persist: persist}
}

// Load restores a persisted token, if any. A missing or malformed token
// leaves the store logged out without error; the user just signs in again.
func (s *Store) Load() Session {
	if s.persist == nil {
		return s.Current()
	}
	token, err := s.persist.LoadToken()
	if err != nil || token == "" {
		return s.Current()
	}
	if err := s.Login(token); err != nil {
		logger.Warnf("Discarding stored session token: %v", err)
		if clearErr := s.persist.ClearToken(); clearErr != nil {
			logger.Warnf("Failed to clear persisted session token: %v", clearErr)
		}
	}
	return s.Current()
}

// Login decodes the token and, on success, stores it and persists it. A token
// that does not decode is rejected and never stored.
func (s *Store) Login(token string) error {
	sess, err := decodeToken(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.current = sess
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.SaveToken(token); err != nil {
			logger.Warnf("Failed to persist session token: %v", err)
		}
	}
	return nil
}

// Logout drops the token and clears persisted state.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.current = Session{}
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.ClearToken(); err != nil {
			logger.Warnf("Failed to clear persisted session token: %v", err)
		}
	}
}

// Current returns the identity snapshot.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the raw token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// decodeToken extracts identity claims without verifying the signature. The
// server verifies every request; the client only needs the claims for
// display and for gating UI affordances.
func decodeToken(token string) (Session, error) {
	if strings.Count(token, ".") != 2 {
		return Session{}, models.ErrMalformedToken
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Session{}, models.ErrMalformedToken
	}

	username, _ := claims["sub"].(string)
	if username == "" {
		return Session{}, models.ErrMalformedToken
	}

	return Session{
		IsLoggedIn: true,
		Username:   username,
		IsAdmin:    hasAdminRole(claims),
	}, nil
}

// hasAdminRole looks for the admin marker in the shapes the backend has used
// for the role claim: a plain string, a list of strings, or a list of
// objects with an "authority" field.
func hasAdminRole(claims jwt.MapClaims) bool {
	switch role := claims["role"].(type) {
	case string:
		return role == adminRole
	case []interface{}:
		for _, entry := range role {
			switch v := entry.(type) {
			case string:
				if v == adminRole {
					return true
				}
			case map[string]interface{}:
				if authority, _ := v["authority"].(string); authority == adminRole {
					return true
				}
			}
		}
	}
	return false
}
