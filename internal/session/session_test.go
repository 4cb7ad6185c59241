package session

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forumhub/pkg/models"
)

type memoryStore struct {
	token   string
	loadErr error
}

func (m *memoryStore) LoadToken() (string, error) { return m.token, m.loadErr }
func (m *memoryStore) SaveToken(token string) error {
	m.token = token
	return nil
}
func (m *memoryStore) ClearToken() error {
	m.token = ""
	return nil
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestLoginDecodesClaims(t *testing.T) {
	store := NewStore(nil)
	token := signedToken(t, jwt.MapClaims{"sub": "alice", "role": "ROLE_USER"})

	require.NoError(t, store.Login(token))

	sess := store.Current()
	assert.True(t, sess.IsLoggedIn)
	assert.Equal(t, "alice", sess.Username)
	assert.False(t, sess.IsAdmin)
	assert.Equal(t, token, store.Token())
}

func TestLoginAdminRoleShapes(t *testing.T) {
	tests := []struct {
		name  string
		role  interface{}
		admin bool
	}{
		{"plain string", "ROLE_ADMIN", true},
		{"string list", []interface{}{"ROLE_USER", "ROLE_ADMIN"}, true},
		{"authority objects", []interface{}{map[string]interface{}{"authority": "ROLE_ADMIN"}}, true},
		{"user only", "ROLE_USER", false},
		{"missing", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := jwt.MapClaims{"sub": "alice"}
			if tt.role != nil {
				claims["role"] = tt.role
			}
			store := NewStore(nil)
			require.NoError(t, store.Login(signedToken(t, claims)))
			assert.Equal(t, tt.admin, store.Current().IsAdmin)
		})
	}
}

func TestLoginRejectsMalformedToken(t *testing.T) {
	store := NewStore(&memoryStore{})

	for _, token := range []string{
		"not-a-token",
		"a.b",
		"a.b.c.d",
		"!!!.###.$$$",
	} {
		err := store.Login(token)
		assert.True(t, errors.Is(err, models.ErrMalformedToken), "token %q", token)
	}

	sess := store.Current()
	assert.False(t, sess.IsLoggedIn)
	assert.Empty(t, store.Token())
}

func TestLoginRejectsTokenWithoutSubject(t *testing.T) {
	store := NewStore(nil)
	err := store.Login(signedToken(t, jwt.MapClaims{"role": "ROLE_ADMIN"}))
	assert.True(t, errors.Is(err, models.ErrMalformedToken))
	assert.False(t, store.Current().IsLoggedIn)
}

func TestLoadRestoresPersistedToken(t *testing.T) {
	persist := &memoryStore{token: signedToken(t, jwt.MapClaims{"sub": "bob", "role": "ROLE_ADMIN"})}
	store := NewStore(persist)

	sess := store.Load()
	assert.True(t, sess.IsLoggedIn)
	assert.Equal(t, "bob", sess.Username)
	assert.True(t, sess.IsAdmin)
}

func TestLoadDiscardsMalformedStoredToken(t *testing.T) {
	for _, token := range []string{"corrupted", "a.b"} {
		persist := &memoryStore{token: token}
		store := NewStore(persist)

		sess := store.Load()
		assert.False(t, sess.IsLoggedIn, "token %q", token)
		assert.Empty(t, store.Token(), "token %q", token)
		// The corrupt token must not survive on disk to be re-parsed next launch.
		assert.Empty(t, persist.token, "token %q", token)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	persist := &memoryStore{}
	store := NewStore(persist)
	require.NoError(t, store.Login(signedToken(t, jwt.MapClaims{"sub": "alice"})))
	require.NotEmpty(t, persist.token)

	store.Logout()

	assert.False(t, store.Current().IsLoggedIn)
	assert.Empty(t, store.Token())
	assert.Empty(t, persist.token)
}

func TestLoginPersistsToken(t *testing.T) {
	persist := &memoryStore{}
	store := NewStore(persist)
	token := signedToken(t, jwt.MapClaims{"sub": "alice"})

	require.NoError(t, store.Login(token))
	assert.Equal(t, token, persist.token)
}
