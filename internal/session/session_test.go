package session_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorlane/internal/session"
	"creatorlane/internal/store"
	"creatorlane/internal/user"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	t.Setenv("SIMULATED_DELAY_MS", "0")
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoginRequiresCredentials(t *testing.T) {
	s := newStore(t)

	_, err := session.Login(s, "", "pw")
	assert.Error(t, err)
	_, err = session.Login(s, "jo@example.com", "")
	assert.Error(t, err)

	assert.False(t, session.IsAuthenticated(s), "a rejected login must not create a session")
}

func TestLoginFabricatesUserFromEmail(t *testing.T) {
	s := newStore(t)

	u, err := session.Login(s, "maya@example.com", "whatever")
	require.NoError(t, err)

	assert.Equal(t, "maya", u.Name)
	assert.Equal(t, "maya@example.com", u.Email)
	assert.Equal(t, user.RoleBoth, u.Role)
	assert.NotEmpty(t, u.ID)
	assert.Contains(t, u.Avatar, "ui-avatars.com")
	assert.True(t, strings.Contains(u.Avatar, "maya"))

	current, ok, err := session.Current(s)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u.ID, current.ID)
}

func TestSignupKeepsNameAndRole(t *testing.T) {
	s := newStore(t)

	u, err := session.Signup(s, "Maya Chen", "maya@example.com", "pw", user.RoleCreator)
	require.NoError(t, err)
	assert.Equal(t, "Maya Chen", u.Name)
	assert.Equal(t, user.RoleCreator, u.Role)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	s := newStore(t)

	_, err := session.Signup(s, "Maya", "maya@example.com", "pw", "admin")
	assert.Error(t, err)
	assert.False(t, session.IsAuthenticated(s))
}

func TestLogoutClearsSession(t *testing.T) {
	s := newStore(t)

	_, err := session.Login(s, "maya@example.com", "pw")
	require.NoError(t, err)
	require.True(t, session.IsAuthenticated(s))

	require.NoError(t, session.Logout(s))
	assert.False(t, session.IsAuthenticated(s))

	// A second logout is a no-op, not an error.
	assert.NoError(t, session.Logout(s))
}

func TestLoginReplacesExistingSession(t *testing.T) {
	s := newStore(t)

	first, err := session.Login(s, "one@example.com", "pw")
	require.NoError(t, err)
	second, err := session.Login(s, "two@example.com", "pw")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	current, ok, err := session.Current(s)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "two@example.com", current.Email)
}

func TestTokenRoundTrip(t *testing.T) {
	u := session.Fabricate("Maya", "maya@example.com", "pw", user.RoleBoth)

	tok, err := session.Token(u)
	require.NoError(t, err)

	uid, role, err := session.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
	assert.Equal(t, user.RoleBoth, role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, _, err := session.ParseToken("not.a.token")
	assert.Error(t, err)
}
