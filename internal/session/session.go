package session

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"creatorlane/internal/config"
	"creatorlane/internal/store"
	"creatorlane/internal/user"
)

// The session is the single record under the "user" key: present while
// signed in, absent after logout. There is no credential check anywhere;
// any email/password pair mints a session. The auth is demo-grade on
// purpose.

// Current returns the signed-in user. ok is false when signed out.
func Current(s *store.Store) (user.User, bool, error) {
	_, u, err := store.Open(s, store.KeyUser, user.User{})
	if err != nil {
		return user.User{}, false, err
	}
	return u, u.ID != "", nil
}

// IsAuthenticated is the routing-gate predicate.
func IsAuthenticated(s *store.Store) bool {
	_, ok, err := Current(s)
	return err == nil && ok
}

// Login accepts any credentials, fabricates a user record from the email
// and persists it as the session. Suspends for the configured mock-backend
// delay before resolving; never fails on bad credentials.
func Login(s *store.Store, email, password string) (user.User, error) {
	if email == "" || password == "" {
		return user.User{}, fmt.Errorf("email and password are required")
	}
	time.Sleep(config.SimulatedDelay())

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return persist(s, Fabricate(name, email, password, user.RoleBoth))
}

// Signup fabricates a user with explicit name and role.
func Signup(s *store.Store, name, email, password, role string) (user.User, error) {
	if name == "" || email == "" || password == "" {
		return user.User{}, fmt.Errorf("name, email and password are required")
	}
	if !user.ValidRole(role) {
		return user.User{}, fmt.Errorf("invalid role %q", role)
	}
	time.Sleep(config.SimulatedDelay())

	return persist(s, Fabricate(name, email, password, role))
}

// Logout removes the session record.
func Logout(s *store.Store) error {
	return s.Delete(store.KeyUser)
}

// Fabricate builds the mock user record: generated id, derived avatar and a
// bcrypt hash of whatever password was typed. The hash is never verified.
func Fabricate(name, email, password, role string) user.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		hashed = nil
	}
	return user.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Avatar:       avatarFor(name),
		Role:         role,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().UTC(),
	}
}

func persist(s *store.Store, u user.User) (user.User, error) {
	// A corrupt previous session is replaced, not kept.
	c, _, err := store.Open(s, store.KeyUser, user.User{})
	if err != nil && !errors.Is(err, store.ErrCorrupt) {
		return user.User{}, err
	}
	if err := c.Set(u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func avatarFor(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
