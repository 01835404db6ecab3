// Package auth verifies username/password credentials against stored bcrypt
// hashes and issues the opaque bearer tokens used by API clients.
package auth

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tilhq/til-in-go/pkg/server/store"
)

// Credentials verifies login attempts against the users store.
type Credentials struct {
	users store.UsersStore
}

// NewCredentials creates a credential verifier backed by a users store.
func NewCredentials(users store.UsersStore) *Credentials {
	return &Credentials{users: users}
}

// Authenticate looks up a user by username and verifies the password against
// the stored hash. It returns (nil, nil) on any credential failure: callers
// are never told whether the username or the password was wrong.
func (c *Credentials) Authenticate(username, password string) (*store.User, error) {
	user, err := c.users.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// bcrypt comparison is constant-time on the digest
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

// Hash produces a salted one-way hash of a password for storage at
// registration time.
func Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// TokenIssuer mints opaque bearer tokens bound to a user.
type TokenIssuer struct {
	tokens store.TokensStore
}

// NewTokenIssuer creates a token issuer backed by a tokens store.
func NewTokenIssuer(tokens store.TokensStore) *TokenIssuer {
	return &TokenIssuer{tokens: tokens}
}

// Issue mints and persists a fresh token for a user.
func (t *TokenIssuer) Issue(userID int64) (string, error) {
	value := uuid.NewString()
	if err := t.tokens.CreateToken(value, userID); err != nil {
		return "", err
	}
	return value, nil
}
