package gorm

import (
	"gorm.io/gorm"

	"github.com/tilhq/til-in-go/pkg/server/store"
)

// Ensure TokensStore implements store.TokensStore
var _ store.TokensStore = (*TokensStore)(nil)

// TokensStore implements store.TokensStore using GORM
type TokensStore struct {
	db *gorm.DB
}

// NewTokensStore creates a new TokensStore
func NewTokensStore(db *gorm.DB) *TokensStore {
	return &TokensStore{db: db}
}

// CreateToken persists a token value bound to a user
func (s *TokensStore) CreateToken(value string, userID int64) error {
	result := s.db.Exec(
		`INSERT INTO tokens (value, user_id) VALUES (?, ?)`,
		value, userID,
	)
	return result.Error
}

// FindUserByToken resolves a bearer token to its user
func (s *TokensStore) FindUserByToken(value string) (*store.User, error) {
	var row userRow
	result := s.db.Raw(`
		SELECT u.id, u.name, u.username, u.password_hash
		FROM users u
		JOIN tokens t ON t.user_id = u.id
		WHERE t.value = ?
	`, value).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return row.toUser(), nil
}
