package gorm

import (
	"gorm.io/gorm"

	"github.com/tilhq/til-in-go/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

type userRow struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
}

func (r userRow) toUser() *store.User {
	return &store.User{
		ID:           r.ID,
		Name:         r.Name,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
	}
}

// FetchUser retrieves a user by id
func (s *UsersStore) FetchUser(id int64) (*store.User, error) {
	var row userRow
	result := s.db.Raw(
		`SELECT id, name, username, password_hash FROM users WHERE id = ?`,
		id,
	).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return row.toUser(), nil
}

// FindUserByUsername retrieves a user by exact username
func (s *UsersStore) FindUserByUsername(username string) (*store.User, error) {
	var row userRow
	result := s.db.Raw(
		`SELECT id, name, username, password_hash FROM users WHERE username = ?`,
		username,
	).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return row.toUser(), nil
}

// ListUsers returns all users ordered by username
func (s *UsersStore) ListUsers() ([]store.User, error) {
	var rows []userRow
	result := s.db.Raw(
		`SELECT id, name, username, password_hash FROM users ORDER BY username`,
	).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	users := make([]store.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, *row.toUser())
	}
	return users, nil
}

// CreateUser persists a new user and fills in its id
func (s *UsersStore) CreateUser(user *store.User) error {
	result := s.db.Raw(
		`INSERT INTO users (name, username, password_hash) VALUES (?, ?, ?) RETURNING id`,
		user.Name, user.Username, user.PasswordHash,
	).Scan(&user.ID)
	return result.Error
}
