package store

// User is a registered account as seen by handlers. PasswordHash carries the
// bcrypt digest for credential verification and must not leak into responses.
type User struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
}

// UsersStore abstracts user storage operations
type UsersStore interface {
	// FetchUser retrieves a user by id
	FetchUser(id int64) (*User, error)

	// FindUserByUsername retrieves a user by exact username
	FindUserByUsername(username string) (*User, error)

	// ListUsers returns all users ordered by username
	ListUsers() ([]User, error)

	// CreateUser persists a new user and fills in its id
	CreateUser(user *User) error
}
