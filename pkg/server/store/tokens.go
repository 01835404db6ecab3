package store

// TokensStore abstracts API bearer token storage operations
type TokensStore interface {
	// CreateToken persists a token value bound to a user
	CreateToken(value string, userID int64) error

	// FindUserByToken resolves a bearer token to its user
	FindUserByToken(value string) (*User, error)
}
