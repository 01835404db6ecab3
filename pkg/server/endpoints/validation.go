package endpoints

import (
	"unicode"

	"github.com/tilhq/til-in-go/pkg/auth"
)

type registrationData struct {
	Name            string
	Username        string
	Password        string
	ConfirmPassword string
}

// validate checks the registration field constraints and returns a
// human-readable reason on failure, empty string on success. The reason is
// carried back to the form via the redirect query string, never as a hard
// error page.
func (d registrationData) validate() string {
	if !isASCII(d.Name) {
		return "name contains invalid characters"
	}
	if len(d.Username) < 3 || !isAlphanumeric(d.Username) {
		return "username must be at least 3 alphanumeric characters"
	}
	if len(d.Password) < 8 {
		return "password must be at least 8 characters"
	}
	if d.Password != d.ConfirmPassword {
		return "passwords don't match"
	}
	return ""
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func hashPassword(password string) (string, error) {
	return auth.Hash(password)
}
