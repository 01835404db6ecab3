package store

import "errors"

// ErrNotFound is returned when a referenced user, acronym, category or token
// does not exist. Handlers surface it as a 404.
var ErrNotFound = errors.New("record not found")
