package store

// Acronym is one catalogue entry as seen by handlers and the JSON API.
type Acronym struct {
	ID     int64  `json:"id"`
	Short  string `json:"short"`
	Long   string `json:"long"`
	UserID int64  `json:"userID"`
}

// AcronymsStore abstracts acronym storage operations
type AcronymsStore interface {
	// FetchAcronym retrieves an acronym by id
	FetchAcronym(id int64) (*Acronym, error)

	// ListAcronyms returns all acronyms ordered by short form
	ListAcronyms() ([]Acronym, error)

	// ListAcronymsByUser returns the acronyms owned by a user
	ListAcronymsByUser(userID int64) ([]Acronym, error)

	// CreateAcronym persists a new acronym and fills in its id
	CreateAcronym(acronym *Acronym) error

	// UpdateAcronym saves new short/long fields for an existing acronym
	UpdateAcronym(acronym *Acronym) error

	// DeleteAcronym removes an acronym together with its category
	// associations
	DeleteAcronym(id int64) error
}
