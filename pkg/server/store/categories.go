package store

// Category is a tag as seen by handlers and the JSON API.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoriesStore abstracts category and association storage operations
type CategoriesStore interface {
	// FetchCategory retrieves a category by id
	FetchCategory(id int64) (*Category, error)

	// FindCategoryByName retrieves a category by exact, case-sensitive name
	FindCategoryByName(name string) (*Category, error)

	// ListCategories returns all categories ordered by name
	ListCategories() ([]Category, error)

	// CreateCategory persists a new category and fills in its id
	CreateCategory(category *Category) error

	// CategoriesOfAcronym returns the categories associated with an acronym
	CategoriesOfAcronym(acronymID int64) ([]Category, error)

	// AcronymsOfCategory returns the acronyms associated with a category
	AcronymsOfCategory(categoryID int64) ([]Acronym, error)

	// Attach creates the (acronym, category) association row
	Attach(acronymID, categoryID int64) error

	// Detach removes the (acronym, category) association row, leaving the
	// category itself in place
	Detach(acronymID, categoryID int64) error
}
