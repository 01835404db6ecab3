package gorm

import (
	"gorm.io/gorm"

	"github.com/tilhq/til-in-go/pkg/server/store"
)

// Ensure CategoriesStore implements store.CategoriesStore
var _ store.CategoriesStore = (*CategoriesStore)(nil)

// CategoriesStore implements store.CategoriesStore using GORM
type CategoriesStore struct {
	db *gorm.DB
}

// NewCategoriesStore creates a new CategoriesStore
func NewCategoriesStore(db *gorm.DB) *CategoriesStore {
	return &CategoriesStore{db: db}
}

type categoryRow struct {
	ID   int64
	Name string
}

// FetchCategory retrieves a category by id
func (s *CategoriesStore) FetchCategory(id int64) (*store.Category, error) {
	var row categoryRow
	result := s.db.Raw(
		`SELECT id, name FROM categories WHERE id = ?`,
		id,
	).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &store.Category{ID: row.ID, Name: row.Name}, nil
}

// FindCategoryByName retrieves a category by exact, case-sensitive name
func (s *CategoriesStore) FindCategoryByName(name string) (*store.Category, error) {
	var row categoryRow
	result := s.db.Raw(
		`SELECT id, name FROM categories WHERE name = ?`,
		name,
	).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &store.Category{ID: row.ID, Name: row.Name}, nil
}

// ListCategories returns all categories ordered by name
func (s *CategoriesStore) ListCategories() ([]store.Category, error) {
	var rows []categoryRow
	result := s.db.Raw(`SELECT id, name FROM categories ORDER BY name`).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]store.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, store.Category{ID: row.ID, Name: row.Name})
	}
	return categories, nil
}

// CreateCategory persists a new category and fills in its id
func (s *CategoriesStore) CreateCategory(category *store.Category) error {
	result := s.db.Raw(
		`INSERT INTO categories (name) VALUES (?) RETURNING id`,
		category.Name,
	).Scan(&category.ID)
	return result.Error
}

// CategoriesOfAcronym returns the categories associated with an acronym
func (s *CategoriesStore) CategoriesOfAcronym(acronymID int64) ([]store.Category, error) {
	var rows []categoryRow
	result := s.db.Raw(`
		SELECT c.id, c.name
		FROM categories c
		JOIN acronym_categories ac ON ac.category_id = c.id
		WHERE ac.acronym_id = ?
		ORDER BY c.name
	`, acronymID).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]store.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, store.Category{ID: row.ID, Name: row.Name})
	}
	return categories, nil
}

// AcronymsOfCategory returns the acronyms associated with a category
func (s *CategoriesStore) AcronymsOfCategory(categoryID int64) ([]store.Acronym, error) {
	var rows []acronymRow
	result := s.db.Raw(`
		SELECT a.id, a.short, a.long, a.user_id
		FROM acronyms a
		JOIN acronym_categories ac ON ac.acronym_id = a.id
		WHERE ac.category_id = ?
		ORDER BY a.short
	`, categoryID).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	acronyms := make([]store.Acronym, 0, len(rows))
	for _, row := range rows {
		acronyms = append(acronyms, *row.toAcronym())
	}
	return acronyms, nil
}

// Attach creates the (acronym, category) association row. ON CONFLICT keeps
// the at-most-one-association-per-pair invariant under a concurrent attach.
func (s *CategoriesStore) Attach(acronymID, categoryID int64) error {
	result := s.db.Exec(`
		INSERT INTO acronym_categories (acronym_id, category_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, acronymID, categoryID)
	return result.Error
}

// Detach removes the (acronym, category) association row
func (s *CategoriesStore) Detach(acronymID, categoryID int64) error {
	result := s.db.Exec(
		`DELETE FROM acronym_categories WHERE acronym_id = ? AND category_id = ?`,
		acronymID, categoryID,
	)
	return result.Error
}
