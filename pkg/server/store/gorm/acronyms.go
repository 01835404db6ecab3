package gorm

import (
	"gorm.io/gorm"

	"github.com/tilhq/til-in-go/pkg/server/store"
)

// Ensure AcronymsStore implements store.AcronymsStore
var _ store.AcronymsStore = (*AcronymsStore)(nil)

// AcronymsStore implements store.AcronymsStore using GORM
type AcronymsStore struct {
	db *gorm.DB
}

// NewAcronymsStore creates a new AcronymsStore
func NewAcronymsStore(db *gorm.DB) *AcronymsStore {
	return &AcronymsStore{db: db}
}

type acronymRow struct {
	ID     int64
	Short  string
	Long   string
	UserID int64
}

func (r acronymRow) toAcronym() *store.Acronym {
	return &store.Acronym{
		ID:     r.ID,
		Short:  r.Short,
		Long:   r.Long,
		UserID: r.UserID,
	}
}

// FetchAcronym retrieves an acronym by id
func (s *AcronymsStore) FetchAcronym(id int64) (*store.Acronym, error) {
	var row acronymRow
	result := s.db.Raw(
		`SELECT id, short, long, user_id FROM acronyms WHERE id = ?`,
		id,
	).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return row.toAcronym(), nil
}

// ListAcronyms returns all acronyms ordered by short form
func (s *AcronymsStore) ListAcronyms() ([]store.Acronym, error) {
	return s.listAcronyms(
		`SELECT id, short, long, user_id FROM acronyms ORDER BY short`,
	)
}

// ListAcronymsByUser returns the acronyms owned by a user
func (s *AcronymsStore) ListAcronymsByUser(userID int64) ([]store.Acronym, error) {
	return s.listAcronyms(
		`SELECT id, short, long, user_id FROM acronyms WHERE user_id = ? ORDER BY short`,
		userID,
	)
}

func (s *AcronymsStore) listAcronyms(query string, args ...interface{}) ([]store.Acronym, error) {
	var rows []acronymRow
	result := s.db.Raw(query, args...).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	acronyms := make([]store.Acronym, 0, len(rows))
	for _, row := range rows {
		acronyms = append(acronyms, *row.toAcronym())
	}
	return acronyms, nil
}

// CreateAcronym persists a new acronym and fills in its id
func (s *AcronymsStore) CreateAcronym(acronym *store.Acronym) error {
	result := s.db.Raw(
		`INSERT INTO acronyms (short, long, user_id) VALUES (?, ?, ?) RETURNING id`,
		acronym.Short, acronym.Long, acronym.UserID,
	).Scan(&acronym.ID)
	return result.Error
}

// UpdateAcronym saves new short/long fields for an existing acronym
func (s *AcronymsStore) UpdateAcronym(acronym *store.Acronym) error {
	result := s.db.Exec(
		`UPDATE acronyms SET short = ?, long = ? WHERE id = ?`,
		acronym.Short, acronym.Long, acronym.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteAcronym removes an acronym together with its category associations.
// The join rows are removed first so no orphans survive even without the
// foreign-key cascade.
func (s *AcronymsStore) DeleteAcronym(id int64) error {
	result := s.db.Exec(
		`DELETE FROM acronym_categories WHERE acronym_id = ?`,
		id,
	)
	if result.Error != nil {
		return result.Error
	}

	result = s.db.Exec(`DELETE FROM acronyms WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
