// Package reconcile computes and applies the minimal add/remove operations
// that transform an acronym's current category set into a desired one.
package reconcile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tilhq/til-in-go/pkg/server/store"
)

// Diff returns the category names to add (desired minus existing) and to
// remove (existing minus desired). Duplicates collapse, input order is
// irrelevant, and comparison is case-sensitive. Results come back sorted so
// application order is deterministic.
func Diff(existing, desired []string) (toAdd, toRemove []string) {
	existingSet := toSet(existing)
	desiredSet := toSet(desired)

	for name := range desiredSet {
		if _, ok := existingSet[name]; !ok {
			toAdd = append(toAdd, name)
		}
	}
	for name := range existingSet {
		if _, ok := desiredSet[name]; !ok {
			toRemove = append(toRemove, name)
		}
	}

	sort.Strings(toAdd)
	sort.Strings(toRemove)
	return toAdd, toRemove
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Reconciler applies tag-set changes against the categories store.
type Reconciler struct {
	categories store.CategoriesStore
}

// New creates a Reconciler backed by a categories store.
func New(categories store.CategoriesStore) *Reconciler {
	return &Reconciler{categories: categories}
}

// Apply brings an acronym's associations in line with the desired names.
// Added names are resolved to categories (created when absent) and attached;
// removed names are detached from the categories already associated, which
// are never themselves deleted. Operations run sequentially and the first
// storage failure aborts the rest: there is no transactional wrapping, so a
// failure can leave the reconciliation partially applied.
func (r *Reconciler) Apply(acronymID int64, existing []store.Category, desired []string) error {
	existingNames := make([]string, 0, len(existing))
	byName := make(map[string]store.Category, len(existing))
	for _, category := range existing {
		existingNames = append(existingNames, category.Name)
		byName[category.Name] = category
	}

	toAdd, toRemove := Diff(existingNames, desired)

	for _, name := range toAdd {
		category, err := r.resolveOrCreate(name)
		if err != nil {
			return fmt.Errorf("failed to resolve category %q: %w", name, err)
		}
		if err := r.categories.Attach(acronymID, category.ID); err != nil {
			return fmt.Errorf("failed to attach category %q: %w", name, err)
		}
	}

	for _, name := range toRemove {
		category, ok := byName[name]
		if !ok {
			continue
		}
		if err := r.categories.Detach(acronymID, category.ID); err != nil {
			return fmt.Errorf("failed to detach category %q: %w", name, err)
		}
	}

	return nil
}

// resolveOrCreate finds a category by exact name, creating it when absent.
// A concurrent create races on the unique name index; the loser surfaces the
// storage error rather than retrying.
func (r *Reconciler) resolveOrCreate(name string) (*store.Category, error) {
	category, err := r.categories.FindCategoryByName(name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	created := &store.Category{Name: name}
	if err := r.categories.CreateCategory(created); err != nil {
		return nil, err
	}
	return created, nil
}
