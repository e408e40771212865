package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/andrewpaige1/quizset-api/models"
)

// SetService owns the question sets and the single active set invariant.
// Activate is the only operation that marks a set active under the invariant.
type SetService struct {
	db *gorm.DB
}

func NewSetService(db *gorm.DB) *SetService {
	return &SetService{db: db}
}

// List returns every set, newest first.
func (s *SetService) List(ctx context.Context) ([]models.Set, error) {
	sets := []models.Set{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

// Active returns the active set.
func (s *SetService) Active(ctx context.Context) (*models.Set, error) {
	var set models.Set
	err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("updated_at desc").First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundError("No active set found")
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// Get returns the set with the given id.
func (s *SetService) Get(ctx context.Context, id string) (*models.Set, error) {
	return getSet(s.db.WithContext(ctx), id)
}

// FindByName returns the set with the exact name, or nil if there is none.
func (s *SetService) FindByName(ctx context.Context, name string) (*models.Set, error) {
	var sets []models.Set
	result := s.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&sets)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &sets[0], nil
}

// Lookup loads the sets for ids keyed by id. Missing ids are absent from the map.
func (s *SetService) Lookup(ctx context.Context, ids []string) (map[string]*models.Set, error) {
	out := make(map[string]*models.Set, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var sets []models.Set
	if err := s.db.WithContext(ctx).Where("id IN ?", uniqueStrings(ids)).Find(&sets).Error; err != nil {
		return nil, err
	}
	for i := range sets {
		out[sets[i].ID] = &sets[i]
	}
	return out, nil
}

// Create inserts all names as inactive sets, or none of them. Names are
// trimmed, must be non-blank, and must not collide with existing sets or with
// each other.
func (s *SetService) Create(ctx context.Context, names []string) ([]models.Set, error) {
	if len(names) == 0 {
		return nil, validationError("Each set must have a name")
	}
	trimmed := make([]string, len(names))
	for i, name := range names {
		trimmed[i] = strings.TrimSpace(name)
		if trimmed[i] == "" {
			return nil, validationError("Each set must have a name")
		}
	}

	db := s.db.WithContext(ctx)
	var existing []models.Set
	if err := db.Where("name IN ?", trimmed).Find(&existing).Error; err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(existing)+len(trimmed))
	for _, set := range existing {
		taken[set.Name] = true
	}
	var duplicates []string
	reported := map[string]bool{}
	seen := map[string]bool{}
	for _, name := range trimmed {
		if (taken[name] || seen[name]) && !reported[name] {
			duplicates = append(duplicates, name)
			reported[name] = true
		}
		seen[name] = true
	}
	if len(duplicates) > 0 {
		return nil, validationError("Duplicate set names: " + strings.Join(duplicates, ", "))
	}

	sets := make([]models.Set, len(trimmed))
	for i, name := range trimmed {
		sets[i] = models.Set{Name: name, IsActive: false}
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&sets).Error
	})
	if IsDuplicateKey(err) {
		return nil, validationError("Duplicate set names: " + strings.Join(trimmed, ", "))
	}
	if err != nil {
		return nil, err
	}
	return sets, nil
}

// Rename changes the name of a set. The active flag is left alone.
func (s *SetService) Rename(ctx context.Context, id, name string) (*models.Set, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("Set name is required")
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Set{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationError("A set with this name already exists")
	}

	set, err := getSet(db, id)
	if err != nil {
		return nil, err
	}
	err = db.Model(set).Update("name", name).Error
	if IsDuplicateKey(err) {
		return nil, validationError("A set with this name already exists")
	}
	if err != nil {
		return nil, err
	}
	return getSet(db, id)
}

// Activate deactivates every other set and activates id in one transaction.
func (s *SetService) Activate(ctx context.Context, id string) (*models.Set, error) {
	var activated *models.Set
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getSet(tx, id); err != nil {
			return err
		}
		// Write every other row, not only the active ones, so concurrent
		// activations contend on the same row locks.
		if err := tx.Model(&models.Set{}).
			Where("id <> ?", id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Set{}).Where("id = ?", id).Update("is_active", true).Error; err != nil {
			return err
		}
		set, err := getSet(tx, id)
		if err != nil {
			return err
		}
		activated = set
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("SetService.Activate: set %s (%s) is now active", activated.ID, activated.Name)
	return activated, nil
}

// DeactivateAll leaves no set active. It succeeds when none was active.
func (s *SetService) DeactivateAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Model(&models.Set{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

// Delete removes the set and reports whether it was the active one. Questions
// referencing the set are not touched.
func (s *SetService) Delete(ctx context.Context, id string) (*models.Set, bool, error) {
	db := s.db.WithContext(ctx)
	set, err := getSet(db, id)
	if err != nil {
		return nil, false, err
	}
	result := db.Delete(&models.Set{}, "id = ?", id)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, notFoundError("Set not found")
	}
	return set, set.IsActive, nil
}

// Toggle flips the active flag of a single set without touching the others,
// so it can leave zero or several sets active.
func (s *SetService) Toggle(ctx context.Context, id string) (*models.Set, error) {
	db := s.db.WithContext(ctx)
	set, err := getSet(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&models.Set{}).Where("id = ?", id).Update("is_active", !set.IsActive).Error; err != nil {
		return nil, err
	}
	return getSet(db, id)
}

func getSet(db *gorm.DB, id string) (*models.Set, error) {
	var set models.Set
	err := db.Where("id = ?", id).First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundError("Set not found")
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
