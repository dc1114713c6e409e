// Package authors resolves author names to rows.
//
// # Usage
//
//	id, err := authors.NewRepository(tx).Resolve("Ursula K. Le Guin")
package authors

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/smartlibrary/internal/entities"
)

// Repository handles author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Resolve returns the id of the author with exactly this name, inserting the
// author first when missing. The insert is a no-op on a name conflict, so two
// concurrent callers end up with the same row.
func (r *Repository) Resolve(name string) (uint, error) {
	author := entities.Author{Name: name}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&author).Error
	if err != nil {
		return 0, err
	}

	var existing entities.Author
	if err := r.db.Where("name = ?", name).Take(&existing).Error; err != nil {
		return 0, err
	}
	return existing.ID, nil
}

// List returns all authors ordered by name.
func (r *Repository) List() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("name ASC").Find(&authors).Error
	return authors, err
}
