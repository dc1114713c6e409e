// Package members provides database operations for library members.
//
// # Usage
//
//	repo := members.NewRepository(tx)
//	member, err := repo.Get("M001")
package members

import (
	"gorm.io/gorm"

	"github.com/mrlokans/smartlibrary/internal/entities"
)

// Repository handles member database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new members repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Exists reports whether a member with the given id is registered.
func (r *Repository) Exists(memberID string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Member{}).Where("member_id = ?", memberID).Count(&count).Error
	return count > 0, err
}

// Create inserts a member.
func (r *Repository) Create(member *entities.Member) error {
	return r.db.Create(member).Error
}

// Get retrieves a member by id.
func (r *Repository) Get(memberID string) (*entities.Member, error) {
	var member entities.Member
	err := r.db.Where("member_id = ?", memberID).Take(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List returns all members ordered by name.
func (r *Repository) List() ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Order("name ASC, member_id ASC").Find(&members).Error
	return members, err
}
