// Package users provides database operations for login accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByUsername("librarian")
package users

import (
	"gorm.io/gorm"

	"github.com/mrlokans/smartlibrary/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a user. The password must already be hashed.
func (r *Repository) Create(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("user_id = ?", id).Take(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).Take(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by username.
func (r *Repository) List() ([]entities.User, error) {
	var list []entities.User
	err := r.db.Order("username ASC").Find(&list).Error
	return list, err
}
