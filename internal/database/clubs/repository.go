// Package clubs provides database operations for book clubs and their members.
//
// # Usage
//
//	repo := clubs.NewRepository(tx)
//	members, err := repo.ListMembers(clubID)
package clubs

import (
	"gorm.io/gorm"

	"github.com/mrlokans/smartlibrary/internal/entities"
)

// Repository handles book club database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new clubs repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a club.
func (r *Repository) Create(club *entities.BookClub) error {
	return r.db.Create(club).Error
}

// Get retrieves a club by id.
func (r *Repository) Get(clubID uint) (*entities.BookClub, error) {
	var club entities.BookClub
	err := r.db.Where("club_id = ?", clubID).Take(&club).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// GetByName retrieves a club by its unique name.
func (r *Repository) GetByName(name string) (*entities.BookClub, error) {
	var club entities.BookClub
	err := r.db.Where("name = ?", name).Take(&club).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// Exists reports whether the club exists.
func (r *Repository) Exists(clubID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.BookClub{}).Where("club_id = ?", clubID).Count(&count).Error
	return count > 0, err
}

// List returns all clubs ordered by name.
func (r *Repository) List() ([]entities.BookClub, error) {
	var clubs []entities.BookClub
	err := r.db.Order("name ASC").Find(&clubs).Error
	return clubs, err
}

// IsMember reports whether the member already belongs to the club.
func (r *Repository) IsMember(memberID string, clubID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.MemberClub{}).
		Where("member_id = ? AND club_id = ?", memberID, clubID).
		Count(&count).Error
	return count > 0, err
}

// AddMember links a member to a club. A repeated link fails with
// gorm.ErrDuplicatedKey.
func (r *Repository) AddMember(memberID string, clubID uint) error {
	return r.db.Create(&entities.MemberClub{MemberID: memberID, ClubID: clubID}).Error
}

// ListMembers returns the club's members ordered by name.
func (r *Repository) ListMembers(clubID uint) ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Model(&entities.Member{}).
		Select("members.*").
		Joins("JOIN member_clubs ON member_clubs.member_id = members.member_id").
		Where("member_clubs.club_id = ?", clubID).
		Order("members.name ASC, members.member_id ASC").
		Find(&members).Error
	return members, err
}
