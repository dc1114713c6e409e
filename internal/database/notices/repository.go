// Package notices stores the overdue notices recorded by the overdue scan.
//
// # Usage
//
//	created, err := notices.NewRepository(tx).Record(&notice)
package notices

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/smartlibrary/internal/entities"
)

// Repository handles overdue notice database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notices repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record stores a notice unless one already exists for the loan. It reports
// whether a new row was written.
func (r *Repository) Record(notice *entities.OverdueNotice) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "loan_id"}},
		DoNothing: true,
	}).Create(notice)
	return result.RowsAffected > 0, result.Error
}

// ListForMember returns the member's notices, earliest due first.
func (r *Repository) ListForMember(memberID string) ([]entities.OverdueNotice, error) {
	var list []entities.OverdueNotice
	err := r.db.Where("member_id = ?", memberID).
		Order("due_date ASC, notice_id ASC").
		Find(&list).Error
	return list, err
}
