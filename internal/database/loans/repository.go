// Package loans provides database operations for loans and the borrowed and
// overdue listings built on them.
//
// # Usage
//
//	repo := loans.NewRepository(tx)
//	open, err := repo.CountOpenForMember("M001")
package loans

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/smartlibrary/internal/entities"
)

// Repository handles loan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// detailed joins member names and book titles. Left joins keep the history of
// deleted books visible.
func (r *Repository) detailed() *gorm.DB {
	return r.db.Model(&entities.Loan{}).
		Select("loans.*, members.name AS member_name, books.title AS title").
		Joins("LEFT JOIN members ON members.member_id = loans.member_id").
		Joins("LEFT JOIN books ON books.isbn = loans.isbn")
}

// Create inserts a loan.
func (r *Repository) Create(loan *entities.Loan) error {
	return r.db.Create(loan).Error
}

// Get retrieves a loan with member name and book title.
func (r *Repository) Get(loanID uint) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.detailed().Where("loans.loan_id = ?", loanID).Take(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// CountOpenForMember counts the member's loans that are not returned yet.
func (r *Repository) CountOpenForMember(memberID string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Loan{}).
		Where("member_id = ? AND date_returned IS NULL", memberID).
		Count(&count).Error
	return count, err
}

// CountOpenForBook counts copies of a book that are currently lent out.
func (r *Repository) CountOpenForBook(isbn string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Loan{}).
		Where("isbn = ? AND date_returned IS NULL", isbn).
		Count(&count).Error
	return count, err
}

// FindOpen returns the open loan of isbn held by the member.
func (r *Repository) FindOpen(memberID, isbn string) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.Where("member_id = ? AND isbn = ? AND date_returned IS NULL", memberID, isbn).
		Order("loan_id ASC").
		Take(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Close marks an open loan returned on day. Zero rows affected means the loan
// was already closed.
func (r *Repository) Close(loanID uint, day time.Time) (int64, error) {
	result := r.db.Model(&entities.Loan{}).
		Where("loan_id = ? AND date_returned IS NULL", loanID).
		UpdateColumn("date_returned", day)
	return result.RowsAffected, result.Error
}

// ListOpen returns all loans not returned yet, earliest due first.
func (r *Repository) ListOpen() ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.detailed().
		Where("loans.date_returned IS NULL").
		Order("loans.due_date ASC, loans.loan_id ASC").
		Find(&loans).Error
	return loans, err
}

// ListOverdue returns open loans due strictly before today, earliest due first.
func (r *Repository) ListOverdue(today time.Time) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.detailed().
		Where("loans.date_returned IS NULL AND loans.due_date < ?", today).
		Order("loans.due_date ASC, loans.loan_id ASC").
		Find(&loans).Error
	return loans, err
}

// ListForMember returns the member's loans, newest first.
func (r *Repository) ListForMember(memberID string) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.detailed().
		Where("loans.member_id = ?", memberID).
		Order("loans.date_borrowed DESC, loans.loan_id DESC").
		Find(&loans).Error
	return loans, err
}
