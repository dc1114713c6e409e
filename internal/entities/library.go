package entities

import (
	"time"
)

// DefaultGenre is stored when a book is added without a genre.
const DefaultGenre = "Unknown"

type MemberRole string

const (
	MemberRoleMember    MemberRole = "member"
	MemberRoleLibrarian MemberRole = "librarian"
)

type Author struct {
	ID        uint      `gorm:"primaryKey;column:author_id" json:"author_id"`
	Name      string    `gorm:"uniqueIndex;size:256;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
}

type Book struct {
	ISBN            string    `gorm:"primaryKey;column:isbn;size:20" json:"isbn"`
	Title           string    `gorm:"index;size:512;not null" json:"title"`
	AuthorID        uint      `gorm:"index;column:author_id;not null" json:"author_id"`
	Author          Author    `gorm:"foreignKey:AuthorID;references:ID" json:"-"`
	Genre           string    `gorm:"size:100" json:"genre"`
	TotalCopies     int       `gorm:"not null" json:"total_copies"`
	AvailableCopies int       `gorm:"not null" json:"available_copies"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`

	// Filled by queries that join authors.
	AuthorName string `gorm:"->;-:migration;column:author_name" json:"author"`
}

// IsAvailable reports whether at least one copy is on the shelf.
func (b Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

type Member struct {
	MemberID  string     `gorm:"primaryKey;column:member_id;size:64" json:"member_id"`
	Name      string     `gorm:"index;size:256;not null" json:"name"`
	Email     *string    `gorm:"size:255" json:"email,omitempty"`
	Role      MemberRole `gorm:"size:20;default:'member'" json:"role"`
	CreatedAt time.Time  `json:"-"`
}

// CanBorrow reports whether a member holding openLoans may take another book.
func (m Member) CanBorrow(openLoans int64, limit int) bool {
	return openLoans < int64(limit)
}

// Loan has no declared relations so that closed loans survive deletion of
// their book; joins are written out in the loans repository.
type Loan struct {
	ID           uint       `gorm:"primaryKey;column:loan_id" json:"loan_id"`
	MemberID     string     `gorm:"index;size:64;not null" json:"member_id"`
	ISBN         string     `gorm:"index;column:isbn;size:20;not null" json:"isbn"`
	DateBorrowed time.Time  `gorm:"not null" json:"date_borrowed"`
	DueDate      time.Time  `gorm:"index;not null" json:"due_date"`
	DateReturned *time.Time `gorm:"index" json:"date_returned,omitempty"`

	MemberName string `gorm:"->;-:migration;column:member_name" json:"member_name,omitempty"`
	Title      string `gorm:"->;-:migration;column:title" json:"title,omitempty"`
}

// IsOpen reports whether the loan has not been returned yet.
func (l Loan) IsOpen() bool {
	return l.DateReturned == nil
}

// IsOverdue reports whether an open loan was due before today.
func (l Loan) IsOverdue(today time.Time) bool {
	return l.IsOpen() && l.DueDate.Before(today)
}

type BookClub struct {
	ID          uint      `gorm:"primaryKey;column:club_id" json:"club_id"`
	Name        string    `gorm:"uniqueIndex;size:256;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
}

type MemberClub struct {
	MemberID  string    `gorm:"primaryKey;size:64" json:"member_id"`
	ClubID    uint      `gorm:"primaryKey" json:"club_id"`
	CreatedAt time.Time `json:"joined_at"`
}

// OverdueNotice records that a loan was seen overdue by the scan.
type OverdueNotice struct {
	ID        uint      `gorm:"primaryKey;column:notice_id" json:"notice_id"`
	LoanID    uint      `gorm:"uniqueIndex;not null" json:"loan_id"`
	MemberID  string    `gorm:"index;size:64;not null" json:"member_id"`
	ISBN      string    `gorm:"column:isbn;size:20;not null" json:"isbn"`
	DueDate   time.Time `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
}

func (Author) TableName() string        { return "authors" }
func (Book) TableName() string          { return "books" }
func (Member) TableName() string        { return "members" }
func (Loan) TableName() string          { return "loans" }
func (BookClub) TableName() string      { return "book_clubs" }
func (MemberClub) TableName() string    { return "member_clubs" }
func (OverdueNotice) TableName() string { return "overdue_notices" }
