// Package books provides database operations for the catalog.
//
// Copy counters are only ever changed through the guarded updates
// DecrementAvailable and IncrementAvailable; callers check the returned row
// count to learn whether the guard held.
//
// # Usage
//
//	repo := books.NewRepository(tx)
//	book, err := repo.Get("9780000000001")
package books

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/smartlibrary/internal/entities"
)

// likeEscape is portable across SQLite, PostgreSQL and MySQL string literals.
const likeEscape = "!"

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) withAuthor() *gorm.DB {
	return r.db.Model(&entities.Book{}).
		Select("books.*, authors.name AS author_name").
		Joins("JOIN authors ON authors.author_id = books.author_id")
}

// Exists reports whether a book with the given ISBN is catalogued.
func (r *Repository) Exists(isbn string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("isbn = ?", isbn).Count(&count).Error
	return count > 0, err
}

// Create inserts a book. The author must already exist.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Omit(clause.Associations).Create(book).Error
}

// Get retrieves a book with its author name.
func (r *Repository) Get(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.withAuthor().Where("books.isbn = ?", isbn).Take(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns every book ordered by title.
func (r *Repository) List() ([]entities.Book, error) {
	var books []entities.Book
	err := r.withAuthor().Order("books.title ASC, books.isbn ASC").Find(&books).Error
	return books, err
}

// Search matches keyword case-insensitively against title or author name.
// Both sides fold with Unicode rules; on SQLite LOWER is the function
// registered by the database package. Wildcards in keyword are matched
// literally.
func (r *Repository) Search(keyword string) ([]entities.Book, error) {
	var books []entities.Book
	pattern := "%" + EscapeLike(strings.ToLower(keyword)) + "%"
	err := r.withAuthor().
		Where("LOWER(books.title) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(authors.name) LIKE ? ESCAPE '"+likeEscape+"'", pattern, pattern).
		Order("books.title ASC, books.isbn ASC").
		Find(&books).Error
	return books, err
}

// Update applies column updates to a single book.
func (r *Repository) Update(isbn string, updates map[string]any) error {
	return r.db.Model(&entities.Book{}).Where("isbn = ?", isbn).Updates(updates).Error
}

// Delete removes a book and returns the number of rows deleted.
func (r *Repository) Delete(isbn string) (int64, error) {
	result := r.db.Where("isbn = ?", isbn).Delete(&entities.Book{})
	return result.RowsAffected, result.Error
}

// DecrementAvailable takes one copy off the shelf if any is left.
func (r *Repository) DecrementAvailable(isbn string) (int64, error) {
	result := r.db.Model(&entities.Book{}).
		Where("isbn = ? AND available_copies > 0", isbn).
		UpdateColumn("available_copies", gorm.Expr("available_copies - 1"))
	return result.RowsAffected, result.Error
}

// IncrementAvailable puts one copy back unless the shelf is already full.
func (r *Repository) IncrementAvailable(isbn string) (int64, error) {
	result := r.db.Model(&entities.Book{}).
		Where("isbn = ? AND available_copies < total_copies", isbn).
		UpdateColumn("available_copies", gorm.Expr("available_copies + 1"))
	return result.RowsAffected, result.Error
}

// EscapeLike escapes LIKE metacharacters for use with ESCAPE '!'.
func EscapeLike(s string) string {
	return strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_").Replace(s)
}
