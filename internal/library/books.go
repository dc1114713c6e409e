package library

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/smartlibrary/internal/database/authors"
	"github.com/mrlokans/smartlibrary/internal/database/books"
	"github.com/mrlokans/smartlibrary/internal/database/loans"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

// NewBook is the input of AddBook.
type NewBook struct {
	ISBN       string `json:"isbn" yaml:"isbn"`
	Title      string `json:"title" yaml:"title"`
	AuthorName string `json:"author" yaml:"author"`
	Genre      string `json:"genre" yaml:"genre"`
	Copies     int    `json:"copies" yaml:"copies"`
}

// BookPatch lists the fields UpdateBook should change. Nil fields are left
// untouched.
type BookPatch struct {
	Title       *string `json:"title,omitempty"`
	AuthorName  *string `json:"author,omitempty"`
	Genre       *string `json:"genre,omitempty"`
	TotalCopies *int    `json:"total_copies,omitempty"`
}

func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.AuthorName == nil && p.Genre == nil && p.TotalCopies == nil
}

func (p BookPatch) validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return validation("Title cannot be empty")
	}
	if p.AuthorName != nil && strings.TrimSpace(*p.AuthorName) == "" {
		return validation("Author cannot be empty")
	}
	if p.TotalCopies != nil && *p.TotalCopies < 0 {
		return validation("Copies cannot be negative")
	}
	return nil
}

func (b *NewBook) normalize() error {
	b.ISBN = strings.TrimSpace(b.ISBN)
	b.Title = strings.TrimSpace(b.Title)
	b.AuthorName = strings.TrimSpace(b.AuthorName)
	b.Genre = strings.TrimSpace(b.Genre)

	switch {
	case b.ISBN == "":
		return validation("ISBN is required")
	case b.Title == "":
		return validation("Title is required")
	case b.AuthorName == "":
		return validation("Author is required")
	case b.Copies < 1:
		return validation("Copies must be at least 1")
	}
	if b.Genre == "" {
		b.Genre = entities.DefaultGenre
	}
	return nil
}

// AddBook catalogues a new book with all of its copies available.
func (s *Service) AddBook(ctx context.Context, in NewBook) (*entities.Book, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var created *entities.Book
	err := s.write(ctx, "add book", func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)

		exists, err := repo.Exists(in.ISBN)
		if err != nil {
			return err
		}
		if exists {
			return &Error{Kind: KindAlreadyExists, Entity: EntityBook, Message: StatusBookExists}
		}

		authorID, err := authors.NewRepository(tx).Resolve(in.AuthorName)
		if err != nil {
			return err
		}

		book := &entities.Book{
			ISBN:            in.ISBN,
			Title:           in.Title,
			AuthorID:        authorID,
			Genre:           in.Genre,
			TotalCopies:     in.Copies,
			AvailableCopies: in.Copies,
		}
		if err := repo.Create(book); err != nil {
			if isDuplicate(err) {
				return &Error{Kind: KindAlreadyExists, Entity: EntityBook, Message: StatusBookExists}
			}
			return err
		}

		created, err = repo.Get(in.ISBN)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("book added", zap.String("isbn", created.ISBN), zap.Int("copies", created.TotalCopies))
	return created, nil
}

// UpdateBook applies patch to the book. Changing the total number of copies
// recomputes the available count from the loans currently open; a total below
// that count is rejected.
func (s *Service) UpdateBook(ctx context.Context, isbn string, patch BookPatch) (*entities.Book, error) {
	if patch.IsEmpty() {
		return nil, &Error{Kind: KindNothingToUpdate, Entity: EntityBook, Message: StatusNothingToUpdate}
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}

	var updated *entities.Book
	err := s.write(ctx, "update book", func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)

		exists, err := repo.Exists(isbn)
		if err != nil {
			return err
		}
		if !exists {
			return notFound(EntityBook, StatusBookNotFound)
		}

		updates := map[string]any{}
		if patch.Title != nil {
			updates["title"] = strings.TrimSpace(*patch.Title)
		}
		if patch.Genre != nil {
			genre := strings.TrimSpace(*patch.Genre)
			if genre == "" {
				genre = entities.DefaultGenre
			}
			updates["genre"] = genre
		}
		if patch.AuthorName != nil {
			authorID, err := authors.NewRepository(tx).Resolve(strings.TrimSpace(*patch.AuthorName))
			if err != nil {
				return err
			}
			updates["author_id"] = authorID
		}
		if patch.TotalCopies != nil {
			onLoan, err := loans.NewRepository(tx).CountOpenForBook(isbn)
			if err != nil {
				return err
			}
			total := *patch.TotalCopies
			if int64(total) < onLoan {
				return &Error{Kind: KindConflict, Entity: EntityBook, Message: StatusTooFewCopies}
			}
			updates["total_copies"] = total
			updates["available_copies"] = total - int(onLoan)
		}

		if err := repo.Update(isbn, updates); err != nil {
			return err
		}
		updated, err = repo.Get(isbn)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("book updated", zap.String("isbn", isbn), zap.Strings("fields", fieldsOf(patch)))
	return updated, nil
}

// DeleteBook removes a book that has no open loans. Closed loans stay as
// history.
func (s *Service) DeleteBook(ctx context.Context, isbn string) error {
	err := s.write(ctx, "delete book", func(tx *gorm.DB) error {
		onLoan, err := loans.NewRepository(tx).CountOpenForBook(isbn)
		if err != nil {
			return err
		}
		if onLoan > 0 {
			return &Error{Kind: KindConflict, Entity: EntityBook, Message: StatusBookHasLoans}
		}

		deleted, err := books.NewRepository(tx).Delete(isbn)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return notFound(EntityBook, StatusBookNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("book deleted", zap.String("isbn", isbn))
	return nil
}

// GetBook returns a single book with its author name.
func (s *Service) GetBook(ctx context.Context, isbn string) (*entities.Book, error) {
	book, err := books.NewRepository(s.read(ctx)).Get(isbn)
	if isNotFound(err) {
		return nil, notFound(EntityBook, StatusBookNotFound)
	}
	if err != nil {
		return nil, s.check("get book", err)
	}
	return book, nil
}

// ListBooks returns the whole catalog ordered by title.
func (s *Service) ListBooks(ctx context.Context) ([]entities.Book, error) {
	list, err := books.NewRepository(s.read(ctx)).List()
	return list, s.check("list books", err)
}

// SearchBooks finds books whose title or author contains keyword, ignoring case.
func (s *Service) SearchBooks(ctx context.Context, keyword string) ([]entities.Book, error) {
	list, err := books.NewRepository(s.read(ctx)).Search(strings.TrimSpace(keyword))
	return list, s.check("search books", err)
}

func fieldsOf(p BookPatch) []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.AuthorName != nil {
		fields = append(fields, "author")
	}
	if p.Genre != nil {
		fields = append(fields, "genre")
	}
	if p.TotalCopies != nil {
		fields = append(fields, "total_copies")
	}
	return fields
}
