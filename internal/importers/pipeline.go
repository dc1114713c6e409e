package importers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/auth"
	"github.com/mrlokans/smartlibrary/internal/entities"
	"github.com/mrlokans/smartlibrary/internal/library"
)

// Library is the part of library.Service the pipeline writes through.
type Library interface {
	AddMember(ctx context.Context, in library.NewMember) (*entities.Member, error)
	AddBook(ctx context.Context, in library.NewBook) (*entities.Book, error)
	CreateClub(ctx context.Context, name, description string) (*entities.BookClub, error)
	FindClub(ctx context.Context, name string) (*entities.BookClub, error)
	JoinClub(ctx context.Context, memberID string, clubID uint) error
}

// Users creates logins.
type Users interface {
	CreateUser(ctx context.Context, in auth.NewUser) (*entities.User, error)
}

// Counts tallies one kind of record.
type Counts struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

func (c *Counts) add(created bool) {
	if created {
		c.Created++
	} else {
		c.Skipped++
	}
}

// Result reports what an import created and what already existed.
type Result struct {
	Members     Counts `json:"members"`
	Books       Counts `json:"books"`
	Clubs       Counts `json:"clubs"`
	Memberships Counts `json:"memberships"`
	Users       Counts `json:"users"`
}

// Pipeline applies catalogs through the service layer.
type Pipeline struct {
	library Library
	users   Users
	logger  *zap.Logger
}

// NewPipeline creates a new import pipeline. users may be nil when the
// catalog carries no logins.
func NewPipeline(lib Library, users Users, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{library: lib, users: users, logger: logger.Named("import")}
}

// Import applies the catalog. It stops at the first record that fails for a
// reason other than already existing and returns the counts so far.
func (p *Pipeline) Import(ctx context.Context, catalog *Catalog) (Result, error) {
	var result Result

	for _, m := range catalog.Members {
		_, err := p.library.AddMember(ctx, m)
		created, err := skipExisting(err)
		if err != nil {
			return result, fmt.Errorf("member %q: %w", m.MemberID, err)
		}
		result.Members.add(created)
	}

	for _, b := range catalog.Books {
		_, err := p.library.AddBook(ctx, b)
		created, err := skipExisting(err)
		if err != nil {
			return result, fmt.Errorf("book %q: %w", b.ISBN, err)
		}
		result.Books.add(created)
	}

	for _, c := range catalog.Clubs {
		club, created, err := p.ensureClub(ctx, c)
		if err != nil {
			return result, fmt.Errorf("club %q: %w", c.Name, err)
		}
		result.Clubs.add(created)

		for _, memberID := range c.Members {
			joined, err := skipExisting(p.library.JoinClub(ctx, memberID, club.ID))
			if err != nil {
				return result, fmt.Errorf("club %q member %q: %w", c.Name, memberID, err)
			}
			result.Memberships.add(joined)
		}
	}

	if len(catalog.Users) > 0 && p.users == nil {
		return result, errors.New("catalog has users but no user service is configured")
	}
	for _, u := range catalog.Users {
		in := auth.NewUser{
			Username: u.Username,
			Password: u.Password,
			Role:     entities.UserRole(strings.ToLower(strings.TrimSpace(u.Role))),
		}
		if member := strings.TrimSpace(u.Member); member != "" {
			in.MemberID = &member
		}

		_, err := p.users.CreateUser(ctx, in)
		switch {
		case errors.Is(err, auth.ErrUserExists):
			result.Users.add(false)
		case err != nil:
			return result, fmt.Errorf("user %q: %w", u.Username, err)
		default:
			result.Users.add(true)
		}
	}

	p.logger.Info("catalog imported",
		zap.Int("members", result.Members.Created),
		zap.Int("books", result.Books.Created),
		zap.Int("clubs", result.Clubs.Created),
		zap.Int("memberships", result.Memberships.Created),
		zap.Int("users", result.Users.Created))
	return result, nil
}

func (p *Pipeline) ensureClub(ctx context.Context, c ClubEntry) (*entities.BookClub, bool, error) {
	club, err := p.library.CreateClub(ctx, c.Name, c.Description)
	if err == nil {
		return club, true, nil
	}
	if !errors.Is(err, library.ErrAlreadyExists) {
		return nil, false, err
	}
	club, err = p.library.FindClub(ctx, c.Name)
	return club, false, err
}

// skipExisting turns "already there" failures into a skip.
func skipExisting(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, library.ErrAlreadyExists) || errors.Is(err, library.ErrAlreadyMember) {
		return false, nil
	}
	return false, err
}
