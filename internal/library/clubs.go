package library

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/smartlibrary/internal/database/clubs"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

// CreateClub starts a new book club with a unique name.
func (s *Service) CreateClub(ctx context.Context, name, description string) (*entities.BookClub, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation("Club name is required")
	}

	club := &entities.BookClub{Name: name, Description: strings.TrimSpace(description)}
	err := s.write(ctx, "create club", func(tx *gorm.DB) error {
		err := clubs.NewRepository(tx).Create(club)
		if isDuplicate(err) {
			return &Error{Kind: KindAlreadyExists, Entity: EntityClub, Message: StatusClubExists}
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("club created", zap.Uint("club_id", club.ID), zap.String("name", club.Name))
	return club, nil
}

// ListClubs returns all clubs ordered by name.
func (s *Service) ListClubs(ctx context.Context) ([]entities.BookClub, error) {
	list, err := clubs.NewRepository(s.read(ctx)).List()
	return list, s.check("list clubs", err)
}

// FindClub looks a club up by its name.
func (s *Service) FindClub(ctx context.Context, name string) (*entities.BookClub, error) {
	club, err := clubs.NewRepository(s.read(ctx)).GetByName(strings.TrimSpace(name))
	if isNotFound(err) {
		return nil, notFound(EntityClub, StatusClubNotFound)
	}
	if err != nil {
		return nil, s.check("find club", err)
	}
	return club, nil
}

// GetClub returns a single club.
func (s *Service) GetClub(ctx context.Context, clubID uint) (*entities.BookClub, error) {
	club, err := clubs.NewRepository(s.read(ctx)).Get(clubID)
	if isNotFound(err) {
		return nil, notFound(EntityClub, StatusClubNotFound)
	}
	if err != nil {
		return nil, s.check("get club", err)
	}
	return club, nil
}

// ListClubMembers returns the club's members ordered by name.
func (s *Service) ListClubMembers(ctx context.Context, clubID uint) ([]entities.Member, error) {
	var list []entities.Member
	err := s.write(ctx, "list club members", func(tx *gorm.DB) error {
		repo := clubs.NewRepository(tx)
		if err := requireClub(repo, clubID); err != nil {
			return err
		}
		var err error
		list, err = repo.ListMembers(clubID)
		return err
	})
	return list, err
}

// JoinClub adds the member to the club. Unknown member, unknown club and
// existing membership are reported in that order.
func (s *Service) JoinClub(ctx context.Context, memberID string, clubID uint) error {
	err := s.write(ctx, "join club", func(tx *gorm.DB) error {
		if err := requireMember(tx, memberID); err != nil {
			return err
		}

		repo := clubs.NewRepository(tx)
		if err := requireClub(repo, clubID); err != nil {
			return err
		}

		already, err := repo.IsMember(memberID, clubID)
		if err != nil {
			return err
		}
		if already {
			return &Error{Kind: KindAlreadyMember, Entity: EntityClub, Message: StatusAlreadyInClub}
		}

		err = repo.AddMember(memberID, clubID)
		if isDuplicate(err) {
			return &Error{Kind: KindAlreadyMember, Entity: EntityClub, Message: StatusAlreadyInClub}
		}
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("member joined club", zap.String("member_id", memberID), zap.Uint("club_id", clubID))
	return nil
}

func requireClub(repo *clubs.Repository, clubID uint) error {
	exists, err := repo.Exists(clubID)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(EntityClub, StatusClubNotFound)
	}
	return nil
}
