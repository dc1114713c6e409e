package library

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/smartlibrary/internal/database/members"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

// NewMember is the input of AddMember.
type NewMember struct {
	MemberID string  `json:"member_id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Email    *string `json:"email,omitempty" yaml:"email"`
}

func (m *NewMember) normalize() error {
	m.MemberID = strings.TrimSpace(m.MemberID)
	m.Name = strings.TrimSpace(m.Name)
	if m.Email != nil {
		email := strings.TrimSpace(*m.Email)
		if email == "" {
			m.Email = nil
		} else {
			m.Email = &email
		}
	}

	switch {
	case m.MemberID == "":
		return validation("Member ID is required")
	case m.Name == "":
		return validation("Name is required")
	}
	return nil
}

// AddMember registers a member with the default role.
func (s *Service) AddMember(ctx context.Context, in NewMember) (*entities.Member, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	member := &entities.Member{
		MemberID: in.MemberID,
		Name:     in.Name,
		Email:    in.Email,
		Role:     entities.MemberRoleMember,
	}
	err := s.write(ctx, "add member", func(tx *gorm.DB) error {
		repo := members.NewRepository(tx)

		exists, err := repo.Exists(in.MemberID)
		if err != nil {
			return err
		}
		if exists {
			return &Error{Kind: KindAlreadyExists, Entity: EntityMember, Message: StatusMemberExists}
		}

		if err := repo.Create(member); err != nil {
			if isDuplicate(err) {
				return &Error{Kind: KindAlreadyExists, Entity: EntityMember, Message: StatusMemberExists}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member added", zap.String("member_id", member.MemberID))
	return member, nil
}

// ListMembers returns all members ordered by name.
func (s *Service) ListMembers(ctx context.Context) ([]entities.Member, error) {
	list, err := members.NewRepository(s.read(ctx)).List()
	return list, s.check("list members", err)
}

// GetMember returns a single member.
func (s *Service) GetMember(ctx context.Context, memberID string) (*entities.Member, error) {
	member, err := members.NewRepository(s.read(ctx)).Get(memberID)
	if isNotFound(err) {
		return nil, notFound(EntityMember, StatusMemberNotFound)
	}
	if err != nil {
		return nil, s.check("get member", err)
	}
	return member, nil
}

// requireMember fails with a member not-found error unless the member exists.
func requireMember(tx *gorm.DB, memberID string) error {
	exists, err := members.NewRepository(tx).Exists(memberID)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(EntityMember, StatusMemberNotFound)
	}
	return nil
}
