package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mrlokans/smartlibrary/internal/config"
	"github.com/mrlokans/smartlibrary/internal/database/members"
	"github.com/mrlokans/smartlibrary/internal/database/users"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,64}$`)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidRole      = errors.New("invalid role")
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters: letters, digits, dot, underscore or hyphen")
	ErrMemberNotFound   = errors.New("linked member not found")
)

// NewUser is the input of CreateUser.
type NewUser struct {
	Username string
	Password string
	Role     entities.UserRole
	MemberID *string
}

// Service handles login checks and user management.
type Service struct {
	db        *gorm.DB
	config    config.Auth
	dummyHash string
	logger    *zap.Logger
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth, logger *zap.Logger) (*Service, error) {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dummy, err := newDummyHash(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hashing: %w", err)
	}

	return &Service{
		db:        db,
		config:    cfg,
		dummyHash: dummy,
		logger:    logger.Named("auth"),
	}, nil
}

// VerifyCredentials looks the user up once by exact username and checks the
// password. A failed login returns ok=false and a nil error whether the
// username or the password was wrong; only store failures return an error.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (*entities.User, bool, error) {
	user, err := users.NewRepository(s.db.WithContext(ctx)).GetByUsername(username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}

	hash := s.dummyHash
	if user != nil {
		hash = user.PasswordHash
	}

	err = CheckPassword(password, hash)
	if user == nil || errors.Is(err, ErrInvalidPassword) {
		s.logger.Info("login rejected")
		return nil, false, nil
	}
	if err != nil {
		// Malformed stored hash. Treat as no match but leave a trace.
		s.logger.Warn("password check failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, false, nil
	}

	return user, true, nil
}

// CreateUser creates a login with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, in NewUser) (*entities.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}
	if in.Password == "" {
		return nil, ErrPasswordRequired
	}

	role := in.Role
	if role == "" {
		role = entities.UserRoleMember
	}
	switch role {
	case entities.UserRoleAdmin, entities.UserRoleLibrarian, entities.UserRoleMember:
	default:
		return nil, ErrInvalidRole
	}

	passwordHash, err := HashPassword(in.Password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		MemberID:     in.MemberID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.MemberID != nil {
			exists, err := members.NewRepository(tx).Exists(*in.MemberID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrMemberNotFound
			}
		}

		err := users.NewRepository(tx).Create(user)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) || errors.Is(err, ErrMemberNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	user, err := users.NewRepository(s.db.WithContext(ctx)).GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns all users ordered by username.
func (s *Service) ListUsers(ctx context.Context) ([]entities.User, error) {
	return users.NewRepository(s.db.WithContext(ctx)).List()
}

// IsAuthEnabled returns true if authentication is required.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeLocal
}
