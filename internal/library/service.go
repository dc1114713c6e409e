// Package library implements the library's business rules: the catalog,
// members, loans, book clubs and the overdue scan.
//
// Every operation runs inside one database transaction. Business-rule
// failures come back as *Error values (see errors.go) and never abort the
// caller; store failures are wrapped and returned as ordinary errors.
//
// # Usage
//
//	svc := library.NewService(db, cfg.Library, library.WithLogger(logger))
//	loan, err := svc.Borrow(ctx, "M001", "9780441013593")
//	if errors.Is(err, library.ErrLimitReached) {
//		fmt.Println(library.StatusOf(err))
//	}
package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/smartlibrary/internal/config"
	"github.com/mrlokans/smartlibrary/internal/database"
)

// Service exposes the library operations over a database.
type Service struct {
	db     *database.Database
	cfg    config.Library
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(db *database.Database, cfg config.Library, opts ...Option) *Service {
	if cfg.LoanPeriodDays <= 0 {
		cfg.LoanPeriodDays = config.DefaultLoanPeriodDays
	}
	if cfg.BorrowLimit <= 0 {
		cfg.BorrowLimit = config.DefaultBorrowLimit
	}

	s := &Service{
		db:     db,
		cfg:    cfg,
		loc:    cfg.Location(),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("library")
	return s
}

// Today is the current calendar day in the library's time zone, expressed as
// midnight UTC so that stored dates compare as plain days.
func (s *Service) Today() time.Time {
	return DayOf(s.now().In(s.loc))
}

// DayOf truncates t to its calendar day at midnight UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BorrowLimit is the maximum number of open loans per member.
func (s *Service) BorrowLimit() int {
	return s.cfg.BorrowLimit
}

// LoanPeriod is the number of days a book may be kept.
func (s *Service) LoanPeriod() int {
	return s.cfg.LoanPeriodDays
}

// write runs fn in one transaction. Business errors pass through unchanged;
// anything else is logged and wrapped with op.
func (s *Service) write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	return s.check(op, s.db.Transaction(ctx, fn))
}

func (s *Service) read(ctx context.Context) *gorm.DB {
	return s.db.DB.WithContext(ctx)
}

func (s *Service) check(op string, err error) error {
	if err == nil {
		return nil
	}
	var libErr *Error
	if errors.As(err, &libErr) {
		return libErr
	}
	s.logger.Error("store failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
