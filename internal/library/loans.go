package library

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/smartlibrary/internal/database/books"
	"github.com/mrlokans/smartlibrary/internal/database/loans"
	"github.com/mrlokans/smartlibrary/internal/database/members"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

// Borrow lends a copy of isbn to the member. The checks run in a fixed order
// and the first failing one decides the error: unknown member, borrow limit,
// unknown book, same book already on loan to the member, no copies left.
func (s *Service) Borrow(ctx context.Context, memberID, isbn string) (*entities.Loan, error) {
	today := s.Today()

	var loan *entities.Loan
	err := s.write(ctx, "borrow", func(tx *gorm.DB) error {
		loanRepo := loans.NewRepository(tx)
		bookRepo := books.NewRepository(tx)

		member, err := members.NewRepository(tx).Get(memberID)
		if isNotFound(err) {
			return notFound(EntityMember, StatusMemberNotFound)
		}
		if err != nil {
			return err
		}

		open, err := loanRepo.CountOpenForMember(memberID)
		if err != nil {
			return err
		}
		if !member.CanBorrow(open, s.cfg.BorrowLimit) {
			return &Error{Kind: KindLimitReached, Entity: EntityMember, Message: StatusLimitReached}
		}

		book, err := bookRepo.Get(isbn)
		if isNotFound(err) {
			return notFound(EntityBook, StatusBookNotFound)
		}
		if err != nil {
			return err
		}

		if _, err := loanRepo.FindOpen(memberID, isbn); err == nil {
			return &Error{Kind: KindConflict, Entity: EntityLoan, Message: StatusAlreadyBorrowed}
		} else if !isNotFound(err) {
			return err
		}

		if !book.IsAvailable() {
			return &Error{Kind: KindOutOfStock, Entity: EntityBook, Message: StatusNoCopiesLeft}
		}
		taken, err := bookRepo.DecrementAvailable(isbn)
		if err != nil {
			return err
		}
		if taken == 0 {
			return &Error{Kind: KindOutOfStock, Entity: EntityBook, Message: StatusNoCopiesLeft}
		}

		created := &entities.Loan{
			MemberID:     memberID,
			ISBN:         isbn,
			DateBorrowed: today,
			DueDate:      today.AddDate(0, 0, s.cfg.LoanPeriodDays),
		}
		if err := loanRepo.Create(created); err != nil {
			return err
		}
		loan, err = loanRepo.Get(created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("book borrowed",
		zap.String("member_id", memberID),
		zap.String("isbn", isbn),
		zap.Time("due_date", loan.DueDate))
	return loan, nil
}

// Return closes the member's open loan of isbn and puts the copy back.
func (s *Service) Return(ctx context.Context, memberID, isbn string) (*entities.Loan, error) {
	today := s.Today()

	var loan *entities.Loan
	err := s.write(ctx, "return", func(tx *gorm.DB) error {
		loanRepo := loans.NewRepository(tx)

		open, err := loanRepo.FindOpen(memberID, isbn)
		if isNotFound(err) {
			return notFound(EntityLoan, StatusNotBorrowed)
		}
		if err != nil {
			return err
		}

		closed, err := loanRepo.Close(open.ID, today)
		if err != nil {
			return err
		}
		if closed == 0 {
			return notFound(EntityLoan, StatusNotBorrowed)
		}

		restored, err := books.NewRepository(tx).IncrementAvailable(isbn)
		if err != nil {
			return err
		}
		if restored == 0 {
			s.logger.Warn("available copies already at total on return", zap.String("isbn", isbn))
		}

		loan, err = loanRepo.Get(open.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("book returned", zap.String("member_id", memberID), zap.String("isbn", isbn))
	return loan, nil
}

// ListOpenLoans returns every loan not yet returned, earliest due first.
func (s *Service) ListOpenLoans(ctx context.Context) ([]entities.Loan, error) {
	list, err := loans.NewRepository(s.read(ctx)).ListOpen()
	return list, s.check("list open loans", err)
}

// ListOverdue returns open loans whose due date is before today.
func (s *Service) ListOverdue(ctx context.Context) ([]entities.Loan, error) {
	list, err := loans.NewRepository(s.read(ctx)).ListOverdue(s.Today())
	return list, s.check("list overdue loans", err)
}

// ListMemberLoans returns the member's loan history, newest first.
func (s *Service) ListMemberLoans(ctx context.Context, memberID string) ([]entities.Loan, error) {
	var list []entities.Loan
	err := s.write(ctx, "list member loans", func(tx *gorm.DB) error {
		if err := requireMember(tx, memberID); err != nil {
			return err
		}
		var err error
		list, err = loans.NewRepository(tx).ListForMember(memberID)
		return err
	})
	return list, err
}
