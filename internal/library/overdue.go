package library

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/smartlibrary/internal/database/loans"
	"github.com/mrlokans/smartlibrary/internal/database/notices"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

// ScanResult summarizes one overdue scan.
type ScanResult struct {
	Overdue  int `json:"overdue"`
	Recorded int `json:"recorded"`
}

// ScanOverdue records a notice for every overdue loan that does not have one
// yet. Running it again on the same day records nothing new.
func (s *Service) ScanOverdue(ctx context.Context) (ScanResult, error) {
	today := s.Today()

	var result ScanResult
	err := s.write(ctx, "scan overdue", func(tx *gorm.DB) error {
		overdue, err := loans.NewRepository(tx).ListOverdue(today)
		if err != nil {
			return err
		}
		result = ScanResult{Overdue: len(overdue)}

		repo := notices.NewRepository(tx)
		for _, loan := range overdue {
			created, err := repo.Record(&entities.OverdueNotice{
				LoanID:   loan.ID,
				MemberID: loan.MemberID,
				ISBN:     loan.ISBN,
				DueDate:  loan.DueDate,
			})
			if err != nil {
				return err
			}
			if created {
				result.Recorded++
			}
		}
		return nil
	})
	if err != nil {
		return ScanResult{}, err
	}

	s.logger.Info("overdue scan finished",
		zap.Time("today", today),
		zap.Int("overdue", result.Overdue),
		zap.Int("recorded", result.Recorded))
	return result, nil
}

// ListMemberNotices returns the overdue notices recorded for a member.
func (s *Service) ListMemberNotices(ctx context.Context, memberID string) ([]entities.OverdueNotice, error) {
	var list []entities.OverdueNotice
	err := s.write(ctx, "list member notices", func(tx *gorm.DB) error {
		if err := requireMember(tx, memberID); err != nil {
			return err
		}
		var err error
		list, err = notices.NewRepository(tx).ListForMember(memberID)
		return err
	})
	return list, err
}
