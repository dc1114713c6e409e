package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/library"
)

// OverdueScanner records overdue notices.
type OverdueScanner interface {
	ScanOverdue(ctx context.Context) (library.ScanResult, error)
}

// OverdueScanTask runs one overdue scan. Source says who asked for it
// ("cron", "api", "cli").
type OverdueScanTask struct {
	Source string `json:"source"`
}

// OverdueScanRetention is how long finished scans stay in the queue
// database. Payloads are kept only for failed scans.
const OverdueScanRetention = 24 * time.Hour

// Config returns the queue configuration for overdue scans. backlite reads
// it from the zero value of the task type, so it cannot depend on settings.
func (t OverdueScanTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "overdue_scan",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   OverdueScanRetention,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// OverdueScanProcessor creates a processor function for OverdueScanTask.
func OverdueScanProcessor(scanner OverdueScanner, logger *zap.Logger) backlite.QueueProcessor[OverdueScanTask] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task OverdueScanTask) error {
		if scanner == nil {
			return fmt.Errorf("overdue scanner not configured")
		}

		result, err := scanner.ScanOverdue(ctx)
		if err != nil {
			return fmt.Errorf("overdue scan: %w", err)
		}

		logger.Info("overdue scan processed",
			zap.String("source", task.Source),
			zap.Int("overdue", result.Overdue),
			zap.Int("recorded", result.Recorded))
		return nil
	}
}

// NewOverdueScanQueue creates a backlite queue for overdue scans.
func NewOverdueScanQueue(scanner OverdueScanner, logger *zap.Logger) backlite.Queue {
	return backlite.NewQueue(OverdueScanProcessor(scanner, logger))
}
