package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/smartlibrary/internal/auth"
	http_controllers "github.com/mrlokans/smartlibrary/internal/http"
	"github.com/mrlokans/smartlibrary/internal/importers"
	"github.com/mrlokans/smartlibrary/internal/library"
	"github.com/mrlokans/smartlibrary/internal/scheduler"
	"github.com/mrlokans/smartlibrary/internal/tasks"
)

// =============================================================================
// Import Pipeline
// =============================================================================

var _ importers.Library = (*library.Service)(nil)
var _ importers.Users = (*auth.Service)(nil)

// =============================================================================
// Overdue Scan
// =============================================================================

// Processor dependency
var _ tasks.OverdueScanner = (*library.Service)(nil)

// Trigger implementations
var _ scheduler.Trigger = (*tasks.Client)(nil)
var _ scheduler.Trigger = scheduler.TriggerFunc(nil)

// =============================================================================
// Health Checks
// =============================================================================

var _ http_controllers.TaskQueue = (*tasks.Client)(nil)
var _ http_controllers.OverdueSchedule = (*scheduler.OverdueScheduler)(nil)
