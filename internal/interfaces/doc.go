// Package interfaces holds compile-time checks that the concrete services
// satisfy the narrow interfaces their consumers declare.
//
// Consumers define the interface they need next to the code that uses it
// (accept interfaces, return structs):
//
//	importers.Library     ← library.Service
//	importers.Users       ← auth.Service
//	tasks.OverdueScanner  ← library.Service
//	scheduler.Trigger     ← tasks.Client, scheduler.TriggerFunc
//	http.TaskQueue        ← tasks.Client
//	http.OverdueSchedule  ← scheduler.OverdueScheduler
//
// The package has no runtime code; it only needs to compile.
package interfaces
