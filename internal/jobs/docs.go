// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. BackorderReleaseJob - Sweeps orders parked in Backorder and returns the
// ones that can be fully reserved again to the Pending queue
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(releaseBackordersHandler, "0 * * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep schedule is configurable and uses a six-field cron expression
// with a seconds column. The default "0 * * * * *" runs once per minute,
// which keeps backorders moving without hammering the inventory tables.
//
// # Error Handling
//
// Orders still short on stock are skipped inside the sweep itself; any error
// surfacing from the job is a system issue and is logged.
package jobs
