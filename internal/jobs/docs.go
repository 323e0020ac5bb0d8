// Package jobs provides scheduled background tasks for the field-service
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the work-order lifecycle.
//
// # Available Jobs
//
// 1. StaleOrderReportJob - Runs every 15 minutes to report in-progress orders
// open longer than the configured threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(staleOrdersHandler, 4*time.Hour, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The report job logs failures and keeps its schedule; a missed report is
// recovered by the next run
// - Failed job starts surface immediately so the process can refuse to boot
package jobs
