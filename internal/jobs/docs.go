// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. StaleOrderReminderJob - Periodically finds orders that have been waiting
// in "created" status for too long and reminds connected admins about them.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(staleOrdersHandler, registry, reminderAge, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The reminder job logs failures and keeps running; a failed query never
// stops the schedule. Delivery failures to individual admins affect only the
// connection concerned.
package jobs
