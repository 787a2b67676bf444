// Package jobs provides scheduled background tasks for the proxy-purchase
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. QuoteExpirySweepJob - Runs every minute to find pending quotes past their
// validity deadline and notify the presentation layer.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(quoteExpirySweepJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep job never mutates quote state. A quote past its deadline keeps its
// pending approval state; approval attempts fail with a quote-expired error
// regardless of whether the sweep has run. Notification failures are logged
// and retried on the next sweep.
package jobs
