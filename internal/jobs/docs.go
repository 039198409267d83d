// Package jobs provides scheduled background tasks for the bidding service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// 1. OutboxRelayJob - relays unpublished domain events from the outbox table
// to the message broker and marks them published.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, "*/2 * * * * *", 100, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Messages stay
// unpublished until a run commits, so the broker may see a message more than
// once but never misses one.
package jobs
