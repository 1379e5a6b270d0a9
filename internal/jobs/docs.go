// Package jobs runs the scheduled background tasks of the marketplace
// service on github.com/robfig/cron/v3 (six-field schedules, seconds first).
//
// # Available Jobs
//
// OutboxRelayJob publishes queued outbox messages (order placed, status
// changed, dispute opened and resolved) to Kafka in batches. Delivery is at
// least once: a message is marked published only after the broker acked it,
// and consumers deduplicate on the message-id header.
//
// # Usage
//
//	relay, err := jobs.NewOutboxRelayJob(publishHandler, metrics,
//		jobs.OutboxRelayConfig{Schedule: cfg.OutboxSchedule, BatchSize: cfg.OutboxBatch}, logger)
//	if err != nil {
//		return err
//	}
//	jm := jobs.NewJobManager(relay)
//	if err := jm.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jm.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Overlapping runs are
// skipped. A job that fails to start stops the ones already running.
package jobs
