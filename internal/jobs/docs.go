// Package jobs provides scheduled background tasks for the field-service
// system.
//
// Jobs are scheduled with github.com/robfig/cron/v3 using "@every" specs and
// drive command handlers the same way HTTP handlers do.
//
// # Available Jobs
//
// OutboxRelayJob claims pending outbox messages and publishes them to Kafka.
// It is only created when brokers are configured.
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(&relayHandler, time.Second, 100, logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged and counted; the messages stay pending and the next
// tick retries them. Broker failures bump the attempt counter of each message.
package jobs
