package metrics

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
)

// CommittedEventsHook counts committed domain events by name.
func CommittedEventsHook() func(context.Context, []kernel.DomainEvent) {
	return func(_ context.Context, events []kernel.DomainEvent) {
		for _, e := range events {
			DomainEventsCommittedTotal.WithLabelValues(e.EventName()).Inc()
		}
	}
}
