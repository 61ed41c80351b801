package routecache

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/ports"

	"go.uber.org/zap"
)

// InvalidationHook returns an after-commit hook that drops the cached route
// of every technician touched by the committed events. Failures are logged;
// the entry then expires with its TTL.
func InvalidationHook(cache ports.RouteCache, logger *zap.Logger) func(context.Context, []kernel.DomainEvent) {
	log := logger.With(zap.String("component", "route_cache"))

	return func(ctx context.Context, events []kernel.DomainEvent) {
		ids := AffectedTechnicians(events)
		if len(ids) == 0 {
			return
		}
		if err := cache.Invalidate(context.WithoutCancel(ctx), ids...); err != nil {
			log.Warn("route cache invalidation failed", zap.Int("technicians", len(ids)), zap.Error(err))
		}
	}
}

// AffectedTechnicians returns the distinct queues named by events, in first
// appearance order.
func AffectedTechnicians(events []kernel.DomainEvent) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{})
	var ids []kernel.UUID
	for _, e := range events {
		for _, id := range e.AffectedQueues() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
