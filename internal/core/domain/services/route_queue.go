package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/pkg/errs"
)

// RouteQueue is a domain service that owns the position arithmetic of the
// per-technician work queues.
//
// Business rules:
//   - A new or transferred order goes to the tail: 1 + max(position), or 0
//     for an empty queue
//   - Reordering sets position = index in the requested sequence
//   - Orders of a touched queue that are left out of the sequence keep their
//     relative order and are shifted after the reordered ones, so positions
//     stay unique per technician
//   - Duplicate ids in a sequence are rejected
//
// The caller is responsible for holding the technician row locks while the
// computed positions are written.
type RouteQueue struct{}

func NewRouteQueue() RouteQueue {
	return RouteQueue{}
}

// NextPosition returns the tail position for a queue whose largest position
// is maxPosition. A nil maxPosition means the queue is empty.
func (RouteQueue) NextPosition(maxPosition *int) int {
	if maxPosition == nil || *maxPosition < 0 {
		return 0
	}
	return *maxPosition + 1
}

// ValidateSequence rejects invalid and duplicate ids.
func (RouteQueue) ValidateSequence(ids []kernel.UUID) error {
	seen := make(map[kernel.UUID]int, len(ids))
	var errList []error
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("orderIds[%d]", i), err))
			continue
		}
		if first, ok := seen[id]; ok {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"orderIds",
				fmt.Errorf("%s appears at index %d and %d", id, first, i),
			))
			continue
		}
		seen[id] = i
	}
	return errors.Join(errList...)
}

// TechniciansOf returns the distinct technicians owning orders, sorted by id.
// Locking technicians in this order keeps concurrent reorders from
// deadlocking.
func (RouteQueue) TechniciansOf(orders []*serviceorder.ServiceOrder) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(orders))
	technicians := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		if o.TechnicianID() == nil {
			continue
		}
		id := *o.TechnicianID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		technicians = append(technicians, id)
	}
	slices.SortFunc(technicians, func(a, b kernel.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return technicians
}

// Reorder assigns position = index to every order named in ids. queue holds
// the named orders together with every other order of the technicians they
// belong to; those others are moved behind the reordered ones of their own
// technician, in their current order. Duplicates in queue are ignored.
//
// Returns the orders whose position changed, or an ObjectNotFoundError for the
// first id missing from queue.
func (q RouteQueue) Reorder(
	ids []kernel.UUID,
	queue []*serviceorder.ServiceOrder,
	now time.Time,
) ([]*serviceorder.ServiceOrder, error) {
	if err := q.ValidateSequence(ids); err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*serviceorder.ServiceOrder, len(queue))
	unique := make([]*serviceorder.ServiceOrder, 0, len(queue))
	for _, o := range queue {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if _, ok := byID[o.ID()]; ok {
			continue
		}
		byID[o.ID()] = o
		unique = append(unique, o)
	}
	queue = unique

	listed := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		listed[id] = struct{}{}
	}

	before := make(map[kernel.UUID]int, len(queue))
	for _, o := range queue {
		before[o.ID()] = o.Position()
	}

	tail := make(map[kernel.UUID]int)
	for i, id := range ids {
		o := byID[id]
		if err := o.MoveTo(i, now); err != nil {
			return nil, err
		}
		if o.TechnicianID() != nil && tail[*o.TechnicianID()] < i+1 {
			tail[*o.TechnicianID()] = i + 1
		}
	}

	rest := make([]*serviceorder.ServiceOrder, 0, len(queue))
	for _, o := range queue {
		if _, ok := listed[o.ID()]; ok || o.TechnicianID() == nil {
			continue
		}
		if _, touched := tail[*o.TechnicianID()]; !touched {
			continue
		}
		rest = append(rest, o)
	}
	slices.SortStableFunc(rest, func(a, b *serviceorder.ServiceOrder) int {
		return before[a.ID()] - before[b.ID()]
	})
	for _, o := range rest {
		technicianID := *o.TechnicianID()
		if err := o.MoveTo(tail[technicianID], now); err != nil {
			return nil, err
		}
		tail[technicianID]++
	}

	changed := make([]*serviceorder.ServiceOrder, 0, len(queue))
	for _, o := range queue {
		if before[o.ID()] != o.Position() {
			changed = append(changed, o)
		}
	}
	return changed, nil
}
