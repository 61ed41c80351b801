package serviceorder

import (
	"fmt"
	"strings"

	"fieldservice/internal/pkg/errs"
)

// Status is the lifecycle state of a service order.
//
//	PENDING ──> EN_ROUTE ──> EXECUTING ──┬──> COMPLETED
//	                                     └──> RESCHEDULED
//
// The arrows show the usual path only: the transition table accepts every
// pair of directly requestable statuses (see transitionTable). TRANSFERRED is
// never stored on an order; it is recorded in the history when a transfer
// resets the order to PENDING in another technician's queue.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Pending
	EnRoute
	Executing
	Completed
	Rescheduled
	Transferred
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "UNKNOWN",
		Pending:     "PENDING",
		EnRoute:     "EN_ROUTE",
		Executing:   "EXECUTING",
		Completed:   "COMPLETED",
		Rescheduled: "RESCHEDULED",
		Transferred: "TRANSFERRED",
	}
}

// AllStatuses lists the six recognized statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, EnRoute, Executing, Completed, Rescheduled, Transferred}
}

// ParseStatus maps the wire name ("EN_ROUTE", case-insensitive) to a Status.
// Unrecognized names fail with a ValueIsInvalidError.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, status := range AllStatuses() {
		if status.String() == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a recognized status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Transferred {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsDirectlyRequestable reports whether the status may be the target of a
// status update call. TRANSFERRED is reachable only through a transfer.
func (s Status) IsDirectlyRequestable() bool {
	return s != Transferred && s.Validate() == nil
}

// transitionTable lists, for each current status, the statuses a status
// update may move to. Every directly requestable status is reachable from
// every state, including backward moves such as COMPLETED -> PENDING.
// Pairs missing from an entry fail with ConflictStateError.
var transitionTable = map[Status][]Status{
	Pending:     {Pending, EnRoute, Executing, Completed, Rescheduled},
	EnRoute:     {Pending, EnRoute, Executing, Completed, Rescheduled},
	Executing:   {Pending, EnRoute, Executing, Completed, Rescheduled},
	Completed:   {Pending, EnRoute, Executing, Completed, Rescheduled},
	Rescheduled: {Pending, EnRoute, Executing, Completed, Rescheduled},
}

// ValidateTransition checks a status update from s to next.
//
// Returns:
//   - ValueIsInvalidError if next is unknown or TRANSFERRED
//   - ConflictStateError if the table denies the pair
//   - nil otherwise
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !next.IsDirectlyRequestable() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is only set by a transfer", next),
		)
	}

	for _, allowed := range transitionTable[s] {
		if allowed == next {
			return nil
		}
	}

	return errs.NewConflictStateErrorWithCause(
		"status",
		fmt.Errorf("%s -> %s is not allowed", s, next),
	)
}

// StopsExecution reports whether moving from s to next ends an execution,
// which is when the execution duration is computed.
func (s Status) StopsExecution(next Status) bool {
	return s == Executing && (next == Completed || next == Rescheduled)
}
