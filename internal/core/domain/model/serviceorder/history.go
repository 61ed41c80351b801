package serviceorder

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
)

// ErrHistoryEntryIsNotConstructed is returned by Validate on a zero-value entry.
var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry or RestoreHistoryEntry")

// HistoryEntry is one immutable record of the status ledger of a service
// order. Entries are created only by the order's own state changes
// (ApplyStatus and TransferTo) and have no mutators.
type HistoryEntry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    Status
	notes     *string
	timestamp time.Time

	isConstructed bool
}

// NewHistoryEntry records status for orderID at timestamp. An empty notes
// string is stored as absent.
func NewHistoryEntry(orderID kernel.UUID, status Status, notes string, timestamp time.Time) (*HistoryEntry, error) {
	var n *string
	if notes != "" {
		n = &notes
	}
	return RestoreHistoryEntry(kernel.NewUUID(), orderID, status, n, timestamp)
}

// RestoreHistoryEntry rebuilds a persisted entry.
func RestoreHistoryEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	status Status,
	notes *string,
	timestamp time.Time,
) (*HistoryEntry, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if timestamp.IsZero() {
		return nil, errs.NewValueIsRequiredError("timestamp")
	}

	return &HistoryEntry{
		id:            id,
		orderID:       orderID,
		status:        status,
		notes:         notes,
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

func (h *HistoryEntry) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

func (h *HistoryEntry) ID() kernel.UUID {
	return h.id
}

func (h *HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

func (h *HistoryEntry) Status() Status {
	return h.status
}

// Notes returns the note attached to the entry, or nil.
func (h *HistoryEntry) Notes() *string {
	return h.notes
}

func (h *HistoryEntry) Timestamp() time.Time {
	return h.timestamp
}
