// Package serviceorder provides the ServiceOrder aggregate root and its status
// ledger for the field-service system.
//
// The package includes:
//   - ServiceOrder: identity, descriptive details, queue position and the
//     execution fields derived from status changes
//   - Status: the lifecycle state machine and its transition table
//   - HistoryEntry: one immutable record of the per-order status ledger
//   - Event: the domain events recorded by every mutation
//
// Key business rules:
//   - A new order starts PENDING with no history
//   - Every status change and every transfer produces exactly one HistoryEntry
//   - Entering EXECUTING stamps the execution start time
//   - Leaving EXECUTING for COMPLETED or RESCHEDULED computes the duration in
//     whole minutes
//   - TRANSFERRED is a history-only status; a transferred order is PENDING
package serviceorder
