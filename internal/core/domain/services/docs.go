// Package services provides domain services that work across several
// aggregates of the field-service system.
//
// The package includes:
//   - RouteQueue: tail position assignment and reordering of the
//     per-technician work queues
package services
