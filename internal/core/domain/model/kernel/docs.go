// Package kernel provides the shared value objects of the field-service domain:
// UUID identifiers, GeoPoint coordinates captured at status transitions, the
// Clock used for every domain timestamp, and the DomainEvent contract that
// aggregates use to publish their changes.
package kernel
