// Package technician provides the Technician aggregate: the field worker that
// owns a route of service orders.
//
// A technician has a unique, normalized email and a bcrypt password hash.
// Route positions live on the service orders themselves; the technician row is
// the lock that serializes writes into one route.
package technician
