// Package errs provides standardized error types for the field-service application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the error kinds surfaced to callers:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: invalid argument
//   - ObjectNotFoundError: a referenced order or technician does not exist
//   - ConflictStateError: the operation is not allowed in the entity's current state
//   - StorageFailureError: the backing store aborted or is unreachable
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers classify with errors.Is
package errs
