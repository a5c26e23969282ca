// Package booking implements the reservation engine: interval
// validation, operating-hours checks, per-place mutual exclusion and
// the visit lifecycle.  It talks to storage only through the narrow
// interfaces declared in scheduler.go so that the HTTP layer can wire
// real repositories while tests use in-memory fakes.
package booking

import "errors"

// ErrNotFound is returned when a referenced place, building or visit
// does not exist.  Handlers should translate this into an HTTP 404
// response.
var ErrNotFound = errors.New("not found")

// ErrBadRequest is returned for business-rule violations: intervals
// outside operating hours, overlapping bookings, invalid state
// transitions, duration bounds and past start times.  Handlers
// should translate this into an HTTP 400 response.  The sentinel is
// usually wrapped with a reason, so compare with errors.Is.
var ErrBadRequest = errors.New("bad request")

// ErrForbidden is returned when the caller lacks ownership or the
// role required for an operation.  Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is reserved for entity-uniqueness violations such as
// duplicate floor plans.  The reservation path itself never returns
// it; overlap failures are ErrBadRequest.  Handlers should translate
// this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
