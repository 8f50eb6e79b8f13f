// This file defines the rejection taxonomy shared by the evaluator and
// the commit path.  Domain rejections are expected outcomes, not
// exceptional ones: handlers translate them into specific user-facing
// responses and they are never retried.  Infrastructure failures are a
// separate family defined in the repository package.
package engine

import "errors"

// ErrUnknownResource is returned when a resource ID is not present in
// the catalog (or is inactive).  Handlers translate this into a 404.
var ErrUnknownResource = errors.New("unknown resource")

// ErrDateBlocked is returned when an admin block removes the requested
// date from availability regardless of reservation count.
var ErrDateBlocked = errors.New("date blocked")

// ErrResourceFullyBooked is returned when no legal slot or pool unit
// remains on the requested date.
var ErrResourceFullyBooked = errors.New("resource fully booked")

// ErrInsufficientGap is returned when a second reservation on a shared
// day does not clear the turnaround gap or the evening floor.
var ErrInsufficientGap = errors.New("insufficient gap between slots")

// IsRejection reports whether err is one of the domain rejections
// above.  Rejections are terminal for a request; everything else is
// treated as an infrastructure failure and may be retried.
func IsRejection(err error) bool {
	return errors.Is(err, ErrUnknownResource) ||
		errors.Is(err, ErrDateBlocked) ||
		errors.Is(err, ErrResourceFullyBooked) ||
		errors.Is(err, ErrInsufficientGap)
}
