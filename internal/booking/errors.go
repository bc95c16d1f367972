package booking

import "errors"

// The full set of booking failures. Every mutation path returns one of
// these; callers compare with errors.Is and never see raw driver errors.
var (
	// ErrClassNotFound is returned when the target class does not exist.
	ErrClassNotFound = errors.New("class not found")

	// ErrClassAlreadyStarted is returned when the class start time is not
	// in the future at validation time.
	ErrClassAlreadyStarted = errors.New("cannot book a class that has already started")

	// ErrDuplicateBooking is returned when the member already holds a
	// booking for the class, detected by the validation query.
	ErrDuplicateBooking = errors.New("member already has a booking for this class")

	// ErrClassFull is returned when the class has no remaining capacity.
	ErrClassFull = errors.New("class is full")

	// ErrIntegrityViolation is returned when the unique constraint on
	// (member_id, class_id) fires. It means a duplicate slipped past the
	// row lock, e.g. a writer that did not take it. Same logical
	// condition as ErrDuplicateBooking, detected one layer lower.
	ErrIntegrityViolation = errors.New("booking conflicts with an existing booking")

	// ErrBookingNotFound is returned when cancelling a booking that does
	// not exist or is owned by another member. The two cases are
	// deliberately indistinguishable.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrLockTimeout is returned when the class row lock could not be
	// acquired within the bounded wait. No write has happened; the caller
	// may retry.
	ErrLockTimeout = errors.New("timed out waiting for the class lock")
)

// UserMessage maps a booking failure to the message shown to members.
// Duplicate and integrity failures share one message: they are the same
// condition caught at different layers.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrClassNotFound):
		return "Class not found."
	case errors.Is(err, ErrClassAlreadyStarted):
		return "This class has already started."
	case errors.Is(err, ErrDuplicateBooking), errors.Is(err, ErrIntegrityViolation):
		return "You have already booked this class."
	case errors.Is(err, ErrClassFull):
		return "This class is full."
	case errors.Is(err, ErrBookingNotFound):
		return "Booking not found."
	case errors.Is(err, ErrLockTimeout):
		return "The class is busy right now, please try again."
	default:
		return "Something went wrong."
	}
}
