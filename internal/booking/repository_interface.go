package booking

import "context"

type Repository interface {
	CreateBooking(ctx context.Context, memberID, classID int64) (*Booking, error)
	ValidateBooking(ctx context.Context, memberID, classID int64, excludeBookingID *int64) error
	CancelBooking(ctx context.Context, bookingID, memberID int64) error
	GetBookingByID(ctx context.Context, id int64) (*Booking, error)
	ListForMember(ctx context.Context, memberID int64) ([]BookingWithClass, error)
	ListForClass(ctx context.Context, classID int64) ([]BookingWithMember, error)
}
