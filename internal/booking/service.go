package booking

import (
	"context"
	"errors"

	"github.com/IsroilovA/gym-class-management/internal/logger"
	"github.com/IsroilovA/gym-class-management/internal/member"
	"github.com/IsroilovA/gym-class-management/internal/metrics"
	"github.com/IsroilovA/gym-class-management/internal/schedule"
)

// Notifier is the acknowledgment side channel. Delivery is fire-and-forget;
// a failed send never fails the booking.
type Notifier interface {
	Send(ctx context.Context, to, name, subject, body string) error
}

type Service interface {
	BookClass(ctx context.Context, memberID, classID int64) (*Booking, error)
	CancelBooking(ctx context.Context, memberID, bookingID int64) error
	RevalidateBooking(ctx context.Context, bookingID int64) error
	ListMemberBookings(ctx context.Context, memberID int64) ([]BookingWithClass, error)
	ClassRoster(ctx context.Context, classID int64) ([]BookingWithMember, error)
}

type service struct {
	repo         Repository
	scheduleRepo schedule.Repository
	memberRepo   member.Repository
	notifier     Notifier
}

func NewService(repo Repository, scheduleRepo schedule.Repository, memberRepo member.Repository, notifier Notifier) Service {
	return &service{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		memberRepo:   memberRepo,
		notifier:     notifier,
	}
}

func (s *service) BookClass(ctx context.Context, memberID, classID int64) (*Booking, error) {
	b, err := s.repo.CreateBooking(ctx, memberID, classID)
	if err != nil {
		metrics.RecordBooking(bookingOutcome(err))
		return nil, err
	}

	metrics.RecordBooking("created")

	// Acknowledgment goes out strictly after the transaction committed.
	s.notifyBooked(ctx, memberID, classID)

	return b, nil
}

func (s *service) CancelBooking(ctx context.Context, memberID, bookingID int64) error {
	if err := s.repo.CancelBooking(ctx, bookingID, memberID); err != nil {
		return err
	}

	metrics.RecordBookingCancellation()
	s.notifyCancelled(ctx, memberID)

	return nil
}

// RevalidateBooking re-runs the booking rules for an existing booking,
// excluding the booking itself from the duplicate and capacity counts so
// re-saving an unchanged booking never fails its own checks.
func (s *service) RevalidateBooking(ctx context.Context, bookingID int64) error {
	b, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	return s.repo.ValidateBooking(ctx, b.MemberID, b.ClassID, &b.ID)
}

func (s *service) ListMemberBookings(ctx context.Context, memberID int64) ([]BookingWithClass, error) {
	return s.repo.ListForMember(ctx, memberID)
}

func (s *service) ClassRoster(ctx context.Context, classID int64) ([]BookingWithMember, error) {
	return s.repo.ListForClass(ctx, classID)
}

func (s *service) notifyBooked(ctx context.Context, memberID, classID int64) {
	m, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		logger.Errorf("booking confirmation skipped, member %d lookup failed: %v", memberID, err)
		return
	}

	className := "your class"
	when := ""
	if class, err := s.scheduleRepo.GetClassByID(ctx, classID); err == nil {
		className = class.Name
		when = " on " + class.ScheduledAt.Format("Jan 2, 2006 at 3:04 PM")
	}

	if err := s.notifier.Send(ctx, m.Email, m.Name, "Booking confirmed",
		"You are booked for "+className+when+"."); err != nil {
		logger.Errorf("failed to queue booking confirmation for member %d: %v", memberID, err)
	}
}

func (s *service) notifyCancelled(ctx context.Context, memberID int64) {
	m, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		logger.Errorf("cancellation notice skipped, member %d lookup failed: %v", memberID, err)
		return
	}

	if err := s.notifier.Send(ctx, m.Email, m.Name, "Booking cancelled",
		"Your booking has been cancelled."); err != nil {
		logger.Errorf("failed to queue cancellation notice for member %d: %v", memberID, err)
	}
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, ErrClassNotFound):
		return "class_not_found"
	case errors.Is(err, ErrClassAlreadyStarted):
		return "class_started"
	case errors.Is(err, ErrDuplicateBooking), errors.Is(err, ErrIntegrityViolation):
		return "duplicate"
	case errors.Is(err, ErrClassFull):
		return "class_full"
	case errors.Is(err, ErrLockTimeout):
		return "lock_timeout"
	default:
		return "error"
	}
}
