package schedule

import (
	"context"
	"time"
)

type Repository interface {
	CreateTrainer(ctx context.Context, firstName, lastName, bio, specialisation string, photoURL *string) (*Trainer, error)
	GetTrainerByID(ctx context.Context, id int64) (*Trainer, error)
	ListTrainers(ctx context.Context) ([]Trainer, error)
	DeleteTrainer(ctx context.Context, id int64) error

	CreateClass(ctx context.Context, name, description string, trainerID *int64, scheduledAt time.Time, durationMinutes, maxCapacity int) (*GymClass, error)
	UpdateClass(ctx context.Context, id int64, name, description string, trainerID *int64, scheduledAt time.Time, durationMinutes, maxCapacity int) (*GymClass, error)
	GetClassByID(ctx context.Context, id int64) (*GymClass, error)
	DeleteClass(ctx context.Context, id int64) error

	ListUpcomingClasses(ctx context.Context, now time.Time) ([]ClassWithAvailability, error)
	ListClassesWithBookingCounts(ctx context.Context) ([]ClassSpotsReport, error)
	CountBookings(ctx context.Context, classID int64) (int, error)
	MemberHasBooking(ctx context.Context, memberID, classID int64) (bool, error)
}
