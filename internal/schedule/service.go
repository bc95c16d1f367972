package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/IsroilovA/gym-class-management/internal/metrics"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidDuration = errors.New("duration must be at least 1 minute")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	ErrInvalidSchedule = errors.New("invalid scheduled_at, use RFC3339")
)

var validate = validator.New()

type Service interface {
	CreateTrainer(ctx context.Context, req CreateTrainerRequest) (*Trainer, error)
	ListTrainers(ctx context.Context) ([]Trainer, error)
	GetTrainer(ctx context.Context, id int64) (*Trainer, error)
	DeleteTrainer(ctx context.Context, id int64) error

	CreateClass(ctx context.Context, req CreateClassRequest) (*GymClass, error)
	UpdateClass(ctx context.Context, id int64, req CreateClassRequest) (*GymClass, error)
	DeleteClass(ctx context.Context, id int64) error

	ListUpcomingClasses(ctx context.Context) ([]ClassWithAvailability, error)
	GetClassDetail(ctx context.Context, classID, memberID int64) (*ClassDetail, error)
	RemainingSpotsReport(ctx context.Context) ([]ClassSpotsReport, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *service) CreateTrainer(ctx context.Context, req CreateTrainerRequest) (*Trainer, error) {
	return s.repo.CreateTrainer(ctx, req.FirstName, req.LastName, req.Bio, req.Specialisation, req.PhotoURL)
}

func (s *service) ListTrainers(ctx context.Context) ([]Trainer, error) {
	return s.repo.ListTrainers(ctx)
}

func (s *service) GetTrainer(ctx context.Context, id int64) (*Trainer, error) {
	return s.repo.GetTrainerByID(ctx, id)
}

func (s *service) DeleteTrainer(ctx context.Context, id int64) error {
	return s.repo.DeleteTrainer(ctx, id)
}

// validateClassRules mirrors the database CHECK constraint so invalid
// payloads fail with a usable message before reaching the driver, even
// when the request did not arrive through gin's binding.
func validateClassRules(req CreateClassRequest) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.Field() {
				case "DurationMinutes":
					return ErrInvalidDuration
				case "MaxCapacity":
					return ErrInvalidCapacity
				}
			}
		}
		return err
	}
	return nil
}

func (s *service) CreateClass(ctx context.Context, req CreateClassRequest) (*GymClass, error) {
	if err := validateClassRules(req); err != nil {
		return nil, err
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, ErrInvalidSchedule
	}

	if req.TrainerID != nil {
		if _, err := s.repo.GetTrainerByID(ctx, *req.TrainerID); err != nil {
			return nil, err
		}
	}

	class, err := s.repo.CreateClass(ctx, req.Name, req.Description, req.TrainerID, scheduledAt, req.DurationMinutes, req.MaxCapacity)
	if err != nil {
		return nil, err
	}

	metrics.RecordClassCreated()
	return class, nil
}

func (s *service) UpdateClass(ctx context.Context, id int64, req CreateClassRequest) (*GymClass, error) {
	if err := validateClassRules(req); err != nil {
		return nil, err
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, ErrInvalidSchedule
	}

	if req.TrainerID != nil {
		if _, err := s.repo.GetTrainerByID(ctx, *req.TrainerID); err != nil {
			return nil, err
		}
	}

	return s.repo.UpdateClass(ctx, id, req.Name, req.Description, req.TrainerID, scheduledAt, req.DurationMinutes, req.MaxCapacity)
}

func (s *service) DeleteClass(ctx context.Context, id int64) error {
	return s.repo.DeleteClass(ctx, id)
}

func (s *service) ListUpcomingClasses(ctx context.Context) ([]ClassWithAvailability, error) {
	return s.repo.ListUpcomingClasses(ctx, s.now())
}

func (s *service) GetClassDetail(ctx context.Context, classID, memberID int64) (*ClassDetail, error) {
	class, err := s.repo.GetClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountBookings(ctx, classID)
	if err != nil {
		return nil, err
	}

	alreadyBooked := false
	if memberID > 0 {
		alreadyBooked, err = s.repo.MemberHasBooking(ctx, memberID, classID)
		if err != nil {
			return nil, err
		}
	}

	var trainerName *string
	if class.TrainerID != nil {
		trainer, err := s.repo.GetTrainerByID(ctx, *class.TrainerID)
		if err == nil {
			name := trainer.FirstName + " " + trainer.LastName
			trainerName = &name
		}
	}

	available, isFull := Availability(class.MaxCapacity, count)

	return &ClassDetail{
		ClassWithAvailability: ClassWithAvailability{
			GymClass:       *class,
			TrainerName:    trainerName,
			BookingCount:   count,
			AvailableSpots: available,
			IsFull:         isFull,
		},
		AlreadyBooked: alreadyBooked,
	}, nil
}

func (s *service) RemainingSpotsReport(ctx context.Context) ([]ClassSpotsReport, error) {
	return s.repo.ListClassesWithBookingCounts(ctx)
}
