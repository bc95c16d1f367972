package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateTrainer(ctx context.Context, firstName, lastName, bio, specialisation string, photoURL *string) (*Trainer, error) {
	args := m.Called(ctx, firstName, lastName, bio, specialisation, photoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Trainer), args.Error(1)
}

func (m *MockRepository) GetTrainerByID(ctx context.Context, id int64) (*Trainer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Trainer), args.Error(1)
}

func (m *MockRepository) ListTrainers(ctx context.Context) ([]Trainer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Trainer), args.Error(1)
}

func (m *MockRepository) DeleteTrainer(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CreateClass(ctx context.Context, name, description string, trainerID *int64, scheduledAt time.Time, durationMinutes, maxCapacity int) (*GymClass, error) {
	args := m.Called(ctx, name, description, trainerID, scheduledAt, durationMinutes, maxCapacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GymClass), args.Error(1)
}

func (m *MockRepository) UpdateClass(ctx context.Context, id int64, name, description string, trainerID *int64, scheduledAt time.Time, durationMinutes, maxCapacity int) (*GymClass, error) {
	args := m.Called(ctx, id, name, description, trainerID, scheduledAt, durationMinutes, maxCapacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GymClass), args.Error(1)
}

func (m *MockRepository) GetClassByID(ctx context.Context, id int64) (*GymClass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GymClass), args.Error(1)
}

func (m *MockRepository) DeleteClass(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ListUpcomingClasses(ctx context.Context, now time.Time) ([]ClassWithAvailability, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ClassWithAvailability), args.Error(1)
}

func (m *MockRepository) ListClassesWithBookingCounts(ctx context.Context) ([]ClassSpotsReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ClassSpotsReport), args.Error(1)
}

func (m *MockRepository) CountBookings(ctx context.Context, classID int64) (int, error) {
	args := m.Called(ctx, classID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) MemberHasBooking(ctx context.Context, memberID, classID int64) (bool, error) {
	args := m.Called(ctx, memberID, classID)
	return args.Bool(0), args.Error(1)
}

func validClassRequest() CreateClassRequest {
	return CreateClassRequest{
		Name:            "Yoga",
		Description:     "Morning flow",
		ScheduledAt:     "2026-09-15T18:00:00Z",
		DurationMinutes: 60,
		MaxCapacity:     10,
	}
}

func TestCreateClassSuccess(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	req := validClassRequest()
	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)

	repo.On("CreateClass", ctx, "Yoga", "Morning flow", (*int64)(nil), scheduledAt, 60, 10).
		Return(&GymClass{ID: 1, Name: "Yoga", ScheduledAt: scheduledAt, DurationMinutes: 60, MaxCapacity: 10}, nil)

	class, err := svc.CreateClass(ctx, req)
	require.NoError(t, err)
	require.Equal(t, int64(1), class.ID)
	repo.AssertExpectations(t)
}

func TestCreateClassInvalidDuration(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	req := validClassRequest()
	req.DurationMinutes = 0

	_, err := svc.CreateClass(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDuration)
	repo.AssertNotCalled(t, "CreateClass", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateClassInvalidCapacity(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	req := validClassRequest()
	req.MaxCapacity = -1

	_, err := svc.CreateClass(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestCreateClassInvalidSchedule(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	req := validClassRequest()
	req.ScheduledAt = "next tuesday"

	_, err := svc.CreateClass(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestCreateClassUnknownTrainer(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	trainerID := int64(99)
	req := validClassRequest()
	req.TrainerID = &trainerID

	repo.On("GetTrainerByID", ctx, int64(99)).Return(nil, ErrTrainerNotFound)

	_, err := svc.CreateClass(ctx, req)
	require.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestUpdateClassNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	req := validClassRequest()
	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)

	repo.On("UpdateClass", ctx, int64(99), "Yoga", "Morning flow", (*int64)(nil), scheduledAt, 60, 10).
		Return(nil, ErrClassNotFound)

	_, err := svc.UpdateClass(ctx, 99, req)
	require.ErrorIs(t, err, ErrClassNotFound)
}

func TestListUpcomingClassesUsesClock(t *testing.T) {
	repo := new(MockRepository)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := &service{repo: repo, now: func() time.Time { return now }}
	ctx := context.Background()

	repo.On("ListUpcomingClasses", ctx, now).Return([]ClassWithAvailability{}, nil)

	_, err := svc.ListUpcomingClasses(ctx)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetClassDetail(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	trainerID := int64(7)
	class := &GymClass{ID: 2, Name: "Yoga", TrainerID: &trainerID, MaxCapacity: 5}

	repo.On("GetClassByID", ctx, int64(2)).Return(class, nil)
	repo.On("CountBookings", ctx, int64(2)).Return(3, nil)
	repo.On("MemberHasBooking", ctx, int64(1), int64(2)).Return(true, nil)
	repo.On("GetTrainerByID", ctx, int64(7)).Return(&Trainer{ID: 7, FirstName: "Jane", LastName: "Doe"}, nil)

	detail, err := svc.GetClassDetail(ctx, 2, 1)
	require.NoError(t, err)
	require.Equal(t, 3, detail.BookingCount)
	require.Equal(t, 2, detail.AvailableSpots)
	require.False(t, detail.IsFull)
	require.True(t, detail.AlreadyBooked)
	require.Equal(t, "Jane Doe", *detail.TrainerName)
}

func TestGetClassDetailFullClass(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	class := &GymClass{ID: 2, Name: "Spin", MaxCapacity: 2}

	repo.On("GetClassByID", ctx, int64(2)).Return(class, nil)
	repo.On("CountBookings", ctx, int64(2)).Return(3, nil)
	repo.On("MemberHasBooking", ctx, int64(1), int64(2)).Return(false, nil)

	detail, err := svc.GetClassDetail(ctx, 2, 1)
	require.NoError(t, err)
	require.Equal(t, 0, detail.AvailableSpots)
	require.True(t, detail.IsFull)
	require.Nil(t, detail.TrainerName)
}
