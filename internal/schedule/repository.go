package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrClassNotFound   = errors.New("class not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTrainer(ctx context.Context, firstName, lastName, bio, specialisation string, photoURL *string) (*Trainer, error) {
	query := `
		INSERT INTO trainers (first_name, last_name, bio, specialisation, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, first_name, last_name, bio, specialisation, photo_url, created_at
	`

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, firstName, lastName, bio, specialisation, photoURL)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) GetTrainerByID(ctx context.Context, id int64) (*Trainer, error) {
	query := `
		SELECT id, first_name, last_name, bio, specialisation, photo_url, created_at
		FROM trainers
		WHERE id = $1
	`

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	return &t, nil
}

func (r *repository) ListTrainers(ctx context.Context) ([]Trainer, error) {
	query := `
		SELECT id, first_name, last_name, bio, specialisation, photo_url, created_at
		FROM trainers
		ORDER BY last_name ASC, first_name ASC
	`

	var trainers []Trainer
	err := r.db.SelectContext(ctx, &trainers, query)
	if err != nil {
		return nil, err
	}

	return trainers, nil
}

// DeleteTrainer removes a trainer. Classes referencing the trainer keep
// running; the foreign key nulls their trainer reference.
func (r *repository) DeleteTrainer(ctx context.Context, id int64) error {
	query := `DELETE FROM trainers WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTrainerNotFound
	}

	return nil
}

func (r *repository) CreateClass(ctx context.Context, name, description string, trainerID *int64, scheduledAt time.Time, durationMinutes, maxCapacity int) (*GymClass, error) {
	query := `
		INSERT INTO gym_classes (name, description, trainer_id, scheduled_at, duration_minutes, max_capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, trainer_id, scheduled_at, duration_minutes, max_capacity, created_at
	`

	var class GymClass
	err := r.db.GetContext(ctx, &class, query, name, description, trainerID, scheduledAt, durationMinutes, maxCapacity)
	if err != nil {
		return nil, err
	}

	return &class, nil
}

func (r *repository) UpdateClass(ctx context.Context, id int64, name, description string, trainerID *int64, scheduledAt time.Time, durationMinutes, maxCapacity int) (*GymClass, error) {
	query := `
		UPDATE gym_classes
		SET name = $2, description = $3, trainer_id = $4, scheduled_at = $5, duration_minutes = $6, max_capacity = $7
		WHERE id = $1
		RETURNING id, name, description, trainer_id, scheduled_at, duration_minutes, max_capacity, created_at
	`

	var class GymClass
	err := r.db.GetContext(ctx, &class, query, id, name, description, trainerID, scheduledAt, durationMinutes, maxCapacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	return &class, nil
}

func (r *repository) GetClassByID(ctx context.Context, id int64) (*GymClass, error) {
	query := `
		SELECT id, name, description, trainer_id, scheduled_at, duration_minutes, max_capacity, created_at
		FROM gym_classes
		WHERE id = $1
	`

	var class GymClass
	err := r.db.GetContext(ctx, &class, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	return &class, nil
}

// DeleteClass removes a class together with its bookings (cascade).
func (r *repository) DeleteClass(ctx context.Context, id int64) error {
	query := `DELETE FROM gym_classes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrClassNotFound
	}

	return nil
}

func (r *repository) ListUpcomingClasses(ctx context.Context, now time.Time) ([]ClassWithAvailability, error) {
	query := `
		SELECT
			c.id,
			c.name,
			c.description,
			c.trainer_id,
			c.scheduled_at,
			c.duration_minutes,
			c.max_capacity,
			c.created_at,
			t.first_name || ' ' || t.last_name AS trainer_name,
			COUNT(b.id) AS booking_count
		FROM gym_classes c
		LEFT JOIN trainers t ON c.trainer_id = t.id
		LEFT JOIN bookings b ON b.class_id = c.id
		WHERE c.scheduled_at >= $1
		GROUP BY c.id, t.id
		ORDER BY c.scheduled_at ASC
	`

	var classes []ClassWithAvailability
	err := r.db.SelectContext(ctx, &classes, query, now)
	if err != nil {
		return nil, err
	}

	for i := range classes {
		classes[i].AvailableSpots, classes[i].IsFull = Availability(classes[i].MaxCapacity, classes[i].BookingCount)
	}

	return classes, nil
}

func (r *repository) ListClassesWithBookingCounts(ctx context.Context) ([]ClassSpotsReport, error) {
	query := `
		SELECT
			c.id AS class_id,
			c.name,
			c.scheduled_at,
			c.max_capacity,
			COUNT(b.id) AS booking_count
		FROM gym_classes c
		LEFT JOIN bookings b ON b.class_id = c.id
		GROUP BY c.id
		ORDER BY c.scheduled_at ASC
	`

	var report []ClassSpotsReport
	err := r.db.SelectContext(ctx, &report, query)
	if err != nil {
		return nil, err
	}

	for i := range report {
		report[i].RemainingSpots, _ = Availability(report[i].MaxCapacity, report[i].BookingCount)
	}

	return report, nil
}

func (r *repository) CountBookings(ctx context.Context, classID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE class_id = $1
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, classID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) MemberHasBooking(ctx context.Context, memberID, classID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE member_id = $1 AND class_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, memberID, classID)
	if err != nil {
		return false, err
	}

	return exists, nil
}
