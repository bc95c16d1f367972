package schedule

import "time"

type Trainer struct {
	ID             int64     `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Bio            string    `db:"bio" json:"bio"`
	Specialisation string    `db:"specialisation" json:"specialisation"`
	PhotoURL       *string   `db:"photo_url" json:"photo_url,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type GymClass struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	TrainerID       *int64    `db:"trainer_id" json:"trainer_id,omitempty"`
	ScheduledAt     time.Time `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	MaxCapacity     int       `db:"max_capacity" json:"max_capacity"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type ClassWithAvailability struct {
	GymClass
	TrainerName    *string `db:"trainer_name" json:"trainer_name,omitempty"`
	BookingCount   int     `db:"booking_count" json:"booking_count"`
	AvailableSpots int     `json:"available_spots"`
	IsFull         bool    `json:"is_full"`
}

type ClassDetail struct {
	ClassWithAvailability
	AlreadyBooked bool `json:"already_booked"`
}

type ClassSpotsReport struct {
	ClassID        int64     `db:"class_id" json:"class_id"`
	Name           string    `db:"name" json:"name"`
	ScheduledAt    time.Time `db:"scheduled_at" json:"scheduled_at"`
	MaxCapacity    int       `db:"max_capacity" json:"max_capacity"`
	BookingCount   int       `db:"booking_count" json:"booking_count"`
	RemainingSpots int       `json:"remaining_spots"`
}

type CreateTrainerRequest struct {
	FirstName      string  `json:"first_name" binding:"required"`
	LastName       string  `json:"last_name" binding:"required"`
	Bio            string  `json:"bio"`
	Specialisation string  `json:"specialisation" binding:"required"`
	PhotoURL       *string `json:"photo_url"`
}

type CreateClassRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	TrainerID       *int64 `json:"trainer_id"`
	ScheduledAt     string `json:"scheduled_at" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1" validate:"min=1"`
	MaxCapacity     int    `json:"max_capacity" binding:"required,min=1" validate:"min=1"`
}

// Availability derives the display availability for a class from its current
// booking count. A class is full when no raw spots remain; the returned spot
// count is clamped at zero so over-capacity data never surfaces as a
// negative number.
func Availability(maxCapacity, bookingCount int) (available int, isFull bool) {
	raw := maxCapacity - bookingCount
	isFull = raw <= 0
	if raw < 0 {
		raw = 0
	}
	return raw, isFull
}
