package booking

import "time"

type Booking struct {
	ID        int64     `db:"id" json:"id"`
	MemberID  int64     `db:"member_id" json:"member_id"`
	ClassID   int64     `db:"class_id" json:"class_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type BookingWithClass struct {
	Booking
	ClassName       string    `db:"class_name" json:"class_name"`
	ScheduledAt     time.Time `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	TrainerName     *string   `db:"trainer_name" json:"trainer_name,omitempty"`
}

type BookingWithMember struct {
	Booking
	MemberName  string `db:"member_name" json:"member_name"`
	MemberEmail string `db:"member_email" json:"member_email"`
}
