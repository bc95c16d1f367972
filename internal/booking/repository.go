package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres error codes surfaced by the ledger.
const (
	pqUniqueViolation  = "23505"
	pqLockNotAvailable = "55P03"
)

// Upper bound on waiting for the class row lock. SET LOCAL scopes the
// setting to the transaction, so pooled connections are unaffected.
const lockWaitTimeout = "3s"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// lockedClass carries the only class fields the booking rules read. It is
// fetched under FOR UPDATE so the row stays stable for the whole check.
type lockedClass struct {
	ID          int64     `db:"id"`
	ScheduledAt time.Time `db:"scheduled_at"`
	MaxCapacity int       `db:"max_capacity"`
}

// CreateBooking reserves a spot for the member in the class. The whole
// operation runs in one transaction: the class row is locked, the booking
// rules are checked against it, and the insert commits while the lock is
// still held. Concurrent attempts for the same class serialize on the row
// lock; attempts for different classes do not block each other.
func (r *repository) CreateBooking(ctx context.Context, memberID, classID int64) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	class, err := lockClass(ctx, tx, classID)
	if err != nil {
		return nil, err
	}

	if err := validateRules(ctx, tx, memberID, class, nil, time.Now()); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO bookings (member_id, class_id)
		VALUES ($1, $2)
		RETURNING id, member_id, class_id, created_at
	`

	var b Booking
	if err := tx.GetContext(ctx, &b, query, memberID, classID); err != nil {
		// The unique constraint is the backstop for writers that bypass
		// the row lock.
		return nil, translateDBError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &b, nil
}

// ValidateBooking runs the booking rules without writing anything. An
// update path re-validating an existing booking passes its own id in
// excludeBookingID so the booking is not counted against itself.
func (r *repository) ValidateBooking(ctx context.Context, memberID, classID int64, excludeBookingID *int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	class, err := lockClass(ctx, tx, classID)
	if err != nil {
		return err
	}

	return validateRules(ctx, tx, memberID, class, excludeBookingID, time.Now())
}

func lockClass(ctx context.Context, tx *sqlx.Tx, classID int64) (*lockedClass, error) {
	if _, err := tx.ExecContext(ctx, "SET LOCAL lock_timeout = '"+lockWaitTimeout+"'"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, scheduled_at, max_capacity
		FROM gym_classes
		WHERE id = $1
		FOR UPDATE
	`

	var class lockedClass
	if err := tx.GetContext(ctx, &class, query, classID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, translateDBError(err)
	}

	return &class, nil
}

// validateRules checks timing, uniqueness and capacity in that order. It
// must only be called while the class row is locked in tx.
func validateRules(ctx context.Context, tx *sqlx.Tx, memberID int64, class *lockedClass, excludeBookingID *int64, now time.Time) error {
	if !class.ScheduledAt.After(now) {
		return ErrClassAlreadyStarted
	}

	duplicateQuery := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE member_id = $1 AND class_id = $2
			AND ($3::bigint IS NULL OR id <> $3)
		)
	`

	var duplicate bool
	if err := tx.GetContext(ctx, &duplicate, duplicateQuery, memberID, class.ID, excludeBookingID); err != nil {
		return err
	}
	if duplicate {
		return ErrDuplicateBooking
	}

	countQuery := `
		SELECT COUNT(*)
		FROM bookings
		WHERE class_id = $1
		AND ($2::bigint IS NULL OR id <> $2)
	`

	var count int
	if err := tx.GetContext(ctx, &count, countQuery, class.ID, excludeBookingID); err != nil {
		return err
	}
	if count >= class.MaxCapacity {
		return ErrClassFull
	}

	return nil
}

// CancelBooking deletes the booking, but only if it belongs to the
// requesting member. A booking owned by someone else looks exactly like a
// missing one.
func (r *repository) CancelBooking(ctx context.Context, bookingID, memberID int64) error {
	query := `
		DELETE FROM bookings
		WHERE id = $1 AND member_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, bookingID, memberID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int64) (*Booking, error) {
	query := `
		SELECT id, member_id, class_id, created_at
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) ListForMember(ctx context.Context, memberID int64) ([]BookingWithClass, error) {
	query := `
		SELECT
			b.id,
			b.member_id,
			b.class_id,
			b.created_at,
			c.name AS class_name,
			c.scheduled_at,
			c.duration_minutes,
			t.first_name || ' ' || t.last_name AS trainer_name
		FROM bookings b
		JOIN gym_classes c ON b.class_id = c.id
		LEFT JOIN trainers t ON c.trainer_id = t.id
		WHERE b.member_id = $1
		ORDER BY b.created_at DESC
	`

	var bookings []BookingWithClass
	if err := r.db.SelectContext(ctx, &bookings, query, memberID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListForClass(ctx context.Context, classID int64) ([]BookingWithMember, error) {
	query := `
		SELECT
			b.id,
			b.member_id,
			b.class_id,
			b.created_at,
			m.name AS member_name,
			m.email AS member_email
		FROM bookings b
		JOIN members m ON b.member_id = m.id
		WHERE b.class_id = $1
		ORDER BY b.created_at DESC
	`

	var bookings []BookingWithMember
	if err := r.db.SelectContext(ctx, &bookings, query, classID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func translateDBError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return ErrIntegrityViolation
		case pqLockNotAvailable:
			return ErrLockTimeout
		}
	}
	return err
}
