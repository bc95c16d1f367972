package booking

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type BookingStatsByBucket struct {
	Bucket   string `db:"bucket" json:"bucket"`
	Bookings int    `db:"bookings" json:"bookings"`
}

type BookingStatsByClass struct {
	ClassID   int64  `db:"class_id" json:"class_id"`
	ClassName string `db:"class_name" json:"class_name"`
	Bookings  int    `db:"bookings" json:"bookings"`
}

type ReportRepository interface {
	GetBookingStatsByDay(ctx context.Context, from, to time.Time) ([]BookingStatsByBucket, error)
	GetBookingStatsByClass(ctx context.Context, from, to time.Time) ([]BookingStatsByClass, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetBookingStatsByDay(ctx context.Context, from, to time.Time) ([]BookingStatsByBucket, error) {
	query := `
SELECT
  TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS bucket,
  COUNT(*) AS bookings
FROM bookings
WHERE created_at BETWEEN $1 AND $2
GROUP BY DATE(created_at)
ORDER BY bucket;
`
	var stats []BookingStatsByBucket
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *reportRepository) GetBookingStatsByClass(ctx context.Context, from, to time.Time) ([]BookingStatsByClass, error) {
	query := `
SELECT
  c.id   AS class_id,
  c.name AS class_name,
  COUNT(b.id) AS bookings
FROM gym_classes c
LEFT JOIN bookings b ON b.class_id = c.id AND b.created_at BETWEEN $1 AND $2
GROUP BY c.id, c.name
ORDER BY c.id;
`
	var stats []BookingStatsByClass
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}
