package postgres

import (
	"context"

	"github.com/eventlyhq/evently/internal/domain/booking"
	"github.com/eventlyhq/evently/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewBookingsRepo(pool *pgxpool.Pool, prom *observability.Prom) *BookingsRepo {
	return &BookingsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *BookingsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveRepo(op, fn)
	}
	return fn()
}

func (r *BookingsRepo) Create(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	err := r.observe("bookings.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO bookings (id, event_id, user_id, seats, booked_at)
			 VALUES ($1,$2,$3,$4,$5)`,
			b.ID, b.EventID, b.UserID, b.Seats, b.BookedAt)
		return execErr
	})

	if err != nil {
		return booking.Booking{}, err
	}

	return b, nil
}

func (r *BookingsRepo) ListByUser(ctx context.Context, userID string) (out []booking.Booking, err error) {
	var rows pgx.Rows

	err = r.observe("bookings.list_by_user", func() error {
		rows, err = r.pool.Query(ctx,
			`SELECT id, event_id, user_id, seats, booked_at
			 FROM bookings
			 WHERE user_id = $1
			 ORDER BY booked_at ASC, id ASC`,
			userID,
		)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out = make([]booking.Booking, 0)

	for rows.Next() {
		var b booking.Booking

		err = rows.Scan(&b.ID, &b.EventID, &b.UserID, &b.Seats, &b.BookedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, b)
	}

	return out, rows.Err()
}
