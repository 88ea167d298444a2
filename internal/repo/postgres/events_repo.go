package postgres

import (
	"context"
	"errors"

	"github.com/eventlyhq/evently/internal/domain/event"
	"github.com/eventlyhq/evently/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, title, date_label, time_label, location, description, image, capacity, registrations, tags, is_past`

type EventsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewEventsRepo(pool *pgxpool.Pool, prom *observability.Prom) *EventsRepo {
	return &EventsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *EventsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveRepo(op, fn)
	}
	return fn()
}

func (r *EventsRepo) List(ctx context.Context) ([]event.Event, error) {
	return r.list(ctx, "events.list", `SELECT `+eventColumns+` FROM events ORDER BY seq ASC`)
}

func (r *EventsRepo) ListUpcoming(ctx context.Context) ([]event.Event, error) {
	return r.list(ctx, "events.list_upcoming", `SELECT `+eventColumns+` FROM events WHERE is_past = FALSE ORDER BY seq ASC`)
}

func (r *EventsRepo) ListPast(ctx context.Context) ([]event.Event, error) {
	return r.list(ctx, "events.list_past", `SELECT `+eventColumns+` FROM events WHERE is_past = TRUE ORDER BY seq ASC`)
}

func (r *EventsRepo) list(ctx context.Context, op, query string) (out []event.Event, err error) {
	var rows pgx.Rows

	err = r.observe(op, func() error {
		rows, err = r.pool.Query(ctx, query)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out = make([]event.Event, 0)

	for rows.Next() {
		var e event.Event

		err = rows.Scan(&e.ID, &e.Title, &e.Date, &e.Time, &e.Location, &e.Description, &e.Image, &e.Capacity, &e.Registrations, &e.Tags, &e.IsPast)

		if err != nil {
			return nil, err
		}

		out = append(out, e)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	var e event.Event

	err := r.observe("events.get_by_id", func() error {
		return r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id).
			Scan(&e.ID, &e.Title, &e.Date, &e.Time, &e.Location, &e.Description, &e.Image, &e.Capacity, &e.Registrations, &e.Tags, &e.IsPast)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	return e, nil
}

// TryReserve pushes the compare-and-increment into a single guarded UPDATE, so
// concurrent bookings serialize on the row and cannot overshoot capacity.
func (r *EventsRepo) TryReserve(ctx context.Context, id string, seats int) (e event.Event, err error) {
	err = r.observe("events.try_reserve", func() error {
		return r.pool.QueryRow(ctx, `
			UPDATE events
			SET registrations = registrations + $2
			WHERE id = $1 AND registrations + $2 <= capacity
			RETURNING `+eventColumns+`
		`, id, seats).Scan(&e.ID, &e.Title, &e.Date, &e.Time, &e.Location, &e.Description, &e.Image, &e.Capacity, &e.Registrations, &e.Tags, &e.IsPast)
	})

	if err == nil {
		return e, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return event.Event{}, err
	}

	// no row updated: either the event is missing or the capacity guard failed
	var dummy string

	err = r.observe("events.try_reserve.exists_check", func() error {
		return r.pool.QueryRow(ctx, `SELECT id FROM events WHERE id = $1`, id).Scan(&dummy)
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return event.Event{}, event.ErrNotFound
	}

	if err != nil {
		return event.Event{}, err
	}

	return event.Event{}, event.ErrInsufficientSeats
}

func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	e := event.Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Description: req.Description,
		Image:       req.Image,
		Capacity:    req.Capacity,
		Tags:        append([]string(nil), req.Tags...),
		IsPast:      req.IsPast,
	}

	err := r.observe("events.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO events (id, title, date_label, time_label, location, description, image, capacity, registrations, tags, is_past)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,0,$9,$10)`,
			e.ID, e.Title, e.Date, e.Time, e.Location, e.Description, e.Image, e.Capacity, e.Tags, e.IsPast)
		return execErr
	})

	if err != nil {
		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) Update(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error) {
	var e event.Event

	err := r.observe("events.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE events
				SET title = $2,
					date_label = $3,
					time_label = $4,
					location = $5,
					description = $6,
					image = $7,
					capacity = $8,
					tags = $9,
					is_past = $10
			WHERE id = $1
			RETURNING `+eventColumns,
			id,
			req.Title,
			req.Date,
			req.Time,
			req.Location,
			req.Description,
			req.Image,
			req.Capacity,
			req.Tags,
			req.IsPast,
		).Scan(
			&e.ID,
			&e.Title,
			&e.Date,
			&e.Time,
			&e.Location,
			&e.Description,
			&e.Image,
			&e.Capacity,
			&e.Registrations,
			&e.Tags,
			&e.IsPast,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	var affected int64

	err := r.observe("events.delete", func() error {
		tag, execErr := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return execErr
	})

	if err != nil {
		return err
	}

	if affected == 0 {
		return event.ErrNotFound
	}

	return nil
}
