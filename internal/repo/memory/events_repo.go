package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/eventlyhq/evently/internal/domain/event"
)

// EventsRepo holds the catalog as an ordered slice so listings preserve input
// order; there is no other sorting contract.
type EventsRepo struct {
	mu     sync.RWMutex
	events []event.Event
	nextID int
}

func NewEventsRepo(seed ...event.Event) *EventsRepo {
	return &EventsRepo{
		events: append([]event.Event(nil), seed...),
		nextID: len(seed) + 1,
	}
}

func (r *EventsRepo) List(ctx context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]event.Event(nil), r.events...), nil
}

func (r *EventsRepo) ListUpcoming(ctx context.Context) ([]event.Event, error) {
	return r.partition(false)
}

func (r *EventsRepo) ListPast(ctx context.Context) ([]event.Event, error) {
	return r.partition(true)
}

func (r *EventsRepo) partition(past bool) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.events))

	for _, e := range r.events {
		if e.IsPast == past {
			out = append(out, e)
		}
	}

	return out, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.events {
		if e.ID == id {
			return e, nil
		}
	}

	return event.Event{}, event.ErrNotFound
}

// TryReserve is the atomic compare-and-increment behind booking: the capacity
// check and the counter bump happen under one lock, so two concurrent callers
// cannot both pass the check before either write lands.
func (r *EventsRepo) TryReserve(ctx context.Context, id string, seats int) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].ID != id {
			continue
		}

		if r.events[i].Registrations+seats > r.events[i].Capacity {
			return event.Event{}, event.ErrInsufficientSeats
		}

		r.events[i].Registrations += seats
		return r.events[i], nil
	}

	return event.Event{}, event.ErrNotFound
}

func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := event.Event{
		ID:          strconv.Itoa(r.nextID),
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

	r.nextID++
	r.events = append(r.events, e)

	return e, nil
}

func (r *EventsRepo) Update(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].ID != id {
			continue
		}

		e := &r.events[i]
		e.Title = req.Title
		e.Date = req.Date
		e.Time = req.Time
		e.Location = req.Location
		e.Description = req.Description
		e.Image = req.Image
		e.Capacity = req.Capacity
		e.Tags = append([]string(nil), req.Tags...)
		e.IsPast = req.IsPast

		return *e, nil
	}

	return event.Event{}, event.ErrNotFound
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}

	return event.ErrNotFound
}
