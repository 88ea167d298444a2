package memory

import (
	"context"
	"sync"

	"github.com/eventlyhq/evently/internal/domain/booking"
)

type BookingsRepo struct {
	mu       sync.RWMutex
	bookings []booking.Booking
}

func NewBookingsRepo() *BookingsRepo {
	return &BookingsRepo{}
}

func (r *BookingsRepo) Create(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	r.mu.Lock()
	r.bookings = append(r.bookings, b)
	r.mu.Unlock()

	return b, nil
}

func (r *BookingsRepo) ListByUser(ctx context.Context, userID string) ([]booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]booking.Booking, 0)

	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}

	return out, nil
}
