package notifications

import (
	"context"

	"github.com/eventlyhq/evently/internal/domain/booking"
	"github.com/eventlyhq/evently/internal/domain/event"
)

// Notifier receives booking confirmations. The system has no background
// delivery pipeline, so implementations must be cheap and synchronous.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b booking.Booking, e event.Event) error
}
