package notifications

import (
	"context"
	"log/slog"

	"github.com/eventlyhq/evently/internal/domain/booking"
	"github.com/eventlyhq/evently/internal/domain/event"
)

type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) BookingConfirmed(ctx context.Context, b booking.Booking, e event.Event) error {
	n.log.InfoContext(ctx, "booking_confirmed",
		"booking_id", b.ID,
		"event_id", e.ID,
		"event_title", e.Title,
		"user_id", b.UserID,
		"seats", b.Seats,
		"remaining", e.Remaining(),
	)
	return nil
}
