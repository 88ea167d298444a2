package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/eventlyhq/evently/internal/cache"
	"github.com/eventlyhq/evently/internal/config"
	"github.com/eventlyhq/evently/internal/domain/booking"
	"github.com/eventlyhq/evently/internal/domain/event"
	"github.com/eventlyhq/evently/internal/http/middlewares"
	"github.com/eventlyhq/evently/internal/notifications"
	"github.com/eventlyhq/evently/internal/observability"
	"github.com/gin-gonic/gin"
)

// SeatReserver is the atomic compare-and-increment on the catalog.
type SeatReserver interface {
	TryReserve(ctx context.Context, id string, seats int) (event.Event, error)
}

type BookingsRepository interface {
	Create(ctx context.Context, b booking.Booking) (booking.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]booking.Booking, error)
}

type BookingsHandler struct {
	events   SeatReserver
	bookings BookingsRepository
	notifier notifications.Notifier
	prom     *observability.Prom
	cache    *cache.Cache
}

func NewBookingsHandler(events SeatReserver, bookings BookingsRepository, notifier notifications.Notifier, prom *observability.Prom, listCache *cache.Cache) *BookingsHandler {
	return &BookingsHandler{
		events:   events,
		bookings: bookings,
		notifier: notifier,
		prom:     prom,
		cache:    listCache,
	}
}

// Book reserves seats on an event for the authenticated user. The capacity
// check and the counter increment are one atomic repository operation; on
// failure the registration count is untouched.
func (h *BookingsHandler) Book(ctx *gin.Context) {
	eventID := ctx.Param("id")

	var req booking.CreateBookingRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// URL param is the source of truth
	req.EventID = eventID

	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	req.UserID = userID

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	e, err := h.events.TryReserve(cctx, eventID, req.Seats)

	if err != nil {
		switch {
		case errors.Is(err, event.ErrInsufficientSeats):
			h.count("insufficient_seats")
			RespondConflict(ctx, "insufficient_seats", "Not enough seats available")
		case errors.Is(err, event.ErrNotFound):
			h.count("not_found")
			RespondNotFound(ctx, "Event not found")
		default:
			h.count("error")
			RespondInternal(ctx, "Could not book event")
		}
		return
	}

	b, err := h.bookings.Create(cctx, booking.NewFromCreateRequest(req))

	if err != nil {
		h.count("error")
		RespondInternal(ctx, "Could not book event")
		return
	}

	h.count("confirmed")

	if h.prom != nil {
		h.prom.SeatsReserved.Add(float64(b.Seats))
	}

	if h.cache != nil {
		h.cache.Clear()
	}

	if h.notifier != nil {
		_ = h.notifier.BookingConfirmed(ctx.Request.Context(), b, e)
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"bookingId":     b.ID,
		"seats":         b.Seats,
		"registrations": e.Registrations,
		"remaining":     e.Remaining(),
	})
}

func (h *BookingsHandler) ListMine(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	items, err := h.bookings.ListByUser(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not list bookings")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *BookingsHandler) count(result string) {
	if h.prom != nil {
		h.prom.BookingsTotal.WithLabelValues(result).Inc()
	}
}
