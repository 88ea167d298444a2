package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/eventlyhq/evently/internal/cache"
	"github.com/eventlyhq/evently/internal/config"
	"github.com/eventlyhq/evently/internal/domain/event"
	"github.com/gin-gonic/gin"
)

type EventsRepository interface {
	List(ctx context.Context) ([]event.Event, error)
	ListUpcoming(ctx context.Context) ([]event.Event, error)
	ListPast(ctx context.Context) ([]event.Event, error)
	GetByID(ctx context.Context, id string) (event.Event, error)
	Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	Update(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error)
	Delete(ctx context.Context, id string) error
}

type EventsHandler struct {
	repo  EventsRepository
	cache *cache.Cache
}

func NewEventsHandler(repo EventsRepository, listCache *cache.Cache) *EventsHandler {
	return &EventsHandler{
		repo:  repo,
		cache: listCache,
	}
}

type eventList struct {
	Items []event.Event `json:"items"`
	Count int           `json:"count"`
}

// ListEvents serves the full catalog, or one side of the upcoming/past
// partition when ?when= is given.
func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	when := ctx.Query("when")

	if when != "" && when != "upcoming" && when != "past" {
		RespondBadRequest(ctx, "when must be 'upcoming' or 'past'", nil)
		return
	}

	key := "events:list:v1:when=" + when

	if h.cache != nil {
		if v, ok := h.cache.Get(key); ok {
			if cached, ok := v.(eventList); ok {
				RespondJSONWithETag(ctx, http.StatusOK, cached)
				return
			}
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	var events []event.Event
	var err error

	switch when {
	case "upcoming":
		events, err = h.repo.ListUpcoming(cctx)
	case "past":
		events, err = h.repo.ListPast(cctx)
	default:
		events, err = h.repo.List(cctx)
	}

	if err != nil {
		RespondInternal(ctx, "Could not list events")
		return
	}

	out := eventList{Items: events, Count: len(events)}

	if h.cache != nil {
		h.cache.Set(key, out)
	}

	RespondJSONWithETag(ctx, http.StatusOK, out)
}

func (h *EventsHandler) GetEventById(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	e, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not fetch event")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, e)
}

// Admin catalog mutations. Writes land on the shared catalog, not a local view.

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	e, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create event")
		return
	}

	h.invalidate()
	ctx.JSON(http.StatusCreated, e)
}

func (h *EventsHandler) UpdateEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	var req event.UpdateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	e, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not update event")
		return
	}

	h.invalidate()
	ctx.JSON(http.StatusOK, e)
}

func (h *EventsHandler) DeleteEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, "Could not delete event")
		return
	}

	h.invalidate()
	ctx.Status(http.StatusNoContent)
}

func (h *EventsHandler) invalidate() {
	if h.cache != nil {
		h.cache.Clear()
	}
}
