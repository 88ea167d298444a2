package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID       string    `json:"id"`
	EventID  string    `json:"eventId"`
	UserID   string    `json:"userId"`
	Seats    int       `json:"seats"`
	BookedAt time.Time `json:"bookedAt"`
}

var ErrNotFound = errors.New("booking not found")

type CreateBookingRequest struct {
	EventID string `json:"-"`
	UserID  string `json:"-"`
	Seats   int    `json:"seats" binding:"required,min=1,max=4"`
}

// A factory to build a Booking from the incoming DTO

func NewFromCreateRequest(req CreateBookingRequest) Booking {
	return Booking{
		ID:       uuid.NewString(),
		EventID:  req.EventID,
		UserID:   req.UserID,
		Seats:    req.Seats,
		BookedAt: time.Now().UTC(),
	}
}
