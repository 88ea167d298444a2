package event

import "errors"

// Date and Time are display strings ("Sunday, 14 April, 2025", "3-5 PM");
// the upcoming/past split is carried by IsPast, never parsed from Date.
type Event struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Location      string   `json:"location"`
	Description   string   `json:"description,omitempty"`
	Image         string   `json:"image,omitempty"`
	Capacity      int      `json:"capacity"`
	Registrations int      `json:"registrations"`
	Tags          []string `json:"tags"`
	IsPast        bool     `json:"isPast"`
}

// Remaining reports how many seats are still free.
func (e Event) Remaining() int {
	return e.Capacity - e.Registrations
}

var ErrNotFound = errors.New("event not found")

// returned by TryReserve when registrations + seats would exceed capacity.
var ErrInsufficientSeats = errors.New("not enough seats available")

type CreateEventRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=120"`
	Date        string   `json:"date" binding:"required"`
	Time        string   `json:"time" binding:"required"`
	Location    string   `json:"location" binding:"required,min=2,max=120"`
	Description string   `json:"description" binding:"omitempty,max=1000"`
	Image       string   `json:"image" binding:"omitempty,max=500"`
	Capacity    int      `json:"capacity" binding:"required,min=1,max=50000"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,min=1,max=40"`
	IsPast      bool     `json:"isPast"`
}

// a full update payload, might switch to a patch which optionally provides means for partial updates.
type UpdateEventRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=120"`
	Date        string   `json:"date" binding:"required"`
	Time        string   `json:"time" binding:"required"`
	Location    string   `json:"location" binding:"required,min=2,max=120"`
	Description string   `json:"description" binding:"omitempty,max=1000"`
	Image       string   `json:"image" binding:"omitempty,max=500"`
	Capacity    int      `json:"capacity" binding:"required,min=1,max=50000"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,min=1,max=40"`
	IsPast      bool     `json:"isPast"`
}
