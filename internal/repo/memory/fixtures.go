package memory

import (
	"strconv"

	"github.com/eventlyhq/evently/internal/domain/event"
	"github.com/eventlyhq/evently/internal/domain/user"
)

// SeedUsers returns the two fixed accounts every fresh process starts with.
// Passwords are stored as the PlaintextVerifier expects, for fixture parity.
func SeedUsers() []user.User {
	return []user.User{
		{ID: "1", Name: "Admin User", Email: "admin@example.com", Password: "admin123", Role: user.RoleAdmin},
		{ID: "2", Name: "Regular User", Email: "user@example.com", Password: "user123", Role: user.RoleUser},
	}
}

// SeedEvents returns the fixed initial catalog: six upcoming events with 80 of
// 100 seats taken and three past events at full capacity.
func SeedEvents() []event.Event {
	base := event.Event{
		Title:       "Tech Conference 2025",
		Time:        "3-5 PM",
		Location:    "San Francisco, CA",
		Description: "We'll get you directly seated and inside for you to enjoy the conference.",
		Image:       "/placeholder-event.jpeg",
		Capacity:    100,
		Tags:        []string{"Tech", "Conference", "AI"},
	}

	events := make([]event.Event, 0, 9)

	for i := 1; i <= 6; i++ {
		e := base
		e.ID = strconv.Itoa(i)
		e.Date = "Sunday, 14 April, 2025"
		e.Registrations = 80
		e.Tags = append([]string(nil), base.Tags...)
		events = append(events, e)
	}

	for i := 7; i <= 9; i++ {
		e := base
		e.ID = strconv.Itoa(i)
		e.Date = "Sunday, 14 April, 2024"
		e.Registrations = 100
		e.IsPast = true
		e.Tags = append([]string(nil), base.Tags...)
		events = append(events, e)
	}

	return events
}
