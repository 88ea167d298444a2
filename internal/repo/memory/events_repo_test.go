package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/eventlyhq/evently/internal/domain/event"
)

func TestSeedEvents(t *testing.T) {
	repo := NewEventsRepo(SeedEvents()...)

	all, _ := repo.List(context.Background())

	if len(all) != 9 {
		t.Fatalf("got %d events, want 9", len(all))
	}

	upcoming, _ := repo.ListUpcoming(context.Background())
	past, _ := repo.ListPast(context.Background())

	if len(upcoming) != 6 || len(past) != 3 {
		t.Fatalf("got %d upcoming / %d past, want 6 / 3", len(upcoming), len(past))
	}

	if len(upcoming)+len(past) != len(all) {
		t.Fatal("partition must cover the whole catalog")
	}

	for _, e := range upcoming {
		if e.IsPast {
			t.Fatalf("event %s is past but listed as upcoming", e.ID)
		}
		if e.Registrations != 80 || e.Capacity != 100 {
			t.Fatalf("event %s: got %d/%d, want 80/100", e.ID, e.Registrations, e.Capacity)
		}
	}

	for _, e := range past {
		if !e.IsPast {
			t.Fatalf("event %s is upcoming but listed as past", e.ID)
		}
		if e.Registrations != 100 {
			t.Fatalf("past event %s should be full, got %d", e.ID, e.Registrations)
		}
	}
}

func TestTryReserve(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		seats     int
		start     int
		capacity  int
		wantErr   error
		wantAfter int
	}{
		{name: "has_room", id: "1", seats: 4, start: 80, capacity: 100, wantAfter: 84},
		{name: "fills_exactly", id: "1", seats: 20, start: 80, capacity: 100, wantAfter: 100},
		{name: "one_over", id: "1", seats: 21, start: 80, capacity: 100, wantErr: event.ErrInsufficientSeats, wantAfter: 80},
		{name: "nearly_full", id: "1", seats: 4, start: 99, capacity: 100, wantErr: event.ErrInsufficientSeats, wantAfter: 99},
		{name: "already_full", id: "1", seats: 1, start: 100, capacity: 100, wantErr: event.ErrInsufficientSeats, wantAfter: 100},
		{name: "unknown_event", id: "42", seats: 1, start: 0, capacity: 100, wantErr: event.ErrNotFound, wantAfter: 0},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := NewEventsRepo(event.Event{ID: "1", Capacity: tt.capacity, Registrations: tt.start})

			e, err := repo.TryReserve(context.Background(), tt.id, tt.seats)

			if err != tt.wantErr {
				t.Fatalf("got err %v, want %v", err, tt.wantErr)
			}

			if err == nil && e.Registrations != tt.wantAfter {
				t.Fatalf("returned snapshot has %d registrations, want %d", e.Registrations, tt.wantAfter)
			}

			got, gerr := repo.GetByID(context.Background(), "1")

			if gerr != nil {
				t.Fatalf("get after reserve: %v", gerr)
			}

			if got.Registrations != tt.wantAfter {
				t.Fatalf("stored count is %d, want %d", got.Registrations, tt.wantAfter)
			}
		})
	}
}

func TestTryReserveConcurrent(t *testing.T) {
	// 50 callers race for 10 remaining seats; exactly 10 may win and the
	// counter must never pass capacity.
	repo := NewEventsRepo(event.Event{ID: "1", Capacity: 100, Registrations: 90})

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := repo.TryReserve(context.Background(), "1", 1); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if wins != 10 {
		t.Fatalf("got %d successful reservations, want 10", wins)
	}

	e, _ := repo.GetByID(context.Background(), "1")

	if e.Registrations != 100 {
		t.Fatalf("counter ended at %d, want exactly 100", e.Registrations)
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	repo := NewEventsRepo(SeedEvents()...)

	created, err := repo.Create(context.Background(), event.CreateEventRequest{
		Title:    "Go Meetup",
		Date:     "Friday, 3 October, 2025",
		Time:     "6 PM",
		Location: "Berlin",
		Capacity: 40,
		Tags:     []string{"Go"},
	})

	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if created.ID != "10" {
		t.Fatalf("got id %q, want sequential %q", created.ID, "10")
	}

	if created.Registrations != 0 {
		t.Fatalf("new event should start with 0 registrations, got %d", created.Registrations)
	}

	updated, err := repo.Update(context.Background(), created.ID, event.UpdateEventRequest{
		Title:    "Go Meetup (moved)",
		Date:     created.Date,
		Time:     created.Time,
		Location: "Hamburg",
		Capacity: 60,
	})

	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Location != "Hamburg" || updated.Capacity != 60 {
		t.Fatalf("update did not apply: %+v", updated)
	}

	if _, err := repo.Update(context.Background(), "999", event.UpdateEventRequest{Title: "x"}); err != event.ErrNotFound {
		t.Fatalf("got err %v, want ErrNotFound", err)
	}

	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), created.ID); err != event.ErrNotFound {
		t.Fatalf("deleted event still resolves, err=%v", err)
	}

	if err := repo.Delete(context.Background(), created.ID); err != event.ErrNotFound {
		t.Fatalf("second delete: got err %v, want ErrNotFound", err)
	}
}

func TestListReturnsCopies(t *testing.T) {
	repo := NewEventsRepo(SeedEvents()...)

	all, _ := repo.List(context.Background())
	all[0].Registrations = 9999

	fresh, _ := repo.GetByID(context.Background(), all[0].ID)

	if fresh.Registrations == 9999 {
		t.Fatal("mutating a listing must not leak into the repository")
	}
}
