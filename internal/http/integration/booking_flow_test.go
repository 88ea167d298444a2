package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventlyhq/evently/internal/auth"
	"github.com/eventlyhq/evently/internal/cache"
	"github.com/eventlyhq/evently/internal/domain/event"
	apphttp "github.com/eventlyhq/evently/internal/http"
	"github.com/eventlyhq/evently/internal/repo/memory"
	"github.com/eventlyhq/evently/internal/security"
	"github.com/eventlyhq/evently/internal/session"
	"github.com/gin-gonic/gin"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	users := memory.NewUsersRepo(memory.SeedUsers()...)
	events := memory.NewEventsRepo(memory.SeedEvents()...)
	bookings := memory.NewBookingsRepo()

	sessions := session.NewStore(users, security.PlaintextVerifier{}, session.NewMemoryStorage())

	return apphttp.NewRouter(apphttp.Deps{
		Env:        "test",
		Log:        logger,
		Sessions:   sessions,
		JWT:        auth.NewManager("test-secret-key", time.Hour),
		Events:     events,
		Bookings:   bookings,
		ListCache:  cache.New(time.Minute),
		RateLimit:  1000,
		RateWindow: time.Minute,
	})
}

// function that runs a request and returns the recorder

func doRequest(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, reader)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func login(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()

	w := doRequest(router, http.MethodPost, "/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("login failed: status %d body=%s", w.Code, w.Body.String())
	}

	var body struct {
		AccessToken string `json:"accessToken"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.AccessToken == "" {
		t.Fatalf("no access token in login response: %s", w.Body.String())
	}

	return body.AccessToken
}

func getEvent(t *testing.T, router http.Handler, id string) event.Event {
	t.Helper()

	w := doRequest(router, http.MethodGet, "/events/"+id, "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("get event %s: status %d body=%s", id, w.Code, w.Body.String())
	}

	var e event.Event

	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("invalid event body: %v", err)
	}

	return e
}

func TestBookingFlow(t *testing.T) {
	router := setupTestRouter(t)

	token := login(t, router, "user@example.com", "user123")

	// seeded upcoming event starts at 80/100
	before := getEvent(t, router, "1")

	if before.Registrations != 80 {
		t.Fatalf("event 1 starts at %d registrations, want 80", before.Registrations)
	}

	w := doRequest(router, http.MethodPost, "/events/1/book", `{"seats":4}`, token)

	if w.Code != http.StatusCreated {
		t.Fatalf("booking failed: status %d body=%s", w.Code, w.Body.String())
	}

	var res struct {
		BookingID     string `json:"bookingId"`
		Seats         int    `json:"seats"`
		Registrations int    `json:"registrations"`
		Remaining     int    `json:"remaining"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid booking response: %v", err)
	}

	if res.Seats != 4 || res.Registrations != 84 || res.Remaining != 16 || res.BookingID == "" {
		t.Fatalf("unexpected booking response: %s", w.Body.String())
	}

	// the counter moved for everyone, not just this caller
	after := getEvent(t, router, "1")

	if after.Registrations != 84 {
		t.Fatalf("event 1 has %d registrations after booking, want 84", after.Registrations)
	}

	// and the booking is listed for the user
	w = doRequest(router, http.MethodGet, "/me/bookings", "", token)

	if w.Code != http.StatusOK {
		t.Fatalf("list bookings: status %d body=%s", w.Code, w.Body.String())
	}

	var mine struct {
		Count int `json:"count"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &mine); err != nil || mine.Count != 1 {
		t.Fatalf("expected one booking, got: %s", w.Body.String())
	}
}

func TestBookingStopsAtCapacity(t *testing.T) {
	router := setupTestRouter(t)

	token := login(t, router, "user@example.com", "user123")

	// 20 free seats on event 2: five bookings of 4 fill it exactly
	for i := 0; i < 5; i++ {
		w := doRequest(router, http.MethodPost, "/events/2/book", `{"seats":4}`, token)

		if w.Code != http.StatusCreated {
			t.Fatalf("booking %d failed: status %d body=%s", i+1, w.Code, w.Body.String())
		}
	}

	w := doRequest(router, http.MethodPost, "/events/2/book", `{"seats":4}`, token)

	if w.Code != http.StatusConflict {
		t.Fatalf("overbooking: got status %d, want %d, body=%s", w.Code, http.StatusConflict, w.Body.String())
	}

	e := getEvent(t, router, "2")

	if e.Registrations != 100 {
		t.Fatalf("failed booking moved the counter: %d", e.Registrations)
	}

	// a single seat still fits nowhere
	w = doRequest(router, http.MethodPost, "/events/2/book", `{"seats":1}`, token)

	if w.Code != http.StatusConflict {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestBookingRequiresAuth(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(router, http.MethodPost, "/events/1/book", `{"seats":2}`, "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusUnauthorized)
	}

	if getEvent(t, router, "1").Registrations != 80 {
		t.Fatal("anonymous booking attempt moved the counter")
	}
}

func TestBookingPastEvent(t *testing.T) {
	// past events are full in the fixtures, so booking them conflicts
	router := setupTestRouter(t)

	token := login(t, router, "user@example.com", "user123")

	w := doRequest(router, http.MethodPost, "/events/7/book", `{"seats":1}`, token)

	if w.Code != http.StatusConflict {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusConflict, w.Body.String())
	}
}

func TestCatalogPartition(t *testing.T) {
	router := setupTestRouter(t)

	counts := map[string]int{}

	for _, when := range []string{"", "upcoming", "past"} {
		path := "/events"

		if when != "" {
			path += "?when=" + when
		}

		w := doRequest(router, http.MethodGet, path, "", "")

		if w.Code != http.StatusOK {
			t.Fatalf("list %q: status %d body=%s", when, w.Code, w.Body.String())
		}

		var body struct {
			Count int `json:"count"`
		}

		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid list body: %v", err)
		}

		counts[when] = body.Count
	}

	if counts[""] != 9 || counts["upcoming"] != 6 || counts["past"] != 3 {
		t.Fatalf("unexpected partition: %v", counts)
	}
}
