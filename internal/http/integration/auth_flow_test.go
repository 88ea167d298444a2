package integration

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSignUpFlow(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(router, http.MethodPost, "/auth/signup", `{"name":"Ada","email":"ada@example.com","password":"x123456"}`, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("signup failed: status %d body=%s", w.Code, w.Body.String())
	}

	var body struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid signup response: %v", err)
	}

	// two seeded accounts, so the next id is 3; public signups are plain users
	if body.User.ID != "3" || body.User.Role != "user" || body.AccessToken == "" {
		t.Fatalf("unexpected signup response: %s", w.Body.String())
	}

	// the fresh token works straight away
	w = doRequest(router, http.MethodGet, "/auth/me", "", body.AccessToken)

	if w.Code != http.StatusOK {
		t.Fatalf("me after signup: status %d body=%s", w.Code, w.Body.String())
	}

	// the same address cannot sign up twice
	w = doRequest(router, http.MethodPost, "/auth/signup", `{"name":"Ada","email":"ada@example.com","password":"y123456"}`, "")

	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: got status %d, want %d, body=%s", w.Code, http.StatusConflict, w.Body.String())
	}

	// and can log in with the chosen password
	login(t, router, "ada@example.com", "x123456")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := setupTestRouter(t)

	for _, body := range []string{
		`{"email":"user@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"user123"}`,
		`{"email":"User@example.com","password":"user123"}`,
	} {
		w := doRequest(router, http.MethodPost, "/auth/login", body, "")

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: got status %d, want %d", body, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestAdminCatalogManagement(t *testing.T) {
	router := setupTestRouter(t)

	adminToken := login(t, router, "admin@example.com", "admin123")
	userToken := login(t, router, "user@example.com", "user123")

	create := `{"title":"Go Meetup","date":"Friday, 3 October, 2025","time":"6 PM","location":"Berlin","capacity":40}`

	// regular users cannot manage the catalog
	w := doRequest(router, http.MethodPost, "/events", create, userToken)

	if w.Code != http.StatusForbidden {
		t.Fatalf("user create: got status %d, want %d, body=%s", w.Code, http.StatusForbidden, w.Body.String())
	}

	w = doRequest(router, http.MethodPost, "/events", create, "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: got status %d, want %d", w.Code, http.StatusUnauthorized)
	}

	// admin writes land on the shared catalog
	w = doRequest(router, http.MethodPost, "/events", create, adminToken)

	if w.Code != http.StatusCreated {
		t.Fatalf("admin create: status %d body=%s", w.Code, w.Body.String())
	}

	var created struct {
		ID string `json:"id"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("invalid create response: %s", w.Body.String())
	}

	if got := getEvent(t, router, created.ID); got.Title != "Go Meetup" {
		t.Fatalf("created event not visible in catalog: %+v", got)
	}

	update := `{"title":"Go Meetup (moved)","date":"Friday, 3 October, 2025","time":"7 PM","location":"Hamburg","capacity":60}`

	w = doRequest(router, http.MethodPut, "/events/"+created.ID, update, adminToken)

	if w.Code != http.StatusOK {
		t.Fatalf("admin update: status %d body=%s", w.Code, w.Body.String())
	}

	if got := getEvent(t, router, created.ID); got.Location != "Hamburg" || got.Capacity != 60 {
		t.Fatalf("update not visible in catalog: %+v", got)
	}

	w = doRequest(router, http.MethodDelete, "/events/"+created.ID, "", adminToken)

	if w.Code != http.StatusNoContent {
		t.Fatalf("admin delete: status %d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/events/"+created.ID, "", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted event still resolves: status %d", w.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	if w := doRequest(router, http.MethodGet, "/healthz", "", ""); w.Code != http.StatusOK {
		t.Fatalf("healthz: status %d", w.Code)
	}

	if w := doRequest(router, http.MethodGet, "/readyz", "", ""); w.Code != http.StatusOK {
		t.Fatalf("readyz: status %d", w.Code)
	}
}
