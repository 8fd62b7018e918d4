package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/saeid-a/CoachIntake/internal/models"
	"github.com/saeid-a/CoachIntake/internal/services"
)

var testSessionID = uuid.MustParse("5b1f3c2e-8d4a-4f0e-9c61-2a7b9e0d4c11")

type stubIntakeService struct {
	result      *services.IntakeResult
	err         error
	messages    []models.IntakeMessage
	total       int
	lastUserID  int64
	lastSession uuid.UUID
	lastText    string
	lastPage    int
	lastLimit   int
}

func (s *stubIntakeService) Preview(text string) (*services.IntakeResult, error) {
	s.lastText = text
	return s.result, s.err
}

func (s *stubIntakeService) Submit(_ context.Context, userID int64, _ string, sessionID uuid.UUID, text string) (*services.IntakeResult, error) {
	s.lastUserID = userID
	s.lastSession = sessionID
	s.lastText = text
	return s.result, s.err
}

func (s *stubIntakeService) History(_ context.Context, userID int64, _ string, sessionID uuid.UUID, page int, limit int) ([]models.IntakeMessage, int, error) {
	s.lastUserID = userID
	s.lastSession = sessionID
	s.lastPage = page
	s.lastLimit = limit
	return s.messages, s.total, s.err
}

func newIntakeTestApp(service *stubIntakeService, role string) *fiber.App {
	handler := NewIntakeHandler(service, nil, "secret")

	app := fiber.New()
	app.Post("/api/intake/parse", handler.Parse)
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/v1/intake/messages", handler.SubmitMessage)
	app.Get("/api/v1/intake/sessions/:id/messages", handler.ListSessionMessages)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, payload
}

func TestIntakeParseReturnsProfile(t *testing.T) {
	age := 29
	profile := models.NewProfileRecord()
	profile.Age = &age
	service := &stubIntakeService{result: &services.IntakeResult{Profile: profile, Prompt: "Please share your goal."}}
	app := newIntakeTestApp(service, "")

	resp, payload := doJSON(t, app, http.MethodPost, "/api/intake/parse", `{"text":"29F"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastText != "29F" {
		t.Fatalf("expected text to be forwarded, got %q", service.lastText)
	}
	got, ok := payload["profile"].(map[string]any)
	if !ok || got["age"] != float64(29) {
		t.Fatalf("unexpected profile %#v", payload["profile"])
	}
	if payload["prompt"] != "Please share your goal." {
		t.Fatalf("unexpected prompt %#v", payload["prompt"])
	}
}

func TestIntakeSubmitStartsNewSession(t *testing.T) {
	service := &stubIntakeService{result: &services.IntakeResult{
		SessionID: testSessionID,
		Profile:   models.NewProfileRecord(),
		Message:   &models.IntakeMessage{ID: 1, SessionID: testSessionID, Content: "hello"},
	}}
	app := newIntakeTestApp(service, "user")

	resp, payload := doJSON(t, app, http.MethodPost, "/api/v1/intake/messages", `{"text":"hello"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastSession != uuid.Nil || service.lastUserID != 42 {
		t.Fatalf("unexpected submit args %s/%d", service.lastSession, service.lastUserID)
	}
	if payload["session_id"] != testSessionID.String() {
		t.Fatalf("unexpected session id %#v", payload["session_id"])
	}
}

func TestIntakeSubmitContinuesSession(t *testing.T) {
	service := &stubIntakeService{result: &services.IntakeResult{SessionID: testSessionID, Profile: models.NewProfileRecord()}}
	app := newIntakeTestApp(service, "user")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/intake/messages", `{"text":"70 kg","session_id":"`+testSessionID.String()+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastSession != testSessionID {
		t.Fatalf("expected session %s, got %s", testSessionID, service.lastSession)
	}
}

func TestIntakeSubmitMapsErrors(t *testing.T) {
	cases := []struct {
		name string
		role string
		body string
		err  error
		want int
	}{
		{name: "coach", role: "coach", body: `{"text":"hi"}`, want: http.StatusForbidden},
		{name: "bad session id", role: "user", body: `{"text":"hi","session_id":"nope"}`, want: http.StatusBadRequest},
		{name: "empty", role: "user", body: `{"text":""}`, err: services.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "too long", role: "user", body: `{"text":"hi"}`, err: services.ErrPromptTooLong, want: http.StatusRequestEntityTooLarge},
		{name: "unknown session", role: "user", body: `{"text":"hi"}`, err: services.ErrSessionNotFound, want: http.StatusNotFound},
		{name: "store failure", role: "user", body: `{"text":"hi"}`, err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newIntakeTestApp(&stubIntakeService{err: tc.err}, tc.role)

			resp, payload := doJSON(t, app, http.MethodPost, "/api/v1/intake/messages", tc.body)
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
			}
			if _, ok := payload["error"].(string); !ok {
				t.Fatalf("expected error message, got %#v", payload)
			}
		})
	}
}

func TestIntakeListSessionMessagesPaginates(t *testing.T) {
	service := &stubIntakeService{
		messages: []models.IntakeMessage{{ID: 3}, {ID: 2}},
		total:    3,
	}
	app := newIntakeTestApp(service, "user")

	resp, payload := doJSON(t, app, http.MethodGet, "/api/v1/intake/sessions/"+testSessionID.String()+"/messages?page=1&limit=500", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastLimit != maxPageLimit || service.lastPage != 1 {
		t.Fatalf("expected clamped limit, got page %d limit %d", service.lastPage, service.lastLimit)
	}
	pagination, ok := payload["pagination"].(map[string]any)
	if !ok || pagination["total"] != float64(3) || pagination["total_pages"] != float64(1) {
		t.Fatalf("unexpected pagination %#v", payload["pagination"])
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/intake/sessions/not-a-uuid/messages", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.StatusCode)
	}
}
