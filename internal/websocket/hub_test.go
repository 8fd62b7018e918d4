package intakews

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saeid-a/CoachIntake/internal/models"
	"github.com/saeid-a/CoachIntake/internal/services"
)

type stubSubmitter struct {
	result        *services.IntakeResult
	err           error
	lastSessionID uuid.UUID
	lastText      string
}

func (s *stubSubmitter) Submit(_ context.Context, _ int64, _ string, sessionID uuid.UUID, text string) (*services.IntakeResult, error) {
	s.lastSessionID = sessionID
	s.lastText = text
	return s.result, s.err
}

func receive(t *testing.T, client *Client) Frame {
	t.Helper()
	select {
	case payload := <-client.send:
		var frame Frame
		if err := json.Unmarshal(payload, &frame); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
	}
	return Frame{}
}

func TestHubPublishReachesEveryConnectionOfUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	phone := NewClient(hub, nil, "42")
	laptop := NewClient(hub, nil, "42")
	other := NewClient(hub, nil, "7")
	hub.Register(phone)
	hub.Register(laptop)
	hub.Register(other)

	hub.Publish("42", &Frame{Type: "profile", SessionID: "abc", Timestamp: "2030-01-02T03:04:05Z"})

	for _, client := range []*Client{phone, laptop} {
		frame := receive(t, client)
		if frame.Type != "profile" || frame.SessionID != "abc" {
			t.Fatalf("unexpected frame %+v", frame)
		}
	}
	select {
	case payload := <-other.send:
		t.Fatalf("expected no frame for other user, got %s", payload)
	default:
	}
}

func waitDone(t *testing.T, client *Client) {
	t.Helper()
	select {
	case <-client.done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for client to be dropped")
	}
}

func TestHubUnregisterClosesDone(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, "42")
	hub.Register(client)
	hub.Unregister(client)

	waitDone(t, client)
	// A second unregister of an already dropped client is a no-op.
	hub.Unregister(client)
}

func TestWriteErrorAfterSlowConsumerDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, "42")
	hub.Register(client)
	for i := 0; i < cap(client.send); i++ {
		client.send <- []byte(`{}`)
	}

	hub.Publish("42", &Frame{Type: "profile", Timestamp: "2030-01-02T03:04:05Z"})
	waitDone(t, client)

	writeError(client, "invalid message payload")
	if len(client.send) != cap(client.send) {
		t.Fatalf("expected no frame queued after drop, got %d buffered", len(client.send))
	}
}

func TestWriteErrorQueuesErrorFrame(t *testing.T) {
	client := NewClient(NewHub(), nil, "42")
	writeError(client, "unsupported message type")

	frame := receive(t, client)
	if frame.Type != "error" || frame.Content != "unsupported message type" {
		t.Fatalf("unexpected frame %+v", frame)
	}
}

func TestClientHandleSubmitsAndBuildsProfileFrame(t *testing.T) {
	sessionID := uuid.MustParse("5b1f3c2e-8d4a-4f0e-9c61-2a7b9e0d4c11")
	age := 28
	profile := models.NewProfileRecord()
	profile.Age = &age
	service := &stubSubmitter{result: &services.IntakeResult{
		SessionID: sessionID,
		Profile:   profile,
		Missing:   []services.MissingField{{Field: "goal", Example: "goal (e.g., lose weight, build muscle)"}},
		Prompt:    "Please share your goal (e.g., lose weight, build muscle).",
	}}
	client := NewClient(NewHub(), nil, "42")

	frame, errText := client.handle(service, 42, "user", []byte(`{"type":"message","content":"28m","session_id":"`+sessionID.String()+`"}`))
	if errText != "" {
		t.Fatalf("unexpected error %q", errText)
	}
	if service.lastSessionID != sessionID || service.lastText != "28m" {
		t.Fatalf("unexpected submit args %s/%q", service.lastSessionID, service.lastText)
	}
	if frame.Type != "profile" || frame.SessionID != sessionID.String() {
		t.Fatalf("unexpected frame %+v", frame)
	}
	if frame.Profile == nil || frame.Profile.Age == nil || *frame.Profile.Age != 28 {
		t.Fatalf("expected profile with age 28, got %+v", frame.Profile)
	}
	if frame.Ready || len(frame.Missing) != 1 || frame.Prompt == "" {
		t.Fatalf("expected missing goal, got %+v", frame)
	}
}

func TestClientHandleRejectsBadFrames(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		err     error
		want    string
	}{
		{name: "invalid json", payload: `{`, want: "invalid message payload"},
		{name: "wrong type", payload: `{"type":"typing"}`, want: "unsupported message type"},
		{name: "bad session", payload: `{"type":"message","content":"hi","session_id":"nope"}`, want: "invalid session id"},
		{name: "too long", payload: `{"type":"message","content":"hi"}`, err: services.ErrPromptTooLong, want: "message is too long"},
		{name: "unknown session", payload: `{"type":"message","content":"hi"}`, err: services.ErrSessionNotFound, want: "intake session not found"},
		{name: "store failure", payload: `{"type":"message","content":"hi"}`, err: errors.New("boom"), want: "failed to process message"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := NewClient(NewHub(), nil, "42")
			_, errText := client.handle(&stubSubmitter{err: tc.err}, 42, "user", []byte(tc.payload))
			if errText != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, errText)
			}
		})
	}
}
