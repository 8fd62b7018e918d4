package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/CoachIntake/internal/config"
	"github.com/saeid-a/CoachIntake/pkg/utils"
)

const testSecret = "route-test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := &config.Config{JWTSecret: testSecret, IntakeMaxPromptChars: 100}
	if err := RegisterRoutes(app, cfg, nil); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return app
}

func TestRegisterRoutesRejectsIncompleteConfig(t *testing.T) {
	if err := RegisterRoutes(fiber.New(), &config.Config{IntakeMaxPromptChars: 100}, nil); err == nil {
		t.Fatal("expected error without JWT secret")
	}
	if err := RegisterRoutes(fiber.New(), &config.Config{JWTSecret: testSecret}, nil); err == nil {
		t.Fatal("expected error without prompt limit")
	}
}

func TestPublicParseEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/intake/parse", strings.NewReader(`{"text":"28M, 5'9\", 160 lbs, want to lose weight"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload struct {
		Profile struct {
			Age      int     `json:"age"`
			HeightCM float64 `json:"height_cm"`
			WeightKG float64 `json:"weight_kg"`
			Goal     string  `json:"goal"`
		} `json:"profile"`
		Ready bool `json:"ready"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Profile.Age != 28 || payload.Profile.HeightCM != 175 || payload.Profile.WeightKG != 73 || payload.Profile.Goal != "weight_loss" {
		t.Fatalf("unexpected profile %+v", payload.Profile)
	}
	if !payload.Ready {
		t.Fatal("expected ready profile")
	}
}

func TestParseEndpointRejectsLongText(t *testing.T) {
	app := newTestApp(t)

	body := `{"text":"` + strings.Repeat("a", 101) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/intake/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireUserToken(t *testing.T) {
	app := newTestApp(t)
	coachToken, err := utils.GenerateToken("9", "coach", testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	cases := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/health", want: http.StatusOK},
		{name: "missing token", method: http.MethodGet, path: "/api/v1/users/profile", want: http.StatusUnauthorized},
		{name: "bad scheme", method: http.MethodGet, path: "/api/v1/users/profile", auth: "Token abc", want: http.StatusUnauthorized},
		{name: "wrong role", method: http.MethodPost, path: "/api/v1/intake/messages", auth: "Bearer " + coachToken, want: http.StatusForbidden},
		{name: "websocket without upgrade", method: http.MethodGet, path: "/api/v1/ws", want: http.StatusUpgradeRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}
}
