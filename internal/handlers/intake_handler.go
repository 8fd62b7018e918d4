package handlers

import (
	"context"
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/saeid-a/CoachIntake/internal/models"
	"github.com/saeid-a/CoachIntake/internal/services"
	intakews "github.com/saeid-a/CoachIntake/internal/websocket"
	"github.com/saeid-a/CoachIntake/pkg/utils"
)

type intakeApplicationService interface {
	Preview(text string) (*services.IntakeResult, error)
	Submit(ctx context.Context, userID int64, role string, sessionID uuid.UUID, text string) (*services.IntakeResult, error)
	History(ctx context.Context, userID int64, role string, sessionID uuid.UUID, page int, limit int) ([]models.IntakeMessage, int, error)
}

type IntakeHandler struct {
	service   intakeApplicationService
	hub       *intakews.Hub
	jwtSecret string
}

type parseRequest struct {
	Text string `json:"text"`
}

type submitMessageRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id"`
}

func NewIntakeHandler(service intakeApplicationService, hub *intakews.Hub, jwtSecret string) *IntakeHandler {
	return &IntakeHandler{
		service:   service,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

// Parse extracts a profile from text without storing anything.
func (h *IntakeHandler) Parse(c *fiber.Ctx) error {
	var req parseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.service.Preview(req.Text)
	if err != nil {
		return mapIntakeError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": result.Profile,
		"missing": result.Missing,
		"ready":   result.Ready,
		"prompt":  result.Prompt,
	})
}

func (h *IntakeHandler) SubmitMessage(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "user" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req submitMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sessionID := uuid.Nil
	if raw := strings.TrimSpace(req.SessionID); raw != "" {
		sessionID, err = uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
		}
	}

	result, err := h.service.Submit(c.Context(), userID, role, sessionID, req.Text)
	if err != nil {
		return mapIntakeError(c, err)
	}

	status := fiber.StatusOK
	if sessionID == uuid.Nil {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"session_id": result.SessionID,
		"message":    result.Message,
		"profile":    result.Profile,
		"missing":    result.Missing,
		"ready":      result.Ready,
		"prompt":     result.Prompt,
	})
}

func (h *IntakeHandler) ListSessionMessages(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "user" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	page, limit := pageParams(c)
	messages, total, err := h.service.History(c.Context(), userID, role, sessionID, page, limit)
	if err != nil {
		return mapIntakeError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages":   messages,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *IntakeHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("role", claims.Role)
	return c.Next()
}

func (h *IntakeHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	role, _ := conn.Locals("role").(string)
	client := intakews.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(h.service, role)
}

func (h *IntakeHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		tokenString = bearerToken(c.Get("Authorization"))
	}
	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}

func bearerToken(header string) string {
	parts := strings.Split(strings.TrimSpace(header), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func mapIntakeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrPromptTooLong):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "Message is too long"})
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Intake session not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process intake request"})
	}
}
