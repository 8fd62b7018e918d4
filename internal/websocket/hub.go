package intakews

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/saeid-a/CoachIntake/internal/models"
	"github.com/saeid-a/CoachIntake/internal/services"
)

const submitTimeout = 10 * time.Second

// Hub fans intake results out to every open connection of the user who sent
// the message, so a second tab or device sees the profile update too.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan delivery
}

// Client is one websocket connection. send is never closed; the hub closes
// done when it drops the client so late writers see it instead of panicking.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

type submitter interface {
	Submit(
		ctx context.Context,
		userID int64,
		role string,
		sessionID uuid.UUID,
		text string,
	) (*services.IntakeResult, error)
}

// Frame is the server-to-client message.
type Frame struct {
	Type      string                  `json:"type"`
	SessionID string                  `json:"session_id,omitempty"`
	Profile   *models.ProfileRecord   `json:"profile,omitempty"`
	Missing   []services.MissingField `json:"missing,omitempty"`
	Ready     bool                    `json:"ready"`
	Prompt    string                  `json:"prompt,omitempty"`
	Content   string                  `json:"content,omitempty"`
	Timestamp string                  `json:"timestamp"`
}

type incomingFrame struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	SessionID string `json:"session_id"`
}

type delivery struct {
	userID string
	frame  *Frame
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan delivery, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
		done:   make(chan struct{}),
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			h.remove(client)
		case d := <-h.broadcast:
			h.deliver(d)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Publish queues frame for every connection of userID.
func (h *Hub) Publish(userID string, frame *Frame) {
	h.broadcast <- delivery{userID: userID, frame: frame}
}

func (h *Hub) remove(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := set[client]; exists {
		delete(set, client)
		client.close()
	}
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

func (h *Hub) deliver(d delivery) {
	payload, err := json.Marshal(d.frame)
	if err != nil {
		log.Printf("intake hub encode frame: %v", err)
		return
	}

	set, ok := h.clients[d.userID]
	if !ok {
		return
	}
	for client := range set {
		select {
		case client.send <- payload:
		default:
			// Slow consumer; drop it rather than block the hub.
			delete(set, client)
			client.close()
		}
	}
	if len(set) == 0 {
		delete(h.clients, d.userID)
	}
}

func ResultFrame(result *services.IntakeResult, at time.Time) *Frame {
	profile := result.Profile
	return &Frame{
		Type:      "profile",
		SessionID: result.SessionID.String(),
		Profile:   &profile,
		Missing:   result.Missing,
		Ready:     result.Ready,
		Prompt:    result.Prompt,
		Timestamp: formatTimestamp(at),
	}
}

func (c *Client) ReadPump(service submitter, role string) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	userID, err := strconv.ParseInt(c.userID, 10, 64)
	if err != nil {
		writeError(c, "invalid user")
		return
	}

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		frame, errText := c.handle(service, userID, role, payload)
		if errText != "" {
			writeError(c, errText)
			continue
		}
		c.hub.Publish(c.userID, frame)
	}
}

func (c *Client) handle(service submitter, userID int64, role string, payload []byte) (*Frame, string) {
	var incoming incomingFrame
	if err := json.Unmarshal(payload, &incoming); err != nil {
		return nil, "invalid message payload"
	}
	if incoming.Type != "message" {
		return nil, "unsupported message type"
	}

	sessionID := uuid.Nil
	if raw := strings.TrimSpace(incoming.SessionID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return nil, "invalid session id"
		}
		sessionID = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	result, err := service.Submit(ctx, userID, role, sessionID, incoming.Content)
	if err != nil {
		return nil, errorText(err)
	}
	return ResultFrame(result, time.Now()), ""
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func errorText(err error) string {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return "forbidden"
	case errors.Is(err, services.ErrInvalidInput):
		return "message must not be empty"
	case errors.Is(err, services.ErrPromptTooLong):
		return "message is too long"
	case errors.Is(err, services.ErrSessionNotFound):
		return "intake session not found"
	default:
		return "failed to process message"
	}
}

func writeError(client *Client, message string) {
	payload, err := json.Marshal(Frame{
		Type:      "error",
		Content:   message,
		Timestamp: formatTimestamp(time.Now()),
	})
	if err != nil {
		return
	}
	select {
	case <-client.done:
		return
	default:
	}
	select {
	case client.send <- payload:
	default:
		client.hub.Unregister(client)
	}
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}
