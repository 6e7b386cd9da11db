package websocket

import "github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError   Event = "error"
	EventReady   Event = "ready"
	EventRequest Event = "request"
	EventPong    Event = "pong"
)

// ReadyResponse is sent once the feed is subscribed.
type ReadyResponse struct {
	Event   Event  `json:"event"`
	Channel string `json:"channel"`
}

// RequestResponse carries one request lifecycle event to an admin view.
type RequestResponse struct {
	Event   Event              `json:"event"`
	Payload model.RequestEvent `json:"payload"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
