package websocket

import "encoding/json"

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
	EventError        Event = "error"
	EventAnnouncement Event = "announcement"
	EventPong         Event = "pong"
)

// AnnouncementEvent pushes a new academy announcement to the client.
// Announcement carries the JSON-encoded model.Announcement as published
// on the academy channel.
type AnnouncementEvent struct {
	Event        Event           `json:"event"`
	Announcement json.RawMessage `json:"announcement"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
