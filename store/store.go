// Package store defines the shared room-state contract: presence records
// keyed by (room, player), a remove-on-disconnect registration, roster
// snapshot subscriptions, and an append-only per-room chat log with
// server-assigned ordering. Implementations live in the subpackages; the rest
// of the app depends only on this interface.
package store

import (
	"context"
	"math"
	"time"

	"birdieu.dev/campus/world"
)

// Player is one presence record in a room roster. Every participant writes
// only its own record, so field-level last-writer-wins is safe.
type Player struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Color   string          `json:"color"`
	Room    string          `json:"room"`
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Facing  world.Direction `json:"facing"`
	Moving  bool            `json:"isMoving"`
	TargetX *float64        `json:"targetX,omitempty"`
	TargetY *float64        `json:"targetY,omitempty"`
	Hat     string          `json:"hat,omitempty"`
	Glasses string          `json:"glasses,omitempty"`
	Emote   string          `json:"emote,omitempty"`
}

// Valid reports whether the record is renderable: non-empty identity and name
// and finite coordinates. Entries failing this are dropped from rosters, never
// surfaced as errors.
func (p Player) Valid() bool {
	if p.ID == "" || p.Name == "" {
		return false
	}
	for _, v := range []float64{p.X, p.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// PresenceUpdate is a partial write against an existing presence record. Nil
// fields are left untouched; a pointer to the zero value clears the field
// (Emote in particular: movement clears it by sending a pointer to "").
type PresenceUpdate struct {
	X       *float64         `json:"x,omitempty"`
	Y       *float64         `json:"y,omitempty"`
	Facing  *world.Direction `json:"facing,omitempty"`
	Moving  *bool            `json:"isMoving,omitempty"`
	TargetX *float64         `json:"targetX,omitempty"`
	TargetY *float64         `json:"targetY,omitempty"`
	Color   *string          `json:"color,omitempty"`
	Hat     *string          `json:"hat,omitempty"`
	Glasses *string          `json:"glasses,omitempty"`
	Emote   *string          `json:"emote,omitempty"`
}

// Apply merges the update into a player record.
func (u PresenceUpdate) Apply(p *Player) {
	if u.X != nil {
		p.X = *u.X
	}
	if u.Y != nil {
		p.Y = *u.Y
	}
	if u.Facing != nil {
		p.Facing = *u.Facing
	}
	if u.Moving != nil {
		p.Moving = *u.Moving
	}
	if u.TargetX != nil {
		p.TargetX = u.TargetX
	}
	if u.TargetY != nil {
		p.TargetY = u.TargetY
	}
	if u.Color != nil {
		p.Color = *u.Color
	}
	if u.Hat != nil {
		p.Hat = *u.Hat
	}
	if u.Glasses != nil {
		p.Glasses = *u.Glasses
	}
	if u.Emote != nil {
		p.Emote = *u.Emote
	}
}

// ChatMessage is one entry of a room's append-only message log. Seq is
// assigned by the store, not the sender, and is the only ordering that
// matters for display.
type ChatMessage struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Text       string    `json:"text"`
	Seq        int64     `json:"seq"`
	Timestamp  time.Time `json:"timestamp"`
}

// RosterFunc receives full roster snapshots. Implementations may invoke it
// from their own goroutine or synchronously from whichever call mutated the
// roster; it is never called from the subscriber's frame loop.
type RosterFunc func(players map[string]Player)

// MessageFunc receives chat log entries incrementally, in Seq order.
type MessageFunc func(msg ChatMessage)

// CancelFunc undoes a registration or subscription. Safe to call more than
// once.
type CancelFunc func()

// RoomStore is the shared room-state backend.
type RoomStore interface {
	// SetPresence writes a full presence record into a room roster.
	SetPresence(ctx context.Context, roomID string, p Player) error

	// UpdatePresence partially updates this client's presence record.
	// Updating a record that was already removed is a no-op.
	UpdatePresence(ctx context.Context, roomID, playerID string, u PresenceUpdate) error

	// RemovePresence deletes a presence record.
	RemovePresence(ctx context.Context, roomID, playerID string) error

	// RemoveOnDisconnect registers the record for automatic removal should
	// the connection drop without a clean disconnect. The returned cancel
	// revokes the registration.
	RemoveOnDisconnect(ctx context.Context, roomID, playerID string) (CancelFunc, error)

	// SubscribeRoster delivers a snapshot now and on every roster change.
	SubscribeRoster(ctx context.Context, roomID string, fn RosterFunc) (CancelFunc, error)

	// AppendMessage appends to the room chat log. The store assigns Seq and
	// the timestamp.
	AppendMessage(ctx context.Context, roomID, playerID, playerName, text string) error

	// SubscribeMessages replays up to lastN retained messages and then
	// delivers new ones as they are appended.
	SubscribeMessages(ctx context.Context, roomID string, lastN int, fn MessageFunc) (CancelFunc, error)

	// Close tears down the backend connection.
	Close() error
}
