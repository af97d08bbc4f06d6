// Package wire is the JSON protocol spoken between the websocket room store
// client and the hub. One envelope type covers every message; Type selects
// which fields are meaningful.
package wire

import "birdieu.dev/campus/store"

// Client to hub message types.
const (
	TypeSet        = "set"         // full presence write: Room, Player
	TypeUpdate     = "update"      // partial presence write: Room, PlayerID, Update
	TypeRemove     = "remove"      // presence delete: Room, PlayerID
	TypeGuard      = "guard"       // remove-on-disconnect registration: ID, Room, PlayerID
	TypeUnguard    = "unguard"     // revoke a guard: ID
	TypeSubRoster  = "sub_roster"  // roster subscription: ID, Room
	TypeSubChat    = "sub_chat"    // chat subscription: ID, Room, LastN
	TypeUnsub      = "unsub"       // drop a subscription: ID
	TypeAppendChat = "append_chat" // chat append: Room, PlayerID, PlayerName, Text
)

// Hub to client message types.
const (
	TypeRoster = "roster" // ID, Room, Players
	TypeChat   = "chat"   // ID, Message
)

// Envelope is one protocol message in either direction.
type Envelope struct {
	Type       string                  `json:"type"`
	ID         int64                   `json:"id,omitempty"`
	Room       string                  `json:"room,omitempty"`
	PlayerID   string                  `json:"playerId,omitempty"`
	PlayerName string                  `json:"playerName,omitempty"`
	Text       string                  `json:"text,omitempty"`
	LastN      int                     `json:"lastN,omitempty"`
	Player     *store.Player           `json:"player,omitempty"`
	Update     *store.PresenceUpdate   `json:"update,omitempty"`
	Players    map[string]store.Player `json:"players,omitempty"`
	Message    *store.ChatMessage      `json:"message,omitempty"`
}
