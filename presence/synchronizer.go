// Package presence bridges local player intents to the shared room store and
// publishes a single merged roster to the rest of the app. It owns the
// optimistic projection of the local player: the entry shown while the
// store's confirmation is still in flight.
package presence

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"birdieu.dev/campus/store"
	"birdieu.dev/campus/world"
)

// MessageCap bounds how many chat messages are retained in memory.
const MessageCap = 50

// Self identifies the local participant and its cosmetic state.
type Self struct {
	ID      string
	Name    string
	Color   string
	Hat     string
	Glasses string
}

// Synchronizer maintains one room membership at a time. All mutating methods
// are safe to call from the frame loop: network writes are issued
// asynchronously and never block the caller.
//
// Every async operation carries the membership epoch it was started under.
// Teardown bumps the epoch, so completions that arrive late find themselves
// stale and do nothing. That is the whole defense against write-after-teardown
// races; there is no cancellation token.
type Synchronizer struct {
	// OnRoster receives the merged, validated roster with the room it
	// belongs to. Called from store callbacks, not the frame loop.
	OnRoster func(roomID string, players map[string]store.Player)
	// OnMessage receives chat messages in server order.
	OnMessage func(msg store.ChatMessage)
	// OnError surfaces a store failure once. No automatic retry follows.
	OnError func(err error)

	st  store.RoomStore
	log *zap.Logger

	mu               sync.Mutex
	self             Self
	epoch            int64
	roomID           string
	joined           bool
	projection       *store.Player
	caughtUp         bool
	unsubRoster      store.CancelFunc
	unsubMessages    store.CancelFunc
	cancelDisconnect store.CancelFunc
	messages         []store.ChatMessage
	seen             map[string]bool
}

// New creates a synchronizer for the given participant.
func New(st store.RoomStore, self Self, log *zap.Logger) *Synchronizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synchronizer{st: st, self: self, log: log, seen: make(map[string]bool)}
}

// report surfaces one error to the owner.
func (s *Synchronizer) report(err error) {
	s.log.Warn("room store operation failed", zap.Error(err))
	if s.OnError != nil {
		s.OnError(err)
	}
}

// teardownLocked leaves the current room: issues the presence removal,
// revokes the disconnect registration, and drops both subscriptions. Bumping
// the epoch invalidates every async operation still in flight. Callers hold
// the lock.
func (s *Synchronizer) teardownLocked() {
	s.epoch++
	unsubRoster := s.unsubRoster
	unsubMessages := s.unsubMessages
	cancelDisconnect := s.cancelDisconnect
	s.unsubRoster, s.unsubMessages, s.cancelDisconnect = nil, nil, nil

	roomID, joined := s.roomID, s.joined
	s.roomID, s.joined = "", false
	s.projection = nil
	s.caughtUp = false
	s.messages = nil
	s.seen = make(map[string]bool)

	if unsubRoster != nil {
		unsubRoster()
	}
	if unsubMessages != nil {
		unsubMessages()
	}
	if cancelDisconnect != nil {
		cancelDisconnect()
	}
	if joined {
		// Fire and forget. The disconnect expiry is the backstop if this
		// write never lands.
		go func() {
			if err := s.st.RemovePresence(context.Background(), roomID, s.self.ID); err != nil {
				s.log.Warn("presence cleanup failed", zap.String("room", roomID), zap.Error(err))
			}
		}()
	}
}

// JoinRoom switches membership to the given room. Any previous membership is
// torn down first, unconditionally. A nil spawn uses the room's default. The
// local player appears in the published roster immediately via the optimistic
// projection; the store write happens in the background.
func (s *Synchronizer) JoinRoom(roomID string, spawn *world.Position, facing world.Direction) {
	def := world.Lookup(roomID)
	pos := def.Spawn
	if spawn != nil {
		pos = *spawn
	}
	if facing == world.DirNone {
		facing = world.DirDown
	}

	s.mu.Lock()
	s.teardownLocked()
	epoch := s.epoch
	s.roomID = roomID
	s.joined = true

	record := store.Player{
		ID:      s.self.ID,
		Name:    s.self.Name,
		Color:   s.self.Color,
		Room:    roomID,
		X:       pos.X,
		Y:       pos.Y,
		Facing:  facing,
		Hat:     s.self.Hat,
		Glasses: s.self.Glasses,
	}
	s.projection = &record
	s.caughtUp = false
	onRoster := s.OnRoster
	s.mu.Unlock()

	// Latency hiding: the room never looks empty while the join write is in
	// flight.
	if onRoster != nil {
		onRoster(roomID, map[string]store.Player{record.ID: record})
	}

	go s.establish(epoch, roomID, record)
}

// stale reports whether the epoch the operation was started under has been
// superseded.
func (s *Synchronizer) stale(epoch int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch != epoch
}

// establish performs the join sequence against the store: presence write,
// disconnect registration, roster subscription, chat subscription. The epoch
// is rechecked between steps; a room switch mid-sequence unwinds whatever was
// already set up.
func (s *Synchronizer) establish(epoch int64, roomID string, record store.Player) {
	ctx := context.Background()

	if s.stale(epoch) {
		return
	}
	if err := s.st.SetPresence(ctx, roomID, record); err != nil {
		s.report(fmt.Errorf("join room %s: %w", roomID, err))
		return
	}
	if s.stale(epoch) {
		// Joined a different room while the write was in flight. The record
		// must not linger in the old roster.
		if err := s.st.RemovePresence(ctx, roomID, record.ID); err != nil {
			s.log.Warn("stale join cleanup failed", zap.String("room", roomID), zap.Error(err))
		}
		return
	}

	cancel, err := s.st.RemoveOnDisconnect(ctx, roomID, record.ID)
	if err != nil {
		s.report(fmt.Errorf("register disconnect removal: %w", err))
	} else {
		s.mu.Lock()
		if s.epoch == epoch {
			s.cancelDisconnect = cancel
			cancel = nil
		}
		s.mu.Unlock()
		if cancel != nil {
			cancel()
			return
		}
	}

	unsubRoster, err := s.st.SubscribeRoster(ctx, roomID, func(players map[string]store.Player) {
		s.handleRoster(epoch, roomID, players)
	})
	if err != nil {
		s.report(fmt.Errorf("subscribe roster for %s: %w", roomID, err))
		return
	}
	s.mu.Lock()
	if s.epoch == epoch {
		s.unsubRoster = unsubRoster
		unsubRoster = nil
	}
	s.mu.Unlock()
	if unsubRoster != nil {
		unsubRoster()
		return
	}

	unsubMessages, err := s.st.SubscribeMessages(ctx, roomID, MessageCap, func(msg store.ChatMessage) {
		s.handleMessage(epoch, msg)
	})
	if err != nil {
		s.report(fmt.Errorf("subscribe chat for %s: %w", roomID, err))
		return
	}
	s.mu.Lock()
	if s.epoch == epoch {
		s.unsubMessages = unsubMessages
		unsubMessages = nil
	}
	s.mu.Unlock()
	if unsubMessages != nil {
		unsubMessages()
	}
}

// handleRoster validates a snapshot, splices the projection while the store
// has not confirmed the local player, and publishes the merged result.
func (s *Synchronizer) handleRoster(epoch int64, roomID string, players map[string]store.Player) {
	merged := make(map[string]store.Player, len(players))
	for id, p := range players {
		if !p.Valid() {
			continue
		}
		merged[id] = p
	}

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	if _, ok := merged[s.self.ID]; ok {
		// The store caught up. The projection is gone for good: a later
		// snapshot transiently missing the local id must not resurrect it.
		s.caughtUp = true
		s.projection = nil
	} else if !s.caughtUp && s.projection != nil {
		merged[s.self.ID] = *s.projection
	}
	onRoster := s.OnRoster
	s.mu.Unlock()

	if onRoster != nil {
		onRoster(roomID, merged)
	}
}

// handleMessage appends one chat message to the capped in-memory log.
// Duplicate deliveries (replay overlap) are dropped by id.
func (s *Synchronizer) handleMessage(epoch int64, msg store.ChatMessage) {
	s.mu.Lock()
	if s.epoch != epoch || s.seen[msg.ID] {
		s.mu.Unlock()
		return
	}
	s.seen[msg.ID] = true
	s.messages = append(s.messages, msg)
	if len(s.messages) > MessageCap {
		dropped := s.messages[0]
		delete(s.seen, dropped.ID)
		s.messages = s.messages[1:]
	}
	onMessage := s.OnMessage
	s.mu.Unlock()

	if onMessage != nil {
		onMessage(msg)
	}
}

// Move publishes the local player's position. While a tile transition is in
// flight, targetX and targetY name the destination cell so peers can
// interpolate toward it; at rest they equal x and y. The projection is
// updated synchronously so the published roster entry is never stale; the
// store write clears any transient emote as a side effect, because movement
// cancels emotes.
func (s *Synchronizer) Move(x, y float64, facing world.Direction, moving bool, targetX, targetY float64) {
	s.mu.Lock()
	if !s.joined {
		s.mu.Unlock()
		return
	}
	if s.projection != nil {
		s.projection.X = x
		s.projection.Y = y
		s.projection.Facing = facing
		s.projection.Moving = moving
		s.projection.TargetX = &targetX
		s.projection.TargetY = &targetY
	}
	epoch, roomID := s.epoch, s.roomID
	s.mu.Unlock()

	clear := ""
	u := store.PresenceUpdate{
		X: &x, Y: &y, Facing: &facing, Moving: &moving,
		TargetX: &targetX, TargetY: &targetY, Emote: &clear,
	}
	go s.write(epoch, roomID, u)
}

// Emote publishes a transient emote.
func (s *Synchronizer) Emote(emote string) {
	s.mu.Lock()
	if !s.joined {
		s.mu.Unlock()
		return
	}
	epoch, roomID := s.epoch, s.roomID
	s.mu.Unlock()

	go s.write(epoch, roomID, store.PresenceUpdate{Emote: &emote})
}

// UpdateVisuals publishes cosmetic changes to the presence record and keeps
// them for future joins.
func (s *Synchronizer) UpdateVisuals(color, hat, glasses string) {
	s.mu.Lock()
	s.self.Color, s.self.Hat, s.self.Glasses = color, hat, glasses
	if s.projection != nil {
		s.projection.Color = color
		s.projection.Hat = hat
		s.projection.Glasses = glasses
	}
	joined := s.joined
	epoch, roomID := s.epoch, s.roomID
	s.mu.Unlock()

	if !joined {
		return
	}
	go s.write(epoch, roomID, store.PresenceUpdate{Color: &color, Hat: &hat, Glasses: &glasses})
}

// write issues one presence update unless the membership changed since it was
// requested. A write that was already in flight when teardown ran lands on a
// removed record, which the store treats as a no-op.
func (s *Synchronizer) write(epoch int64, roomID string, u store.PresenceUpdate) {
	if s.stale(epoch) {
		return
	}
	if err := s.st.UpdatePresence(context.Background(), roomID, s.self.ID, u); err != nil {
		s.report(fmt.Errorf("presence update in %s: %w", roomID, err))
	}
}

// SendChat appends a message to the current room's log. Ordering is assigned
// by the store, not by this client.
func (s *Synchronizer) SendChat(text string) {
	s.mu.Lock()
	if !s.joined {
		s.mu.Unlock()
		return
	}
	epoch, roomID := s.epoch, s.roomID
	s.mu.Unlock()

	go func() {
		if s.stale(epoch) {
			return
		}
		if err := s.st.AppendMessage(context.Background(), roomID, s.self.ID, s.self.Name, text); err != nil {
			s.report(fmt.Errorf("chat send in %s: %w", roomID, err))
		}
	}()
}

// Messages returns a copy of the retained chat log, oldest first.
func (s *Synchronizer) Messages() []store.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// RoomID returns the current membership's room, or "" when idle.
func (s *Synchronizer) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

// Disconnect leaves the current room. Safe to call when idle.
func (s *Synchronizer) Disconnect() {
	s.mu.Lock()
	s.teardownLocked()
	s.mu.Unlock()
}
