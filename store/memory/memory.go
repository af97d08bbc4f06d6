// Package memory is an in-process RoomStore. It backs offline mode and tests:
// same contract as the networked store, no connection underneath.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"birdieu.dev/campus/store"
)

// MessageRetention caps how many chat messages a room keeps for replay.
const MessageRetention = 50

type roomState struct {
	players     map[string]store.Player
	messages    []store.ChatMessage
	seq         int64
	rosterSubs  map[int]store.RosterFunc
	messageSubs map[int]store.MessageFunc
	disconnects map[int]string // registration id -> player id
}

// Store implements store.RoomStore entirely in memory.
type Store struct {
	mu     sync.Mutex
	rooms  map[string]*roomState
	nextID int
	closed bool
}

// New creates an empty store.
func New() *Store {
	return &Store{rooms: make(map[string]*roomState)}
}

func (s *Store) room(roomID string) *roomState {
	r, ok := s.rooms[roomID]
	if !ok {
		r = &roomState{
			players:     make(map[string]store.Player),
			rosterSubs:  make(map[int]store.RosterFunc),
			messageSubs: make(map[int]store.MessageFunc),
			disconnects: make(map[int]string),
		}
		s.rooms[roomID] = r
	}
	return r
}

// snapshotLocked copies the roster and collects the subscribers to notify.
// Callbacks run after the lock is released.
func (r *roomState) snapshotLocked() (map[string]store.Player, []store.RosterFunc) {
	snap := make(map[string]store.Player, len(r.players))
	for id, p := range r.players {
		snap[id] = p
	}
	subs := make([]store.RosterFunc, 0, len(r.rosterSubs))
	for _, fn := range r.rosterSubs {
		subs = append(subs, fn)
	}
	return snap, subs
}

func notifyRoster(snap map[string]store.Player, subs []store.RosterFunc) {
	for _, fn := range subs {
		// Each subscriber gets its own copy so one callback cannot corrupt
		// another's view.
		own := make(map[string]store.Player, len(snap))
		for id, p := range snap {
			own[id] = p
		}
		fn(own)
	}
}

func (s *Store) SetPresence(_ context.Context, roomID string, p store.Player) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store is closed")
	}
	r := s.room(roomID)
	r.players[p.ID] = p
	snap, subs := r.snapshotLocked()
	s.mu.Unlock()

	notifyRoster(snap, subs)
	return nil
}

func (s *Store) UpdatePresence(_ context.Context, roomID, playerID string, u store.PresenceUpdate) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store is closed")
	}
	r := s.room(roomID)
	p, ok := r.players[playerID]
	if !ok {
		// Record already removed: the update is stale, drop it.
		s.mu.Unlock()
		return nil
	}
	u.Apply(&p)
	r.players[playerID] = p
	snap, subs := r.snapshotLocked()
	s.mu.Unlock()

	notifyRoster(snap, subs)
	return nil
}

func (s *Store) RemovePresence(_ context.Context, roomID, playerID string) error {
	s.mu.Lock()
	r := s.room(roomID)
	if _, ok := r.players[playerID]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(r.players, playerID)
	snap, subs := r.snapshotLocked()
	s.mu.Unlock()

	notifyRoster(snap, subs)
	return nil
}

func (s *Store) RemoveOnDisconnect(_ context.Context, roomID, playerID string) (store.CancelFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("store is closed")
	}
	r := s.room(roomID)
	id := s.nextID
	s.nextID++
	r.disconnects[id] = playerID

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(r.disconnects, id)
	}, nil
}

func (s *Store) SubscribeRoster(_ context.Context, roomID string, fn store.RosterFunc) (store.CancelFunc, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, fmt.Errorf("store is closed")
	}
	r := s.room(roomID)
	id := s.nextID
	s.nextID++
	r.rosterSubs[id] = fn
	snap, _ := r.snapshotLocked()
	s.mu.Unlock()

	// Initial snapshot is delivered immediately.
	notifyRoster(snap, []store.RosterFunc{fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(r.rosterSubs, id)
	}, nil
}

func (s *Store) AppendMessage(_ context.Context, roomID, playerID, playerName, text string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store is closed")
	}
	r := s.room(roomID)
	r.seq++
	msg := store.ChatMessage{
		ID:         uuid.NewString(),
		PlayerID:   playerID,
		PlayerName: playerName,
		Text:       text,
		Seq:        r.seq,
		Timestamp:  time.Now(),
	}
	r.messages = append(r.messages, msg)
	if len(r.messages) > MessageRetention {
		r.messages = r.messages[len(r.messages)-MessageRetention:]
	}
	subs := make([]store.MessageFunc, 0, len(r.messageSubs))
	for _, fn := range r.messageSubs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(msg)
	}
	return nil
}

func (s *Store) SubscribeMessages(_ context.Context, roomID string, lastN int, fn store.MessageFunc) (store.CancelFunc, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, fmt.Errorf("store is closed")
	}
	r := s.room(roomID)
	id := s.nextID
	s.nextID++
	r.messageSubs[id] = fn

	var replay []store.ChatMessage
	if lastN > 0 {
		start := len(r.messages) - lastN
		if start < 0 {
			start = 0
		}
		replay = append(replay, r.messages[start:]...)
	}
	s.mu.Unlock()

	for _, msg := range replay {
		fn(msg)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(r.messageSubs, id)
	}, nil
}

// Close simulates a connection drop: every remove-on-disconnect registration
// fires and all subscriptions are torn down.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true

	type pending struct {
		snap map[string]store.Player
		subs []store.RosterFunc
	}
	var notifications []pending
	for _, r := range s.rooms {
		fired := false
		for _, playerID := range r.disconnects {
			if _, ok := r.players[playerID]; ok {
				delete(r.players, playerID)
				fired = true
			}
		}
		r.disconnects = make(map[int]string)
		if fired {
			snap, subs := r.snapshotLocked()
			notifications = append(notifications, pending{snap, subs})
		}
		r.rosterSubs = make(map[int]store.RosterFunc)
		r.messageSubs = make(map[int]store.MessageFunc)
	}
	s.mu.Unlock()

	for _, n := range notifications {
		notifyRoster(n.snap, n.subs)
	}
	return nil
}
