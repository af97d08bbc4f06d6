// Package ws is the networked RoomStore: a thin client over one websocket
// connection to a campus hub. All operations are fire-and-forget sends; the
// hub pushes roster snapshots and chat messages back, which a read loop
// dispatches to the registered callbacks.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"birdieu.dev/campus/store"
	"birdieu.dev/campus/store/wire"
)

const writeTimeout = 5 * time.Second

// Store implements store.RoomStore over a websocket connection.
type Store struct {
	conn *websocket.Conn
	log  *zap.Logger

	writeMu sync.Mutex
	nextID  atomic.Int64

	mu         sync.Mutex
	rosterSubs map[int64]store.RosterFunc
	chatSubs   map[int64]store.MessageFunc
	closed     bool
}

// Dial connects to a hub at the given websocket URL.
func Dial(ctx context.Context, url string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial hub %s: %w", url, err)
	}
	s := &Store{
		conn:       conn,
		log:        log,
		rosterSubs: make(map[int64]store.RosterFunc),
		chatSubs:   make(map[int64]store.MessageFunc),
	}
	go s.readLoop()
	return s, nil
}

func (s *Store) send(env wire.Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode %s: %w", env.Type, err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("send %s: %w", env.Type, err)
	}
	return nil
}

// readLoop dispatches hub pushes until the connection dies.
func (s *Store) readLoop() {
	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			alreadyClosed := s.closed
			s.mu.Unlock()
			if !alreadyClosed {
				s.log.Warn("hub connection lost", zap.Error(err))
			}
			return
		}
		var env wire.Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			s.log.Warn("malformed hub message", zap.Error(err))
			continue
		}

		switch env.Type {
		case wire.TypeRoster:
			s.mu.Lock()
			fn := s.rosterSubs[env.ID]
			s.mu.Unlock()
			if fn != nil {
				players := env.Players
				if players == nil {
					players = map[string]store.Player{}
				}
				fn(players)
			}
		case wire.TypeChat:
			s.mu.Lock()
			fn := s.chatSubs[env.ID]
			s.mu.Unlock()
			if fn != nil && env.Message != nil {
				fn(*env.Message)
			}
		}
	}
}

func (s *Store) SetPresence(_ context.Context, roomID string, p store.Player) error {
	return s.send(wire.Envelope{Type: wire.TypeSet, Room: roomID, Player: &p})
}

func (s *Store) UpdatePresence(_ context.Context, roomID, playerID string, u store.PresenceUpdate) error {
	return s.send(wire.Envelope{Type: wire.TypeUpdate, Room: roomID, PlayerID: playerID, Update: &u})
}

func (s *Store) RemovePresence(_ context.Context, roomID, playerID string) error {
	return s.send(wire.Envelope{Type: wire.TypeRemove, Room: roomID, PlayerID: playerID})
}

func (s *Store) RemoveOnDisconnect(_ context.Context, roomID, playerID string) (store.CancelFunc, error) {
	id := s.nextID.Add(1)
	if err := s.send(wire.Envelope{Type: wire.TypeGuard, ID: id, Room: roomID, PlayerID: playerID}); err != nil {
		return nil, err
	}
	return func() {
		if err := s.send(wire.Envelope{Type: wire.TypeUnguard, ID: id}); err != nil {
			s.log.Warn("guard revoke failed", zap.Error(err))
		}
	}, nil
}

func (s *Store) SubscribeRoster(_ context.Context, roomID string, fn store.RosterFunc) (store.CancelFunc, error) {
	id := s.nextID.Add(1)
	s.mu.Lock()
	s.rosterSubs[id] = fn
	s.mu.Unlock()

	if err := s.send(wire.Envelope{Type: wire.TypeSubRoster, ID: id, Room: roomID}); err != nil {
		s.mu.Lock()
		delete(s.rosterSubs, id)
		s.mu.Unlock()
		return nil, err
	}
	return func() { s.unsubscribe(id) }, nil
}

func (s *Store) SubscribeMessages(_ context.Context, roomID string, lastN int, fn store.MessageFunc) (store.CancelFunc, error) {
	id := s.nextID.Add(1)
	s.mu.Lock()
	s.chatSubs[id] = fn
	s.mu.Unlock()

	if err := s.send(wire.Envelope{Type: wire.TypeSubChat, ID: id, Room: roomID, LastN: lastN}); err != nil {
		s.mu.Lock()
		delete(s.chatSubs, id)
		s.mu.Unlock()
		return nil, err
	}
	return func() { s.unsubscribe(id) }, nil
}

func (s *Store) unsubscribe(id int64) {
	s.mu.Lock()
	delete(s.rosterSubs, id)
	delete(s.chatSubs, id)
	s.mu.Unlock()
	if err := s.send(wire.Envelope{Type: wire.TypeUnsub, ID: id}); err != nil {
		s.log.Warn("unsubscribe failed", zap.Error(err))
	}
}

func (s *Store) AppendMessage(_ context.Context, roomID, playerID, playerName, text string) error {
	return s.send(wire.Envelope{
		Type: wire.TypeAppendChat, Room: roomID,
		PlayerID: playerID, PlayerName: playerName, Text: text,
	})
}

// Close shuts the connection down. The hub fires any registered disconnect
// removals on its side.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.writeMu.Lock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.writeMu.Unlock()
	return s.conn.Close()
}
