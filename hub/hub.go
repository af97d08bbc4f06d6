// Package hub is the development campus server: it keeps the authoritative
// room state in process and speaks the wire protocol with every connected
// client. Presence expiry is per connection: guards registered over a
// connection fire when that connection drops.
package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"birdieu.dev/campus/store"
	"birdieu.dev/campus/store/memory"
	"birdieu.dev/campus/store/wire"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
	sendBuffer   = 64
)

// Hub serves the shared room store to websocket clients.
type Hub struct {
	state    *memory.Store
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// New creates a hub with empty state.
func New(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		state: memory.New(),
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dev server: any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the hub's HTTP surface: /ws for clients, /healthz for
// probes.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{
		hub:    h,
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		guards: make(map[int64]guard),
		subs:   make(map[int64]store.CancelFunc),
	}
	h.log.Info("client connected", zap.String("remote", ws.RemoteAddr().String()))
	go c.writePump()
	c.readPump()
}

type guard struct {
	room   string
	player string
}

// client is one connected websocket peer.
type client struct {
	hub  *Hub
	ws   *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	guards map[int64]guard
	subs   map[int64]store.CancelFunc
	closed bool
}

// enqueue queues an outbound message without blocking. A slow client loses
// messages rather than stalling the room.
func (c *client) enqueue(env wire.Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		c.hub.log.Error("encode push failed", zap.Error(err))
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (c *client) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *client) readPump() {
	defer c.teardown()
	c.ws.SetReadLimit(1 << 20)
	c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(readTimeout))
		var env wire.Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			c.hub.log.Warn("malformed client message", zap.Error(err))
			continue
		}
		c.dispatch(env)
	}
}

func (c *client) dispatch(env wire.Envelope) {
	ctx := context.Background()
	state := c.hub.state

	switch env.Type {
	case wire.TypeSet:
		if env.Player == nil {
			return
		}
		if err := state.SetPresence(ctx, env.Room, *env.Player); err != nil {
			c.hub.log.Warn("set presence failed", zap.Error(err))
		}

	case wire.TypeUpdate:
		if env.Update == nil {
			return
		}
		if err := state.UpdatePresence(ctx, env.Room, env.PlayerID, *env.Update); err != nil {
			c.hub.log.Warn("update presence failed", zap.Error(err))
		}

	case wire.TypeRemove:
		if err := state.RemovePresence(ctx, env.Room, env.PlayerID); err != nil {
			c.hub.log.Warn("remove presence failed", zap.Error(err))
		}

	case wire.TypeGuard:
		c.mu.Lock()
		c.guards[env.ID] = guard{room: env.Room, player: env.PlayerID}
		c.mu.Unlock()

	case wire.TypeUnguard:
		c.mu.Lock()
		delete(c.guards, env.ID)
		c.mu.Unlock()

	case wire.TypeSubRoster:
		id, room := env.ID, env.Room
		cancel, err := state.SubscribeRoster(ctx, room, func(players map[string]store.Player) {
			c.enqueue(wire.Envelope{Type: wire.TypeRoster, ID: id, Room: room, Players: players})
		})
		if err != nil {
			c.hub.log.Warn("roster subscribe failed", zap.Error(err))
			return
		}
		c.addSub(id, cancel)

	case wire.TypeSubChat:
		id := env.ID
		cancel, err := state.SubscribeMessages(ctx, env.Room, env.LastN, func(msg store.ChatMessage) {
			c.enqueue(wire.Envelope{Type: wire.TypeChat, ID: id, Message: &msg})
		})
		if err != nil {
			c.hub.log.Warn("chat subscribe failed", zap.Error(err))
			return
		}
		c.addSub(id, cancel)

	case wire.TypeUnsub:
		c.mu.Lock()
		cancel := c.subs[env.ID]
		delete(c.subs, env.ID)
		c.mu.Unlock()
		if cancel != nil {
			cancel()
		}

	case wire.TypeAppendChat:
		if err := state.AppendMessage(ctx, env.Room, env.PlayerID, env.PlayerName, env.Text); err != nil {
			c.hub.log.Warn("chat append failed", zap.Error(err))
		}

	default:
		c.hub.log.Warn("unknown message type", zap.String("type", env.Type))
	}
}

// addSub records a subscription cancel func; if the client already tore
// down, the subscription is cancelled immediately instead.
func (c *client) addSub(id int64, cancel store.CancelFunc) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		cancel()
		return
	}
	c.subs[id] = cancel
	c.mu.Unlock()
}

// teardown runs when the connection drops: cancel this client's
// subscriptions, then fire its presence guards so the player disappears from
// every roster it was guarding.
func (c *client) teardown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	subs := c.subs
	guards := c.guards
	c.subs = nil
	c.guards = nil
	c.mu.Unlock()

	for _, cancel := range subs {
		cancel()
	}
	for _, g := range guards {
		if err := c.hub.state.RemovePresence(context.Background(), g.room, g.player); err != nil {
			c.hub.log.Warn("presence expiry failed",
				zap.String("room", g.room), zap.String("player", g.player), zap.Error(err))
		}
	}
	close(c.send)
	_ = c.ws.Close()
	c.hub.log.Info("client disconnected", zap.String("remote", c.ws.RemoteAddr().String()))
}
