package presence

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"birdieu.dev/campus/store"
	"birdieu.dev/campus/store/memory"
	"birdieu.dev/campus/world"
)

// rosterLog records every published roster snapshot.
type rosterLog struct {
	mu    sync.Mutex
	rooms []string
	snaps []map[string]store.Player
}

func (r *rosterLog) record(roomID string, players map[string]store.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = append(r.rooms, roomID)
	r.snaps = append(r.snaps, players)
}

func (r *rosterLog) last() (string, map[string]store.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snaps) == 0 {
		return "", nil
	}
	return r.rooms[len(r.rooms)-1], r.snaps[len(r.snaps)-1]
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newSyncer(st store.RoomStore) (*Synchronizer, *rosterLog) {
	log := &rosterLog{}
	s := New(st, Self{ID: "me", Name: "Me", Color: "#3b82f6"}, nil)
	s.OnRoster = log.record
	return s, log
}

// storeRoster reads the authoritative roster straight from the store.
func storeRoster(t *testing.T, st store.RoomStore, roomID string) map[string]store.Player {
	t.Helper()
	var got map[string]store.Player
	unsub, err := st.SubscribeRoster(context.Background(), roomID, func(ps map[string]store.Player) {
		got = ps
	})
	if err != nil {
		t.Fatal(err)
	}
	unsub()
	return got
}

func TestJoinPublishesProjectionImmediately(t *testing.T) {
	st := memory.New()
	s, log := newSyncer(st)

	s.JoinRoom(world.RoomQuad, nil, world.DirDown)

	// The very first published snapshot is the projection, before any store
	// round trip.
	log.mu.Lock()
	first := log.snaps[0]
	room := log.rooms[0]
	log.mu.Unlock()
	if room != world.RoomQuad {
		t.Fatalf("expected quad, got %s", room)
	}
	me, ok := first["me"]
	if !ok {
		t.Fatal("projection missing from the initial snapshot")
	}
	spawn := world.Lookup(world.RoomQuad).Spawn
	if me.X != spawn.X || me.Y != spawn.Y {
		t.Errorf("projection should sit on the room spawn, got (%g,%g)", me.X, me.Y)
	}

	// The store eventually confirms the same record.
	waitFor(t, "store confirmation", func() bool {
		_, ok := storeRoster(t, st, world.RoomQuad)["me"]
		return ok
	})
	s.Disconnect()
}

func TestProjectionNeverResurrectsAfterCatchUp(t *testing.T) {
	st := memory.New()
	s, log := newSyncer(st)
	s.JoinRoom(world.RoomQuad, nil, world.DirDown)

	waitFor(t, "store confirmation", func() bool {
		_, ok := storeRoster(t, st, world.RoomQuad)["me"]
		return ok
	})

	// A peer write forces a snapshot through the established subscription.
	// That snapshot carries the server copy of the local id, so once the peer
	// shows up in the published roster the projection is provably cleared.
	if err := st.SetPresence(context.Background(), world.RoomQuad, store.Player{
		ID: "peer", Name: "Peer", X: 32, Y: 32,
	}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "catch-up via peer snapshot", func() bool {
		_, snap := log.last()
		_, peerOK := snap["peer"]
		_, meOK := snap["me"]
		return peerOK && meOK
	})

	// Server-side removal simulates a snapshot that transiently omits the
	// local id. Once caught up, the projection must stay gone.
	if err := st.RemovePresence(context.Background(), world.RoomQuad, "me"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "local id to disappear from published roster", func() bool {
		_, snap := log.last()
		_, ok := snap["me"]
		return !ok
	})
	s.Disconnect()
}

func TestInvalidRosterEntriesAreDropped(t *testing.T) {
	st := memory.New()
	s, log := newSyncer(st)
	s.JoinRoom(world.RoomQuad, nil, world.DirDown)
	waitFor(t, "join to establish", func() bool {
		_, ok := storeRoster(t, st, world.RoomQuad)["me"]
		return ok
	})

	ctx := context.Background()
	if err := st.SetPresence(ctx, world.RoomQuad, store.Player{
		ID: "ghost", Name: "", X: 10, Y: 10,
	}); err != nil {
		t.Fatal(err)
	}
	if err := st.SetPresence(ctx, world.RoomQuad, store.Player{
		ID: "nan", Name: "NaN", X: math.NaN(), Y: 10,
	}); err != nil {
		t.Fatal(err)
	}
	if err := st.SetPresence(ctx, world.RoomQuad, store.Player{
		ID: "ok", Name: "Fine", X: 64, Y: 64,
	}); err != nil {
		t.Fatal(err)
	}

	waitFor(t, "valid peer to appear", func() bool {
		_, snap := log.last()
		_, ok := snap["ok"]
		return ok
	})
	_, snap := log.last()
	if _, ok := snap["ghost"]; ok {
		t.Error("nameless entry must be dropped")
	}
	if _, ok := snap["nan"]; ok {
		t.Error("non-finite coordinates must be dropped")
	}
	s.Disconnect()
}

func TestRoomSwitchIsolation(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	if err := st.SetPresence(ctx, world.RoomQuad, store.Player{
		ID: "peer", Name: "Peer", X: 32, Y: 32, Room: world.RoomQuad,
	}); err != nil {
		t.Fatal(err)
	}

	s, log := newSyncer(st)
	s.JoinRoom(world.RoomQuad, nil, world.DirDown)
	waitFor(t, "peer visible in quad", func() bool {
		_, snap := log.last()
		_, ok := snap["peer"]
		return ok
	})

	s.JoinRoom(world.RoomLibrary, nil, world.DirUp)
	waitFor(t, "library membership", func() bool {
		room, _ := log.last()
		return room == world.RoomLibrary
	})

	// No quad entry may ever appear in a library snapshot, and the quad
	// roster must lose the local player.
	waitFor(t, "old presence cleanup", func() bool {
		_, ok := storeRoster(t, st, world.RoomQuad)["me"]
		return !ok
	})
	log.mu.Lock()
	defer log.mu.Unlock()
	for i, room := range log.rooms {
		if room != world.RoomLibrary {
			continue
		}
		if _, ok := log.snaps[i]["peer"]; ok {
			t.Fatal("quad roster entry leaked into a library snapshot")
		}
	}
	s.Disconnect()
}

func TestMoveClearsEmoteAndUpdatesStore(t *testing.T) {
	st := memory.New()
	s, _ := newSyncer(st)
	s.JoinRoom(world.RoomQuad, nil, world.DirDown)
	waitFor(t, "join to establish", func() bool {
		_, ok := storeRoster(t, st, world.RoomQuad)["me"]
		return ok
	})

	s.Emote("wave")
	waitFor(t, "emote to land", func() bool {
		return storeRoster(t, st, world.RoomQuad)["me"].Emote == "wave"
	})

	s.Move(96, 128, world.DirRight, true, 128, 128)
	waitFor(t, "move to land", func() bool {
		p := storeRoster(t, st, world.RoomQuad)["me"]
		return p.X == 96 && p.Y == 128
	})
	p := storeRoster(t, st, world.RoomQuad)["me"]
	if p.Emote != "" {
		t.Error("movement must clear the emote")
	}
	if p.Facing != world.DirRight || !p.Moving {
		t.Errorf("facing/moving not applied: %+v", p)
	}
	if p.TargetX == nil || *p.TargetX != 128 || p.TargetY == nil || *p.TargetY != 128 {
		t.Errorf("destination cell not published: %+v", p)
	}
	s.Disconnect()
}

func TestChatLogCappedAndOrdered(t *testing.T) {
	st := memory.New()
	s, _ := newSyncer(st)
	var received []store.ChatMessage
	var mu sync.Mutex
	s.OnMessage = func(m store.ChatMessage) {
		mu.Lock()
		received = append(received, m)
		mu.Unlock()
	}
	s.JoinRoom(world.RoomQuad, nil, world.DirDown)
	waitFor(t, "join to establish", func() bool {
		_, ok := storeRoster(t, st, world.RoomQuad)["me"]
		return ok
	})

	ctx := context.Background()
	for i := 0; i < MessageCap+15; i++ {
		if err := st.AppendMessage(ctx, world.RoomQuad, "peer", "Peer", fmt.Sprintf("m%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	waitFor(t, "messages to arrive", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) >= MessageCap
	})

	msgs := s.Messages()
	if len(msgs) != MessageCap {
		t.Fatalf("retained log should cap at %d, got %d", MessageCap, len(msgs))
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Seq <= msgs[i-1].Seq {
			t.Fatal("retained log must stay in server sequence order")
		}
	}
	if msgs[len(msgs)-1].Text != fmt.Sprintf("m%d", MessageCap+14) {
		t.Errorf("newest message missing, got %q", msgs[len(msgs)-1].Text)
	}
	s.Disconnect()
}

func TestDisconnectRemovesPresence(t *testing.T) {
	st := memory.New()
	s, _ := newSyncer(st)
	s.JoinRoom(world.RoomQuad, nil, world.DirDown)
	waitFor(t, "join to establish", func() bool {
		_, ok := storeRoster(t, st, world.RoomQuad)["me"]
		return ok
	})

	s.Disconnect()
	if s.RoomID() != "" {
		t.Error("disconnect should clear the membership")
	}
	waitFor(t, "presence removal", func() bool {
		_, ok := storeRoster(t, st, world.RoomQuad)["me"]
		return !ok
	})

	// Writes after teardown are dropped.
	s.Move(10, 10, world.DirUp, true, 10, 10)
	time.Sleep(10 * time.Millisecond)
	if _, ok := storeRoster(t, st, world.RoomQuad)["me"]; ok {
		t.Error("post-disconnect move resurrected the record")
	}
}
