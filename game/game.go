// Package game is the playable client: it owns the frame loop, wires the
// movement engine to the presence synchronizer, and draws rooms, avatars, and
// overlays. All networking happens through injected dependencies; the loop
// itself never blocks.
package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"birdieu.dev/campus/engine"
	"birdieu.dev/campus/interact"
	"birdieu.dev/campus/learn"
	"birdieu.dev/campus/minigame"
	"birdieu.dev/campus/presence"
	"birdieu.dev/campus/profile"
	"birdieu.dev/campus/store"
	"birdieu.dev/campus/world"
)

// Logical view size in pixels. The window scales this up.
const (
	ViewWidth  = 480
	ViewHeight = 270
)

// bubbleDuration is how long a chat snippet floats above an avatar.
const bubbleDuration = 5 * time.Second

// levelUpDuration is how long the level-up banner shows.
const levelUpDuration = 3 * time.Second

// overlayKind selects which modal surface, if any, captures input.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayDialogue
	overlayStudy
	overlayQuiz
	overlayPenalty
	overlaySprint
	overlayProfile
	overlayChat
)

// bubble is a transient chat snippet above a player.
type bubble struct {
	text  string
	until time.Time
}

// Deps are the injected collaborators. Every field is required except Pad.
type Deps struct {
	Sync     *presence.Synchronizer
	Profiles profile.Store
	Learn    *learn.Service
	Log      *zap.Logger
	// Pad is the optional touch control surface.
	Pad *Pad
}

// Game implements ebiten.Game for the campus client.
type Game struct {
	deps Deps
	log  *zap.Logger

	self    profile.Profile
	actor   *engine.Actor
	roomID  string
	room    *world.RoomDefinition
	resolve *interact.Resolver

	rosterMu  sync.Mutex
	roster    map[string]store.Player
	confirmed *store.Player // own roster entry pending reconciliation
	errMsg    string

	bubbles map[string]bubble

	// remotePos holds the smoothed draw positions of remote avatars. Frame
	// goroutine only, never locked.
	remotePos map[string]world.Position

	overlay overlayKind

	// dialogue overlay
	dialogueName string
	dialogueText string

	// study/quiz flow
	department  string
	quizSubject string
	coursePick  []string // course names offered for the active department
	courseSel   int
	picking     bool
	studyText   string
	session     *learn.Session

	// minigames
	penalty *minigame.Penalty
	sprint  *minigame.Sprint

	// profile overlay
	viewing *profile.Profile

	// chat
	chatInput   []rune
	levelUpAt   time.Time
	lastTrigger int
}

// New assembles the client for an authenticated player. The starting room is
// joined immediately.
func New(deps Deps, self profile.Profile, startRoom string) *Game {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	g := &Game{
		deps:    deps,
		log:     deps.Log,
		self:    self,
		roster:    map[string]store.Player{},
		bubbles:   map[string]bubble{},
		remotePos: map[string]world.Position{},
	}

	g.resolve = interact.NewResolver(rand.NewSource(time.Now().UnixNano()))
	g.resolve.OnStudy = g.openStudy
	g.resolve.OnQuiz = g.openQuiz
	g.resolve.OnDialogue = g.openDialogue
	g.resolve.OnProfile = g.openProfile
	g.resolve.OnMinigame = g.openMinigame

	deps.Sync.OnRoster = g.onRoster
	deps.Sync.OnMessage = g.onMessage
	deps.Sync.OnError = g.onError

	g.enterRoom(startRoom, nil, world.DirDown)
	return g
}

// enterRoom swaps the active room and rejoins presence. A warp into the dorm
// placeholder resolves to this player's own private room.
func (g *Game) enterRoom(roomID string, spawn *world.Position, facing world.Direction) {
	if roomID == world.DormPlaceholder {
		roomID = world.DormRoomID(g.self.ID)
	}
	g.room = world.Lookup(roomID)
	pos := g.room.Spawn
	if spawn != nil {
		pos = *spawn
	}
	if g.actor == nil {
		g.actor = engine.NewActor(pos.X, pos.Y)
	} else {
		g.actor.Reset(pos.X, pos.Y, facing)
	}

	g.remotePos = map[string]world.Position{}

	// roomID gates async roster callbacks, so it changes under the same lock.
	g.rosterMu.Lock()
	g.roomID = roomID
	g.roster = map[string]store.Player{}
	g.bubbles = map[string]bubble{}
	g.confirmed = nil
	g.rosterMu.Unlock()

	g.deps.Sync.JoinRoom(roomID, &pos, facing)
	g.log.Info("entered room", zap.String("room", roomID))
}

// onRoster stores the merged snapshot for the next frame to render. The own
// entry is kept aside so the next tick can reconcile the actor against it.
func (g *Game) onRoster(roomID string, players map[string]store.Player) {
	g.rosterMu.Lock()
	defer g.rosterMu.Unlock()
	if roomID != g.roomID {
		return
	}
	g.roster = players
	if p, ok := players[g.self.ID]; ok {
		own := p
		g.confirmed = &own
	}
}

// onMessage attaches a chat bubble to its sender.
func (g *Game) onMessage(msg store.ChatMessage) {
	g.rosterMu.Lock()
	defer g.rosterMu.Unlock()
	g.bubbles[msg.PlayerID] = bubble{text: msg.Text, until: time.Now().Add(bubbleDuration)}
}

// onError keeps the latest store failure for the HUD. Errors are shown, not
// retried.
func (g *Game) onError(err error) {
	g.rosterMu.Lock()
	defer g.rosterMu.Unlock()
	g.errMsg = err.Error()
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return ViewWidth, ViewHeight
}

// Update implements ebiten.Game: one cooperative tick. Overlays capture all
// input while open; otherwise the tick feeds the movement engine and checks
// the interaction trigger.
func (g *Game) Update() error {
	if g.overlay != overlayNone {
		g.updateOverlay()
		return nil
	}

	g.applyReconcile()

	in := g.readInput()
	res := g.actor.Step(g.room, in)
	if res.Position != nil {
		g.deps.Sync.Move(res.Position.X, res.Position.Y, res.Position.Facing, res.Position.Moving,
			res.Position.TargetX, res.Position.TargetY)
	}
	if res.RoomChange != nil {
		spawn := world.Position{X: res.RoomChange.X, Y: res.RoomChange.Y}
		g.enterRoom(res.RoomChange.TargetRoom, &spawn, res.RoomChange.Facing)
		return nil
	}

	if g.actor.AtRest() && g.interactRequested() {
		g.triggerInteraction()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.rosterMu.Lock()
		g.overlay = overlayChat
		g.rosterMu.Unlock()
		g.chatInput = g.chatInput[:0]
	}
	g.handleEmoteKeys()
	g.handleCosmeticKeys()
	return nil
}

// applyReconcile snaps the actor onto the latest store-confirmed own entry
// when the two diverge beyond the engine threshold. Before the first server
// snapshot the entry is the local projection, so this is a no-op then.
func (g *Game) applyReconcile() {
	g.rosterMu.Lock()
	confirmed := g.confirmed
	g.confirmed = nil
	g.rosterMu.Unlock()
	if confirmed == nil {
		return
	}
	if g.actor.Reconcile(confirmed.X, confirmed.Y, confirmed.Facing) {
		g.log.Debug("snapped to authoritative position",
			zap.Float64("x", confirmed.X), zap.Float64("y", confirmed.Y))
	}
}

// triggerInteraction hands the current surroundings to the resolver.
func (g *Game) triggerInteraction() {
	g.rosterMu.Lock()
	others := make([]interact.PlayerTarget, 0, len(g.roster))
	for id, p := range g.roster {
		if id == g.self.ID {
			continue
		}
		others = append(others, interact.PlayerTarget{ID: id, X: p.X, Y: p.Y})
	}
	g.rosterMu.Unlock()

	center := g.actor.Center()
	g.resolve.Resolve(g.roomID, g.room, center, others)
}

// awardXP applies a reward, persists it, and arms the level-up banner when a
// threshold is crossed.
func (g *Game) awardXP(gain int) {
	if gain <= 0 {
		return
	}
	g.self.XP += gain
	newLevel := learn.LevelForXP(g.self.XP)
	leveled := newLevel > g.self.Level
	g.self.Level = newLevel

	xp, level := g.self.XP, g.self.Level
	go func() {
		err := g.deps.Profiles.Apply(context.Background(), g.self.ID, profile.Update{XP: &xp, Level: &level})
		if err != nil {
			g.log.Warn("xp persist failed", zap.Error(err))
		}
	}()

	if leveled {
		g.levelUpAt = time.Now().Add(levelUpDuration)
	}
}
