package game

import (
	"context"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"birdieu.dev/campus/engine"
	"birdieu.dev/campus/profile"
	"birdieu.dev/campus/world"
)

// Pad is the virtual touch control surface. The UI shell mutates it from
// touch handlers; the game reads it once per tick. Pad input wins over the
// keyboard when both are active.
type Pad struct {
	mu       sync.Mutex
	dir      world.Direction
	triggers int
}

// SetDirection sets the held pad direction; DirNone releases it.
func (p *Pad) SetDirection(d world.Direction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dir = d
}

// Trigger requests one interaction, like tapping the action button.
func (p *Pad) Trigger() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.triggers++
}

func (p *Pad) state() (world.Direction, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dir, p.triggers
}

// readInput merges pad and keyboard into one directional intent.
func (g *Game) readInput() engine.Input {
	if g.deps.Pad != nil {
		if dir, _ := g.deps.Pad.state(); dir != world.DirNone {
			return engine.Input{Dir: dir}
		}
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW):
		return engine.Input{Dir: world.DirUp}
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS):
		return engine.Input{Dir: world.DirDown}
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA):
		return engine.Input{Dir: world.DirLeft}
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD):
		return engine.Input{Dir: world.DirRight}
	}
	return engine.Input{Dir: world.DirNone}
}

// interactRequested reports whether the activate key was pressed this tick or
// the pad's trigger counter advanced.
func (g *Game) interactRequested() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyE) {
		return true
	}
	if g.deps.Pad != nil {
		if _, n := g.deps.Pad.state(); n != g.lastTrigger {
			g.lastTrigger = n
			return true
		}
	}
	return false
}

// emoteKeys maps number keys to the transient emotes.
var emoteKeys = map[ebiten.Key]string{
	ebiten.Key1: ":)",
	ebiten.Key2: "<3",
	ebiten.Key3: "!",
	ebiten.Key4: "zZ",
}

func (g *Game) handleEmoteKeys() {
	for key, emote := range emoteKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.deps.Sync.Emote(emote)
			return
		}
	}
}

// Wardrobe pools cycled by the cosmetic keys. The empty entry means bare.
var (
	hatStyles     = []string{"", "cap", "beanie", "grad"}
	glassesStyles = []string{"", "round", "shades"}
)

func nextStyle(pool []string, current string) string {
	for i, s := range pool {
		if s == current {
			return pool[(i+1)%len(pool)]
		}
	}
	return pool[0]
}

// handleCosmeticKeys cycles hat and glasses styles, broadcasts the new look
// and persists it to the profile.
func (g *Game) handleCosmeticKeys() {
	changed := false
	if inpututil.IsKeyJustPressed(ebiten.Key5) {
		g.self.Hat = nextStyle(hatStyles, g.self.Hat)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.Key6) {
		g.self.Glasses = nextStyle(glassesStyles, g.self.Glasses)
		changed = true
	}
	if !changed {
		return
	}

	g.deps.Sync.UpdateVisuals(g.self.Color, g.self.Hat, g.self.Glasses)
	hat, glasses := g.self.Hat, g.self.Glasses
	go func() {
		err := g.deps.Profiles.Apply(context.Background(), g.self.ID, profile.Update{Hat: &hat, Glasses: &glasses})
		if err != nil {
			g.log.Warn("cosmetic persist failed", zap.Error(err))
		}
	}()
}
