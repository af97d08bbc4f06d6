// Package interact selects the single nearest actionable target around the
// local player and dispatches its effect. Candidates come from three pools
// (interactive room objects, NPCs, other players) scanned in that order, so
// equal-distance ties always resolve to the earlier pool.
package interact

import (
	"math"
	"math/rand"

	"birdieu.dev/campus/world"
)

// Radius is the trigger range: two tile widths from the actor's center.
const Radius = world.TileSize * 2

// MinigameKind names the embedded minigames a room object can launch.
type MinigameKind string

const (
	MinigamePenalty MinigameKind = "penalty"
	MinigameSprint  MinigameKind = "sprint"
)

// PlayerTarget is the slice of roster state the resolver needs about another
// player: identity plus pixel position.
type PlayerTarget struct {
	ID string
	X  float64
	Y  float64
}

// Resolver finds and triggers interactions. Effect sinks are injected at
// construction so the resolver stays free of UI and network concerns.
type Resolver struct {
	// OnStudy opens the study/quiz flow for a department inferred from the
	// current room.
	OnStudy func(department string)
	// OnQuiz opens the quiz flow for a quiz master's declared subject.
	OnQuiz func(subject string)
	// OnDialogue shows one line from a narrative NPC.
	OnDialogue func(npc world.NPC, line string)
	// OnProfile opens another player's profile.
	OnProfile func(playerID string)
	// OnMinigame launches an embedded minigame.
	OnMinigame func(kind MinigameKind)

	// rng picks dialogue lines. Injectable for deterministic tests.
	rng *rand.Rand
}

// NewResolver creates a resolver with the given dialogue randomness source.
// A nil source falls back to the global one.
func NewResolver(src rand.Source) *Resolver {
	r := &Resolver{}
	if src != nil {
		r.rng = rand.New(src)
	}
	return r
}

func (r *Resolver) pickLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	if r.rng != nil {
		return lines[r.rng.Intn(len(lines))]
	}
	return lines[rand.Intn(len(lines))]
}

// Resolve scans for the nearest eligible target within Radius of the actor
// center and invokes exactly one effect. Returns false when nothing is in
// range. The scan order (objects, NPCs, players) is fixed: strict
// nearest-wins, with equal distances resolving to the earlier pool.
func (r *Resolver) Resolve(roomID string, room *world.RoomDefinition, center world.Position, others []PlayerTarget) bool {
	closest := math.Inf(1)
	var action func()

	consider := func(x, y float64, fire func()) {
		d := math.Hypot(center.X-x, center.Y-y)
		if d <= Radius && d < closest {
			closest = d
			action = fire
		}
	}

	// Pool 1: interactive room objects.
	for i := range room.Objects {
		o := room.Objects[i]
		if !o.Interactive() {
			continue
		}
		c := o.Center()
		consider(c.X, c.Y, func() {
			switch o.Kind {
			case world.KindStudyDesk:
				if r.OnStudy != nil {
					r.OnStudy(world.Department(roomID))
				}
			case world.KindPenaltySpot:
				if r.OnMinigame != nil {
					r.OnMinigame(MinigamePenalty)
				}
			case world.KindFlag:
				if r.OnMinigame != nil {
					r.OnMinigame(MinigameSprint)
				}
			}
		})
	}

	// Pool 2: NPCs.
	for i := range room.NPCs {
		npc := room.NPCs[i]
		consider(npc.X+world.TileSize/2, npc.Y+world.TileSize/2, func() {
			if npc.Role == world.RoleQuizMaster && npc.Subject != "" {
				if r.OnQuiz != nil {
					r.OnQuiz(npc.Subject)
				}
				return
			}
			if r.OnDialogue != nil {
				r.OnDialogue(npc, r.pickLine(npc.Dialogues))
			}
		})
	}

	// Pool 3: other players.
	for i := range others {
		p := others[i]
		consider(p.X+world.TileSize/2, p.Y+world.TileSize/2, func() {
			if r.OnProfile != nil {
				r.OnProfile(p.ID)
			}
		})
	}

	if action == nil {
		return false
	}
	action()
	return true
}
