// Package minigame implements the two embedded minigames: the penalty
// shootout and the 100m sprint. Both are pure state machines driven by the
// caller's ticks and input so the overlay layer only draws.
package minigame

import "math/rand"

// State is the lifecycle of a minigame round.
type State int

const (
	StateReady State = iota
	StatePlaying
	StateResult
)

// Aim is a shot or dive target, expressed as a goal-width percentage.
// The three zones mirror the drawn goal: left post, center, right post.
type Aim float64

const (
	AimLeft   Aim = 20
	AimCenter Aim = 50
	AimRight  Aim = 80
)

// diveZones are the positions the keeper can commit to.
var diveZones = [3]Aim{AimLeft, AimCenter, AimRight}

// Penalty award table.
const (
	SaveXP = 10
	GoalXP = 100
)

// Penalty is one shootout attempt. The keeper idles between the posts until
// the kick, then commits to a random zone; a save happens only when the dive
// zone equals the shot zone.
type Penalty struct {
	State     State
	KeeperPos float64 // percent of goal width
	Saved     bool
	XP        int
	Message   string

	idleDir float64
	rng     *rand.Rand
}

// NewPenalty creates a round with the keeper centered. Pass a nil source to
// use global randomness.
func NewPenalty(src rand.Source) *Penalty {
	p := &Penalty{State: StatePlaying, KeeperPos: 50, idleDir: 1}
	if src != nil {
		p.rng = rand.New(src)
	}
	return p
}

// Tick advances the keeper's idle sway one frame. The keeper drifts slowly
// between 40 and 60 percent until the ball is kicked.
func (p *Penalty) Tick() {
	if p.State != StatePlaying {
		return
	}
	p.KeeperPos += p.idleDir * 0.5
	if p.KeeperPos > 60 {
		p.KeeperPos = 60
		p.idleDir = -1
	}
	if p.KeeperPos < 40 {
		p.KeeperPos = 40
		p.idleDir = 1
	}
}

func (p *Penalty) pickDive() Aim {
	if p.rng != nil {
		return diveZones[p.rng.Intn(len(diveZones))]
	}
	return diveZones[rand.Intn(len(diveZones))]
}

// Kick shoots at the given zone and resolves the round. Returns the dive zone
// the keeper committed to. Kicks after the round ends are ignored.
func (p *Penalty) Kick(aim Aim) Aim {
	if p.State != StatePlaying {
		return Aim(p.KeeperPos)
	}
	dive := p.pickDive()
	p.KeeperPos = float64(dive)
	p.Saved = dive == aim
	if p.Saved {
		p.XP = SaveXP
		p.Message = "SAVED! The keeper blocked it."
	} else {
		p.XP = GoalXP
		p.Message = "GOAL!!! What a strike!"
	}
	p.State = StateResult
	return dive
}

// Side is one of the two alternating sprint inputs.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// Sprint award table, keyed on finish time in seconds.
const (
	SprintFastXP   = 100 // under 8s
	SprintGoodXP   = 50  // under 12s
	SprintFinishXP = 20
)

// tapGain is the progress earned by one valid alternating tap. Twenty taps
// finish the race.
const tapGain = 5

// Sprint is one 100m dash. Progress grows only on alternating left/right
// taps; the elapsed clock decides the reward.
type Sprint struct {
	State    State
	Progress float64 // 0 to 100
	Elapsed  float64 // seconds
	XP       int
	Message  string

	last Side
}

// NewSprint creates a dash waiting at the start line.
func NewSprint() *Sprint {
	return &Sprint{State: StateReady}
}

// Start begins the race and the clock.
func (s *Sprint) Start() {
	if s.State != StateReady {
		return
	}
	s.State = StatePlaying
	s.Progress = 0
	s.Elapsed = 0
	s.last = SideNone
}

// Tick advances the race clock by dt seconds.
func (s *Sprint) Tick(dt float64) {
	if s.State == StatePlaying {
		s.Elapsed += dt
	}
}

// Tap registers one input. A tap on the same side as the previous one is
// dropped; a valid tap adds progress and finishes the race at 100.
func (s *Sprint) Tap(side Side) bool {
	if s.State != StatePlaying || side == SideNone || side == s.last {
		return false
	}
	s.last = side
	s.Progress += tapGain
	if s.Progress >= 100 {
		s.Progress = 100
		s.finish()
	}
	return true
}

func (s *Sprint) finish() {
	s.State = StateResult
	switch {
	case s.Elapsed < 8:
		s.XP = SprintFastXP
		s.Message = "LIGHTNING FAST!"
	case s.Elapsed < 12:
		s.XP = SprintGoodXP
		s.Message = "Great Run!"
	default:
		s.XP = SprintFinishXP
		s.Message = "Good Effort!"
	}
}
