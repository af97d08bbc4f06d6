package minigame

import (
	"math/rand"
	"testing"
)

func TestKeeperIdleOscillation(t *testing.T) {
	p := NewPenalty(rand.NewSource(1))
	min, max := p.KeeperPos, p.KeeperPos
	for i := 0; i < 200; i++ {
		p.Tick()
		if p.KeeperPos < min {
			min = p.KeeperPos
		}
		if p.KeeperPos > max {
			max = p.KeeperPos
		}
	}
	if min < 40 || max > 60 {
		t.Errorf("idle sway left the 40-60 band: min %g max %g", min, max)
	}
	if min >= 41 || max <= 59 {
		t.Errorf("keeper barely moved: min %g max %g", min, max)
	}
}

func TestKickResolvesSaveOrGoal(t *testing.T) {
	var saves, goals int
	for seed := int64(0); seed < 30; seed++ {
		p := NewPenalty(rand.NewSource(seed))
		dive := p.Kick(AimLeft)

		if p.State != StateResult {
			t.Fatal("kick must end the round")
		}
		if p.KeeperPos != float64(dive) {
			t.Errorf("keeper should land on the dive zone, got %g vs %g", p.KeeperPos, float64(dive))
		}
		if p.Saved != (dive == AimLeft) {
			t.Errorf("save iff dive zone equals shot zone: dive %g, saved %v", float64(dive), p.Saved)
		}
		if p.Saved {
			saves++
			if p.XP != SaveXP {
				t.Errorf("save should award %d XP, got %d", SaveXP, p.XP)
			}
		} else {
			goals++
			if p.XP != GoalXP {
				t.Errorf("goal should award %d XP, got %d", GoalXP, p.XP)
			}
		}
	}
	if saves == 0 || goals == 0 {
		t.Errorf("30 seeds should produce both outcomes (saves=%d goals=%d)", saves, goals)
	}
}

func TestKickAfterResultIsIgnored(t *testing.T) {
	p := NewPenalty(rand.NewSource(1))
	p.Kick(AimCenter)
	xp, msg := p.XP, p.Message
	p.Kick(AimLeft)
	if p.XP != xp || p.Message != msg {
		t.Error("second kick must not change the result")
	}
}

// runSprint finishes a race, ticking dt seconds of clock per valid tap.
func runSprint(dt float64) *Sprint {
	s := NewSprint()
	s.Start()
	side := SideLeft
	for s.State == StatePlaying {
		s.Tick(dt)
		s.Tap(side)
		if side == SideLeft {
			side = SideRight
		} else {
			side = SideLeft
		}
	}
	return s
}

func TestSprintRewardTiers(t *testing.T) {
	// 20 taps at 0.2s each: 4s total, fastest tier.
	s := runSprint(0.2)
	if s.XP != SprintFastXP {
		t.Errorf("4s run should award %d, got %d (elapsed %g)", SprintFastXP, s.XP, s.Elapsed)
	}

	// 0.5s per tap: 10s, middle tier.
	s = runSprint(0.5)
	if s.XP != SprintGoodXP {
		t.Errorf("10s run should award %d, got %d (elapsed %g)", SprintGoodXP, s.XP, s.Elapsed)
	}

	// 1s per tap: 20s, finisher tier.
	s = runSprint(1.0)
	if s.XP != SprintFinishXP {
		t.Errorf("20s run should award %d, got %d (elapsed %g)", SprintFinishXP, s.XP, s.Elapsed)
	}
}

func TestSprintRequiresAlternatingTaps(t *testing.T) {
	s := NewSprint()
	s.Start()

	if !s.Tap(SideLeft) {
		t.Fatal("first tap should count")
	}
	if s.Tap(SideLeft) {
		t.Error("repeated side must not count")
	}
	if s.Progress != tapGain {
		t.Errorf("expected progress %d after one valid tap, got %g", tapGain, s.Progress)
	}
	if !s.Tap(SideRight) {
		t.Error("alternating tap should count")
	}
	if s.Progress != 2*tapGain {
		t.Errorf("expected progress %d, got %g", 2*tapGain, s.Progress)
	}
}

func TestSprintFinishesAtHundred(t *testing.T) {
	s := runSprint(0.1)
	if s.Progress != 100 {
		t.Errorf("progress should cap at 100, got %g", s.Progress)
	}
	if s.State != StateResult {
		t.Error("race should be over")
	}
	if s.Tap(SideLeft) {
		t.Error("taps after the finish line must be ignored")
	}
}

func TestSprintClockOnlyRunsWhilePlaying(t *testing.T) {
	s := NewSprint()
	s.Tick(5)
	if s.Elapsed != 0 {
		t.Error("clock must not run before the start")
	}
	s.Start()
	s.Tick(1)
	if s.Elapsed != 1 {
		t.Errorf("expected 1s elapsed, got %g", s.Elapsed)
	}
}
