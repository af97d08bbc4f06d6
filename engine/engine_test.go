package engine

import (
	"testing"

	"birdieu.dev/campus/world"
)

// openRoom builds a 10x10 room with nothing in it.
func openRoom() *world.RoomDefinition {
	return &world.RoomDefinition{
		Name:   "open",
		Width:  world.Grid(10),
		Height: world.Grid(10),
		Spawn:  world.Position{X: world.Grid(5), Y: world.Grid(5)},
	}
}

// framesPerTile is how many Step calls one transition takes at the fixed speed.
const framesPerTile = world.TileSize / Speed

func TestStraightWalkCompletesOneTile(t *testing.T) {
	room := openRoom()
	a := NewActor(world.Grid(5), world.Grid(5))
	a.Facing = world.DirDown

	var updates []PositionUpdate
	in := Input{Dir: world.DirUp}
	for i := 0; i < framesPerTile+1; i++ {
		res := a.Step(room, in)
		if res.Position != nil {
			updates = append(updates, *res.Position)
		}
		if res.RoomChange != nil {
			t.Fatal("unexpected room change in open room")
		}
	}

	if a.GridX != 5 || a.GridY != 4 {
		t.Fatalf("expected resting cell (5,4), got (%d,%d)", a.GridX, a.GridY)
	}
	if a.Facing != world.DirUp {
		t.Errorf("expected facing up, got %v", a.Facing)
	}
	if a.Moving {
		t.Error("transition should have completed")
	}

	// One update at move start (old pixel position, moving) and exactly one
	// carrying the final resting pixel coordinates.
	var finals int
	for _, u := range updates {
		if u.X == world.Grid(5) && u.Y == world.Grid(4) && !u.Moving {
			finals++
		}
	}
	if finals != 1 {
		t.Fatalf("expected exactly one update with the final resting position, got %d (all: %+v)", finals, updates)
	}
}

func TestGridSnappingAfterEveryTransition(t *testing.T) {
	room := openRoom()
	a := NewActor(world.Grid(5), world.Grid(5))

	dirs := []world.Direction{world.DirUp, world.DirLeft, world.DirDown, world.DirRight}
	for _, d := range dirs {
		for i := 0; i < framesPerTile+1; i++ {
			a.Step(room, Input{Dir: d})
		}
		if a.Moving {
			t.Fatalf("transition %v did not complete", d)
		}
		if a.PixelX != float64(a.GridX)*world.TileSize || a.PixelY != float64(a.GridY)*world.TileSize {
			t.Fatalf("residual drift after %v: pixel (%g,%g) grid (%d,%d)", d, a.PixelX, a.PixelY, a.GridX, a.GridY)
		}
		if a.Progress != 0 {
			t.Fatalf("progress not reset after %v", d)
		}
	}
}

func TestNoInputAcceptedWhileMoving(t *testing.T) {
	room := openRoom()
	a := NewActor(world.Grid(5), world.Grid(5))

	a.Step(room, Input{Dir: world.DirUp})
	if !a.Moving {
		t.Fatal("move should have started")
	}

	// Hammer a perpendicular direction mid-transition.
	for i := 0; i < 4; i++ {
		a.Step(room, Input{Dir: world.DirLeft})
	}
	if a.Facing != world.DirUp {
		t.Errorf("facing changed mid-transition to %v", a.Facing)
	}
	if a.TargetGridX != 5 || a.TargetGridY != 4 {
		t.Errorf("target cell changed mid-transition to (%d,%d)", a.TargetGridX, a.TargetGridY)
	}

	// Finish the transition; the actor must land on the original target.
	for i := 0; i < framesPerTile; i++ {
		a.Step(room, Input{Dir: world.DirNone})
	}
	if a.GridX != 5 || a.GridY != 4 {
		t.Errorf("expected (5,4), got (%d,%d)", a.GridX, a.GridY)
	}
}

func TestBlockedWalkTurnsInPlace(t *testing.T) {
	room := openRoom()
	// Wall directly right of the actor.
	room.Objects = []world.PlacedObject{
		{Rect: world.Rect{X: world.Grid(6), Y: world.Grid(5), W: world.Grid(1), H: world.Grid(1)}, Kind: world.KindWall},
	}
	a := NewActor(world.Grid(5), world.Grid(5))
	a.Facing = world.DirDown

	res := a.Step(room, Input{Dir: world.DirRight})
	if a.Moving {
		t.Error("blocked move must not start a transition")
	}
	if a.Facing != world.DirRight {
		t.Errorf("facing should update to right, got %v", a.Facing)
	}
	if res.Position == nil {
		t.Fatal("turn in place should emit a PositionUpdate")
	}
	if res.Position.X != world.Grid(5) || res.Position.Y != world.Grid(5) {
		t.Errorf("update should carry the unchanged pixel position, got (%g,%g)", res.Position.X, res.Position.Y)
	}
	if res.Position.Facing != world.DirRight {
		t.Errorf("update should carry the new facing, got %v", res.Position.Facing)
	}

	// Same direction again: already facing right, no update.
	res = a.Step(room, Input{Dir: world.DirRight})
	if res.Position != nil {
		t.Error("repeated blocked input with same facing should emit nothing")
	}
}

func TestBoundaryRejection(t *testing.T) {
	room := openRoom()
	a := NewActor(0, 0)

	a.Step(room, Input{Dir: world.DirUp})
	if a.Moving {
		t.Error("move above the room must be rejected")
	}
	a.Step(room, Input{Dir: world.DirLeft})
	if a.Moving {
		t.Error("move left of the room must be rejected")
	}
}

func TestWarpStepEmitsRoomChangeOnly(t *testing.T) {
	room := openRoom()
	room.Warps = []world.Warp{
		{Rect: world.Rect{X: world.Grid(5), Y: world.Grid(4), W: world.Grid(1), H: world.Grid(1)},
			TargetRoom: "library", TargetX: world.Grid(8), TargetY: world.Grid(10), Facing: world.DirUp},
	}
	a := NewActor(world.Grid(5), world.Grid(5))

	var changes []RoomChange
	var updates []PositionUpdate
	for i := 0; i < framesPerTile+1; i++ {
		res := a.Step(room, Input{Dir: world.DirUp})
		if res.RoomChange != nil {
			changes = append(changes, *res.RoomChange)
		}
		if res.Position != nil && !res.Position.Moving {
			updates = append(updates, *res.Position)
		}
	}

	if len(changes) != 1 {
		t.Fatalf("expected one RoomChange, got %d", len(changes))
	}
	c := changes[0]
	if c.TargetRoom != "library" || c.X != world.Grid(8) || c.Y != world.Grid(10) || c.Facing != world.DirUp {
		t.Errorf("room change carries wrong target: %+v", c)
	}
	if len(updates) != 0 {
		t.Errorf("warp step must not also emit a completed PositionUpdate, got %+v", updates)
	}
}

func TestWarpOverridesBlockingScenery(t *testing.T) {
	room := openRoom()
	room.Objects = []world.PlacedObject{
		{Rect: world.Rect{X: world.Grid(5), Y: world.Grid(4), W: world.Grid(1), H: world.Grid(1)}, Kind: world.KindWall},
	}
	room.Warps = []world.Warp{
		{Rect: world.Rect{X: world.Grid(5), Y: world.Grid(4), W: world.Grid(1), H: world.Grid(1)}, TargetRoom: "quad"},
	}
	a := NewActor(world.Grid(5), world.Grid(5))

	a.Step(room, Input{Dir: world.DirUp})
	if !a.Moving {
		t.Fatal("a door tile must be walkable even with scenery drawn beneath it")
	}
}

func TestReconcileSnapsOnlyBeyondThreshold(t *testing.T) {
	a := NewActor(world.Grid(5), world.Grid(5))

	// Two tiles away: within tolerance, no snap.
	if a.Reconcile(world.Grid(7), world.Grid(5), world.DirDown) {
		t.Error("2-tile divergence should not snap")
	}
	if a.GridX != 5 {
		t.Error("actor moved without a snap")
	}

	// Three tiles away: teleport, hard snap.
	if !a.Reconcile(world.Grid(8), world.Grid(5), world.DirLeft) {
		t.Fatal("3-tile divergence should snap")
	}
	if a.GridX != 8 || a.GridY != 5 {
		t.Errorf("expected (8,5) after snap, got (%d,%d)", a.GridX, a.GridY)
	}
	if a.PixelX != world.Grid(8) || a.Moving || a.Progress != 0 {
		t.Error("snap must land at rest with no interpolation")
	}
	if a.Facing != world.DirLeft {
		t.Errorf("snap should adopt remote facing, got %v", a.Facing)
	}
}

func TestResetClearsTransition(t *testing.T) {
	room := openRoom()
	a := NewActor(world.Grid(5), world.Grid(5))
	a.Step(room, Input{Dir: world.DirUp})
	a.Step(room, Input{Dir: world.DirNone})
	if !a.Moving {
		t.Fatal("expected in-flight transition")
	}

	a.Reset(world.Grid(2), world.Grid(3), world.DirRight)
	if a.Moving || a.Progress != 0 {
		t.Error("reset must clear the transition")
	}
	if a.GridX != 2 || a.GridY != 3 {
		t.Errorf("expected (2,3), got (%d,%d)", a.GridX, a.GridY)
	}
	if a.TargetGridX != 2 || a.TargetGridY != 3 {
		t.Error("target must collapse onto the resting cell")
	}
}

func TestStepPublishesDestinationCell(t *testing.T) {
	room := openRoom()
	a := NewActor(world.Grid(5), world.Grid(5))

	res := a.Step(room, Input{Dir: world.DirRight})
	if res.Position == nil || !res.Position.Moving {
		t.Fatal("starting a move must broadcast")
	}
	if res.Position.TargetX != world.Grid(6) || res.Position.TargetY != world.Grid(5) {
		t.Errorf("destination cell = (%g,%g), want (%g,%g)",
			res.Position.TargetX, res.Position.TargetY, world.Grid(6), world.Grid(5))
	}

	var done *PositionUpdate
	for i := 0; i < 2*world.TileSize && done == nil; i++ {
		res = a.Step(room, Input{})
		if res.Position != nil && !res.Position.Moving {
			done = res.Position
		}
	}
	if done == nil {
		t.Fatal("transition never completed")
	}
	if done.TargetX != done.X || done.TargetY != done.Y {
		t.Errorf("at rest the destination must equal the position: %+v", done)
	}
}
