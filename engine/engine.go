// Package engine owns the local player's grid movement state machine. It is
// pure and synchronous: every render tick feeds it one Input, it advances the
// in-flight tile transition or starts a new one, and it reports what happened
// as an intent for the caller to dispatch. Nothing in here touches the
// network or the clock.
package engine

import (
	"birdieu.dev/campus/world"
)

// Speed is the fixed per-frame movement speed in pixels. One tile transition
// takes TileSize/Speed frames.
const Speed = 2.0

// Input is the combined directional intent for one frame. The caller merges
// keyboard and virtual pad state before handing it over; the pad takes
// priority when both are active.
type Input struct {
	Dir world.Direction
}

// PositionUpdate tells remote peers where the local player is and which way
// it faces. Moving is set while a tile transition is in flight; TargetX and
// TargetY then name the destination cell so peers can interpolate toward it.
// At rest they equal X and Y.
type PositionUpdate struct {
	X       float64
	Y       float64
	TargetX float64
	TargetY float64
	Facing  world.Direction
	Moving  bool
}

// RoomChange is emitted instead of a PositionUpdate when a completed step
// lands on a warp zone.
type RoomChange struct {
	TargetRoom string
	X          float64
	Y          float64
	Facing     world.Direction
}

// StepResult carries at most one intent out of a frame.
type StepResult struct {
	Position   *PositionUpdate
	RoomChange *RoomChange
}

// Actor is the local player's authoritative movement state. Exactly one of
// "at rest" and "transitioning" holds at any time; while transitioning, the
// pixel position is the linear interpolation between the resting cell and the
// target cell proportional to Progress/TileSize.
type Actor struct {
	GridX, GridY             int
	PixelX, PixelY           float64
	TargetGridX, TargetGridY int
	Moving                   bool
	Progress                 float64
	Facing                   world.Direction
}

// NewActor places an actor at rest on the cell containing the given pixel
// position, facing down.
func NewActor(x, y float64) *Actor {
	a := &Actor{Facing: world.DirDown}
	a.Reset(x, y, world.DirDown)
	return a
}

// Reset hard-snaps the actor to the cell containing (x, y) with no
// interpolation. Used on spawn, warp arrival, and remote reconciliation.
func (a *Actor) Reset(x, y float64, facing world.Direction) {
	a.GridX = int(x+0.5) / world.TileSize
	a.GridY = int(y+0.5) / world.TileSize
	a.PixelX = float64(a.GridX) * world.TileSize
	a.PixelY = float64(a.GridY) * world.TileSize
	a.TargetGridX = a.GridX
	a.TargetGridY = a.GridY
	a.Moving = false
	a.Progress = 0
	if facing != world.DirNone {
		a.Facing = facing
	}
}

// AtRest reports whether no tile transition is in flight.
func (a *Actor) AtRest() bool {
	return !a.Moving
}

// Center returns the actor's pixel center, the reference point for
// interaction range checks.
func (a *Actor) Center() world.Position {
	return world.Position{X: a.PixelX + world.TileSize/2, Y: a.PixelY + world.TileSize/2}
}

// Step advances the state machine by one frame.
//
// While a transition is in flight, directional input is ignored: motion is
// atomic per tile, which rules out diagonal drift and double-counted warps.
// When the transition completes the actor snaps to the target cell and either
// a RoomChange (destination is a warp) or a PositionUpdate is emitted, never
// both for the same step.
//
// At rest, a non-zero direction starts a new transition if the candidate cell
// accepts it; a rejected move that changes the requested facing still turns
// the actor in place and broadcasts the new orientation.
func (a *Actor) Step(room *world.RoomDefinition, in Input) StepResult {
	if a.Moving {
		a.Progress += Speed
		if a.Progress >= world.TileSize {
			a.GridX = a.TargetGridX
			a.GridY = a.TargetGridY
			a.PixelX = float64(a.GridX) * world.TileSize
			a.PixelY = float64(a.GridY) * world.TileSize
			a.Moving = false
			a.Progress = 0

			if warp := room.WarpAt(a.GridX, a.GridY); warp != nil {
				return StepResult{RoomChange: &RoomChange{
					TargetRoom: warp.TargetRoom,
					X:          warp.TargetX,
					Y:          warp.TargetY,
					Facing:     warp.Facing,
				}}
			}
			return StepResult{Position: &PositionUpdate{
				X: a.PixelX, Y: a.PixelY, TargetX: a.PixelX, TargetY: a.PixelY,
				Facing: a.Facing, Moving: false,
			}}
		}

		dx, dy := a.Facing.Delta()
		a.PixelX += float64(dx) * Speed
		a.PixelY += float64(dy) * Speed
		return StepResult{}
	}

	if in.Dir == world.DirNone {
		return StepResult{}
	}

	dx, dy := in.Dir.Delta()
	nextX, nextY := a.GridX+dx, a.GridY+dy

	if !room.CellBlocked(nextX, nextY) {
		a.Facing = in.Dir
		a.Moving = true
		a.TargetGridX = nextX
		a.TargetGridY = nextY
		// Broadcast right away so peers see the facing and motion without
		// waiting for the tile to complete.
		return StepResult{Position: &PositionUpdate{
			X: a.PixelX, Y: a.PixelY,
			TargetX: float64(nextX) * world.TileSize,
			TargetY: float64(nextY) * world.TileSize,
			Facing:  a.Facing, Moving: true,
		}}
	}

	if a.Facing != in.Dir {
		a.Facing = in.Dir
		return StepResult{Position: &PositionUpdate{
			X: a.PixelX, Y: a.PixelY, TargetX: a.PixelX, TargetY: a.PixelY,
			Facing: a.Facing, Moving: false,
		}}
	}
	return StepResult{}
}

// reconcileThreshold is the grid distance beyond which the authoritative
// remote position wins over local prediction. Within it, small disagreements
// are left alone so in-flight moves do not rubber-band.
const reconcileThreshold = 2

// Reconcile compares the actor against the authoritative remote position and
// hard-snaps if they diverge by more than the threshold (teleport, warp, or
// initial spawn). Returns true when a snap happened.
func (a *Actor) Reconcile(remoteX, remoteY float64, facing world.Direction) bool {
	gx := int(remoteX+0.5) / world.TileSize
	gy := int(remoteY+0.5) / world.TileSize
	dist := abs(gx-a.GridX) + abs(gy-a.GridY)
	if dist <= reconcileThreshold {
		return false
	}
	a.Reset(remoteX, remoteY, facing)
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
