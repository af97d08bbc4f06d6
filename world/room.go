package world

import (
	"fmt"
	"math"
	"strings"
)

// NPCRole determines how an NPC reacts to being approached.
type NPCRole string

const (
	RoleProfessor  NPCRole = "professor"
	RoleStudent    NPCRole = "student"
	RoleVisitor    NPCRole = "visitor"
	RoleQuizMaster NPCRole = "quiz_master"
)

// NPC is a stationary scripted character placed in a room.
type NPC struct {
	ID        string
	Name      string
	X, Y      float64 // pixel position, tile aligned
	Facing    Direction
	Color     string
	Dialogues []string
	Role      NPCRole
	Subject   string // department tag for quiz masters
}

// Warp is a rectangular zone that redirects the actor to another room instead
// of completing a normal move.
type Warp struct {
	Rect
	TargetRoom string
	TargetX    float64
	TargetY    float64
	Facing     Direction
	Label      string
}

// RoomClass affects informational overlays only, never physics.
type RoomClass string

const (
	ClassPublic  RoomClass = "public"
	ClassCourse  RoomClass = "course"
	ClassPrivate RoomClass = "private"
)

// RoomDefinition is the immutable description of one room.
type RoomDefinition struct {
	Name    string
	Width   float64 // pixel bounds, multiples of TileSize
	Height  float64
	Spawn   Position
	Class   RoomClass
	Base    ObjectKind // default walkable surface
	Objects []PlacedObject
	NPCs    []NPC
	Warps   []Warp
}

// Validate checks a room definition for configuration errors. Rooms fail fast
// at load: a malformed room is never rendered.
func (r *RoomDefinition) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("room name is required")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("room %s: width and height must be positive", r.Name)
	}
	if math.Mod(r.Width, TileSize) != 0 || math.Mod(r.Height, TileSize) != 0 {
		return fmt.Errorf("room %s: dimensions %gx%g are not multiples of the tile size", r.Name, r.Width, r.Height)
	}
	if r.Spawn.X < 0 || r.Spawn.X >= r.Width || r.Spawn.Y < 0 || r.Spawn.Y >= r.Height {
		return fmt.Errorf("room %s: spawn (%g,%g) is out of bounds", r.Name, r.Spawn.X, r.Spawn.Y)
	}
	for i, o := range r.Objects {
		// Blocking objects must stay grid aligned so collision is exact.
		// Decorative sub-tile objects are the deliberate exception and never
		// participate in collision.
		if !o.Kind.Walkable() {
			if math.Mod(o.X, TileSize) != 0 || math.Mod(o.Y, TileSize) != 0 ||
				math.Mod(o.W, TileSize) != 0 || math.Mod(o.H, TileSize) != 0 {
				return fmt.Errorf("room %s: blocking object %d is not tile aligned", r.Name, i)
			}
		}
	}
	for i, w := range r.Warps {
		if w.TargetRoom == "" {
			return fmt.Errorf("room %s: warp %d has no target room", r.Name, i)
		}
	}
	return nil
}

// WarpAt returns the warp zone covering grid cell (gx, gy), or nil.
func (r *RoomDefinition) WarpAt(gx, gy int) *Warp {
	cell := TileRect(gx, gy)
	for i := range r.Warps {
		if r.Warps[i].Overlaps(cell) {
			return &r.Warps[i]
		}
	}
	return nil
}

// CellBlocked reports whether grid cell (gx, gy) rejects movement. The check
// order is fixed: boundary, then warp override, then object overlap. A warp
// tile is walkable regardless of what is drawn beneath it.
func (r *RoomDefinition) CellBlocked(gx, gy int) bool {
	if gx < 0 || gy < 0 ||
		float64(gx)*TileSize >= r.Width || float64(gy)*TileSize >= r.Height {
		return true
	}
	if r.WarpAt(gx, gy) != nil {
		return false
	}
	cell := TileRect(gx, gy)
	for _, o := range r.Objects {
		if o.Kind.Walkable() {
			continue
		}
		if o.Overlaps(cell) {
			return true
		}
	}
	return false
}

// DormPrefix prefixes the room id of every per-player private room.
const DormPrefix = "dorm_"

// DormPlaceholder is the warp target that redirects to the visiting player's
// own dorm at warp time.
const DormPlaceholder = "dorm"

// DormRoomID returns the private room id owned by the given player.
func DormRoomID(playerID string) string {
	return DormPrefix + playerID
}

// Lookup resolves a room id to its definition. Static rooms come from the
// campus catalog; dorm rooms are synthesized on demand from the naming rule
// and never stored. Unknown ids fall back to the campus entrance.
func Lookup(roomID string) *RoomDefinition {
	if def, ok := campusRooms[roomID]; ok {
		return def
	}
	if strings.HasPrefix(roomID, DormPrefix) {
		return dormRoom()
	}
	return campusRooms[RoomEntrance]
}

// Department infers the subject area of a room from its id. Used to tag study
// sessions started at a station inside that room.
func Department(roomID string) string {
	switch {
	case strings.Contains(roomID, "cs"):
		return "cs"
	case strings.Contains(roomID, "math"):
		return "math"
	case strings.Contains(roomID, "art"):
		return "art"
	case strings.Contains(roomID, "hist"):
		return "history"
	default:
		return "general"
	}
}
