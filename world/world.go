// Package world holds the campus room catalog: room geometry, placed objects,
// NPCs and warp zones, plus the course catalog the campus teaches. Everything
// in this package is immutable data with lookup helpers; movement and
// rendering live elsewhere and query it.
package world

// TileSize is the size of one grid cell in pixels. All collision and movement
// are quantized to this unit.
const TileSize = 32

// Grid converts a tile count to pixels.
func Grid(n float64) float64 {
	return n * TileSize
}

// Position is a point in room pixel space.
type Position struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in room pixel space.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Position {
	return Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// TileRect returns the pixel rectangle covering the grid cell (gx, gy).
func TileRect(gx, gy int) Rect {
	return Rect{X: float64(gx) * TileSize, Y: float64(gy) * TileSize, W: TileSize, H: TileSize}
}

// Direction represents the four cardinal facings an actor can hold.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Delta returns the grid cell offset for a direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// String returns the wire name of the direction. The shared room store carries
// facings as these strings.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return ""
	}
}

// ParseDirection maps a wire name back to a Direction. Unknown names come back
// as DirDown so a malformed record still renders facing the camera.
func ParseDirection(s string) Direction {
	switch s {
	case "up":
		return DirUp
	case "down":
		return DirDown
	case "left":
		return DirLeft
	case "right":
		return DirRight
	default:
		return DirDown
	}
}
