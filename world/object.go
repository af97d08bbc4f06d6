package world

// ObjectKind is the closed set of object types that can be placed in a room.
// Walkability and interactivity are table-driven off the kind rather than
// scattered through collision and render code.
type ObjectKind int

const (
	KindWall ObjectKind = iota
	KindBuilding
	KindDesk
	KindStudyDesk
	KindTree
	KindBush
	KindFlower
	KindWater
	KindGrass
	KindFloorWood
	KindFloorTile
	KindFloorStone
	KindFloorClay
	KindBench
	KindColumn
	KindChair
	KindComputer
	KindBlackboard
	KindPropLaptop
	KindPropEasel
	KindPropGlobe
	KindPropBooks
	KindPropPapers
	KindPropCoffee
	KindPropPlant
	KindSoccerGoal
	KindPenaltySpot
	KindSign
	KindFlag
	KindStadiumSeating
	KindGate
	KindBed
)

// ObjectCategory groups kinds by how the engine and renderer treat them.
type ObjectCategory int

const (
	// CategoryFloor objects are painted under everything and never block.
	CategoryFloor ObjectCategory = iota
	// CategoryDecoration objects are cosmetic, possibly sub-tile, never block.
	CategoryDecoration
	// CategoryStructure objects block movement.
	CategoryStructure
	// CategoryInteractive objects can be activated by a nearby player.
	CategoryInteractive
)

var kindCategories = map[ObjectKind]ObjectCategory{
	KindFloorWood:  CategoryFloor,
	KindFloorTile:  CategoryFloor,
	KindFloorStone: CategoryFloor,
	KindFloorClay:  CategoryFloor,
	KindGrass:      CategoryFloor,

	KindFlower:     CategoryDecoration,
	KindBlackboard: CategoryDecoration,
	KindPropLaptop: CategoryDecoration,
	KindPropEasel:  CategoryDecoration,
	KindPropGlobe:  CategoryDecoration,
	KindPropBooks:  CategoryDecoration,
	KindPropPapers: CategoryDecoration,
	KindPropCoffee: CategoryDecoration,
	KindPropPlant:  CategoryDecoration,
	KindGate:       CategoryDecoration,

	KindWall:           CategoryStructure,
	KindBuilding:       CategoryStructure,
	KindDesk:           CategoryStructure,
	KindTree:           CategoryStructure,
	KindBush:           CategoryStructure,
	KindWater:          CategoryStructure,
	KindBench:          CategoryStructure,
	KindColumn:         CategoryStructure,
	KindChair:          CategoryStructure,
	KindComputer:       CategoryStructure,
	KindSoccerGoal:     CategoryStructure,
	KindSign:           CategoryStructure,
	KindStadiumSeating: CategoryStructure,
	KindBed:            CategoryStructure,

	KindStudyDesk:   CategoryInteractive,
	KindPenaltySpot: CategoryInteractive,
	KindFlag:        CategoryInteractive,
}

// Category returns the category a kind belongs to. Unknown kinds count as
// structure so an ambiguous object blocks rather than being walked through.
func (k ObjectKind) Category() ObjectCategory {
	if c, ok := kindCategories[k]; ok {
		return c
	}
	return CategoryStructure
}

// walkableKinds is the explicit allow-list for collision. Floors, grass,
// small decorative props, the gate archway, flowers and penalty markers are
// walkable; everything else blocks. A kind missing from this table blocks.
var walkableKinds = map[ObjectKind]bool{
	KindFloorWood:   true,
	KindFloorTile:   true,
	KindFloorStone:  true,
	KindFloorClay:   true,
	KindGrass:       true,
	KindFlower:      true,
	KindBlackboard:  true,
	KindPropLaptop:  true,
	KindPropEasel:   true,
	KindPropGlobe:   true,
	KindPropBooks:   true,
	KindPropPapers:  true,
	KindPropCoffee:  true,
	KindPropPlant:   true,
	KindGate:        true,
	KindPenaltySpot: true,
}

// Walkable reports whether an actor can stand on tiles covered by this kind.
func (k ObjectKind) Walkable() bool {
	return walkableKinds[k]
}

// DecorationLabel marks a penalty spot as purely cosmetic: it renders but is
// excluded from interaction candidates.
const DecorationLabel = "decoration"

// SprintStartLabel marks the flag that launches the 100m dash minigame.
const SprintStartLabel = "START_SPRINT"

// PlacedObject is one object instance positioned inside a room.
type PlacedObject struct {
	Rect
	Kind  ObjectKind
	Color string // optional render override
	Label string // building signs, minigame markers
}

// Interactive reports whether this object participates in interaction
// resolution. Study desks always do; penalty spots do unless flagged as
// decoration; flags only when they start the sprint.
func (o PlacedObject) Interactive() bool {
	switch o.Kind {
	case KindStudyDesk:
		return true
	case KindPenaltySpot:
		return o.Label != DecorationLabel
	case KindFlag:
		return o.Label == SprintStartLabel
	default:
		return false
	}
}
