package world

// Static room ids. Dorm rooms are dynamic and use DormPrefix instead.
const (
	RoomEntrance      = "entrance"
	RoomQuad          = "quad"
	RoomLibrary       = "library"
	RoomCafe          = "cafe"
	RoomTrack         = "track"
	RoomCourseCS      = "course_cs"
	RoomCourseMath    = "course_math"
	RoomCourseArt     = "course_art"
	RoomCourseHistory = "course_history"
)

// g is a shorthand for Grid inside the catalog tables.
func g(n float64) float64 { return Grid(n) }

func obj(kind ObjectKind, x, y, w, h float64) PlacedObject {
	return PlacedObject{Rect: Rect{X: x, Y: y, W: w, H: h}, Kind: kind}
}

func labeled(kind ObjectKind, x, y, w, h float64, label string) PlacedObject {
	o := obj(kind, x, y, w, h)
	o.Label = label
	return o
}

func colored(kind ObjectKind, x, y, w, h float64, color string) PlacedObject {
	o := obj(kind, x, y, w, h)
	o.Color = color
	return o
}

var campusRooms = map[string]*RoomDefinition{}

func register(id string, def *RoomDefinition) {
	if err := def.Validate(); err != nil {
		panic("world: invalid room definition: " + err.Error())
	}
	campusRooms[id] = def
}

func init() {
	register(RoomEntrance, entranceRoom())
	register(RoomQuad, quadRoom())
	register(RoomTrack, trackRoom())
	register(RoomLibrary, libraryRoom())
	register(RoomCafe, cafeRoom())
	register(RoomCourseCS, courseRoom("Computer Science Lab", "CS", "cs", "Prof. Bitwise", "#10b981",
		[]string{"Ready to test your algorithm knowledge?", "Coding is poetry.", "Debugging is the essence of life."},
		NPC{ID: "npc_student_cs1", Name: "Coder Cody", X: g(2), Y: g(5), Facing: DirRight, Color: "#3b82f6", Role: RoleStudent,
			Dialogues: []string{"My code compiles but it does nothing.", "Have you tried turning it off and on again?", "I love Python!"}},
		Position{X: g(3), Y: g(16)}))
	register(RoomCourseMath, courseRoom("Mathematics Hall", "MATH", "math", "Prof. Algebra", "#6366f1",
		[]string{"Numbers never lie.", "Can you solve for X?", "Calculus is beautiful."},
		NPC{ID: "npc_student_math1", Name: "Mathematician Mike", X: g(8), Y: g(5), Facing: DirLeft, Color: "#f59e0b", Role: RoleStudent,
			Dialogues: []string{"I dreamt of numbers last night.", "Geometry is pointless... wait, no it's not."}},
		Position{X: g(29), Y: g(16)}))
	register(RoomCourseArt, courseRoom("Art Studio", "ART", "art", "Prof. Palette", "#f43f5e",
		[]string{"Express yourself!", "There are no mistakes, only happy accidents."},
		NPC{ID: "npc_student_art1", Name: "Artsy Anna", X: g(2), Y: g(5), Facing: DirRight, Color: "#ec4899", Role: RoleStudent,
			Dialogues: []string{"I ran out of blue paint again.", "This sculpture speaks to me.", "Abstract art is the best."}},
		Position{X: g(25), Y: g(9)}))
	register(RoomCourseHistory, courseRoom("History Hall", "HISTORY", "history", "Prof. Ancient", "#78350f",
		[]string{"Those who forget history are doomed to repeat it.", "The past is alive here."},
		NPC{ID: "npc_student_hist1", Name: "History Hank", X: g(8), Y: g(5), Facing: DirLeft, Color: "#4b5563", Role: RoleStudent,
			Dialogues: []string{"I wish I could time travel.", "The Roman Empire was fascinating.", "Did you finish the reading on the Cold War?"}},
		Position{X: g(25), Y: g(24)}))
}

func entranceRoom() *RoomDefinition {
	return &RoomDefinition{
		Name:   "Campus Gates",
		Width:  g(20),
		Height: g(20),
		Spawn:  Position{X: g(10), Y: g(10)},
		Class:  ClassPublic,
		Base:   KindGrass,
		Objects: []PlacedObject{
			obj(KindFloorStone, g(8), 0, g(4), g(20)), // main path
			obj(KindWall, g(6), g(19), g(8), g(1)),    // bottom wall
			labeled(KindGate, g(3), g(5), g(14), g(4), "Welcome to Birdie University"),
			// collision pillars under the gate arch
			obj(KindWall, g(3), g(5), g(2), g(2)),
			obj(KindWall, g(15), g(5), g(2), g(2)),
			colored(KindFlower, g(6), g(10), g(1), g(1), "#ef4444"),
			colored(KindFlower, g(13), g(10), g(1), g(1), "#ef4444"),
			colored(KindFlower, g(6), g(12), g(1), g(1), "#3b82f6"),
			colored(KindFlower, g(13), g(12), g(1), g(1), "#3b82f6"),
			colored(KindFlower, g(6), g(14), g(1), g(1), "#f59e0b"),
			colored(KindFlower, g(13), g(14), g(1), g(1), "#f59e0b"),
			obj(KindBush, g(5), g(8), g(1), g(1)),
			obj(KindBush, g(14), g(8), g(1), g(1)),
			obj(KindBush, g(5), g(16), g(1), g(1)),
			obj(KindBush, g(14), g(16), g(1), g(1)),
			colored(KindFlower, g(2), g(18), g(1), g(1), "#fff"),
			colored(KindFlower, g(18), g(2), g(1), g(1), "#fff"),
		},
		Warps: []Warp{
			{Rect: Rect{X: g(8), Y: 0, W: g(4), H: g(1)}, TargetRoom: RoomQuad, TargetX: g(16), TargetY: g(29), Facing: DirUp, Label: "Enter Campus"},
		},
	}
}

func quadRoom() *RoomDefinition {
	const w, h = 32, 32
	return &RoomDefinition{
		Name:   "University Quad",
		Width:  g(w),
		Height: g(h),
		Spawn:  Position{X: g(16), Y: g(16)},
		Class:  ClassPublic,
		Base:   KindGrass,
		NPCs: []NPC{
			{ID: "npc_prof", Name: "Prof. Pingu", X: g(15), Y: g(8), Facing: DirDown, Color: "#4b5563", Role: RoleProfessor,
				Dialogues: []string{"Remember to cite your sources!", "The library is a quiet place for study.", "I'm late for my lecture on Fish History."}},
			{ID: "npc_student1", Name: "Freshman Fred", X: g(12), Y: g(18), Facing: DirRight, Color: "#3b82f6", Role: RoleStudent,
				Dialogues: []string{"I can't find the Math Hall...", "Is there a party tonight?", "This campus is huge!"}},
			{ID: "npc_student2", Name: "Senior Sarah", X: g(20), Y: g(18), Facing: DirLeft, Color: "#ec4899", Role: RoleStudent,
				Dialogues: []string{"I'm so stressed about finals.", "Have you been to the cafe? The latte is great.", "I practically live in the CS Lab."}},
		},
		Objects: []PlacedObject{
			// paving
			obj(KindFloorStone, 0, g(15), g(w), g(2)),
			obj(KindFloorStone, g(15), g(7), g(2), g(7)),
			obj(KindFloorStone, g(15), g(17), g(2), g(15)),
			obj(KindFloorStone, g(13), g(13), g(6), g(6)), // central plaza
			obj(KindFloorStone, g(6), g(7), g(1), g(8)),
			obj(KindFloorStone, g(25), g(7), g(1), g(8)),
			obj(KindFloorStone, g(2), g(15), g(1), g(10)),
			obj(KindFloorStone, g(2), g(24), g(5), g(1)),
			obj(KindFloorStone, g(29), g(15), g(1), g(10)),
			obj(KindFloorStone, g(25), g(24), g(5), g(1)),
			// central fountain
			obj(KindWater, g(15), g(15), g(2), g(2)),
			// signage
			labeled(KindSign, g(5), g(8), g(1), g(1), "Cafe"),
			labeled(KindSign, g(14), g(7), g(1), g(1), "Library"),
			labeled(KindSign, g(24), g(8), g(1), g(1), "Art Hall"),
			labeled(KindSign, g(5), g(15), g(1), g(1), "CS Lab"),
			labeled(KindSign, g(26), g(15), g(1), g(1), "Math"),
			labeled(KindSign, g(1), g(22), g(1), g(1), "Dorms"),
			// greenery
			obj(KindBush, g(8), g(7), g(1), g(1)),
			obj(KindBush, g(12), g(20), g(1), g(1)),
			obj(KindBush, g(19), g(20), g(1), g(1)),
			colored(KindFlower, g(12), g(12), g(1), g(1), "#ec4899"),
			colored(KindFlower, g(19), g(12), g(1), g(1), "#ec4899"),
			colored(KindFlower, g(12), g(19), g(1), g(1), "#ec4899"),
			colored(KindFlower, g(19), g(19), g(1), g(1), "#ec4899"),
			colored(KindFlower, g(12), g(14), g(1), g(1), "#f59e0b"),
			colored(KindFlower, g(19), g(14), g(1), g(1), "#f59e0b"),
			colored(KindFlower, g(12), g(17), g(1), g(1), "#f59e0b"),
			colored(KindFlower, g(19), g(17), g(1), g(1), "#f59e0b"),
			colored(KindFlower, g(4), g(8), g(1), g(1), "#fff"),
			colored(KindFlower, g(8), g(8), g(1), g(1), "#fff"),
			colored(KindFlower, g(23), g(8), g(1), g(1), "#3b82f6"),
			colored(KindFlower, g(27), g(8), g(1), g(1), "#3b82f6"),
			colored(KindFlower, g(3), g(22), g(1), g(1), "#a855f7"),
			colored(KindFlower, g(9), g(22), g(1), g(1), "#a855f7"),
			colored(KindFlower, g(28), g(22), g(1), g(1), "#ef4444"),
			colored(KindFlower, g(22), g(22), g(1), g(1), "#ef4444"),
			// buildings
			colLabeled(KindBuilding, g(12), g(3), g(8), g(4), "LIBRARY", "#b91c1c"),
			colLabeled(KindBuilding, g(3), g(4), g(7), g(3), "CAFE", "#854d0e"),
			colLabeled(KindBuilding, g(22), g(4), g(7), g(3), "ARTS", "#f59e0b"),
			colLabeled(KindBuilding, g(1), g(12), g(5), g(3), "CS LAB", "#1e293b"),
			obj(KindFloorStone, g(3), g(15), g(1), g(1)),
			colLabeled(KindBuilding, g(26), g(12), g(5), g(3), "MATH", "#334155"),
			obj(KindFloorStone, g(28), g(15), g(1), g(1)),
			colLabeled(KindBuilding, g(23), g(21), g(5), g(3), "HISTORY", "#7f1d1d"),
			colLabeled(KindBuilding, g(4), g(21), g(5), g(3), "DORMS", "#4c1d95"),
			// boundary walls, with gaps for the exits
			obj(KindWall, 0, 0, g(w), g(1)),
			obj(KindWall, 0, 0, g(1), g(h)),
			obj(KindWall, g(31), 0, g(1), g(15)),
			obj(KindWall, g(31), g(17), g(1), g(15)),
			obj(KindWall, 0, g(31), g(14), g(1)),
			obj(KindWall, g(18), g(31), g(14), g(1)),
		},
		Warps: []Warp{
			{Rect: Rect{X: g(15), Y: g(31), W: g(2), H: g(1)}, TargetRoom: RoomEntrance, TargetX: g(10), TargetY: g(2), Facing: DirDown, Label: "Exit Campus"},
			{Rect: Rect{X: g(31), Y: g(15), W: g(1), H: g(2)}, TargetRoom: RoomTrack, TargetX: g(2), TargetY: g(10), Facing: DirRight, Label: "Track & Field"},
			{Rect: Rect{X: g(15), Y: g(6), W: g(2), H: g(1)}, TargetRoom: RoomLibrary, TargetX: g(8), TargetY: g(10), Facing: DirUp},
			{Rect: Rect{X: g(6), Y: g(6), W: g(1), H: g(1)}, TargetRoom: RoomCafe, TargetX: g(6), TargetY: g(8), Facing: DirUp},
			{Rect: Rect{X: g(3), Y: g(14), W: g(1), H: g(1)}, TargetRoom: RoomCourseCS, TargetX: g(6), TargetY: g(10), Facing: DirUp},
			{Rect: Rect{X: g(28), Y: g(14), W: g(1), H: g(1)}, TargetRoom: RoomCourseMath, TargetX: g(6), TargetY: g(10), Facing: DirUp},
			{Rect: Rect{X: g(25), Y: g(6), W: g(1), H: g(1)}, TargetRoom: RoomCourseArt, TargetX: g(6), TargetY: g(10), Facing: DirUp},
			{Rect: Rect{X: g(25), Y: g(23), W: g(1), H: g(1)}, TargetRoom: RoomCourseHistory, TargetX: g(6), TargetY: g(10), Facing: DirUp},
			{Rect: Rect{X: g(6), Y: g(23), W: g(1), H: g(1)}, TargetRoom: DormPlaceholder, TargetX: g(5), TargetY: g(8), Facing: DirDown, Label: "To Dorms"},
		},
	}
}

func trackRoom() *RoomDefinition {
	return &RoomDefinition{
		Name:   "Track & Field",
		Width:  g(24),
		Height: g(20),
		Spawn:  Position{X: g(2), Y: g(10)},
		Class:  ClassPublic,
		Base:   KindGrass,
		Objects: []PlacedObject{
			// stadium seating ring with a gap at the west exit
			obj(KindStadiumSeating, 0, 0, g(24), g(2)),
			obj(KindStadiumSeating, 0, g(18), g(24), g(2)),
			obj(KindStadiumSeating, g(22), g(2), g(2), g(16)),
			obj(KindStadiumSeating, 0, g(2), g(2), g(7)),
			obj(KindStadiumSeating, 0, g(11), g(2), g(7)),
			obj(KindFloorStone, 0, g(9), g(2), g(2)),
			obj(KindFloorClay, g(2), g(2), g(20), g(16)),
			// lane markings (sub-tile, walkable)
			colored(KindFloorTile, g(3), g(2), 2, g(16), "rgba-lane"),
			colored(KindFloorTile, g(20), g(2), 2, g(16), "rgba-lane"),
			colored(KindFloorTile, g(2), g(3), g(20), 2, "rgba-lane"),
			colored(KindFloorTile, g(2), g(16), g(20), 2, "rgba-lane"),
			// infield pitch
			obj(KindGrass, g(5), g(4), g(14), g(12)),
			{Rect: Rect{X: g(11.5), Y: g(9.5), W: g(1), H: g(1)}, Kind: KindPenaltySpot, Label: DecorationLabel, Color: "#fff"},
			obj(KindPenaltySpot, g(11), g(6), g(1), g(1)),
			obj(KindSoccerGoal, g(11), g(2), g(2), g(1)),
			labeled(KindFlag, g(9), g(15), g(1), g(2), SprintStartLabel),
			labeled(KindSign, g(12), g(15), g(1), g(1), "100m Dash"),
			colored(KindFlag, g(2), g(2), g(1), g(2), "#3b82f6"),
			colored(KindFlag, g(21), g(2), g(1), g(2), "#f59e0b"),
			colored(KindFlag, g(2), g(16), g(1), g(2), "#10b981"),
			colored(KindFlag, g(21), g(16), g(1), g(2), "#ec4899"),
		},
		Warps: []Warp{
			{Rect: Rect{X: 0, Y: g(9), W: g(1), H: g(2)}, TargetRoom: RoomQuad, TargetX: g(30), TargetY: g(16), Facing: DirLeft, Label: "Back to Quad"},
		},
	}
}

func libraryRoom() *RoomDefinition {
	return &RoomDefinition{
		Name:   "Grand Library",
		Width:  g(16),
		Height: g(12),
		Spawn:  Position{X: g(8), Y: g(10)},
		Class:  ClassPublic,
		Base:   KindFloorTile,
		NPCs: []NPC{
			{ID: "npc_lib", Name: "Librarian", X: g(8), Y: g(3), Facing: DirDown, Color: "#9ca3af", Role: RoleProfessor,
				Dialogues: []string{"Shhh!", "Books returned late will incur a fine.", "The restricted section is closed."}},
		},
		Objects: []PlacedObject{
			obj(KindDesk, g(6), g(2), g(4), g(2)),
			obj(KindDesk, g(2), g(4), g(2), g(6)),
			obj(KindDesk, g(12), g(4), g(2), g(6)),
			obj(KindStudyDesk, g(4), g(6), g(2), g(1)),
			obj(KindStudyDesk, g(4), g(8), g(2), g(1)),
			obj(KindStudyDesk, g(10), g(6), g(2), g(1)),
			obj(KindStudyDesk, g(10), g(8), g(2), g(1)),
		},
		Warps: []Warp{
			{Rect: Rect{X: g(7), Y: g(11), W: g(2), H: g(1)}, TargetRoom: RoomQuad, TargetX: g(16), TargetY: g(8), Facing: DirDown, Label: "Exit"},
		},
	}
}

func cafeRoom() *RoomDefinition {
	return &RoomDefinition{
		Name:   "Student Cafe",
		Width:  g(16),
		Height: g(14),
		Spawn:  Position{X: g(8), Y: g(11)},
		Class:  ClassPublic,
		Base:   KindFloorWood,
		Objects: []PlacedObject{
			obj(KindDesk, 0, 0, g(16), g(2)), // counter
			{Rect: Rect{X: g(2), Y: g(0.5), W: g(1), H: g(1)}, Kind: KindPropCoffee},
			{Rect: Rect{X: g(12), Y: g(0.5), W: g(1), H: g(1)}, Kind: KindPropCoffee},
			{Rect: Rect{X: g(7.5), Y: g(0.5), W: g(1), H: g(1)}, Kind: KindPropPlant},
			obj(KindDesk, g(3), g(5), g(3), g(2)),
			obj(KindPropCoffee, g(4), g(5), g(1), g(1)),
			obj(KindChair, g(3), g(4), g(1), g(1)),
			obj(KindChair, g(5), g(4), g(1), g(1)),
			obj(KindChair, g(3), g(7), g(1), g(1)),
			obj(KindChair, g(5), g(7), g(1), g(1)),
			obj(KindDesk, g(10), g(5), g(3), g(2)),
			obj(KindPropPlant, g(11), g(5), g(1), g(1)),
			obj(KindChair, g(10), g(4), g(1), g(1)),
			obj(KindChair, g(12), g(4), g(1), g(1)),
			obj(KindChair, g(10), g(7), g(1), g(1)),
			obj(KindChair, g(12), g(7), g(1), g(1)),
			obj(KindPropPlant, g(0), g(12), g(1), g(2)),
			obj(KindPropPlant, g(15), g(12), g(1), g(2)),
		},
		Warps: []Warp{
			{Rect: Rect{X: g(7), Y: g(13), W: g(2), H: g(1)}, TargetRoom: RoomQuad, TargetX: g(6), TargetY: g(8), Facing: DirDown, Label: "Exit"},
		},
	}
}

// courseRoom builds one of the four course halls. They share a floor plan and
// differ in professor, decor and exit position.
func courseRoom(name, board, subject, profName, profColor string, profLines []string, student NPC, exit Position) *RoomDefinition {
	base := KindFloorTile
	if subject == "art" || subject == "history" {
		base = KindFloorWood
	}
	return &RoomDefinition{
		Name:   name,
		Width:  g(12),
		Height: g(14),
		Spawn:  Position{X: g(6), Y: g(12)},
		Class:  ClassCourse,
		Base:   base,
		NPCs: []NPC{
			{ID: "npc_prof_" + subject, Name: profName, X: g(6), Y: g(2), Facing: DirDown, Color: profColor,
				Role: RoleQuizMaster, Subject: subject, Dialogues: profLines},
			student,
		},
		Objects: []PlacedObject{
			labeled(KindBlackboard, g(3), g(0), g(6), g(1), board),
			obj(KindDesk, g(4), g(3), g(4), g(1)), // lectern
			obj(KindStudyDesk, g(2), g(6), g(2), g(1)),
			obj(KindStudyDesk, g(8), g(6), g(2), g(1)),
			obj(KindStudyDesk, g(2), g(9), g(2), g(1)),
			obj(KindStudyDesk, g(8), g(9), g(2), g(1)),
		},
		Warps: []Warp{
			{Rect: Rect{X: g(5), Y: g(13), W: g(2), H: g(1)}, TargetRoom: RoomQuad, TargetX: exit.X, TargetY: exit.Y, Facing: DirDown, Label: "Exit"},
		},
	}
}

// dormRoom synthesizes the shared private room layout. Every player's dorm
// uses this plan; decor colors come from the owner's profile at render time.
func dormRoom() *RoomDefinition {
	return &RoomDefinition{
		Name:   "Dorm Room",
		Width:  g(10),
		Height: g(10),
		Spawn:  Position{X: g(5), Y: g(8)},
		Class:  ClassPrivate,
		Base:   KindFloorWood,
		Objects: []PlacedObject{
			obj(KindBed, g(1), g(1), g(3), g(4)),
			obj(KindStudyDesk, g(6), g(1), g(3), g(1)),
			obj(KindChair, g(6), g(2), g(1), g(1)),
			obj(KindPropPlant, g(9), g(0), g(1), g(2)),
		},
		Warps: []Warp{
			{Rect: Rect{X: g(4), Y: g(9), W: g(2), H: g(1)}, TargetRoom: RoomQuad, TargetX: g(7), TargetY: g(24), Facing: DirDown, Label: "To Quad"},
		},
	}
}

func colLabeled(kind ObjectKind, x, y, w, h float64, label, color string) PlacedObject {
	o := labeled(kind, x, y, w, h, label)
	o.Color = color
	return o
}
