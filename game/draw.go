package game

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"birdieu.dev/campus/engine"
	"birdieu.dev/campus/minigame"
	"birdieu.dev/campus/store"
	"birdieu.dev/campus/world"
)

// kindColors is the flat-color palette for room objects.
var kindColors = map[world.ObjectKind]color.RGBA{
	world.KindFloorWood:      {146, 100, 57, 255},
	world.KindFloorTile:      {203, 213, 225, 255},
	world.KindFloorStone:     {148, 163, 184, 255},
	world.KindFloorClay:      {180, 83, 9, 255},
	world.KindGrass:          {74, 122, 62, 255},
	world.KindWall:           {71, 85, 105, 255},
	world.KindBuilding:       {120, 113, 108, 255},
	world.KindWater:          {56, 132, 222, 255},
	world.KindBush:           {22, 101, 52, 255},
	world.KindFlower:         {236, 72, 153, 255},
	world.KindDesk:           {120, 80, 40, 255},
	world.KindStudyDesk:      {161, 98, 7, 255},
	world.KindChair:          {87, 63, 33, 255},
	world.KindComputer:       {30, 41, 59, 255},
	world.KindBlackboard:     {15, 52, 30, 255},
	world.KindSign:           {113, 63, 18, 255},
	world.KindGate:           {51, 65, 85, 255},
	world.KindSoccerGoal:     {226, 232, 240, 255},
	world.KindPenaltySpot:    {241, 245, 249, 255},
	world.KindFlag:           {220, 38, 38, 255},
	world.KindStadiumSeating: {100, 116, 139, 255},
	world.KindBed:            {185, 28, 28, 255},
	world.KindTree:           {34, 80, 42, 255},
	world.KindBench:          {133, 94, 54, 255},
	world.KindColumn:         {214, 211, 209, 255},
	world.KindPropLaptop:     {51, 65, 85, 255},
	world.KindPropEasel:      {161, 128, 84, 255},
	world.KindPropGlobe:      {37, 99, 235, 255},
	world.KindPropBooks:      {153, 27, 27, 255},
	world.KindPropPapers:     {241, 245, 249, 255},
	world.KindPropCoffee:     {69, 26, 3, 255},
	world.KindPropPlant:      {21, 128, 61, 255},
}

// parseHex reads a "#rrggbb" color; bad input falls back to slate gray.
func parseHex(s string) color.RGBA {
	if len(s) == 7 && s[0] == '#' {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
		}
	}
	return color.RGBA{100, 116, 139, 255}
}

func objectColor(o world.PlacedObject) color.RGBA {
	if o.Color != "" {
		return parseHex(o.Color)
	}
	if c, ok := kindColors[o.Kind]; ok {
		return c
	}
	return color.RGBA{100, 116, 139, 255}
}

// camera returns the view offset: rooms smaller than the view are centered,
// larger ones scroll clamped to the room bounds.
func (g *Game) camera() (float64, float64) {
	c := g.actor.Center()
	off := func(center, view, room float64) float64 {
		if room <= view {
			return (room - view) / 2
		}
		o := center - view/2
		if o < 0 {
			o = 0
		}
		if o > room-view {
			o = room - view
		}
		return o
	}
	return off(c.X, ViewWidth, g.room.Width), off(c.Y, ViewHeight, g.room.Height)
}

// depthEntity is anything drawn in the Y-sorted pass.
type depthEntity struct {
	bottom float64
	draw   func(dst *ebiten.Image, camX, camY float64)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	camX, camY := g.camera()

	base, ok := kindColors[g.room.Base]
	if !ok {
		base = kindColors[world.KindGrass]
	}
	if g.room.Class == world.ClassPrivate && g.self.DormConfig != nil && g.self.DormConfig.FloorColor != "" {
		base = parseHex(g.self.DormConfig.FloorColor)
	}
	screen.Fill(base)

	// Floor pass: walkable surfaces and flat decor never occlude anything.
	var entities []depthEntity
	for i := range g.room.Objects {
		o := g.room.Objects[i]
		if o.Kind.Category() == world.CategoryFloor || o.Kind.Category() == world.CategoryDecoration {
			g.drawObject(screen, o, camX, camY)
			continue
		}
		obj := o
		entities = append(entities, depthEntity{
			bottom: o.Y + o.H,
			draw: func(dst *ebiten.Image, cx, cy float64) {
				g.drawObject(dst, obj, cx, cy)
			},
		})
	}

	for i := range g.room.NPCs {
		npc := g.room.NPCs[i]
		entities = append(entities, depthEntity{
			bottom: npc.Y + world.TileSize,
			draw: func(dst *ebiten.Image, cx, cy float64) {
				g.drawAvatar(dst, npc.X-cx, npc.Y-cy, parseHex(npc.Color), npc.Name, "", "", "")
			},
		})
	}

	g.rosterMu.Lock()
	now := time.Now()
	for id, b := range g.bubbles {
		if now.After(b.until) {
			delete(g.bubbles, id)
		}
	}
	players := make([]store.Player, 0, len(g.roster))
	for id, p := range g.roster {
		if id == g.self.ID {
			continue // the local avatar renders from engine state, not the roster
		}
		players = append(players, p)
	}
	bubbles := make(map[string]string, len(g.bubbles))
	for id, b := range g.bubbles {
		bubbles[id] = b.text
	}
	errMsg := g.errMsg
	g.rosterMu.Unlock()

	seen := make(map[string]bool, len(players))
	for i := range players {
		p := players[i]
		seen[p.ID] = true
		pos := g.remoteDrawPos(p)
		entities = append(entities, depthEntity{
			bottom: pos.Y + world.TileSize,
			draw: func(dst *ebiten.Image, cx, cy float64) {
				tag := p.Emote
				if b, ok := bubbles[p.ID]; ok {
					tag = b
				}
				g.drawAvatar(dst, pos.X-cx, pos.Y-cy, parseHex(p.Color), p.Name, tag, p.Hat, p.Glasses)
			},
		})
	}
	for id := range g.remotePos {
		if !seen[id] {
			delete(g.remotePos, id)
		}
	}

	self := g.actor
	entities = append(entities, depthEntity{
		bottom: self.PixelY + world.TileSize,
		draw: func(dst *ebiten.Image, cx, cy float64) {
			tag := ""
			if b, ok := bubbles[g.self.ID]; ok {
				tag = b
			}
			g.drawAvatar(dst, self.PixelX-cx, self.PixelY-cy, parseHex(g.self.Color), g.self.Name, tag, g.self.Hat, g.self.Glasses)
		},
	})

	sort.SliceStable(entities, func(i, j int) bool { return entities[i].bottom < entities[j].bottom })
	for _, e := range entities {
		e.draw(screen, camX, camY)
	}

	g.drawHUD(screen, errMsg)
	g.drawOverlay(screen)
}

func (g *Game) drawObject(dst *ebiten.Image, o world.PlacedObject, camX, camY float64) {
	c := objectColor(o)
	if o.Kind == world.KindBed && g.room.Class == world.ClassPrivate &&
		g.self.DormConfig != nil && g.self.DormConfig.BedColor != "" {
		c = parseHex(g.self.DormConfig.BedColor)
	}
	vector.DrawFilledRect(dst,
		float32(o.X-camX), float32(o.Y-camY), float32(o.W), float32(o.H), c, false)
	if o.Label != "" && o.Label != world.DecorationLabel && o.Label != world.SprintStartLabel {
		ebitenutil.DebugPrintAt(dst, o.Label, int(o.X-camX), int(o.Y-camY)-12)
	}
}

// remoteSnapDistance is the divergence beyond which a remote avatar stops
// interpolating and teleports, mirroring the local reconcile threshold.
const remoteSnapDistance = 2 * world.TileSize

func approach(cur, target, step float64) float64 {
	switch {
	case cur < target:
		cur += step
		if cur > target {
			cur = target
		}
	case cur > target:
		cur -= step
		if cur < target {
			cur = target
		}
	}
	return cur
}

// remoteDrawPos advances the smoothed draw position of one remote avatar by
// a frame. Moving players glide toward their published destination cell at
// the engine's walk speed; large jumps and first sightings snap.
func (g *Game) remoteDrawPos(p store.Player) world.Position {
	target := world.Position{X: p.X, Y: p.Y}
	if p.Moving && p.TargetX != nil && p.TargetY != nil {
		target = world.Position{X: *p.TargetX, Y: *p.TargetY}
	}

	cur, ok := g.remotePos[p.ID]
	if !ok {
		cur = world.Position{X: p.X, Y: p.Y}
	}
	if math.Abs(cur.X-target.X)+math.Abs(cur.Y-target.Y) > remoteSnapDistance {
		g.remotePos[p.ID] = target
		return target
	}
	cur.X = approach(cur.X, target.X, engine.Speed)
	cur.Y = approach(cur.Y, target.Y, engine.Speed)
	g.remotePos[p.ID] = cur
	return cur
}

// hatColors maps hat styles to their accent color.
var hatColors = map[string]color.RGBA{
	"cap":    {37, 99, 235, 255},
	"beanie": {190, 18, 60, 255},
	"grad":   {23, 23, 23, 255},
}

// drawAvatar draws one player or NPC: a body block, a lighter head, cosmetic
// accents, the name below and an optional bubble above.
func (g *Game) drawAvatar(dst *ebiten.Image, x, y float64, c color.RGBA, name, tag, hat, glasses string) {
	vector.DrawFilledRect(dst, float32(x+6), float32(y+10), world.TileSize-12, world.TileSize-10, c, false)
	head := color.RGBA{245, 222, 179, 255}
	vector.DrawFilledRect(dst, float32(x+9), float32(y+2), world.TileSize-18, 12, head, false)
	if hc, ok := hatColors[hat]; ok {
		vector.DrawFilledRect(dst, float32(x+8), float32(y), world.TileSize-16, 4, hc, false)
	}
	if glasses != "" {
		vector.DrawFilledRect(dst, float32(x+9), float32(y+6), world.TileSize-18, 3, color.RGBA{23, 23, 23, 255}, false)
	}
	if name != "" {
		ebitenutil.DebugPrintAt(dst, name, int(x)-2, int(y)+world.TileSize)
	}
	if tag != "" {
		ebitenutil.DebugPrintAt(dst, tag, int(x)+4, int(y)-14)
	}
}

func (g *Game) drawHUD(dst *ebiten.Image, errMsg string) {
	hud := fmt.Sprintf("%s  |  Lv %d  %d XP", g.room.Name, g.self.Level, g.self.XP)
	ebitenutil.DebugPrintAt(dst, hud, 4, 2)
	if errMsg != "" {
		ebitenutil.DebugPrintAt(dst, "! "+errMsg, 4, ViewHeight-16)
	}
	if time.Now().Before(g.levelUpAt) {
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("LEVEL UP! You reached level %d", g.self.Level),
			ViewWidth/2-90, 24)
	}
}

// panel draws a dim modal backdrop with a framed box.
func panel(dst *ebiten.Image, x, y, w, h float32) {
	vector.DrawFilledRect(dst, 0, 0, ViewWidth, ViewHeight, color.RGBA{0, 0, 0, 140}, false)
	vector.DrawFilledRect(dst, x, y, w, h, color.RGBA{15, 23, 42, 235}, false)
	vector.StrokeRect(dst, x, y, w, h, 2, color.RGBA{148, 163, 184, 255}, false)
}

func (g *Game) drawOverlay(dst *ebiten.Image) {
	switch g.overlay {
	case overlayDialogue:
		panel(dst, 40, ViewHeight-90, ViewWidth-80, 70)
		ebitenutil.DebugPrintAt(dst, g.dialogueName, 50, ViewHeight-84)
		ebitenutil.DebugPrintAt(dst, g.dialogueText, 50, ViewHeight-66)
		ebitenutil.DebugPrintAt(dst, "[Enter]", ViewWidth-100, ViewHeight-36)

	case overlayStudy, overlayQuiz:
		panel(dst, 40, 30, ViewWidth-80, ViewHeight-60)
		if g.picking {
			ebitenutil.DebugPrintAt(dst, "Choose a course:", 52, 38)
			for i, name := range g.coursePick {
				cursor := "  "
				if i == g.courseSel {
					cursor = "> "
				}
				ebitenutil.DebugPrintAt(dst, cursor+name, 52, 56+i*14)
			}
			return
		}
		if g.overlay == overlayStudy {
			g.drawStudy(dst)
			return
		}
		g.drawQuiz(dst)

	case overlayPenalty:
		g.drawPenalty(dst)

	case overlaySprint:
		g.drawSprint(dst)

	case overlayProfile:
		g.drawProfile(dst)

	case overlayChat:
		panel(dst, 20, ViewHeight-50, ViewWidth-40, 30)
		ebitenutil.DebugPrintAt(dst, "say: "+string(g.chatInput)+"_", 28, ViewHeight-42)
	}
}

func (g *Game) drawStudy(dst *ebiten.Image) {
	g.rosterMu.Lock()
	text := g.studyText
	g.rosterMu.Unlock()
	if text == "" {
		ebitenutil.DebugPrintAt(dst, "Fetching study notes...", 52, 48)
		return
	}
	ebitenutil.DebugPrintAt(dst, wrap(text, 62), 52, 48)
	ebitenutil.DebugPrintAt(dst, "[Enter] close", 52, ViewHeight-48)
}

func (g *Game) drawQuiz(dst *ebiten.Image) {
	g.rosterMu.Lock()
	s := g.session
	g.rosterMu.Unlock()
	if s == nil {
		ebitenutil.DebugPrintAt(dst, "Preparing quiz...", 52, 48)
		return
	}

	ebitenutil.DebugPrintAt(dst, s.Quiz.Topic+"  ("+s.Quiz.Difficulty+")", 52, 38)
	if s.Done {
		verdict := "NEEDS STUDY"
		if s.Passed() {
			verdict = fmt.Sprintf("COMPLETE!  +%d XP", s.Quiz.XPReward)
		}
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Score: %d / %d", s.Score, len(s.Quiz.Questions)), 52, 60)
		ebitenutil.DebugPrintAt(dst, verdict, 52, 76)
		ebitenutil.DebugPrintAt(dst, "[Enter] claim", 52, ViewHeight-48)
		return
	}

	q := s.Current()
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Q%d: %s", s.Index+1, q.Prompt), 52, 58)
	for i, opt := range q.Options {
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%d) %s", i+1, opt), 60, 80+i*14)
	}
}

func (g *Game) drawPenalty(dst *ebiten.Image) {
	p := g.penalty
	if p == nil {
		return
	}
	panel(dst, 60, 40, ViewWidth-120, ViewHeight-80)
	ebitenutil.DebugPrintAt(dst, "PENALTY SHOOTOUT", ViewWidth/2-48, 48)

	// Goal mouth and keeper.
	goalX, goalW := float32(90), float32(ViewWidth-180)
	vector.StrokeRect(dst, goalX, 70, goalW, 40, 2, color.RGBA{226, 232, 240, 255}, false)
	keeperX := goalX + goalW*float32(p.KeeperPos)/100 - 6
	vector.DrawFilledRect(dst, keeperX, 76, 12, 28, color.RGBA{250, 204, 21, 255}, false)

	if p.State == minigame.StateResult {
		ebitenutil.DebugPrintAt(dst, p.Message, 90, 130)
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("+%d XP   [Enter]", p.XP), 90, 148)
		return
	}
	ebitenutil.DebugPrintAt(dst, "Hold Left/Right to aim, Space to shoot", 80, 150)
}

func (g *Game) drawSprint(dst *ebiten.Image) {
	s := g.sprint
	if s == nil {
		return
	}
	panel(dst, 60, 40, ViewWidth-120, ViewHeight-80)
	ebitenutil.DebugPrintAt(dst, "100m DASH", ViewWidth/2-30, 48)

	// Track with a progress marker.
	vector.DrawFilledRect(dst, 90, 100, ViewWidth-180, 6, color.RGBA{71, 85, 105, 255}, false)
	markerX := 90 + float32(ViewWidth-192)*float32(s.Progress)/100
	vector.DrawFilledRect(dst, markerX, 92, 12, 22, color.RGBA{34, 197, 94, 255}, false)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%.1fs", s.Elapsed), ViewWidth-120, 60)

	switch s.State {
	case minigame.StateReady:
		ebitenutil.DebugPrintAt(dst, "Press Space to start, then alternate Left/Right!", 80, 150)
	case minigame.StateResult:
		ebitenutil.DebugPrintAt(dst, s.Message, 90, 140)
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("+%d XP   [Enter]", s.XP), 90, 158)
	}
}

func (g *Game) drawProfile(dst *ebiten.Image) {
	panel(dst, 80, 40, ViewWidth-160, ViewHeight-80)
	g.rosterMu.Lock()
	p := g.viewing
	g.rosterMu.Unlock()
	if p == nil {
		ebitenutil.DebugPrintAt(dst, "Loading student record...", 92, 52)
		return
	}
	lines := []string{
		p.Name,
		p.Major + ", " + p.Year,
		fmt.Sprintf("Lv %d  %d XP", p.Level, p.XP),
		p.Bio,
		"",
		"[F] add friend   [Enter] close",
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(dst, line, 92, 52+i*14)
	}
}

// wrap breaks a string into lines of at most width characters on rune
// boundaries. DebugPrint has no wrapping of its own.
func wrap(s string, width int) string {
	out := make([]rune, 0, len(s)+8)
	col := 0
	for _, r := range s {
		if r == '\n' {
			col = 0
			out = append(out, r)
			continue
		}
		if col >= width && r == ' ' {
			out = append(out, '\n')
			col = 0
			continue
		}
		out = append(out, r)
		col++
	}
	return string(out)
}
