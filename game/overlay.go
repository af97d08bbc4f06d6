package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"birdieu.dev/campus/interact"
	"birdieu.dev/campus/learn"
	"birdieu.dev/campus/minigame"
	"birdieu.dev/campus/world"
)

// frameSeconds is the tick length the sprint clock advances by.
const frameSeconds = 1.0 / 60.0

// coursesForDepartment offers the player's enrolled courses in a department,
// or the whole departmental catalog when nothing matches.
func (g *Game) coursesForDepartment(dept string) []string {
	var names []string
	for _, id := range g.self.EnrolledCourses {
		c := world.CourseByID(id)
		if c != nil && (c.Department == dept || dept == "general") {
			names = append(names, c.Name)
		}
	}
	if len(names) == 0 {
		for _, id := range world.CoursesByDepartment(dept) {
			if c := world.CourseByID(id); c != nil {
				names = append(names, c.Name)
			}
		}
	}
	if len(names) == 0 {
		for i := range world.CourseCatalog {
			names = append(names, world.CourseCatalog[i].Name)
		}
	}
	return names
}

// The overlay field and the async result fields (studyText, session, viewing)
// are read by the goroutines spawned below, so every write to them goes
// through rosterMu.

func (g *Game) openStudy(dept string) {
	g.rosterMu.Lock()
	g.department = dept
	g.coursePick = g.coursesForDepartment(dept)
	g.courseSel = 0
	g.picking = true
	g.studyText = ""
	g.overlay = overlayStudy
	g.rosterMu.Unlock()
}

func (g *Game) openQuiz(subject string) {
	g.rosterMu.Lock()
	g.department = subject
	g.quizSubject = subject
	g.coursePick = g.coursesForDepartment(subject)
	g.courseSel = 0
	g.picking = true
	g.session = nil
	g.overlay = overlayQuiz
	g.rosterMu.Unlock()
}

func (g *Game) openDialogue(npc world.NPC, line string) {
	g.rosterMu.Lock()
	g.dialogueName = npc.Name
	g.dialogueText = line
	g.overlay = overlayDialogue
	g.rosterMu.Unlock()
}

func (g *Game) openProfile(playerID string) {
	g.rosterMu.Lock()
	g.viewing = nil
	g.overlay = overlayProfile
	g.rosterMu.Unlock()
	go func() {
		p, err := g.deps.Profiles.Get(context.Background(), playerID)
		if err != nil {
			g.log.Warn("profile fetch failed", zap.String("player", playerID), zap.Error(err))
			return
		}
		g.rosterMu.Lock()
		if g.overlay == overlayProfile {
			g.viewing = p
		}
		g.rosterMu.Unlock()
	}()
}

func (g *Game) openMinigame(kind interact.MinigameKind) {
	g.rosterMu.Lock()
	switch kind {
	case interact.MinigamePenalty:
		g.penalty = minigame.NewPenalty(rand.NewSource(time.Now().UnixNano()))
		g.overlay = overlayPenalty
	case interact.MinigameSprint:
		g.sprint = minigame.NewSprint()
		g.overlay = overlaySprint
	}
	g.rosterMu.Unlock()
}

func (g *Game) closeOverlay() {
	g.rosterMu.Lock()
	g.overlay = overlayNone
	g.session = nil
	g.penalty = nil
	g.sprint = nil
	g.viewing = nil
	g.picking = false
	g.rosterMu.Unlock()
}

// startContent resolves the picked course into a study note or quiz session.
func (g *Game) startContent(courseName string, quiz bool) {
	g.rosterMu.Lock()
	g.picking = false
	g.rosterMu.Unlock()
	dept := g.department
	level := g.self.Level
	if quiz {
		go func() {
			q := g.deps.Learn.BuildQuiz(context.Background(), courseName, dept, level)
			g.rosterMu.Lock()
			if g.overlay == overlayQuiz {
				g.session = learn.NewSession(q)
			}
			g.rosterMu.Unlock()
		}()
		return
	}
	go func() {
		note := g.deps.Learn.StudyNote(context.Background(), courseName, level)
		g.rosterMu.Lock()
		if g.overlay == overlayStudy {
			g.studyText = note
		}
		g.rosterMu.Unlock()
	}()
}

// updateOverlay consumes all input while a modal surface is open.
func (g *Game) updateOverlay() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.closeOverlay()
		return
	}

	switch g.overlay {
	case overlayDialogue:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.closeOverlay()
		}

	case overlayStudy, overlayQuiz:
		if g.picking {
			g.updateCoursePick()
			return
		}
		if g.overlay == overlayQuiz {
			g.updateQuiz()
			return
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.closeOverlay()
		}

	case overlayPenalty:
		g.updatePenalty()

	case overlaySprint:
		g.updateSprint()

	case overlayProfile:
		if inpututil.IsKeyJustPressed(ebiten.KeyF) {
			g.rosterMu.Lock()
			target := g.viewing
			g.rosterMu.Unlock()
			if target != nil {
				id := target.ID
				go func() {
					if err := g.deps.Profiles.AddFriend(context.Background(), g.self.ID, id); err != nil {
						g.log.Warn("friend add failed", zap.Error(err))
					}
				}()
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.closeOverlay()
		}

	case overlayChat:
		g.updateChatInput()
	}
}

func (g *Game) updateCoursePick() {
	if len(g.coursePick) == 0 {
		g.closeOverlay()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.courseSel = (g.courseSel + len(g.coursePick) - 1) % len(g.coursePick)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.courseSel = (g.courseSel + 1) % len(g.coursePick)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.startContent(g.coursePick[g.courseSel], g.overlay == overlayQuiz)
	}
}

// answerKeys maps the four option keys to option indexes.
var answerKeys = [4]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

func (g *Game) updateQuiz() {
	g.rosterMu.Lock()
	s := g.session
	g.rosterMu.Unlock()
	if s == nil {
		return // still assembling
	}

	if s.Done {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.awardXP(s.Reward())
			g.closeOverlay()
		}
		return
	}
	for i, key := range answerKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.Answer(i)
			return
		}
	}
}

func (g *Game) updatePenalty() {
	p := g.penalty
	if p == nil {
		g.closeOverlay()
		return
	}
	p.Tick()

	if p.State == minigame.StateResult {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.awardXP(p.XP)
			g.closeOverlay()
		}
		return
	}

	aim := minigame.AimCenter
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		aim = minigame.AimLeft
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		aim = minigame.AimRight
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.Kick(aim)
	}
}

func (g *Game) updateSprint() {
	s := g.sprint
	if s == nil {
		g.closeOverlay()
		return
	}

	switch s.State {
	case minigame.StateReady:
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.Start()
		}
	case minigame.StatePlaying:
		s.Tick(frameSeconds)
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
			s.Tap(minigame.SideLeft)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
			s.Tap(minigame.SideRight)
		}
	case minigame.StateResult:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.awardXP(s.XP)
			g.closeOverlay()
		}
	}
}

func (g *Game) updateChatInput() {
	for _, r := range ebiten.AppendInputChars(nil) {
		if len(g.chatInput) < 120 {
			g.chatInput = append(g.chatInput, r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.chatInput) > 0 {
		g.chatInput = g.chatInput[:len(g.chatInput)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if len(g.chatInput) > 0 {
			g.deps.Sync.SendChat(string(g.chatInput))
		}
		g.chatInput = g.chatInput[:0]
		g.closeOverlay()
	}
}
