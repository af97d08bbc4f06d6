package learn

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"birdieu.dev/campus/world"
)

func TestTierForLevel(t *testing.T) {
	cases := []struct{ level, tier int }{
		{1, 1}, {2, 1}, {3, 2}, {5, 2}, {6, 3}, {12, 3},
	}
	for _, c := range cases {
		if got := TierForLevel(c.level); got != c.tier {
			t.Errorf("TierForLevel(%d) = %d, want %d", c.level, got, c.tier)
		}
	}
}

func TestLevelForXP(t *testing.T) {
	cases := []struct{ xp, level int }{
		{0, 1}, {99, 1}, {100, 2}, {250, 3}, {1000, 11},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.level {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.xp, got, c.level)
		}
	}
}

func TestPassingScore(t *testing.T) {
	cases := []struct{ n, pass int }{
		{5, 3}, {4, 3}, {3, 2}, {1, 1}, {10, 6},
	}
	for _, c := range cases {
		if got := PassingScore(c.n); got != c.pass {
			t.Errorf("PassingScore(%d) = %d, want %d", c.n, got, c.pass)
		}
	}
}

func TestTopicForLevelWrapsSyllabus(t *testing.T) {
	course := world.CourseByID("cs_web")
	if course == nil {
		t.Fatal("cs_web missing from catalog")
	}
	n := len(course.Syllabus)
	if TopicForLevel(course, 1) != course.Syllabus[0] {
		t.Error("level 1 should study the first syllabus topic")
	}
	if TopicForLevel(course, n) != course.Syllabus[n-1] {
		t.Error("last level before wrap should study the last topic")
	}
	if TopicForLevel(course, n+1) != course.Syllabus[0] {
		t.Error("syllabus progression should wrap around")
	}
	if TopicForLevel(nil, 3) != "" {
		t.Error("nil course has no topic")
	}
}

// failingGen always errors, emptyGen returns nothing. Both must route to the
// local bank.
type failingGen struct{}

func (failingGen) GenerateQuiz(context.Context, string, string, int) ([]Question, error) {
	return nil, errors.New("service unavailable")
}
func (failingGen) GenerateStudyNote(context.Context, string, string, int) (string, error) {
	return "", errors.New("service unavailable")
}

type emptyGen struct{}

func (emptyGen) GenerateQuiz(context.Context, string, string, int) ([]Question, error) {
	return nil, nil
}
func (emptyGen) GenerateStudyNote(context.Context, string, string, int) (string, error) {
	return "", nil
}

func TestBuildQuizFallsBackOnEmptyGeneration(t *testing.T) {
	svc := NewService(emptyGen{}, rand.NewSource(1), nil)
	quiz := svc.BuildQuiz(context.Background(), "Web Development 101", "cs", 1)

	if len(quiz.Questions) == 0 {
		t.Fatal("fallback bank should supply questions")
	}
	if len(quiz.Questions) > QuestionsPerQuiz {
		t.Errorf("quiz too long: %d questions", len(quiz.Questions))
	}
	for _, q := range quiz.Questions {
		if q.Tier != 1 {
			t.Errorf("level 1 fallback must draw tier 1 questions, got tier %d", q.Tier)
		}
	}
	if quiz.XPReward != len(quiz.Questions)*10 {
		t.Errorf("tier 1 reward should be 10 per question, got %d for %d questions",
			quiz.XPReward, len(quiz.Questions))
	}
	if quiz.Difficulty != "Easy" {
		t.Errorf("expected Easy, got %q", quiz.Difficulty)
	}
}

func TestBuildQuizFallsBackOnError(t *testing.T) {
	svc := NewService(failingGen{}, rand.NewSource(1), nil)
	quiz := svc.BuildQuiz(context.Background(), "Statistics", "math", 7)

	if len(quiz.Questions) == 0 {
		t.Fatal("fallback bank should supply questions")
	}
	for _, q := range quiz.Questions {
		if q.Tier != 3 {
			t.Errorf("level 7 fallback must draw tier 3 questions, got tier %d", q.Tier)
		}
	}
	if want := len(quiz.Questions) * 30; quiz.XPReward != want {
		t.Errorf("tier 3 reward should be 30 per question, got %d want %d", quiz.XPReward, want)
	}
	if quiz.Difficulty != "Hard" {
		t.Errorf("expected Hard, got %q", quiz.Difficulty)
	}
}

func TestBuildQuizUsesSyllabusTopic(t *testing.T) {
	svc := NewService(nil, rand.NewSource(1), nil)
	quiz := svc.BuildQuiz(context.Background(), "Calculus I", "math", 1)
	if quiz.Topic != "FUNCTIONS & LIMITS" {
		t.Errorf("expected first syllabus topic uppercased, got %q", quiz.Topic)
	}
}

func TestBuildQuizUnknownDepartmentUsesCSPool(t *testing.T) {
	svc := NewService(nil, rand.NewSource(1), nil)
	quiz := svc.BuildQuiz(context.Background(), "Mystery Course", "robotics", 1)
	if len(quiz.Questions) == 0 {
		t.Fatal("unknown departments should still get questions")
	}
}

func TestStudyNoteDegradesGracefully(t *testing.T) {
	svc := NewService(failingGen{}, nil, nil)
	note := svc.StudyNote(context.Background(), "Civics", 2)
	if note != noteErrorText {
		t.Errorf("expected canned error note, got %q", note)
	}

	svc = NewService(emptyGen{}, nil, nil)
	note = svc.StudyNote(context.Background(), "Civics", 2)
	if note != emptyNoteText {
		t.Errorf("expected canned empty note, got %q", note)
	}
}

func TestSessionScoringAndPassing(t *testing.T) {
	quiz := &Quiz{
		Topic:    "TEST",
		XPReward: 50,
		Questions: []Question{
			{Prompt: "a", Options: []string{"x", "y"}, Correct: 0, Tier: 1},
			{Prompt: "b", Options: []string{"x", "y"}, Correct: 1, Tier: 1},
			{Prompt: "c", Options: []string{"x", "y"}, Correct: 1, Tier: 1},
			{Prompt: "d", Options: []string{"x", "y"}, Correct: 0, Tier: 1},
			{Prompt: "e", Options: []string{"x", "y"}, Correct: 0, Tier: 1},
		},
	}
	s := NewSession(quiz)

	// Three correct out of five: exactly the passing score.
	s.Answer(0)
	s.Answer(1)
	s.Answer(0) // wrong
	s.Answer(0)
	if s.Done {
		t.Fatal("session finished early")
	}
	s.Answer(1) // wrong
	if !s.Done {
		t.Fatal("session should be complete after five answers")
	}
	if s.Score != 3 {
		t.Fatalf("expected score 3, got %d", s.Score)
	}
	if !s.Passed() {
		t.Error("3/5 meets the 60 percent threshold")
	}
	if s.Reward() != 50 {
		t.Errorf("pass should earn the full reward, got %d", s.Reward())
	}

	// Answers after completion are ignored.
	if s.Answer(0) {
		t.Error("answer after completion must not score")
	}
	if s.Score != 3 {
		t.Error("score changed after completion")
	}
}

func TestSessionFailEarnsNothing(t *testing.T) {
	quiz := &Quiz{
		XPReward: 100,
		Questions: []Question{
			{Correct: 0, Options: []string{"x", "y"}},
			{Correct: 0, Options: []string{"x", "y"}},
			{Correct: 0, Options: []string{"x", "y"}},
		},
	}
	s := NewSession(quiz)
	s.Answer(1)
	s.Answer(0)
	s.Answer(1)
	if s.Passed() {
		t.Error("1/3 is below the passing score of 2")
	}
	if s.Reward() != 0 {
		t.Errorf("fail should earn nothing, got %d", s.Reward())
	}
}

func TestBankCoversEveryTierPerDepartment(t *testing.T) {
	for dept, pool := range questionBank {
		seen := map[int]bool{}
		for _, q := range pool {
			seen[q.Tier] = true
			if q.Correct < 0 || q.Correct >= len(q.Options) {
				t.Errorf("%s: question %q has out-of-range answer index", dept, q.Prompt)
			}
		}
		for tier := 1; tier <= 3; tier++ {
			if !seen[tier] {
				t.Errorf("department %s has no tier %d questions", dept, tier)
			}
		}
	}
}
