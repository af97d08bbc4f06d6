package learn

import (
	"context"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"birdieu.dev/campus/world"
)

// Question is one multiple-choice quiz question. Correct indexes into Options.
type Question struct {
	Prompt  string
	Options []string
	Correct int
	Tier    int
}

// Quiz is an assembled question set ready to be taken.
type Quiz struct {
	Topic      string
	Questions  []Question
	XPReward   int
	Difficulty string
}

// Generator produces quiz questions and study notes from an external content
// service. Implementations must be treated as unreliable: errors and empty
// results are expected and routed to the local fallback.
type Generator interface {
	GenerateQuiz(ctx context.Context, course, topic string, level int) ([]Question, error)
	GenerateStudyNote(ctx context.Context, course, topic string, level int) (string, error)
}

// Fallback texts shown when the study note service is unavailable.
const (
	emptyNoteText = "You stare at the books, but nothing seems to make sense right now."
	noteErrorText = "The library archives are currently inaccessible. Try again later."
)

// Service assembles study and quiz content. A nil Generator means offline
// mode: every request is served from the local bank.
type Service struct {
	gen Generator
	rng *rand.Rand
	log *zap.Logger
}

// NewService wires a content service with the given generator. Pass a nil
// source to use global randomness.
func NewService(gen Generator, src rand.Source, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{gen: gen, log: log}
	if src != nil {
		s.rng = rand.New(src)
	}
	return s
}

func (s *Service) shuffle(qs []Question) {
	swap := func(i, j int) { qs[i], qs[j] = qs[j], qs[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(qs), swap)
	} else {
		rand.Shuffle(len(qs), swap)
	}
}

// BuildQuiz assembles a quiz for the given course and level. Generated
// questions are preferred; a failing or empty generation falls back to the
// local bank keyed by department and tier. The reward per question always
// follows the tier table, whichever path produced the questions.
func (s *Service) BuildQuiz(ctx context.Context, courseName, department string, level int) *Quiz {
	tier := TierForLevel(level)
	topic := TopicForLevel(world.CourseByName(courseName), level)
	if topic == "" {
		topic = courseName
	}

	var questions []Question
	if s.gen != nil {
		var err error
		questions, err = s.gen.GenerateQuiz(ctx, courseName, topic, level)
		if err != nil {
			s.log.Warn("quiz generation failed, using local bank",
				zap.String("course", courseName), zap.Error(err))
			questions = nil
		}
	}
	if len(questions) == 0 {
		questions = s.fallbackQuestions(department, tier)
	}
	if len(questions) > QuestionsPerQuiz {
		questions = questions[:QuestionsPerQuiz]
	}

	return &Quiz{
		Topic:      strings.ToUpper(topic),
		Questions:  questions,
		XPReward:   len(questions) * XPPerQuestion(tier),
		Difficulty: DifficultyName(tier),
	}
}

// StudyNote fetches study material for the given course and level. Service
// failures degrade to a canned line instead of an error so the study flow
// always has something to show.
func (s *Service) StudyNote(ctx context.Context, courseName string, level int) string {
	topic := TopicForLevel(world.CourseByName(courseName), level)
	if topic == "" {
		topic = courseName
	}
	if s.gen == nil {
		return emptyNoteText
	}
	note, err := s.gen.GenerateStudyNote(ctx, courseName, topic, level)
	if err != nil {
		s.log.Warn("study note generation failed",
			zap.String("course", courseName), zap.Error(err))
		return noteErrorText
	}
	if note == "" {
		return emptyNoteText
	}
	return note
}

// fallbackQuestions draws up to QuestionsPerQuiz bank questions matching the
// department and tier, in random order.
func (s *Service) fallbackQuestions(department string, tier int) []Question {
	pool := questionBank[NormalizeDepartment(department)]
	if pool == nil {
		pool = questionBank["cs"]
	}
	var eligible []Question
	for _, q := range pool {
		if q.Tier == tier {
			eligible = append(eligible, q)
		}
	}
	s.shuffle(eligible)
	if len(eligible) > QuestionsPerQuiz {
		eligible = eligible[:QuestionsPerQuiz]
	}
	return eligible
}

// Session tracks progress through one quiz attempt.
type Session struct {
	Quiz  *Quiz
	Index int
	Score int
	Done  bool
}

// NewSession starts an attempt at the given quiz.
func NewSession(q *Quiz) *Session {
	return &Session{Quiz: q}
}

// Answer records the player's choice for the current question and advances.
// Returns whether the choice was correct. Answers after completion are
// ignored.
func (s *Session) Answer(option int) bool {
	if s.Done || s.Index >= len(s.Quiz.Questions) {
		return false
	}
	correct := option == s.Quiz.Questions[s.Index].Correct
	if correct {
		s.Score++
	}
	s.Index++
	if s.Index >= len(s.Quiz.Questions) {
		s.Done = true
	}
	return correct
}

// Current returns the question awaiting an answer, or nil once the session is
// complete.
func (s *Session) Current() *Question {
	if s.Done || s.Index >= len(s.Quiz.Questions) {
		return nil
	}
	return &s.Quiz.Questions[s.Index]
}

// Passed reports whether the finished session met the passing score.
func (s *Session) Passed() bool {
	return s.Score >= PassingScore(len(s.Quiz.Questions))
}

// Reward returns the XP earned by this session: the full quiz reward on a
// pass, nothing otherwise.
func (s *Session) Reward() int {
	if s.Done && s.Passed() {
		return s.Quiz.XPReward
	}
	return 0
}
