// Package learn holds the study and quiz mechanics: difficulty tiers derived
// from the player level, syllabus topic progression, XP math, and quiz
// assembly with a local fallback bank for when the content generation service
// fails or returns nothing.
package learn

import (
	"strings"

	"birdieu.dev/campus/world"
)

// QuestionsPerQuiz is how many questions a quiz session holds at most.
const QuestionsPerQuiz = 5

// TierForLevel maps a player level to a difficulty tier.
// Levels 1-2 are tier 1, levels 3-5 tier 2, level 6 and up tier 3.
func TierForLevel(level int) int {
	switch {
	case level >= 6:
		return 3
	case level >= 3:
		return 2
	default:
		return 1
	}
}

// DifficultyName is the display label for a tier.
func DifficultyName(tier int) string {
	switch tier {
	case 3:
		return "Hard"
	case 2:
		return "Medium"
	default:
		return "Easy"
	}
}

// XPPerQuestion is the reward for one question at the given tier.
func XPPerQuestion(tier int) int {
	return 10 * tier
}

// LevelForXP computes the player level from total XP. Every 100 XP is one
// level, starting at level 1.
func LevelForXP(xp int) int {
	return xp/100 + 1
}

// PassingScore is the minimum number of correct answers to pass a quiz of n
// questions: at least 60 percent, rounded up.
func PassingScore(n int) int {
	return (n*3 + 4) / 5
}

// TopicForLevel walks the course syllabus as the player levels up, wrapping
// around at the end. Courses without a syllabus study the course name itself.
func TopicForLevel(course *world.Course, level int) string {
	if course == nil || len(course.Syllabus) == 0 {
		if course != nil {
			return course.Name
		}
		return ""
	}
	if level < 1 {
		level = 1
	}
	return course.Syllabus[(level-1)%len(course.Syllabus)]
}

// NormalizeDepartment lowercases a department tag for bank lookups.
func NormalizeDepartment(dept string) string {
	return strings.ToLower(strings.TrimSpace(dept))
}
