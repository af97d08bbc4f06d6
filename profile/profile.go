// Package profile is the identity and student-record layer: guest and
// password accounts, session resumption, and the persistent per-player
// document (major, year, XP, courses, friends, cosmetics, dorm decor).
package profile

import (
	"context"
	"errors"
	"strings"
)

// DormConfig is the player's private room decor.
type DormConfig struct {
	FloorColor string `json:"floorColor"`
	BedColor   string `json:"bedColor"`
}

// Profile is one student record.
type Profile struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Major           string      `json:"major"`
	Year            string      `json:"year"`
	Bio             string      `json:"bio"`
	EnrolledCourses []string    `json:"enrolledCourses"`
	Friends         []string    `json:"friends"`
	XP              int         `json:"xp"`
	Level           int         `json:"level"`
	Color           string      `json:"color,omitempty"`
	Hat             string      `json:"hat,omitempty"`
	Glasses         string      `json:"glasses,omitempty"`
	DormConfig      *DormConfig `json:"dormConfig,omitempty"`
}

// Update is a partial write against a profile. Nil fields are untouched.
type Update struct {
	Major           *string
	Year            *string
	Bio             *string
	EnrolledCourses *[]string
	XP              *int
	Level           *int
	Color           *string
	Hat             *string
	Glasses         *string
	DormConfig      *DormConfig
}

// Auth failures carry provider-style codes that NormalizeAuthError strips
// down for display.
var (
	ErrNameTaken      = errors.New("auth/name-already-in-use")
	ErrWrongPassword  = errors.New("auth/wrong-password")
	ErrUserNotFound   = errors.New("auth/user-not-found")
	ErrInvalidSession = errors.New("auth/invalid-session")
)

// Store is the identity and profile backend.
type Store interface {
	// Signup creates a guest account (empty password) or a password account
	// and returns a session token with the fresh profile.
	Signup(ctx context.Context, name, password, color string) (token string, p *Profile, err error)

	// Login authenticates a password account.
	Login(ctx context.Context, name, password string) (token string, p *Profile, err error)

	// Resume restores the session behind a previously issued token.
	Resume(ctx context.Context, token string) (*Profile, error)

	// Get returns a profile, or nil when the id is unknown.
	Get(ctx context.Context, id string) (*Profile, error)

	// GetBatch returns the profiles for the given ids, silently skipping
	// unknown or malformed entries.
	GetBatch(ctx context.Context, ids []string) ([]*Profile, error)

	// Apply merges a partial update into a profile.
	Apply(ctx context.Context, id string, u Update) error

	// AddFriend is idempotent: adding an existing friend changes nothing.
	AddFriend(ctx context.Context, id, friendID string) error
}

// NormalizeAuthError turns a provider-flavored auth failure into a short
// uppercase phrase for the login screen. Messages without a provider code
// pass through unchanged.
func NormalizeAuthError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	i := strings.Index(msg, "auth/")
	if i < 0 {
		return msg
	}
	code := msg[i+len("auth/"):]
	if j := strings.IndexAny(code, " :)"); j >= 0 {
		code = code[:j]
	}
	return strings.ToUpper(strings.ReplaceAll(code, "-", " "))
}
