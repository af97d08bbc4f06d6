package profile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"birdieu.dev/campus/world"
)

// Majors and Years are the pools new students are sorted into.
var (
	Majors = []string{"Computer Science", "Fine Arts", "History", "Mathematics", "Physics", "Biology", "Literature"}
	Years  = []string{"Freshman", "Sophomore", "Junior", "Senior"}
)

// majorDepartments maps a major to the department whose intro courses a new
// student is enrolled in. Majors without a department get the basics.
var majorDepartments = map[string]string{
	"Computer Science": "cs",
	"Mathematics":      "math",
	"Fine Arts":        "art",
	"History":          "history",
}

// DefaultEnrollment picks the starting course load for a new student: the
// first two courses of the major's department (or the campus basics), plus
// one random elective. A package variable so tests and alternative onboarding
// flows can swap the policy.
var DefaultEnrollment = func(major string, rng *rand.Rand) []string {
	var courses []string
	if dept, ok := majorDepartments[major]; ok {
		ids := world.CoursesByDepartment(dept)
		if len(ids) > 2 {
			ids = ids[:2]
		}
		courses = append(courses, ids...)
	} else {
		courses = append(courses, "cs_web", "math_calc1")
	}

	elective := world.CourseCatalog[rng.Intn(len(world.CourseCatalog))].ID
	for _, id := range courses {
		if id == elective {
			return courses
		}
	}
	return append(courses, elective)
}

type account struct {
	profile  Profile
	passHash string // empty for guests
}

// MemoryStore is an in-process profile backend for offline play and tests.
type MemoryStore struct {
	mu       sync.Mutex
	byID     map[string]*account
	byName   map[string]string // lowercased name -> id
	sessions map[string]string // token -> id
	rng      *rand.Rand
}

// NewMemoryStore creates an empty store. A nil source seeds from global
// randomness.
func NewMemoryStore(src rand.Source) *MemoryStore {
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	return &MemoryStore{
		byID:     make(map[string]*account),
		byName:   make(map[string]string),
		sessions: make(map[string]string),
		rng:      rand.New(src),
	}
}

func hashPassword(pw string) string {
	sum := sha256.Sum256([]byte(pw))
	return hex.EncodeToString(sum[:])
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (m *MemoryStore) Signup(_ context.Context, name, password, color string) (string, *Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := nameKey(name)
	if _, taken := m.byName[key]; taken && password != "" {
		return "", nil, ErrNameTaken
	}

	major := Majors[m.rng.Intn(len(Majors))]
	p := Profile{
		ID:              uuid.NewString(),
		Name:            name,
		Major:           major,
		Year:            Years[m.rng.Intn(len(Years))],
		Bio:             "Just started my journey at the Virtual Campus!",
		EnrolledCourses: DefaultEnrollment(major, m.rng),
		Friends:         []string{},
		XP:              0,
		Level:           1,
		Color:           color,
	}

	acct := &account{profile: p}
	if password != "" {
		acct.passHash = hashPassword(password)
		m.byName[key] = p.ID
	}
	m.byID[p.ID] = acct

	token := uuid.NewString()
	m.sessions[token] = p.ID
	out := p
	return token, &out, nil
}

func (m *MemoryStore) Login(_ context.Context, name, password string) (string, *Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byName[nameKey(name)]
	if !ok {
		return "", nil, ErrUserNotFound
	}
	acct := m.byID[id]
	if acct.passHash != hashPassword(password) {
		return "", nil, ErrWrongPassword
	}

	token := uuid.NewString()
	m.sessions[token] = id
	out := acct.profile
	return token, &out, nil
}

func (m *MemoryStore) Resume(_ context.Context, token string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.sessions[token]
	if !ok {
		return nil, ErrInvalidSession
	}
	out := m.byID[id].profile
	return &out, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	out := acct.profile
	return &out, nil
}

func (m *MemoryStore) GetBatch(_ context.Context, ids []string) ([]*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Profile, 0, len(ids))
	for _, id := range ids {
		acct, ok := m.byID[id]
		if !ok || acct.profile.ID == "" || acct.profile.Name == "" {
			continue
		}
		p := acct.profile
		out = append(out, &p)
	}
	return out, nil
}

func (m *MemoryStore) Apply(_ context.Context, id string, u Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	p := &acct.profile
	if u.Major != nil {
		p.Major = *u.Major
	}
	if u.Year != nil {
		p.Year = *u.Year
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.EnrolledCourses != nil {
		p.EnrolledCourses = append([]string(nil), (*u.EnrolledCourses)...)
	}
	if u.XP != nil {
		p.XP = *u.XP
	}
	if u.Level != nil {
		p.Level = *u.Level
	}
	if u.Color != nil {
		p.Color = *u.Color
	}
	if u.Hat != nil {
		p.Hat = *u.Hat
	}
	if u.Glasses != nil {
		p.Glasses = *u.Glasses
	}
	if u.DormConfig != nil {
		cfg := *u.DormConfig
		p.DormConfig = &cfg
	}
	return nil
}

func (m *MemoryStore) AddFriend(_ context.Context, id, friendID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	for _, f := range acct.profile.Friends {
		if f == friendID {
			return nil
		}
	}
	acct.profile.Friends = append(acct.profile.Friends, friendID)
	return nil
}
