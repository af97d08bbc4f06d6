package profile

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestSignupAssignsStudentRecord(t *testing.T) {
	m := NewMemoryStore(rand.NewSource(1))
	token, p, err := m.Signup(context.Background(), "Pingu", "secret", "#3b82f6")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" || p.ID == "" {
		t.Fatal("signup must issue a token and an id")
	}
	if p.XP != 0 || p.Level != 1 {
		t.Errorf("new students start at level 1 with 0 XP, got %d/%d", p.XP, p.Level)
	}
	if p.Major == "" || p.Year == "" {
		t.Error("major and year must be assigned")
	}
	if len(p.EnrolledCourses) < 2 {
		t.Errorf("expected at least two starting courses, got %v", p.EnrolledCourses)
	}
	if p.Color != "#3b82f6" {
		t.Errorf("color not stored: %q", p.Color)
	}
}

func TestDefaultEnrollmentFollowsMajor(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	courses := DefaultEnrollment("Mathematics", rng)
	if !strings.HasPrefix(courses[0], "math_") || !strings.HasPrefix(courses[1], "math_") {
		t.Errorf("math majors start with math courses, got %v", courses)
	}
	courses = DefaultEnrollment("Biology", rng)
	if courses[0] != "cs_web" || courses[1] != "math_calc1" {
		t.Errorf("majors without a department get the basics, got %v", courses)
	}
}

func TestLoginAndResume(t *testing.T) {
	m := NewMemoryStore(rand.NewSource(1))
	ctx := context.Background()
	_, created, err := m.Signup(ctx, "Pingu", "secret", "#fff")
	if err != nil {
		t.Fatal(err)
	}

	token, p, err := m.Login(ctx, "pingu", "secret")
	if err != nil {
		t.Fatalf("login is case-insensitive on name: %v", err)
	}
	if p.ID != created.ID {
		t.Error("login returned a different profile")
	}

	resumed, err := m.Resume(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if resumed.ID != created.ID {
		t.Error("resume returned a different profile")
	}

	if _, _, err := m.Login(ctx, "Pingu", "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected wrong-password, got %v", err)
	}
	if _, _, err := m.Login(ctx, "Nobody", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected user-not-found, got %v", err)
	}
	if _, err := m.Resume(ctx, "bogus"); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected invalid-session, got %v", err)
	}
}

func TestGuestAccountsDontReserveNames(t *testing.T) {
	m := NewMemoryStore(rand.NewSource(1))
	ctx := context.Background()
	if _, _, err := m.Signup(ctx, "Drifter", "", "#fff"); err != nil {
		t.Fatal(err)
	}
	// A password account can still claim the name afterwards.
	if _, _, err := m.Signup(ctx, "Drifter", "pw", "#fff"); err != nil {
		t.Fatal(err)
	}
	// But a second password account cannot.
	if _, _, err := m.Signup(ctx, "drifter", "pw2", "#fff"); !errors.Is(err, ErrNameTaken) {
		t.Errorf("expected name-taken, got %v", err)
	}
}

func TestApplyMergesPartialUpdate(t *testing.T) {
	m := NewMemoryStore(rand.NewSource(1))
	ctx := context.Background()
	_, p, _ := m.Signup(ctx, "Pingu", "", "#fff")

	bio, xp, level := "Senior thesis season.", 230, 3
	err := m.Apply(ctx, p.ID, Update{
		Bio: &bio, XP: &xp, Level: &level,
		DormConfig: &DormConfig{FloorColor: "#92400e", BedColor: "#dc2626"},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := m.Get(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bio != bio || got.XP != 230 || got.Level != 3 {
		t.Errorf("update not applied: %+v", got)
	}
	if got.Major != p.Major {
		t.Error("untouched fields must survive a partial update")
	}
	if got.DormConfig == nil || got.DormConfig.BedColor != "#dc2626" {
		t.Errorf("dorm config not stored: %+v", got.DormConfig)
	}
}

func TestAddFriendIsIdempotent(t *testing.T) {
	m := NewMemoryStore(rand.NewSource(1))
	ctx := context.Background()
	_, p, _ := m.Signup(ctx, "Pingu", "", "#fff")

	for i := 0; i < 3; i++ {
		if err := m.AddFriend(ctx, p.ID, "friend-1"); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := m.Get(ctx, p.ID)
	if len(got.Friends) != 1 {
		t.Fatalf("repeated friend-add must not duplicate, got %v", got.Friends)
	}
}

func TestGetBatchSkipsUnknownIDs(t *testing.T) {
	m := NewMemoryStore(rand.NewSource(1))
	ctx := context.Background()
	_, a, _ := m.Signup(ctx, "A", "", "#fff")
	_, b, _ := m.Signup(ctx, "B", "", "#fff")

	got, err := m.GetBatch(ctx, []string{a.ID, "missing", b.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(got))
	}

	if unknown, _ := m.Get(ctx, "missing"); unknown != nil {
		t.Error("unknown ids resolve to nil, not an error")
	}
}

func TestNormalizeAuthError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrWrongPassword, "WRONG PASSWORD"},
		{ErrUserNotFound, "USER NOT FOUND"},
		{ErrNameTaken, "NAME ALREADY IN USE"},
		{errors.New("plain network failure"), "plain network failure"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := NormalizeAuthError(c.err); got != c.want {
			t.Errorf("NormalizeAuthError(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}
