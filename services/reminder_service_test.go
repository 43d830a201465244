package services

import (
	"testing"
	"time"

	"ims-api/models"
)

func TestDaysUntil(t *testing.T) {
	deadline := time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local)

	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local), 5},
		{time.Date(2026, 3, 14, 0, 1, 0, 0, time.Local), 1},
		{time.Date(2026, 3, 15, 18, 0, 0, 0, time.Local), 0},
		{time.Date(2026, 3, 17, 6, 0, 0, 0, time.Local), -2},
	}

	for _, tc := range cases {
		if got := DaysUntil(deadline, tc.now); got != tc.want {
			t.Fatalf("now %v: got %d days, want %d", tc.now, got, tc.want)
		}
	}
}

// A day bracketing a DST transition is 23 or 25 hours long, so the gap
// between two local midnights is not always a multiple of 24h. The day count
// must still come out as the calendar distance.
func TestDaysUntil_AcrossDstTransition(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	saved := time.Local
	time.Local = berlin
	defer func() { time.Local = saved }()

	// 2026-03-29 is the spring-forward date in Berlin: this span covers
	// 5 calendar days but only 119 hours.
	now := time.Date(2026, 3, 27, 10, 0, 0, 0, berlin)
	deadline := time.Date(2026, 4, 1, 10, 0, 0, 0, berlin)

	if got := DaysUntil(deadline, now); got != 5 {
		t.Fatalf("got %d days, want 5", got)
	}
	if !MatchesReminderOffset(deadline, now) {
		t.Fatal("5-day offset must match across the transition")
	}

	// Fall-back direction: 2026-10-25 gives a 25-hour day.
	now = time.Date(2026, 10, 24, 10, 0, 0, 0, berlin)
	deadline = time.Date(2026, 10, 26, 10, 0, 0, 0, berlin)
	if got := DaysUntil(deadline, now); got != 2 {
		t.Fatalf("got %d days across fall-back, want 2", got)
	}
}

// Matching works at day granularity, so the time of day on either side must
// not affect the outcome.
func TestMatchesReminderOffset(t *testing.T) {
	deadline := time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local)

	cases := []struct {
		daysBefore int
		want       bool
	}{
		{7, false},
		{5, true},
		{4, false},
		{3, false},
		{2, true},
		{1, true},
		{0, false},
		{-1, false},
	}

	for _, tc := range cases {
		for _, hour := range []int{0, 11, 23} {
			now := time.Date(2026, 3, 15-tc.daysBefore, hour, 30, 0, 0, time.Local)
			if got := MatchesReminderOffset(deadline, now); got != tc.want {
				t.Fatalf("%d days before at hour %d: got %v, want %v", tc.daysBefore, hour, got, tc.want)
			}
		}
	}
}

// Every pending item lands in its assignee's bucket exactly once, in creation
// order, so each recipient can be sent a single digest email per run.
func TestGroupTodosByAssignee(t *testing.T) {
	todos := []models.Todo{
		{TodoID: 1, AssignedTo: "supervisor@univ.edu", Title: "Review proposal #1"},
		{TodoID: 2, AssignedTo: "drc@univ.edu", Title: "Review proposal #2"},
		{TodoID: 3, AssignedTo: "supervisor@univ.edu", Title: "Review pre-submission #3"},
		{TodoID: 4, AssignedTo: "supervisor@univ.edu", Title: "Review draft notice #4"},
	}

	grouped := GroupTodosByAssignee(todos)
	if len(grouped) != 2 {
		t.Fatalf("got %d recipients, want 2", len(grouped))
	}

	supervisor := grouped["supervisor@univ.edu"]
	if len(supervisor) != 3 {
		t.Fatalf("supervisor bucket: got %d items, want 3", len(supervisor))
	}
	for i, wantID := range []int{1, 3, 4} {
		if supervisor[i].TodoID != wantID {
			t.Fatalf("supervisor bucket order: item %d is todo %d, want %d", i, supervisor[i].TodoID, wantID)
		}
	}

	if len(grouped["drc@univ.edu"]) != 1 {
		t.Fatalf("drc bucket: got %d items, want 1", len(grouped["drc@univ.edu"]))
	}

	total := 0
	for _, bucket := range grouped {
		total += len(bucket)
	}
	if total != len(todos) {
		t.Fatalf("items lost or duplicated: %d grouped, %d input", total, len(todos))
	}
}

func TestGroupTodosByAssignee_Empty(t *testing.T) {
	if grouped := GroupTodosByAssignee(nil); len(grouped) != 0 {
		t.Fatalf("empty input produced %d buckets", len(grouped))
	}
}

func TestSortedKeys(t *testing.T) {
	m := map[string][]int{"c": nil, "a": nil, "b": nil}
	keys := sortedKeys(m)
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Fatalf("got %v, want [a b c]", keys)
	}
}
