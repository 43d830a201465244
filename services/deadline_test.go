package services

import (
	"testing"
	"time"

	"ims-api/models"
)

func TestIsDeadlinePassed(t *testing.T) {
	deadline := time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local)

	if IsDeadlinePassed(deadline, deadline.Add(-time.Minute)) {
		t.Fatal("deadline must not be passed one minute before")
	}
	if IsDeadlinePassed(deadline, deadline) {
		t.Fatal("deadline must not be passed at the exact instant")
	}
	if !IsDeadlinePassed(deadline, deadline.Add(time.Minute)) {
		t.Fatal("deadline must be passed one minute after")
	}
}

// Once a deadline has passed it stays passed: advancing the clock never flips
// the check back to open.
func TestIsDeadlinePassed_MonotoneInTime(t *testing.T) {
	deadline := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)
	now := deadline.Add(time.Second)

	for i := 0; i < 10; i++ {
		if !IsDeadlinePassed(deadline, now) {
			t.Fatalf("deadline reopened at %v", now)
		}
		now = now.Add(37 * time.Hour)
	}
}

func TestStageDeadline(t *testing.T) {
	semester := &models.ProposalSemester{
		StudentSubmissionDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local),
		FacultyReviewDate:     time.Date(2026, 2, 15, 0, 0, 0, 0, time.Local),
		DrcReviewDate:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local),
		DacReviewDate:         time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local),
	}

	cases := []struct {
		status Status
		want   *time.Time
	}{
		{StatusDraft, &semester.StudentSubmissionDate},
		{StatusSupervisorReview, &semester.FacultyReviewDate},
		{StatusDrcReview, &semester.DrcReviewDate},
		{StatusDacReview, &semester.DacReviewDate},
		{StatusDacAccepted, nil},
		{StatusSeminarPending, nil},
		{StatusFinalisingDocuments, nil},
		{StatusCompleted, nil},
	}

	for _, tc := range cases {
		got := StageDeadline(semester, tc.status)
		if tc.want == nil {
			if got != nil {
				t.Fatalf("status %s: expected no deadline, got %v", tc.status, *got)
			}
			continue
		}
		if got == nil || !got.Equal(*tc.want) {
			t.Fatalf("status %s: got %v, want %v", tc.status, got, *tc.want)
		}
	}
}

func TestStageDeadline_NilSemester(t *testing.T) {
	if got := StageDeadline(nil, StatusDraft); got != nil {
		t.Fatalf("nil semester must yield no deadline, got %v", *got)
	}
}
