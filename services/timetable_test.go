package services

import (
	"testing"

	"ims-api/models"
)

func exam(id int, student, examiner string) models.QualifyingExam {
	return models.QualifyingExam{ExamID: id, StudentEmail: student, ExaminerEmail: examiner}
}

func TestAssignSessions_AvoidsClashesWhenPossible(t *testing.T) {
	// Two exams per student, one shared examiner. Two sessions suffice.
	exams := []models.QualifyingExam{
		exam(1, "alice@univ.edu", "prof.x@univ.edu"),
		exam(2, "alice@univ.edu", "prof.y@univ.edu"),
		exam(3, "bob@univ.edu", "prof.x@univ.edu"),
		exam(4, "bob@univ.edu", "prof.y@univ.edu"),
	}

	assignments, clashes := AssignSessions(exams, 2)
	if clashes != 0 {
		t.Fatalf("got %d clashes, want 0", clashes)
	}
	if len(assignments) != len(exams) {
		t.Fatalf("got %d assignments, want %d", len(assignments), len(exams))
	}

	byID := make(map[int]int, len(assignments))
	for _, a := range assignments {
		if a.Session < 1 || a.Session > 2 {
			t.Fatalf("exam %d placed in session %d, want 1..2", a.ExamID, a.Session)
		}
		byID[a.ExamID] = a.Session
	}
	if byID[1] == byID[2] {
		t.Fatal("alice's exams share a session")
	}
	if byID[3] == byID[4] {
		t.Fatal("bob's exams share a session")
	}
	if byID[1] == byID[3] {
		t.Fatal("prof.x's exams share a session")
	}
}

func TestAssignSessions_CountsUnavoidableClashes(t *testing.T) {
	// Three exams for the same student forced into two sessions: one clash
	// cannot be avoided.
	exams := []models.QualifyingExam{
		exam(1, "alice@univ.edu", "prof.x@univ.edu"),
		exam(2, "alice@univ.edu", "prof.y@univ.edu"),
		exam(3, "alice@univ.edu", "prof.z@univ.edu"),
	}

	assignments, clashes := AssignSessions(exams, 2)
	if len(assignments) != 3 {
		t.Fatalf("got %d assignments, want 3", len(assignments))
	}
	if clashes != 1 {
		t.Fatalf("got %d clashes, want 1", clashes)
	}
}

func TestAssignSessions_EveryExamAssignedOnce(t *testing.T) {
	exams := []models.QualifyingExam{
		exam(1, "a@univ.edu", "x@univ.edu"),
		exam(2, "b@univ.edu", "x@univ.edu"),
		exam(3, "c@univ.edu", "y@univ.edu"),
		exam(4, "a@univ.edu", "y@univ.edu"),
		exam(5, "d@univ.edu", "z@univ.edu"),
	}

	assignments, _ := AssignSessions(exams, 3)
	seen := make(map[int]bool, len(assignments))
	for _, a := range assignments {
		if seen[a.ExamID] {
			t.Fatalf("exam %d assigned twice", a.ExamID)
		}
		seen[a.ExamID] = true
	}
	for _, e := range exams {
		if !seen[e.ExamID] {
			t.Fatalf("exam %d never assigned", e.ExamID)
		}
	}
}

func TestAssignSessions_DegenerateInputs(t *testing.T) {
	if got, clashes := AssignSessions(nil, 3); got != nil || clashes != 0 {
		t.Fatalf("no exams: got %v, %d", got, clashes)
	}
	exams := []models.QualifyingExam{exam(1, "a@univ.edu", "x@univ.edu")}
	if got, clashes := AssignSessions(exams, 0); got != nil || clashes != 0 {
		t.Fatalf("zero sessions: got %v, %d", got, clashes)
	}
}
