package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"ims-api/models"
)

func TestAllDacApproved(t *testing.T) {
	members := []models.DacMember{
		{Email: "a@univ.edu", Approved: true},
		{Email: "b@univ.edu", Approved: false},
		{Email: "c@univ.edu", Approved: false},
	}

	// b approving still leaves c pending.
	if allDacApproved(members, "b@univ.edu") {
		t.Fatal("approval must not complete while another member is pending")
	}

	members[1].Approved = true
	// c is the last pending member; their approval completes the stage.
	if !allDacApproved(members, "c@univ.edu") {
		t.Fatal("last member's approval must complete the stage")
	}

	// Matching is case-insensitive on the acting email.
	if !allDacApproved(members, "  C@Univ.EDU ") {
		t.Fatal("email matching must ignore case and whitespace")
	}
}

func TestAllDacApproved_SingleMember(t *testing.T) {
	members := []models.DacMember{{Email: "solo@univ.edu", Approved: false}}
	if !allDacApproved(members, "solo@univ.edu") {
		t.Fatal("a sole member's approval completes the stage")
	}
}

// loadRequestSteps scripts the three statements Apply issues to load a
// request: the row itself, then the DAC member and semester preloads.
// No semester row is returned, so the deadline gate stays out of play.
func loadRequestSteps(id int64, requestType, status, student, supervisor string, version int64) []*sqlStep {
	return []*sqlStep{
		{
			kind:    stmtQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .phd_requests. WHERE request_id = \?`),
			args:    []driver.Value{id},
			columns: []string{"request_id", "request_type", "status", "title", "student_email", "supervisor_email", "semester_id", "version"},
			rows: [][]driver.Value{
				{id, requestType, status, "Graph mining for citation networks", student, supervisor, int64(1), version},
			},
		},
		{
			kind:    stmtQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .dac_members. WHERE`),
			columns: []string{"dac_member_id", "request_id", "email", "approved"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    stmtQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .proposal_semesters. WHERE`),
			columns: []string{"semester_id"},
			rows:    [][]driver.Value{},
		},
	}
}

func TestApplyRejectsConcurrentStatusChange(t *testing.T) {
	steps := loadRequestSteps(7, RequestTypeProposal, string(StatusDraft), "nok@univ.edu", "somchai@univ.edu", 3)
	// The version guard on the status update matches zero rows when another
	// decision landed first; Apply must roll back and report the conflict.
	steps = append(steps, &sqlStep{
		kind:    stmtExec,
		pattern: regexp.MustCompile(`UPDATE .phd_requests. SET .* WHERE request_id = \? AND version = \?`),
		result:  execOutcome{affected: 0},
	})

	db, script, cleanup := openScriptedDB(t, steps)
	defer cleanup()

	svc := NewTransitionService(db)
	_, err := svc.Apply(TransitionInput{
		RequestID:  7,
		ActorEmail: "nok@univ.edu",
		Role:       RoleStudent,
		Decision:   DecisionSubmit,
		Now:        time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
	})

	var we *WorkflowError
	if !errors.As(err, &we) || we.Kind != ErrKindStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if err := script.expectationsMet(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestApplyRequiresCommentsOnRevert(t *testing.T) {
	steps := loadRequestSteps(12, RequestTypeProposal, string(StatusSupervisorReview), "nok@univ.edu", "somchai@univ.edu", 1)

	db, script, cleanup := openScriptedDB(t, steps)
	defer cleanup()

	svc := NewTransitionService(db)
	_, err := svc.Apply(TransitionInput{
		RequestID:  12,
		ActorEmail: "somchai@univ.edu",
		Role:       RoleSupervisor,
		Decision:   DecisionRevert,
		Comments:   "   ",
		Now:        time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
	})

	var we *WorkflowError
	if !errors.As(err, &we) || we.Kind != ErrKindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	// The rejection happens before the transaction opens, so nothing beyond
	// the load is issued.
	if err := script.expectationsMet(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestApplyReturnsNotFoundForUnknownRequest(t *testing.T) {
	steps := []*sqlStep{
		{
			kind:    stmtQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .phd_requests. WHERE request_id = \?`),
			args:    []driver.Value{int64(404)},
			columns: []string{"request_id"},
			rows:    [][]driver.Value{},
		},
	}

	db, script, cleanup := openScriptedDB(t, steps)
	defer cleanup()

	svc := NewTransitionService(db)
	_, err := svc.Apply(TransitionInput{
		RequestID:  404,
		ActorEmail: "nok@univ.edu",
		Role:       RoleStudent,
		Decision:   DecisionSubmit,
		Now:        time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
	})

	var we *WorkflowError
	if !errors.As(err, &we) || we.Kind != ErrKindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := script.expectationsMet(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestTodoTitle(t *testing.T) {
	cases := []struct {
		stage    Status
		contains string
	}{
		{StatusDraft, "Revise and resubmit"},
		{StatusSupervisorReview, "Review proposal from"},
		{StatusDrcReview, "DRC review"},
		{StatusDacReview, "DAC review"},
		{StatusDacAccepted, "Schedule seminar"},
		{StatusSeminarPending, "Confirm seminar"},
		{StatusFinalisingDocuments, "Finalize documents"},
	}

	for _, tc := range cases {
		title := todoTitle(RequestTypeProposal, tc.stage, "student@univ.edu")
		if !strings.Contains(title, tc.contains) {
			t.Fatalf("stage %s: title %q missing %q", tc.stage, title, tc.contains)
		}
	}
}
