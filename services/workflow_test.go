package services

import (
	"errors"
	"testing"
)

func TestResolveTransition_ProposalHappyPath(t *testing.T) {
	steps := []struct {
		from     Status
		role     RoleKind
		decision Decision
		want     Status
	}{
		{StatusDraft, RoleStudent, DecisionSubmit, StatusSupervisorReview},
		{StatusSupervisorReview, RoleSupervisor, DecisionAccept, StatusDrcReview},
		{StatusDrcReview, RoleDrcConvener, DecisionAccept, StatusDacReview},
		{StatusDacReview, RoleDacMember, DecisionApprove, StatusDacAccepted},
		{StatusDacAccepted, RoleDrcConvener, DecisionAccept, StatusSeminarPending},
		{StatusSeminarPending, RoleDrcConvener, DecisionAccept, StatusFinalisingDocuments},
		{StatusFinalisingDocuments, RoleStaff, DecisionAccept, StatusCompleted},
	}

	for _, step := range steps {
		got, err := ResolveTransition(RequestTypeProposal, step.from, step.role, step.decision)
		if err != nil {
			t.Fatalf("%s by %s from %s: unexpected error %v", step.decision, step.role, step.from, err)
		}
		if got != step.want {
			t.Fatalf("%s by %s from %s: got %s, want %s", step.decision, step.role, step.from, got, step.want)
		}
	}
}

func TestResolveTransition_IllegalEdgesFailClosed(t *testing.T) {
	cases := []struct {
		name     string
		from     Status
		role     RoleKind
		decision Decision
	}{
		{"student cannot accept own draft", StatusDraft, RoleStudent, DecisionAccept},
		{"student cannot act at supervisor stage", StatusSupervisorReview, RoleStudent, DecisionSubmit},
		{"supervisor cannot skip DRC", StatusSupervisorReview, RoleSupervisor, DecisionApprove},
		{"DRC cannot approve at DAC stage", StatusDacReview, RoleDrcConvener, DecisionApprove},
		{"staff cannot accept before finalisation", StatusSeminarPending, RoleStaff, DecisionAccept},
		{"nothing leaves completed", StatusCompleted, RoleStaff, DecisionAccept},
		{"no revert after DAC acceptance", StatusDacAccepted, RoleDrcConvener, DecisionRevert},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveTransition(RequestTypeProposal, tc.from, tc.role, tc.decision)
			if err == nil {
				t.Fatalf("expected error for %s by %s from %s", tc.decision, tc.role, tc.from)
			}
			var we *WorkflowError
			if !errors.As(err, &we) || we.Kind != ErrKindStateConflict {
				t.Fatalf("expected state conflict, got %v", err)
			}
		})
	}
}

func TestResolveTransition_UnknownRequestType(t *testing.T) {
	_, err := ResolveTransition("masters_proposal", StatusDraft, RoleStudent, DecisionSubmit)
	if err == nil {
		t.Fatal("expected error for unknown request type")
	}
	var we *WorkflowError
	if !errors.As(err, &we) || we.Kind != ErrKindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// Reverts from every review stage land back in draft, and the only way out of
// draft is a fresh student submission into supervisor review. A request
// reverted at DAC review therefore restarts at stage one, not at DAC.
func TestRevertAlwaysRestartsFromFirstStage(t *testing.T) {
	reverts := []struct {
		from Status
		role RoleKind
	}{
		{StatusSupervisorReview, RoleSupervisor},
		{StatusDrcReview, RoleDrcConvener},
		{StatusDacReview, RoleDacMember},
	}

	for _, rv := range reverts {
		got, err := ResolveTransition(RequestTypeProposal, rv.from, rv.role, DecisionRevert)
		if err != nil {
			t.Fatalf("revert by %s from %s: %v", rv.role, rv.from, err)
		}
		if got != StatusDraft {
			t.Fatalf("revert by %s from %s: got %s, want %s", rv.role, rv.from, got, StatusDraft)
		}

		// Resubmission from the reverted draft.
		next, err := ResolveTransition(RequestTypeProposal, got, RoleStudent, DecisionSubmit)
		if err != nil {
			t.Fatalf("resubmit after revert from %s: %v", rv.from, err)
		}
		if next != StatusSupervisorReview {
			t.Fatalf("resubmit after revert from %s: got %s, want %s", rv.from, next, StatusSupervisorReview)
		}

		// And there must be no shortcut from draft back to the reverting stage.
		for _, decision := range []Decision{DecisionAccept, DecisionApprove} {
			if _, err := ResolveTransition(RequestTypeProposal, StatusDraft, rv.role, decision); err == nil {
				t.Fatalf("draft must not short-circuit to %s via %s %s", rv.from, rv.role, decision)
			}
		}
	}
}

func TestThesisFlowsEndAfterDrcReview(t *testing.T) {
	for _, requestType := range []string{
		RequestTypePreSubmission,
		RequestTypeDraftNotice,
		RequestTypeThesisSubmission,
		RequestTypeFinalThesis,
		RequestTypeChangeOfTitle,
	} {
		got, err := ResolveTransition(requestType, StatusDrcReview, RoleDrcConvener, DecisionAccept)
		if err != nil {
			t.Fatalf("%s: DRC accept failed: %v", requestType, err)
		}
		if got != StatusCompleted {
			t.Fatalf("%s: DRC accept got %s, want %s", requestType, got, StatusCompleted)
		}
		if _, err := ResolveTransition(requestType, StatusDacReview, RoleDacMember, DecisionApprove); err == nil {
			t.Fatalf("%s must have no DAC stage", requestType)
		}
	}
}

func TestRolesForStatus(t *testing.T) {
	roles := RolesForStatus(RequestTypeProposal, StatusDacAccepted)
	want := map[RoleKind]bool{RoleDrcConvener: true, RoleSupervisor: true}
	if len(roles) != len(want) {
		t.Fatalf("got %v, want roles %v", roles, want)
	}
	for _, role := range roles {
		if !want[role] {
			t.Fatalf("unexpected role %s for dac_accepted", role)
		}
	}
}

func TestKnownRequestType(t *testing.T) {
	if !KnownRequestType(RequestTypeProposal) {
		t.Fatal("proposal must be known")
	}
	if KnownRequestType("grant_application") {
		t.Fatal("grant_application must not be known")
	}
}

func TestPermissionKeyForStatus(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{StatusDrcReview, "phd:proposal:drc-review"},
		{StatusDacAccepted, "phd:proposal:drc-review"},
		{StatusSeminarPending, "phd:proposal:drc-review"},
		{StatusFinalisingDocuments, "phd:proposal:finalise"},
		{StatusDraft, ""},
		{StatusSupervisorReview, ""},
	}
	for _, tc := range cases {
		if got := PermissionKeyForStatus(RequestTypeProposal, tc.status); got != tc.want {
			t.Fatalf("status %s: got %q, want %q", tc.status, got, tc.want)
		}
	}
}

// ReviewStatuses feeds the pending-review dashboard count: exactly the three
// stages where someone other than the student holds the request.
func TestReviewStatuses(t *testing.T) {
	got := ReviewStatuses()
	want := []Status{StatusSupervisorReview, StatusDrcReview, StatusDacReview}
	if len(got) != len(want) {
		t.Fatalf("got %d statuses, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("status %d: got %s, want %s", i, got[i], want[i])
		}
	}
	for _, status := range got {
		roles := RolesForStatus(RequestTypeProposal, status)
		if len(roles) == 0 {
			t.Fatalf("%s has no acting role", status)
		}
		for _, role := range roles {
			if role == RoleStudent {
				t.Fatalf("%s must not be actioned by the student", status)
			}
		}
	}
}
