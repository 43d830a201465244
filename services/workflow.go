package services

// The status model: each request type owns a finite status set and a directed
// transition graph keyed by (current status, acting role, decision).

type Status string

type RoleKind string

type Decision string

// Request types.
const (
	RequestTypeProposal            = "proposal"
	RequestTypePreSubmission       = "pre_submission"
	RequestTypeDraftNotice         = "draft_notice"
	RequestTypeThesisSubmission    = "thesis_submission"
	RequestTypeFinalThesis         = "final_thesis_submission"
	RequestTypeChangeOfTitle       = "change_of_title"
)

// Statuses. The proposal flow uses the full chain; the simpler request types
// stop after DRC review.
const (
	StatusDraft                Status = "draft"
	StatusSupervisorReview     Status = "supervisor_review"
	StatusDrcReview            Status = "drc_review"
	StatusDacReview            Status = "dac_review"
	StatusDacAccepted          Status = "dac_accepted"
	StatusSeminarPending       Status = "seminar_pending"
	StatusFinalisingDocuments  Status = "finalising_documents"
	StatusCompleted            Status = "completed"
)

const (
	RoleStudent     RoleKind = "student"
	RoleSupervisor  RoleKind = "supervisor"
	RoleDrcConvener RoleKind = "drc_convener"
	RoleDacMember   RoleKind = "dac_member"
	RoleStaff       RoleKind = "staff"
)

const (
	DecisionSubmit  Decision = "submit"
	DecisionAccept  Decision = "accept"
	DecisionApprove Decision = "approve"
	DecisionRevert  Decision = "revert"
)

type edgeKey struct {
	from     Status
	role     RoleKind
	decision Decision
}

// transitionGraphs holds one graph per request type.
var transitionGraphs = map[string]map[edgeKey]Status{}

func addEdge(requestType string, from Status, role RoleKind, decision Decision, to Status) {
	graph, ok := transitionGraphs[requestType]
	if !ok {
		graph = map[edgeKey]Status{}
		transitionGraphs[requestType] = graph
	}
	graph[edgeKey{from, role, decision}] = to
}

func init() {
	// Proposal flow. A revert from any review stage lands back in draft; on
	// resubmission the student re-enters at supervisor_review, never at the
	// stage that reverted. That restart-from-stage-1 policy is deliberate.
	addEdge(RequestTypeProposal, StatusDraft, RoleStudent, DecisionSubmit, StatusSupervisorReview)
	addEdge(RequestTypeProposal, StatusSupervisorReview, RoleSupervisor, DecisionAccept, StatusDrcReview)
	addEdge(RequestTypeProposal, StatusSupervisorReview, RoleSupervisor, DecisionRevert, StatusDraft)
	addEdge(RequestTypeProposal, StatusDrcReview, RoleDrcConvener, DecisionAccept, StatusDacReview)
	addEdge(RequestTypeProposal, StatusDrcReview, RoleDrcConvener, DecisionRevert, StatusDraft)
	addEdge(RequestTypeProposal, StatusDacReview, RoleDacMember, DecisionApprove, StatusDacAccepted)
	addEdge(RequestTypeProposal, StatusDacReview, RoleDacMember, DecisionRevert, StatusDraft)
	addEdge(RequestTypeProposal, StatusDacAccepted, RoleDrcConvener, DecisionAccept, StatusSeminarPending)
	addEdge(RequestTypeProposal, StatusDacAccepted, RoleSupervisor, DecisionAccept, StatusSeminarPending)
	addEdge(RequestTypeProposal, StatusSeminarPending, RoleDrcConvener, DecisionAccept, StatusFinalisingDocuments)
	addEdge(RequestTypeProposal, StatusFinalisingDocuments, RoleStaff, DecisionAccept, StatusCompleted)

	// The thesis-request flows share a shorter chain ending after DRC review.
	for _, requestType := range []string{
		RequestTypePreSubmission,
		RequestTypeDraftNotice,
		RequestTypeThesisSubmission,
		RequestTypeFinalThesis,
		RequestTypeChangeOfTitle,
	} {
		addEdge(requestType, StatusDraft, RoleStudent, DecisionSubmit, StatusSupervisorReview)
		addEdge(requestType, StatusSupervisorReview, RoleSupervisor, DecisionAccept, StatusDrcReview)
		addEdge(requestType, StatusSupervisorReview, RoleSupervisor, DecisionRevert, StatusDraft)
		addEdge(requestType, StatusDrcReview, RoleDrcConvener, DecisionAccept, StatusCompleted)
		addEdge(requestType, StatusDrcReview, RoleDrcConvener, DecisionRevert, StatusDraft)
	}
}

// ResolveTransition returns the next status for the edge, or a state conflict
// error when no such edge is declared. Illegal edges fail closed.
func ResolveTransition(requestType string, current Status, role RoleKind, decision Decision) (Status, error) {
	graph, ok := transitionGraphs[requestType]
	if !ok {
		return "", ValidationError("unknown request type '%s'", requestType)
	}
	next, ok := graph[edgeKey{current, role, decision}]
	if !ok {
		return "", StateConflictError("no %s transition for role %s from status %s", decision, role, current)
	}
	return next, nil
}

// RolesForStatus returns the role categories that own decisions on a status.
func RolesForStatus(requestType string, status Status) []RoleKind {
	graph, ok := transitionGraphs[requestType]
	if !ok {
		return nil
	}
	seen := map[RoleKind]bool{}
	var roles []RoleKind
	for key := range graph {
		if key.from != status || seen[key.role] {
			continue
		}
		seen[key.role] = true
		roles = append(roles, key.role)
	}
	return roles
}

// ReviewStatuses lists statuses at which a reviewer decision is pending,
// i.e. everything between the student draft and acceptance.
func ReviewStatuses() []Status {
	return []Status{StatusSupervisorReview, StatusDrcReview, StatusDacReview}
}

// KnownRequestType reports whether the request type has a declared graph.
func KnownRequestType(requestType string) bool {
	_, ok := transitionGraphs[requestType]
	return ok
}

// PermissionKeyForStatus is the permission looked up to find the next
// stage's eligible actors when the stage is not tied to a per-request role.
func PermissionKeyForStatus(requestType string, status Status) string {
	switch status {
	case StatusDrcReview, StatusDacAccepted, StatusSeminarPending:
		return "phd:" + requestType + ":drc-review"
	case StatusFinalisingDocuments:
		return "phd:" + requestType + ":finalise"
	default:
		return ""
	}
}
