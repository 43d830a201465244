package services

import (
	"time"

	"ims-api/models"
)

// IsDeadlinePassed reports whether the deadline instant is behind now.
// Pure comparison; callers supply both instants.
func IsDeadlinePassed(deadline, now time.Time) bool {
	return deadline.Before(now)
}

// StageDeadline maps a status to the semester deadline gating decisions at
// that stage. Stages past DAC review are not deadline-gated and return nil.
func StageDeadline(semester *models.ProposalSemester, status Status) *time.Time {
	if semester == nil {
		return nil
	}
	switch status {
	case StatusDraft:
		return &semester.StudentSubmissionDate
	case StatusSupervisorReview:
		return &semester.FacultyReviewDate
	case StatusDrcReview:
		return &semester.DrcReviewDate
	case StatusDacReview:
		return &semester.DacReviewDate
	default:
		return nil
	}
}
