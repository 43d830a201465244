package models

import (
	"time"
)

// PhdRequest is one student-submitted artifact moving through a review
// pipeline: a proposal, a thesis submission, a change-of-title request, etc.
// Rows are never hard-deleted; the status column is the lifecycle.
type PhdRequest struct {
	RequestID       int        `gorm:"primaryKey;column:request_id" json:"request_id"`
	RequestType     string     `gorm:"column:request_type" json:"request_type"`
	Status          string     `gorm:"column:status" json:"status"`
	Title           string     `gorm:"column:title" json:"title"`
	StudentEmail    string     `gorm:"column:student_email" json:"student_email"`
	SupervisorEmail string     `gorm:"column:supervisor_email" json:"supervisor_email"`
	SemesterID      int        `gorm:"column:semester_id" json:"semester_id"`
	Comments        *string    `gorm:"column:comments" json:"comments,omitempty"`
	SeminarDetails  *string    `gorm:"column:seminar_details" json:"seminar_details,omitempty"`
	Version         int        `gorm:"column:version" json:"version"`
	SubmittedAt     *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Semester   *ProposalSemester `gorm:"foreignKey:SemesterID" json:"semester,omitempty"`
	Documents  []RequestDocument `gorm:"foreignKey:RequestID" json:"documents,omitempty"`
	Reviews    []RequestReview   `gorm:"foreignKey:RequestID" json:"reviews,omitempty"`
	DacMembers []DacMember       `gorm:"foreignKey:RequestID" json:"dac_members,omitempty"`
}

// RequestReview is one row per transition event, append-only.
type RequestReview struct {
	ReviewID       int       `gorm:"primaryKey;column:review_id" json:"review_id"`
	RequestID      int       `gorm:"column:request_id" json:"request_id"`
	ReviewerEmail  string    `gorm:"column:reviewer_email" json:"reviewer_email"`
	Action         string    `gorm:"column:action" json:"action"` // approve|revert|accept
	Comments       *string   `gorm:"column:comments" json:"comments,omitempty"`
	StatusAtReview string    `gorm:"column:status_at_review" json:"status_at_review"`
	ReviewRound    int       `gorm:"column:review_round" json:"review_round"`
	ReviewedAt     time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`
}

// RequestStatusHistory tracks historical status changes for requests.
type RequestStatusHistory struct {
	HistoryID int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	RequestID int       `gorm:"column:request_id" json:"request_id"`
	OldStatus *string   `gorm:"column:old_status" json:"old_status"`
	NewStatus string    `gorm:"column:new_status" json:"new_status"`
	ChangedBy string    `gorm:"column:changed_by" json:"changed_by"`
	Reason    *string   `gorm:"column:reason" json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// DacMember links a request to one Doctoral Advisory Committee member.
// External members are not faculty records and carry a free-text name.
type DacMember struct {
	DacMemberID  int        `gorm:"primaryKey;column:dac_member_id" json:"dac_member_id"`
	RequestID    int        `gorm:"column:request_id" json:"request_id"`
	Email        string     `gorm:"column:email" json:"email"`
	IsExternal   bool       `gorm:"column:is_external" json:"is_external"`
	ExternalName *string    `gorm:"column:external_name" json:"external_name,omitempty"`
	Approved     bool       `gorm:"column:approved" json:"approved"`
	ApprovedAt   *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
}

// ProposalSemester holds the four ordered review deadlines for one academic cycle.
type ProposalSemester struct {
	SemesterID            int        `gorm:"primaryKey;column:semester_id" json:"semester_id"`
	Label                 string     `gorm:"column:label" json:"label"` // e.g. "2026-spring"
	StudentSubmissionDate time.Time  `gorm:"column:student_submission_date" json:"student_submission_date"`
	FacultyReviewDate     time.Time  `gorm:"column:faculty_review_date" json:"faculty_review_date"`
	DrcReviewDate         time.Time  `gorm:"column:drc_review_date" json:"drc_review_date"`
	DacReviewDate         time.Time  `gorm:"column:dac_review_date" json:"dac_review_date"`
	IsActive              bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt              *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt              *time.Time `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides
func (PhdRequest) TableName() string {
	return "phd_requests"
}

func (RequestReview) TableName() string {
	return "request_reviews"
}

func (RequestStatusHistory) TableName() string {
	return "request_status_history"
}

func (DacMember) TableName() string {
	return "dac_members"
}

func (ProposalSemester) TableName() string {
	return "proposal_semesters"
}
