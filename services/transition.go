package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ims-api/config"
	"ims-api/models"

	"gorm.io/gorm"
)

// TodoModulePhd is the task-inbox module key for PhD workflow todos.
const TodoModulePhd = "phd"

// DacMemberInput describes one committee member nominated at an accept stage.
type DacMemberInput struct {
	Email        string
	IsExternal   bool
	ExternalName string
}

// TransitionInput carries a role's decision on a request.
type TransitionInput struct {
	RequestID      int
	ActorEmail     string
	Role           RoleKind
	Decision       Decision
	Comments       string
	DacMembers     []DacMemberInput
	SeminarDetails string
	Now            time.Time
}

// TransitionService applies decisions to requests: it validates the edge,
// persists the new status atomically with its review, history and todo
// side effects, and fires notifications after commit.
type TransitionService struct {
	db    *gorm.DB
	todos *TodoService
}

func NewTransitionService(db *gorm.DB) *TransitionService {
	if db == nil {
		db = config.DB
	}
	return &TransitionService{db: db, todos: NewTodoService(db)}
}

// Apply validates and executes one transition. No partial state is written:
// every side effect shares one transaction with the status update.
func (s *TransitionService) Apply(input TransitionInput) (*models.PhdRequest, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	var request models.PhdRequest
	if err := s.db.Preload("Semester").Preload("DacMembers").
		Where("request_id = ?", input.RequestID).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("request %d not found", input.RequestID)
		}
		return nil, err
	}

	if err := s.verifyActorRole(&request, input.ActorEmail, input.Role); err != nil {
		return nil, err
	}

	current := Status(request.Status)
	next, err := ResolveTransition(request.RequestType, current, input.Role, input.Decision)
	if err != nil {
		return nil, err
	}

	if deadline := StageDeadline(request.Semester, current); deadline != nil {
		if IsDeadlinePassed(*deadline, now) {
			return nil, StateConflictError("the %s deadline has passed", current)
		}
	}

	comments := strings.TrimSpace(input.Comments)
	if input.Decision == DecisionRevert && comments == "" {
		return nil, ValidationError("comments are required when reverting")
	}

	// DAC approval is collective: each member records an approval and the
	// request only advances once every recorded member has approved.
	partialDacApproval := false
	if input.Decision == DecisionApprove && input.Role == RoleDacMember {
		if !allDacApproved(request.DacMembers, input.ActorEmail) {
			partialDacApproval = true
			next = current
		}
	}

	if next == StatusDacReview && len(input.DacMembers) == 0 && len(request.DacMembers) == 0 {
		return nil, ValidationError("a DAC member list is required to enter DAC review")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	updates := map[string]interface{}{
		"status":    string(next),
		"version":   request.Version + 1,
		"update_at": now,
	}
	if input.Decision == DecisionSubmit {
		updates["submitted_at"] = now
	}
	if details := strings.TrimSpace(input.SeminarDetails); details != "" {
		updates["seminar_details"] = details
	}

	// Compare-and-swap on the version column so two simultaneous decisions
	// on one request cannot both win.
	result := tx.Model(&models.PhdRequest{}).
		Where("request_id = ? AND version = ?", request.RequestID, request.Version).
		Updates(updates)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, StateConflictError("request %d was modified concurrently", request.RequestID)
	}

	if input.Decision == DecisionApprove && input.Role == RoleDacMember {
		if err := tx.Model(&models.DacMember{}).
			Where("request_id = ? AND email = ?", request.RequestID, input.ActorEmail).
			Updates(map[string]interface{}{"approved": true, "approved_at": now}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if len(input.DacMembers) > 0 {
		if err := replaceDacMembers(tx, request.RequestID, input.DacMembers, now); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	var reviewRound int64
	if err := tx.Model(&models.RequestReview{}).
		Where("request_id = ?", request.RequestID).
		Count(&reviewRound).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	review := models.RequestReview{
		RequestID:      request.RequestID,
		ReviewerEmail:  input.ActorEmail,
		Action:         string(input.Decision),
		StatusAtReview: string(current),
		ReviewRound:    int(reviewRound) + 1,
		ReviewedAt:     now,
	}
	if comments != "" {
		review.Comments = &comments
	}
	if err := tx.Create(&review).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if next != current {
		oldStatus := string(current)
		history := models.RequestStatusHistory{
			RequestID: request.RequestID,
			OldStatus: &oldStatus,
			NewStatus: string(next),
			ChangedBy: input.ActorEmail,
			CreatedAt: now,
		}
		if comments != "" {
			history.Reason = &comments
		}
		if err := tx.Create(&history).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Close the acting role's todo for this stage, then open todos for the
	// next stage's actors. A partial DAC approval closes nothing: the stage
	// is still pending for the remaining members.
	if !partialDacApproval {
		event := CompletionEvent{Domain: request.RequestType, Stage: current, RequestID: request.RequestID}
		if err := s.todos.CompleteTodos(tx, TodoModulePhd, event); err != nil {
			tx.Rollback()
			return nil, err
		}

		assignees, err := s.nextStageActors(tx, &request, next, input.DacMembers)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if len(assignees) > 0 {
			items := make([]TodoItem, 0, len(assignees))
			nextEvent := CompletionEvent{Domain: request.RequestType, Stage: next, RequestID: request.RequestID}
			for _, email := range assignees {
				items = append(items, TodoItem{
					Module:     TodoModulePhd,
					Title:      todoTitle(request.RequestType, next, request.StudentEmail),
					Event:      nextEvent,
					AssignedTo: email,
					CreatedBy:  input.ActorEmail,
				})
			}
			if err := s.todos.CreateTodos(tx, items); err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if next == StatusCompleted {
		// Document-package generation is handled by the packaging service;
		// the workflow only records that finalization happened.
		log.Printf("request %d finalized, document package queued", request.RequestID)
	}

	s.notifyDecision(&request, current, next, input, comments)

	var updated models.PhdRequest
	if err := s.db.Preload("Semester").Preload("DacMembers").Preload("Reviews").
		First(&updated, request.RequestID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// verifyActorRole checks the acting identity against the role of record for
// this specific request: supervisor-of-record, recorded DAC member, or an
// account holding the convener/staff permission.
func (s *TransitionService) verifyActorRole(request *models.PhdRequest, actorEmail string, role RoleKind) error {
	actor := strings.ToLower(strings.TrimSpace(actorEmail))
	switch role {
	case RoleStudent:
		if actor != strings.ToLower(request.StudentEmail) {
			return AuthorizationError("%s is not the student on request %d", actorEmail, request.RequestID)
		}
	case RoleSupervisor:
		if actor != strings.ToLower(request.SupervisorEmail) {
			return AuthorizationError("%s is not the supervisor of record for request %d", actorEmail, request.RequestID)
		}
	case RoleDacMember:
		for _, member := range request.DacMembers {
			if strings.ToLower(member.Email) == actor {
				return nil
			}
		}
		return AuthorizationError("%s is not a DAC member on request %d", actorEmail, request.RequestID)
	case RoleDrcConvener, RoleStaff:
		key := "phd:" + request.RequestType + ":drc-review"
		if role == RoleStaff {
			key = "phd:" + request.RequestType + ":finalise"
		}
		emails, err := GetUsersWithPermission(s.db, key)
		if err != nil {
			return err
		}
		for _, email := range emails {
			if strings.ToLower(email) == actor {
				return nil
			}
		}
		return AuthorizationError("%s does not hold %s", actorEmail, key)
	default:
		return AuthorizationError("unknown role '%s'", role)
	}
	return nil
}

// nextStageActors resolves who should receive a todo for the new status.
func (s *TransitionService) nextStageActors(tx *gorm.DB, request *models.PhdRequest, next Status, provided []DacMemberInput) ([]string, error) {
	switch next {
	case StatusDraft:
		return []string{request.StudentEmail}, nil
	case StatusSupervisorReview:
		return []string{request.SupervisorEmail}, nil
	case StatusDacReview:
		if len(provided) > 0 {
			emails := make([]string, 0, len(provided))
			for _, member := range provided {
				emails = append(emails, member.Email)
			}
			return emails, nil
		}
		emails := make([]string, 0, len(request.DacMembers))
		for _, member := range request.DacMembers {
			emails = append(emails, member.Email)
		}
		return emails, nil
	case StatusCompleted:
		return nil, nil
	default:
		key := PermissionKeyForStatus(request.RequestType, next)
		if key == "" {
			return nil, nil
		}
		return GetUsersWithPermission(tx, key)
	}
}

func (s *TransitionService) notifyDecision(request *models.PhdRequest, from, to Status, input TransitionInput, comments string) {
	db := s.db
	if db == nil {
		return
	}

	var title, message, typ string
	switch {
	case input.Decision == DecisionRevert:
		title = "Your request was reverted"
		message = fmt.Sprintf("Request #%d was reverted to draft by %s.", request.RequestID, input.ActorEmail)
		typ = "warning"
	case to == StatusCompleted:
		title = "Your request is complete"
		message = fmt.Sprintf("Request #%d has been finalized.", request.RequestID)
		typ = "success"
	case from != to:
		title = "Your request moved forward"
		message = fmt.Sprintf("Request #%d is now at %s.", request.RequestID, to)
		typ = "info"
	default:
		return
	}
	if comments != "" {
		message = fmt.Sprintf("%s\nNote: %s", message, comments)
	}

	go func() {
		requestID := request.RequestID
		notif := models.Notification{
			UserEmail:        request.StudentEmail,
			Title:            title,
			Message:          message,
			Type:             typ,
			RelatedRequestID: &requestID,
			IsRead:           false,
			CreateAt:         time.Now(),
		}
		if err := db.Create(&notif).Error; err != nil {
			log.Printf("notifyDecision: failed to create notification: %v", err)
		}

		meta := []EmailMetaItem{
			{Label: "Request", Value: fmt.Sprintf("#%d %s", request.RequestID, request.Title)},
			{Label: "Status", Value: string(to)},
		}
		html := BuildEmailHTML(title, []string{message}, meta, "", "")
		if err := config.SendMail([]string{request.StudentEmail}, title, html); err != nil {
			log.Printf("notifyDecision: failed to email %s: %v", request.StudentEmail, err)
		}
	}()
}

func allDacApproved(members []models.DacMember, approvingNow string) bool {
	approving := strings.ToLower(strings.TrimSpace(approvingNow))
	for _, member := range members {
		if strings.ToLower(member.Email) == approving {
			continue
		}
		if !member.Approved {
			return false
		}
	}
	return true
}

func replaceDacMembers(tx *gorm.DB, requestID int, members []DacMemberInput, now time.Time) error {
	if err := tx.Where("request_id = ?", requestID).Delete(&models.DacMember{}).Error; err != nil {
		return err
	}
	for _, member := range members {
		row := models.DacMember{
			RequestID:  requestID,
			Email:      strings.TrimSpace(member.Email),
			IsExternal: member.IsExternal,
			CreateAt:   &now,
		}
		if member.IsExternal && strings.TrimSpace(member.ExternalName) != "" {
			name := strings.TrimSpace(member.ExternalName)
			row.ExternalName = &name
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func todoTitle(requestType string, stage Status, studentEmail string) string {
	switch stage {
	case StatusDraft:
		return fmt.Sprintf("Revise and resubmit your %s", requestType)
	case StatusSupervisorReview:
		return fmt.Sprintf("Review %s from %s", requestType, studentEmail)
	case StatusDrcReview:
		return fmt.Sprintf("DRC review for %s from %s", requestType, studentEmail)
	case StatusDacReview:
		return fmt.Sprintf("DAC review for %s from %s", requestType, studentEmail)
	case StatusDacAccepted:
		return fmt.Sprintf("Schedule seminar for %s from %s", requestType, studentEmail)
	case StatusSeminarPending:
		return fmt.Sprintf("Confirm seminar for %s from %s", requestType, studentEmail)
	case StatusFinalisingDocuments:
		return fmt.Sprintf("Finalize documents for %s from %s", requestType, studentEmail)
	default:
		return fmt.Sprintf("Action needed on %s from %s", requestType, studentEmail)
	}
}
