package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"ims-api/services"
	"ims-api/utils"

	"github.com/gin-gonic/gin"
)

type dacMemberPayload struct {
	Email        string `json:"email" binding:"required,email"`
	IsExternal   bool   `json:"is_external"`
	ExternalName string `json:"external_name"`
}

type decisionPayload struct {
	Decision   string             `json:"decision" binding:"required"`
	Comments   string             `json:"comments"`
	DacMembers []dacMemberPayload `json:"dac_members"`
}

func parseRequestID(c *gin.Context) (int, bool) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil || requestID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return 0, false
	}
	return requestID, true
}

func bindDecision(c *gin.Context, allowed ...services.Decision) (*decisionPayload, services.Decision, bool) {
	var req decisionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, "", false
	}

	decision := services.Decision(strings.ToLower(strings.TrimSpace(req.Decision)))
	for _, a := range allowed {
		if decision == a {
			return &req, decision, true
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported decision for this stage"})
	return nil, "", false
}

// toDacInputs validates the committee size at the boundary before the
// transition service sees the list.
func toDacInputs(c *gin.Context, members []dacMemberPayload, required bool) ([]services.DacMemberInput, bool) {
	if len(members) == 0 {
		if required {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A DAC member list is required"})
			return nil, false
		}
		return nil, true
	}

	if ok, msg := utils.ValidateDacCount(len(members)); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return nil, false
	}

	inputs := make([]services.DacMemberInput, 0, len(members))
	for _, member := range members {
		if !utils.ValidateEmail(member.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid DAC member email"})
			return nil, false
		}
		inputs = append(inputs, services.DacMemberInput{
			Email:        member.Email,
			IsExternal:   member.IsExternal,
			ExternalName: utils.SanitizeInput(member.ExternalName),
		})
	}
	return inputs, true
}

func applyTransition(c *gin.Context, input services.TransitionInput) {
	updated, err := services.NewTransitionService(nil).Apply(input)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Decision recorded",
		"request": updated,
	})
}

// SubmitRequest moves a draft into supervisor review. After a revert this is
// the resubmission path and always re-enters at the first review stage.
func SubmitRequest(c *gin.Context) {
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}
	email, _ := getCurrentEmail(c)

	applyTransition(c, services.TransitionInput{
		RequestID:  requestID,
		ActorEmail: email,
		Role:       services.RoleStudent,
		Decision:   services.DecisionSubmit,
	})
}

// SupervisorReview records the supervisor's accept or revert. An accept may
// nominate the DAC committee early.
func SupervisorReview(c *gin.Context) {
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}
	req, decision, ok := bindDecision(c, services.DecisionAccept, services.DecisionRevert)
	if !ok {
		return
	}

	var members []services.DacMemberInput
	if decision == services.DecisionAccept {
		if members, ok = toDacInputs(c, req.DacMembers, false); !ok {
			return
		}
	}

	email, _ := getCurrentEmail(c)
	applyTransition(c, services.TransitionInput{
		RequestID:  requestID,
		ActorEmail: email,
		Role:       services.RoleSupervisor,
		Decision:   decision,
		Comments:   req.Comments,
		DacMembers: members,
	})
}

// DrcReview records the DRC convener's accept or revert. Accepting finalizes
// the DAC committee: a list is required unless one was already nominated.
func DrcReview(c *gin.Context) {
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}
	req, decision, ok := bindDecision(c, services.DecisionAccept, services.DecisionRevert)
	if !ok {
		return
	}

	var members []services.DacMemberInput
	if decision == services.DecisionAccept {
		if members, ok = toDacInputs(c, req.DacMembers, false); !ok {
			return
		}
	}

	email, _ := getCurrentEmail(c)
	applyTransition(c, services.TransitionInput{
		RequestID:  requestID,
		ActorEmail: email,
		Role:       services.RoleDrcConvener,
		Decision:   decision,
		Comments:   req.Comments,
		DacMembers: members,
	})
}

// DacReview records one DAC member's approve or revert. The request advances
// only when every member has approved.
func DacReview(c *gin.Context) {
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}
	req, decision, ok := bindDecision(c, services.DecisionApprove, services.DecisionRevert)
	if !ok {
		return
	}

	email, _ := getCurrentEmail(c)
	applyTransition(c, services.TransitionInput{
		RequestID:  requestID,
		ActorEmail: email,
		Role:       services.RoleDacMember,
		Decision:   decision,
		Comments:   req.Comments,
	})
}

// SetSeminarDetails moves an accepted proposal to seminar scheduling. Either
// the DRC convener or the supervisor may submit the details.
func SetSeminarDetails(c *gin.Context) {
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}

	var req struct {
		SeminarDetails string `json:"seminar_details" binding:"required"`
		AsSupervisor   bool   `json:"as_supervisor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	role := services.RoleDrcConvener
	if req.AsSupervisor {
		role = services.RoleSupervisor
	}

	email, _ := getCurrentEmail(c)
	applyTransition(c, services.TransitionInput{
		RequestID:      requestID,
		ActorEmail:     email,
		Role:           role,
		Decision:       services.DecisionAccept,
		SeminarDetails: utils.SanitizeInput(req.SeminarDetails),
	})
}

// ConfirmSeminar moves a scheduled proposal into document finalization.
func ConfirmSeminar(c *gin.Context) {
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}
	email, _ := getCurrentEmail(c)
	applyTransition(c, services.TransitionInput{
		RequestID:  requestID,
		ActorEmail: email,
		Role:       services.RoleDrcConvener,
		Decision:   services.DecisionAccept,
	})
}

// FinalizeRequest completes the request. Document packaging is queued by the
// transition service.
func FinalizeRequest(c *gin.Context) {
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}
	email, _ := getCurrentEmail(c)
	applyTransition(c, services.TransitionInput{
		RequestID:  requestID,
		ActorEmail: email,
		Role:       services.RoleStaff,
		Decision:   services.DecisionAccept,
	})
}
