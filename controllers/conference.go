package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"ims-api/config"
	"ims-api/models"
	"ims-api/utils"

	"github.com/gin-gonic/gin"
)

// Conference travel moves through two stages: the supervisor endorses, then
// staff approve the travel and budget.
const (
	conferencePendingSupervisor = "pending_supervisor"
	conferencePendingStaff      = "pending_staff"
	conferenceApproved          = "approved"
	conferenceRejected          = "rejected"
)

type conferencePayload struct {
	SupervisorEmail string    `json:"supervisor_email" binding:"required,email"`
	ConferenceName  string    `json:"conference_name" binding:"required"`
	Venue           string    `json:"venue" binding:"required"`
	TravelStart     time.Time `json:"travel_start" binding:"required"`
	TravelEnd       time.Time `json:"travel_end" binding:"required"`
	RequestedAmount float64   `json:"requested_amount"`
}

// CreateConferenceApplication opens a travel request for the caller.
func CreateConferenceApplication(c *gin.Context) {
	var req conferencePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TravelEnd.Before(req.TravelStart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Travel end precedes travel start"})
		return
	}

	email, _ := getCurrentEmail(c)
	now := time.Now()
	application := models.ConferenceApplication{
		ApplicantEmail:  email,
		SupervisorEmail: strings.TrimSpace(req.SupervisorEmail),
		ConferenceName:  utils.SanitizeInput(req.ConferenceName),
		Venue:           utils.SanitizeInput(req.Venue),
		TravelStart:     req.TravelStart,
		TravelEnd:       req.TravelEnd,
		RequestedAmount: req.RequestedAmount,
		Status:          conferencePendingSupervisor,
		Version:         1,
		CreateAt:        &now,
		UpdateAt:        &now,
	}

	if err := config.DB.Create(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Application created",
		"application": application,
	})
}

// ListConferenceApplications returns the caller's applications, or all of
// them for staff. Filterable by status.
func ListConferenceApplications(c *gin.Context) {
	email, _ := getCurrentEmail(c)
	roleID, _ := getCurrentRoleID(c)

	query := config.DB.Model(&models.ConferenceApplication{})
	if roleID != 3 {
		query = query.Where("applicant_email = ? OR supervisor_email = ?", email, email)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []models.ConferenceApplication
	if err := query.Order("update_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"applications": applications,
		"total":        len(applications),
	})
}

// ConferenceDecision records an approve/reject from the supervisor or staff
// stage, with the same compare-and-swap guard as the PhD workflow.
func ConferenceDecision(c *gin.Context) {
	applicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || applicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	var req struct {
		Decision string `json:"decision" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	decision := strings.ToLower(strings.TrimSpace(req.Decision))
	if decision != "approve" && decision != "reject" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decision must be 'approve' or 'reject'"})
		return
	}

	var application models.ConferenceApplication
	if err := config.DB.First(&application, applicationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	email, _ := getCurrentEmail(c)
	roleID, _ := getCurrentRoleID(c)

	var next string
	switch application.Status {
	case conferencePendingSupervisor:
		if !strings.EqualFold(email, application.SupervisorEmail) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the supervisor may act at this stage"})
			return
		}
		next = conferencePendingStaff
	case conferencePendingStaff:
		if roleID != 3 {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only staff may act at this stage"})
			return
		}
		next = conferenceApproved
	default:
		c.JSON(http.StatusConflict, gin.H{"error": "Application is not awaiting a decision"})
		return
	}
	if decision == "reject" {
		next = conferenceRejected
	}

	now := time.Now()
	result := config.DB.Model(&models.ConferenceApplication{}).
		Where("application_id = ? AND version = ?", application.ApplicationID, application.Version).
		Updates(map[string]interface{}{
			"status":    next,
			"version":   application.Version + 1,
			"update_at": now,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record decision"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Application was modified concurrently"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Decision recorded",
		"status":  next,
	})
}
