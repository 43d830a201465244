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

// Course handouts run one review cycle: submit, then a reviewer accepts or
// reverts back to the submitter.
const (
	handoutDraft    = "draft"
	handoutReview   = "review"
	handoutApproved = "approved"
)

type handoutPayload struct {
	CourseCode    string `json:"course_code" binding:"required"`
	CourseName    string `json:"course_name" binding:"required"`
	ReviewerEmail string `json:"reviewer_email" binding:"required,email"`
	FileID        *int   `json:"file_id"`
}

// SubmitHandout creates a handout straight into review.
func SubmitHandout(c *gin.Context) {
	var req handoutPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, _ := getCurrentEmail(c)
	now := time.Now()
	handout := models.CourseHandout{
		CourseCode:     utils.SanitizeInput(req.CourseCode),
		CourseName:     utils.SanitizeInput(req.CourseName),
		SubmitterEmail: email,
		ReviewerEmail:  strings.TrimSpace(req.ReviewerEmail),
		Status:         handoutReview,
		FileID:         req.FileID,
		Version:        1,
		CreateAt:       &now,
		UpdateAt:       &now,
	}
	if err := config.DB.Create(&handout).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit handout"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "handout": handout})
}

// ListHandouts returns handouts the caller submitted or reviews.
func ListHandouts(c *gin.Context) {
	email, _ := getCurrentEmail(c)
	roleID, _ := getCurrentRoleID(c)

	query := config.DB.Model(&models.CourseHandout{})
	if roleID != 3 {
		query = query.Where("submitter_email = ? OR reviewer_email = ?", email, email)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var handouts []models.CourseHandout
	if err := query.Order("update_at DESC").Find(&handouts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch handouts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "handouts": handouts, "total": len(handouts)})
}

// ReviewHandout records the reviewer's accept or revert. Reverts require a
// comment and send the handout back to draft for resubmission.
func ReviewHandout(c *gin.Context) {
	handoutID, err := strconv.Atoi(c.Param("id"))
	if err != nil || handoutID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid handout ID"})
		return
	}

	var req struct {
		Decision string `json:"decision" binding:"required"`
		Comments string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	decision := strings.ToLower(strings.TrimSpace(req.Decision))
	if decision != "accept" && decision != "revert" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decision must be 'accept' or 'revert'"})
		return
	}
	comments := strings.TrimSpace(req.Comments)
	if decision == "revert" && comments == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comments are required when reverting"})
		return
	}

	var handout models.CourseHandout
	if err := config.DB.First(&handout, handoutID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Handout not found"})
		return
	}

	email, _ := getCurrentEmail(c)
	if !strings.EqualFold(email, handout.ReviewerEmail) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the assigned reviewer may act"})
		return
	}
	if handout.Status != handoutReview {
		c.JSON(http.StatusConflict, gin.H{"error": "Handout is not awaiting review"})
		return
	}

	next := handoutApproved
	if decision == "revert" {
		next = handoutDraft
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":    next,
		"version":   handout.Version + 1,
		"update_at": now,
	}
	if comments != "" {
		updates["comments"] = comments
	}

	result := config.DB.Model(&models.CourseHandout{}).
		Where("handout_id = ? AND version = ?", handout.HandoutID, handout.Version).
		Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record decision"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Handout was modified concurrently"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Decision recorded", "status": next})
}

// ResubmitHandout sends a reverted handout back into review.
func ResubmitHandout(c *gin.Context) {
	handoutID, err := strconv.Atoi(c.Param("id"))
	if err != nil || handoutID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid handout ID"})
		return
	}

	var handout models.CourseHandout
	if err := config.DB.First(&handout, handoutID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Handout not found"})
		return
	}

	email, _ := getCurrentEmail(c)
	if !strings.EqualFold(email, handout.SubmitterEmail) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the submitter may resubmit"})
		return
	}
	if handout.Status != handoutDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "Handout is not in draft"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.CourseHandout{}).
		Where("handout_id = ? AND version = ?", handout.HandoutID, handout.Version).
		Updates(map[string]interface{}{
			"status":    handoutReview,
			"version":   handout.Version + 1,
			"update_at": now,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resubmit"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Handout was modified concurrently"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Handout resubmitted"})
}
