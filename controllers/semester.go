package controllers

import (
	"net/http"
	"strconv"
	"time"

	"ims-api/config"
	"ims-api/models"

	"github.com/gin-gonic/gin"
)

type semesterPayload struct {
	Label                 string    `json:"label" binding:"required"`
	StudentSubmissionDate time.Time `json:"student_submission_date" binding:"required"`
	FacultyReviewDate     time.Time `json:"faculty_review_date" binding:"required"`
	DrcReviewDate         time.Time `json:"drc_review_date" binding:"required"`
	DacReviewDate         time.Time `json:"dac_review_date" binding:"required"`
	IsActive              bool      `json:"is_active"`
}

// CreateSemester creates a deadline set for one academic cycle.
// Deadline ordering across the four stages is not validated here; an
// out-of-order set is accepted as configured.
func CreateSemester(c *gin.Context) {
	var req semesterPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	semester := models.ProposalSemester{
		Label:                 req.Label,
		StudentSubmissionDate: req.StudentSubmissionDate,
		FacultyReviewDate:     req.FacultyReviewDate,
		DrcReviewDate:         req.DrcReviewDate,
		DacReviewDate:         req.DacReviewDate,
		IsActive:              req.IsActive,
		CreateAt:              &now,
		UpdateAt:              &now,
	}

	if err := config.DB.Create(&semester).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create semester"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Semester created",
		"semester": semester,
	})
}

// UpdateSemester updates a deadline set.
func UpdateSemester(c *gin.Context) {
	semesterID, err := strconv.Atoi(c.Param("id"))
	if err != nil || semesterID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid semester ID"})
		return
	}

	var req semesterPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var semester models.ProposalSemester
	if err := config.DB.First(&semester, semesterID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Semester not found"})
		return
	}

	now := time.Now()
	semester.Label = req.Label
	semester.StudentSubmissionDate = req.StudentSubmissionDate
	semester.FacultyReviewDate = req.FacultyReviewDate
	semester.DrcReviewDate = req.DrcReviewDate
	semester.DacReviewDate = req.DacReviewDate
	semester.IsActive = req.IsActive
	semester.UpdateAt = &now

	if err := config.DB.Save(&semester).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update semester"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Semester updated",
		"semester": semester,
	})
}

// ListSemesters returns all semesters, active first.
func ListSemesters(c *gin.Context) {
	var semesters []models.ProposalSemester
	if err := config.DB.Order("is_active DESC, semester_id DESC").
		Find(&semesters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch semesters"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "semesters": semesters})
}
