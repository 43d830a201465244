package controllers

import (
	"net/http"
	"strconv"
	"time"

	"ims-api/config"
	"ims-api/models"
	"ims-api/services"
	"ims-api/utils"

	"github.com/gin-gonic/gin"
)

type examPayload struct {
	SemesterID    int    `json:"semester_id" binding:"required"`
	StudentEmail  string `json:"student_email" binding:"required,email"`
	CourseCode    string `json:"course_code" binding:"required"`
	ExaminerEmail string `json:"examiner_email" binding:"required,email"`
}

// CreateQualifyingExam registers one exam awaiting a session.
func CreateQualifyingExam(c *gin.Context) {
	var req examPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	exam := models.QualifyingExam{
		SemesterID:    req.SemesterID,
		StudentEmail:  req.StudentEmail,
		CourseCode:    utils.SanitizeInput(req.CourseCode),
		ExaminerEmail: req.ExaminerEmail,
		CreateAt:      &now,
		UpdateAt:      &now,
	}
	if err := config.DB.Create(&exam).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exam"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "exam": exam})
}

// GetTimetable lists a semester's exams with their assigned sessions.
func GetTimetable(c *gin.Context) {
	semesterID, err := strconv.Atoi(c.Param("semester_id"))
	if err != nil || semesterID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid semester ID"})
		return
	}

	var exams []models.QualifyingExam
	if err := config.DB.Where("semester_id = ?", semesterID).
		Order("session_number ASC, exam_id ASC").
		Find(&exams).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch timetable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "exams": exams, "total": len(exams)})
}

// AssignTimetable runs the session assignment for a semester.
func AssignTimetable(c *gin.Context) {
	var req struct {
		SemesterID int `json:"semester_id" binding:"required"`
		Sessions   int `json:"sessions" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := services.NewTimetableService(nil).AssignForSemester(c.Request.Context(), req.SemesterID, req.Sessions)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sessions assigned",
		"summary": summary,
	})
}
