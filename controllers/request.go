package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ims-api/config"
	"ims-api/models"
	"ims-api/services"
	"ims-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createRequestPayload struct {
	RequestType     string `json:"request_type" binding:"required"`
	Title           string `json:"title" binding:"required"`
	SupervisorEmail string `json:"supervisor_email" binding:"required,email"`
	SemesterID      int    `json:"semester_id" binding:"required"`
	Comments        string `json:"comments"`
}

// CreateRequest opens a new request in draft for the logged-in student.
func CreateRequest(c *gin.Context) {
	var req createRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !services.KnownRequestType(req.RequestType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown request type"})
		return
	}
	if !utils.ValidateEmail(req.SupervisorEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supervisor email"})
		return
	}

	studentEmail, ok := getCurrentEmail(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	var semester models.ProposalSemester
	if err := config.DB.Where("semester_id = ? AND is_active = ?", req.SemesterID, true).
		First(&semester).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown or inactive semester"})
		return
	}

	now := time.Now()
	request := models.PhdRequest{
		RequestType:     req.RequestType,
		Status:          string(services.StatusDraft),
		Title:           utils.SanitizeInput(req.Title),
		StudentEmail:    studentEmail,
		SupervisorEmail: strings.TrimSpace(req.SupervisorEmail),
		SemesterID:      req.SemesterID,
		Comments:        ptr(utils.SanitizeInput(req.Comments)),
		Version:         1,
		CreateAt:        &now,
		UpdateAt:        &now,
	}

	if err := config.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Request created",
		"request": request,
	})
}

// GetRequest returns one request and its documents filtered for the caller's
// role. On final-thesis requests the carry-forward rule runs first, so
// whitelisted private documents from the earlier thesis stage appear without
// re-upload.
func GetRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil || requestID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var request models.PhdRequest
	if err := config.DB.Preload("Semester").Preload("DacMembers").Preload("Reviews").
		Preload("Documents.DocumentType").Preload("Documents.File").
		Where("request_id = ?", requestID).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load request"})
		return
	}

	role, ok := viewerRoleFor(c, &request)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "You have no role on this request"})
		return
	}

	if request.RequestType == services.RequestTypeFinalThesis {
		if carried := applyCarryForward(&request); carried {
			// Reload the document set with the carried rows included.
			config.DB.Preload("DocumentType").Preload("File").
				Where("request_id = ? AND delete_at IS NULL", request.RequestID).
				Find(&request.Documents)
		}
	}

	request.Documents = services.VisibleDocuments(request.Documents, role)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"request":     request,
		"viewer_role": role,
	})
}

// applyCarryForward copies whitelisted documents from the student's
// thesis-submission request, if one exists. Returns true when rows were added.
func applyCarryForward(request *models.PhdRequest) bool {
	var earlier models.PhdRequest
	if err := config.DB.
		Where("student_email = ? AND request_type = ?", request.StudentEmail, services.RequestTypeThesisSubmission).
		Order("request_id DESC").
		First(&earlier).Error; err != nil {
		return false
	}

	carried, err := services.NewDocumentPolicyService(nil).ApplyCarryForward(earlier.RequestID, request.RequestID)
	if err != nil {
		// Carry-forward failure degrades the view, it never blocks it.
		return false
	}
	return len(carried) > 0
}

// ListRequests returns requests the caller may see, with optional status,
// type and semester filters.
func ListRequests(c *gin.Context) {
	email, ok := getCurrentEmail(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}
	roleID, _ := getCurrentRoleID(c)

	query := config.DB.Preload("Semester").Model(&models.PhdRequest{})

	// Staff see everything; everyone else sees requests they appear on.
	if roleID != 3 {
		query = query.Where(
			"student_email = ? OR supervisor_email = ? OR request_id IN (SELECT request_id FROM dac_members WHERE email = ?)",
			email, email, email,
		)
	}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}
	if requestType := strings.TrimSpace(c.Query("type")); requestType != "" {
		query = query.Where("request_type = ?", requestType)
	}
	if semesterID, err := strconv.Atoi(c.Query("semester_id")); err == nil && semesterID > 0 {
		query = query.Where("semester_id = ?", semesterID)
	}

	var requests []models.PhdRequest
	if err := query.Order("update_at DESC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requests,
		"total":    len(requests),
	})
}

// GetStudentHistory returns a student's requests with reviews and status
// history, newest first.
func GetStudentHistory(c *gin.Context) {
	studentEmail := strings.TrimSpace(c.Param("studentEmail"))
	if !utils.ValidateEmail(studentEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student email"})
		return
	}

	callerEmail, _ := getCurrentEmail(c)
	roleID, _ := getCurrentRoleID(c)
	if roleID != 3 && !strings.EqualFold(callerEmail, studentEmail) {
		// Supervisors of any of the student's requests may also look.
		var count int64
		config.DB.Model(&models.PhdRequest{}).
			Where("student_email = ? AND supervisor_email = ?", studentEmail, callerEmail).
			Count(&count)
		if count == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
	}

	var requests []models.PhdRequest
	if err := config.DB.Preload("Semester").Preload("Reviews").
		Where("student_email = ?", studentEmail).
		Order("create_at DESC").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	histories := map[int][]models.RequestStatusHistory{}
	for _, request := range requests {
		var rows []models.RequestStatusHistory
		if err := config.DB.Where("request_id = ?", request.RequestID).
			Order("created_at ASC").Find(&rows).Error; err == nil {
			histories[request.RequestID] = rows
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requests,
		"history":  histories,
	})
}
