package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"ims-api/config"
	"ims-api/models"
	"ims-api/services"
	"ims-api/utils"

	"github.com/gin-gonic/gin"
)

type signaturePayload struct {
	FileID      int    `json:"file_id" binding:"required"`
	SignerEmail string `json:"signer_email" binding:"required,email"`
	Title       string `json:"title" binding:"required"`
}

// CreateSignatureRequest asks someone to sign an uploaded file.
func CreateSignatureRequest(c *gin.Context) {
	var req signaturePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var file models.FileUpload
	if err := config.DB.Where("file_id = ? AND delete_at IS NULL", req.FileID).
		First(&file).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	email, _ := getCurrentEmail(c)
	now := time.Now()
	signature := models.SignatureRequest{
		FileID:         req.FileID,
		RequesterEmail: email,
		SignerEmail:    strings.TrimSpace(req.SignerEmail),
		Title:          utils.SanitizeInput(req.Title),
		Status:         services.SignatureStatusPending,
		Version:        1,
		CreateAt:       &now,
		UpdateAt:       &now,
	}
	if err := config.DB.Create(&signature).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create signature request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "signature_request": signature})
}

// ListSignatureRequests returns requests the caller raised or must sign.
func ListSignatureRequests(c *gin.Context) {
	email, _ := getCurrentEmail(c)
	roleID, _ := getCurrentRoleID(c)

	query := config.DB.Model(&models.SignatureRequest{})
	if roleID != 3 {
		query = query.Where("requester_email = ? OR signer_email = ?", email, email)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var signatures []models.SignatureRequest
	if err := query.Order("update_at DESC").Find(&signatures).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch signature requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "signature_requests": signatures, "total": len(signatures)})
}

// DecideSignature records the signer's sign or decline. A decided request is
// closed for good; the version guard keeps a double submission from landing
// twice.
func DecideSignature(c *gin.Context) {
	signatureID, err := strconv.Atoi(c.Param("id"))
	if err != nil || signatureID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature request ID"})
		return
	}

	var req struct {
		Decision string `json:"decision" binding:"required"`
		Reason   string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var signature models.SignatureRequest
	if err := config.DB.First(&signature, signatureID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Signature request not found"})
		return
	}

	email, _ := getCurrentEmail(c)
	if !strings.EqualFold(email, signature.SignerEmail) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the assigned signer may act"})
		return
	}

	next, err := services.ResolveSignatureDecision(signature.Status, req.Decision, req.Reason)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":    next,
		"version":   signature.Version + 1,
		"update_at": now,
	}
	if next == services.SignatureStatusSigned {
		updates["signed_at"] = now
	}
	if reason := strings.TrimSpace(req.Reason); reason != "" {
		updates["reason"] = reason
	}

	result := config.DB.Model(&models.SignatureRequest{}).
		Where("signature_id = ? AND version = ?", signature.SignatureID, signature.Version).
		Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record decision"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Signature request was modified concurrently"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Decision recorded", "status": next})
}
