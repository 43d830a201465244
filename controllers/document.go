package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ims-api/config"
	"ims-api/models"
	"ims-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadBytes = 25 << 20 // 25 MB

// UploadDocument attaches a file to a request. Accepts multipart/form-data
// with fields: file, document_type (code), is_private.
func UploadDocument(c *gin.Context) {
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}

	var request models.PhdRequest
	if err := config.DB.Preload("DacMembers").Where("request_id = ?", requestID).
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

	typeCode := strings.TrimSpace(c.PostForm("document_type"))
	if typeCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_type is required"})
		return
	}
	var docType models.DocumentType
	if err := config.DB.Where("code = ? AND delete_at IS NULL", typeCode).
		First(&docType).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown document type"})
		return
	}

	isPrivate := c.PostForm("is_private") == "true"
	// Students cannot mark documents private; private docs are hidden from them.
	if isPrivate && !services.CanSeePrivateDocuments(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only staff roles may attach private documents"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	userID, _ := getCurrentUserID(c)
	now := time.Now()

	file := models.FileUpload{
		OriginalName: fileHeader.Filename,
		FileSize:     fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		UploadedBy:   userID,
		UploadedAt:   now,
		CreateAt:     now,
	}
	if !file.IsValidDocumentType() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type. Allowed: PDF, Word, Excel"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File is %.1fMB, the limit is 25MB", file.GetFileSizeInMB()),
		})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	storedName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	storedPath := filepath.Join(uploadPath, storedName)

	if err := c.SaveUploadedFile(fileHeader, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}
	file.StoredPath = storedPath
	if err := config.DB.Create(&file).Error; err != nil {
		// Best-effort cleanup of the stored file; a failed unlink is logged
		// by the OS layer and otherwise ignored.
		_ = os.Remove(storedPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record upload"})
		return
	}

	document := models.RequestDocument{
		RequestID:      requestID,
		DocumentTypeID: docType.DocumentTypeID,
		FileID:         file.FileID,
		UploadedBy:     userID,
		IsPrivate:      isPrivate,
		CreateAt:       &now,
	}
	if err := config.DB.Create(&document).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach document"})
		return
	}

	config.DB.Preload("DocumentType").Preload("File").First(&document, document.DocumentID)
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Document uploaded",
		"document": document,
	})
}

// GetRequestDocuments lists a request's documents filtered for the caller.
func GetRequestDocuments(c *gin.Context) {
	requestID, ok := parseRequestID(c)
	if !ok {
		return
	}

	var request models.PhdRequest
	if err := config.DB.Preload("DacMembers").Where("request_id = ?", requestID).
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

	var documents []models.RequestDocument
	if err := config.DB.Preload("DocumentType").Preload("File").
		Where("request_id = ? AND delete_at IS NULL", requestID).
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	documents = services.VisibleDocuments(documents, role)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"documents": documents,
		"total":     len(documents),
	})
}

// DownloadFile streams a stored file by id, the "/f/:fileId" surface.
func DownloadFile(c *gin.Context) {
	fileID, err := strconv.Atoi(c.Param("file_id"))
	if err != nil || fileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	var file models.FileUpload
	if err := config.DB.Where("file_id = ? AND delete_at IS NULL", fileID).
		First(&file).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	// Private documents referencing this file require a staff-type role on
	// the owning request.
	var documents []models.RequestDocument
	config.DB.Where("file_id = ? AND delete_at IS NULL", fileID).Find(&documents)
	for _, document := range documents {
		if !document.IsPrivate {
			continue
		}
		var request models.PhdRequest
		if err := config.DB.Preload("DacMembers").
			Where("request_id = ?", document.RequestID).First(&request).Error; err != nil {
			continue
		}
		role, ok := viewerRoleFor(c, &request)
		if !ok || !services.CanSeePrivateDocuments(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "This document is private"})
			return
		}
	}

	c.FileAttachment(file.StoredPath, file.OriginalName)
}

// GetDocumentTypes lists the configured document type tags.
func GetDocumentTypes(c *gin.Context) {
	var types []models.DocumentType
	if err := config.DB.Where("delete_at IS NULL").
		Order("document_order ASC").Find(&types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch document types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "document_types": types})
}
