package controllers

import (
	"net/http"
	"strconv"
	"time"

	"ims-api/config"
	"ims-api/models"
	"ims-api/utils"

	"github.com/gin-gonic/gin"
)

type publicationPayload struct {
	Title     string `json:"title" binding:"required"`
	Venue     string `json:"venue" binding:"required"`
	Year      int    `json:"year" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Citations int    `json:"citations"`
}

// CreatePublication records one publication for the caller.
func CreatePublication(c *gin.Context) {
	var req publicationPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := getCurrentUserID(c)
	now := time.Now()
	publication := models.Publication{
		UserID:    userID,
		Title:     utils.SanitizeInput(req.Title),
		Venue:     utils.SanitizeInput(req.Venue),
		Year:      req.Year,
		Type:      req.Type,
		Citations: req.Citations,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := config.DB.Create(&publication).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create publication"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "publication": publication})
}

// ListMyPublications lists the caller's publications, newest year first.
func ListMyPublications(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var publications []models.Publication
	if err := config.DB.
		Where("user_id = ? AND delete_at IS NULL", userID).
		Order("year DESC, publication_id DESC").
		Find(&publications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch publications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"publications": publications,
		"total":        len(publications),
	})
}

// GetPublicationSummary returns department-wide yearly counts and citation
// totals, optionally bounded by from/to years.
func GetPublicationSummary(c *gin.Context) {
	type yearRow struct {
		Year         int `json:"year"`
		Publications int `json:"publications"`
		Citations    int `json:"citations"`
	}

	query := config.DB.Model(&models.Publication{}).
		Select("year, COUNT(*) AS publications, SUM(citations) AS citations").
		Where("delete_at IS NULL")

	if from, err := strconv.Atoi(c.Query("from")); err == nil && from > 0 {
		query = query.Where("year >= ?", from)
	}
	if to, err := strconv.Atoi(c.Query("to")); err == nil && to > 0 {
		query = query.Where("year <= ?", to)
	}

	var rows []yearRow
	if err := query.Group("year").Order("year ASC").Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}

	totalPublications := 0
	totalCitations := 0
	for _, row := range rows {
		totalPublications += row.Publications
		totalCitations += row.Citations
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"by_year":            rows,
		"total_publications": totalPublications,
		"total_citations":    totalCitations,
	})
}
