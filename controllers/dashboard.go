package controllers

import (
	"net/http"

	"ims-api/config"
	"ims-api/models"
	"ims-api/services"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns request counts by status, how many requests sit
// in a review stage, open todo count and the active semesters' deadlines.
func GetDashboardStats(c *gin.Context) {
	type statusRow struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	}

	var byStatus []statusRow
	if err := config.DB.Model(&models.PhdRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build stats"})
		return
	}

	var pendingReviews int64
	config.DB.Model(&models.PhdRequest{}).
		Where("status IN ?", services.ReviewStatuses()).
		Count(&pendingReviews)

	var openTodos int64
	config.DB.Model(&models.Todo{}).Where("is_completed = ?", false).Count(&openTodos)

	var semesters []models.ProposalSemester
	config.DB.Where("is_active = ?", true).Find(&semesters)

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"requests":         byStatus,
		"pending_reviews":  pendingReviews,
		"open_todos":       openTodos,
		"active_semesters": semesters,
	})
}
