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

type inventoryPayload struct {
	Name         string `json:"name" binding:"required"`
	SerialNumber string `json:"serial_number" binding:"required"`
	Location     string `json:"location"`
}

// CreateInventoryItem registers a new asset.
func CreateInventoryItem(c *gin.Context) {
	var req inventoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	item := models.InventoryItem{
		Name:         utils.SanitizeInput(req.Name),
		SerialNumber: utils.SanitizeInput(req.SerialNumber),
		Location:     utils.SanitizeInput(req.Location),
		Status:       "available",
		CreateAt:     &now,
		UpdateAt:     &now,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
}

// ListInventoryItems returns assets, filterable by status.
func ListInventoryItems(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var items []models.InventoryItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "items": items, "total": len(items)})
}

// BorrowInventoryItem marks an available item as borrowed by an email.
func BorrowInventoryItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req struct {
		BorrowerEmail string `json:"borrower_email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.InventoryItem{}).
		Where("item_id = ? AND status = ? AND delete_at IS NULL", itemID, "available").
		Updates(map[string]interface{}{
			"status":      "borrowed",
			"borrowed_by": req.BorrowerEmail,
			"borrowed_at": now,
			"update_at":   now,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to borrow item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Item is not available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item borrowed"})
}

// ReturnInventoryItem marks a borrowed item as available again.
func ReturnInventoryItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.InventoryItem{}).
		Where("item_id = ? AND status = ? AND delete_at IS NULL", itemID, "borrowed").
		Updates(map[string]interface{}{
			"status":      "available",
			"borrowed_by": nil,
			"borrowed_at": nil,
			"update_at":   now,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to return item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Item is not borrowed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item returned"})
}

// DeleteInventoryItem soft-deletes (retires) an asset.
func DeleteInventoryItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.InventoryItem{}).
		Where("item_id = ? AND delete_at IS NULL", itemID).
		Updates(map[string]interface{}{"status": "retired", "delete_at": now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item retired"})
}
