package controllers

import (
	"net/http"
	"strconv"
	"time"

	"ims-api/config"
	"ims-api/models"

	"github.com/gin-gonic/gin"
)

// GetMyTodos lists the caller's open todos, oldest first.
func GetMyTodos(c *gin.Context) {
	email, ok := getCurrentEmail(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	var todos []models.Todo
	if err := config.DB.
		Where("assigned_to = ? AND is_completed = ?", email, false).
		Order("create_at ASC").
		Find(&todos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"todos":   todos,
		"total":   len(todos),
	})
}

// CompleteTodo closes one of the caller's own todos.
func CompleteTodo(c *gin.Context) {
	todoID, err := strconv.Atoi(c.Param("id"))
	if err != nil || todoID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo ID"})
		return
	}

	email, _ := getCurrentEmail(c)

	var todo models.Todo
	if err := config.DB.Where("todo_id = ?", todoID).First(&todo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	if todo.AssignedTo != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your todo"})
		return
	}
	if todo.IsCompleted {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Already completed"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&todo).Updates(map[string]interface{}{
		"is_completed": true,
		"completed_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete todo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Todo completed"})
}
