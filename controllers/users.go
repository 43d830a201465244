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

type userPayload struct {
	Prefix    string `json:"prefix"`
	UserFname string `json:"user_fname" binding:"required"`
	UserLname string `json:"user_lname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password"`
	RoleID    int    `json:"role_id" binding:"required"`
	Room      string `json:"room"`
	Tel       string `json:"tel"`
}

// ListUsers returns active members, filterable by role.
func ListUsers(c *gin.Context) {
	query := config.DB.Preload("Role").Where("delete_at IS NULL")
	if roleID, err := strconv.Atoi(c.Query("role_id")); err == nil && roleID > 0 {
		query = query.Where("role_id = ?", roleID)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		query = query.Where("user_fname LIKE ? OR user_lname LIKE ? OR email LIKE ?", like, like, like)
	}

	var users []models.User
	if err := query.Order("user_lname ASC, user_fname ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users, "total": len(users)})
}

// CreateUser registers a department member.
func CreateUser(c *gin.Context) {
	var req userPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	user := models.User{
		Prefix:    ptr(utils.SanitizeInput(req.Prefix)),
		UserFname: utils.SanitizeInput(req.UserFname),
		UserLname: utils.SanitizeInput(req.UserLname),
		Email:     strings.TrimSpace(req.Email),
		Password:  hashed,
		RoleID:    req.RoleID,
		Room:      ptr(utils.SanitizeInput(req.Room)),
		Tel:       ptr(utils.SanitizeInput(req.Tel)),
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

// UpdateUser edits a member's profile fields (not the password).
func UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req userPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	user.Prefix = ptr(utils.SanitizeInput(req.Prefix))
	user.UserFname = utils.SanitizeInput(req.UserFname)
	user.UserLname = utils.SanitizeInput(req.UserLname)
	user.Email = strings.TrimSpace(req.Email)
	user.RoleID = req.RoleID
	user.Room = ptr(utils.SanitizeInput(req.Room))
	user.Tel = ptr(utils.SanitizeInput(req.Tel))
	user.UpdateAt = &now

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// DeactivateUser soft-deletes a member.
func DeactivateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.User{}).
		Where("user_id = ? AND delete_at IS NULL", userID).
		Update("delete_at", now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deactivated"})
}
