package controllers

import (
	"errors"
	"net/http"
	"strings"

	"ims-api/config"
	"ims-api/models"
	"ims-api/services"

	"github.com/gin-gonic/gin"
)

func ptr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func getCurrentUserID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(int); ok {
			return id, true
		}
	}
	return 0, false
}

func getCurrentEmail(c *gin.Context) (string, bool) {
	if v, ok := c.Get("email"); ok {
		if email, ok := v.(string); ok && email != "" {
			return email, true
		}
	}
	return "", false
}

func getCurrentRoleID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("roleID"); ok {
		if id, ok := v.(int); ok {
			return id, true
		}
	}
	return 0, false
}

// respondWorkflowError maps the error taxonomy onto HTTP status codes.
func respondWorkflowError(c *gin.Context, err error) {
	var wfErr *services.WorkflowError
	if errors.As(err, &wfErr) {
		status := http.StatusInternalServerError
		switch wfErr.Kind {
		case services.ErrKindValidation:
			status = http.StatusBadRequest
		case services.ErrKindAuthorization:
			status = http.StatusForbidden
		case services.ErrKindNotFound:
			status = http.StatusNotFound
		case services.ErrKindStateConflict:
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": wfErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// viewerRoleFor resolves the caller's workflow role relative to one request.
// Role of record wins over the global role; staff accounts fall back to the
// staff role.
func viewerRoleFor(c *gin.Context, request *models.PhdRequest) (services.RoleKind, bool) {
	email, ok := getCurrentEmail(c)
	if !ok {
		return "", false
	}
	lowered := strings.ToLower(email)

	if lowered == strings.ToLower(request.SupervisorEmail) {
		return services.RoleSupervisor, true
	}
	for _, member := range request.DacMembers {
		if strings.ToLower(member.Email) == lowered {
			return services.RoleDacMember, true
		}
	}
	if emails, err := services.GetUsersWithPermission(config.DB, "phd:"+request.RequestType+":drc-review"); err == nil {
		for _, convener := range emails {
			if strings.ToLower(convener) == lowered {
				return services.RoleDrcConvener, true
			}
		}
	}
	if lowered == strings.ToLower(request.StudentEmail) {
		return services.RoleStudent, true
	}
	if roleID, ok := getCurrentRoleID(c); ok && roleID == 3 {
		return services.RoleStaff, true
	}
	return "", false
}
