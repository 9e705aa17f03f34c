package handlers

import (
	"net/http"

	"servicesales-pro/internal/database"
	"servicesales-pro/internal/models"
	"servicesales-pro/internal/permissions"

	"github.com/gin-gonic/gin"
)

// GetRoles returns the role catalog with resolved permission lists.
func GetRoles(c *gin.Context) {
	var defs []models.RoleDefinition
	if err := database.DB.Find(&defs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch roles"})
		return
	}
	c.JSON(http.StatusOK, defs)
}

type TogglePermissionRequest struct {
	Role       models.Role       `json:"role" binding:"required"`
	Permission models.Permission `json:"permission" binding:"required"`
}

// ToggleRolePermission flips one permission on one role. The admin's
// access to the settings screen cannot be toggled off; that request is a
// no-op and the catalog comes back unchanged.
func ToggleRolePermission(c *gin.Context) {
	var req TogglePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role and permission are required"})
		return
	}

	var defs []models.RoleDefinition
	if err := database.DB.Find(&defs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch roles"})
		return
	}

	changed := permissions.Toggle(defs, req.Role, req.Permission)
	if changed == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "roles": defs})
		return
	}

	if err := database.DB.Save(changed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "roles": defs})
}

// GetSettings returns the single company profile row.
func GetSettings(c *gin.Context) {
	var settings models.SystemSettings
	if err := database.DB.First(&settings, 1).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings overwrites the company profile row.
func UpdateSettings(c *gin.Context) {
	var req models.SystemSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings payload"})
		return
	}

	req.ID = 1
	if err := database.DB.Save(&req).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": req})
}
