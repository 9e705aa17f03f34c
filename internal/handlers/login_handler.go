package handlers

import (
	"net/http"

	"servicesales-pro/internal/auth"
	"servicesales-pro/internal/database"
	"servicesales-pro/internal/models"
	"servicesales-pro/internal/permissions"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var employee models.Employee
	if err := database.DB.Where("username = ?", input.Username).First(&employee).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(employee.ID, employee.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// The permission set rides along so the frontend can build its menu
	// without a second round trip. An unknown role gets an empty list and
	// sees no pages.
	var defs []models.RoleDefinition
	if err := database.DB.Find(&defs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load role definitions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"employee":    employee,
		"role":        employee.Role,
		"permissions": permissions.For(employee.Role, defs).List(),
	})
}
