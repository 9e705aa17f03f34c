package handlers

import (
	"net/http"

	"servicesales-pro/internal/database"
	"servicesales-pro/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func GetEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := database.DB.Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

type AddEmployeeRequest struct {
	ID       string      `json:"id"`
	Name     string      `json:"name" binding:"required"`
	Role     models.Role `json:"role" binding:"required"`
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required"`
}

func AddEmployee(c *gin.Context) {
	var input AddEmployeeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	employee := models.Employee{
		ID:           input.ID,
		Name:         input.Name,
		Role:         input.Role,
		Username:     input.Username,
		PasswordHash: string(hash),
	}
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}

	if err := database.DB.Create(&employee).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is already taken"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "employee": employee})
}

func DeleteEmployee(c *gin.Context) {
	id := c.Param("id")
	if err := database.DB.Delete(&models.Employee{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
