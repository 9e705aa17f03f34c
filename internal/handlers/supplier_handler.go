package handlers

import (
	"net/http"

	"servicesales-pro/internal/database"
	"servicesales-pro/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func GetSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := database.DB.Find(&suppliers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suppliers"})
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func AddSupplier(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if supplier.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier name is required"})
		return
	}
	if supplier.ID == "" {
		supplier.ID = uuid.NewString()
	}

	if err := database.DB.Create(&supplier).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "supplier": supplier})
}
