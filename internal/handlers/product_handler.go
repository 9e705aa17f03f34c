package handlers

import (
	"net/http"

	"servicesales-pro/internal/database"
	"servicesales-pro/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func GetProducts(c *gin.Context) {
	var products []models.Product
	if err := database.DB.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// UpsertProduct is create-or-replace keyed by id: the inventory screen and
// the goods import flow both push whole product records through here.
func UpsertProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	// Every known warehouse gets a stock entry, even if the client only
	// sent one of them.
	if product.Stock == nil {
		product.Stock = map[models.Warehouse]int{}
	}
	for _, wh := range models.AllWarehouses {
		if _, ok := product.Stock[wh]; !ok {
			product.Stock[wh] = 0
		}
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&product).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := database.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
