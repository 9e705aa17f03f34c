package handlers

import (
	"net/http"

	"servicesales-pro/internal/database"
	"servicesales-pro/internal/ledger"
	"servicesales-pro/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := database.DB.Order("name").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func AddCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if customer.Name == "" || customer.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and phone are required"})
		return
	}
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "customer": customer})
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UpdateCustomer edits contact fields only. The running balance belongs
// to the reconciliation engine: a totalDebt sent by the client is
// ignored.
func UpdateCustomer(c *gin.Context) {
	id := c.Param("id")

	var input UpdateCustomerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}

	if err := database.DB.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "customer": customer})
}

// ReconcileCustomerDebt rebuilds one customer's balance as the full
// aggregate over their invoices. This repairs drift left by data that
// predates transactional updates.
func ReconcileCustomerDebt(c *gin.Context) {
	id := c.Param("id")

	tx := database.DB.Begin()

	var customer models.Customer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&customer, "id = ?", id).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var invoices []models.Invoice
	if err := tx.Where("customer_id = ?", id).Find(&invoices).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invoices"})
		return
	}

	previous := customer.TotalDebt
	customer.TotalDebt = ledger.RecomputeTotalDebt(id, invoices)

	if err := tx.Save(&customer).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"customer":     customer,
		"previousDebt": previous,
	})
}
