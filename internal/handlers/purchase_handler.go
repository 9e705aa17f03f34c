package handlers

import (
	"errors"
	"net/http"
	"time"

	"servicesales-pro/internal/database"
	"servicesales-pro/internal/ledger"
	"servicesales-pro/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetPurchaseOrders(c *gin.Context) {
	var orders []models.PurchaseOrder
	if err := database.DB.Order("date desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ImportGoods records a purchase order and applies its two side effects
// in one transaction: stock goes up per line item at the target
// warehouse, and the unpaid remainder is added to the supplier's balance.
// Purchase orders are append-only - there is no update or cancel.
func ImportGoods(c *gin.Context) {
	var po models.PurchaseOrder
	if err := c.ShouldBindJSON(&po); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if po.SupplierID == "" || len(po.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier and at least one item are required"})
		return
	}

	if po.ID == "" {
		po.ID = uuid.NewString()
	}
	if po.Date.IsZero() {
		po.Date = time.Now()
	}
	if po.Warehouse == "" {
		po.Warehouse = models.WarehouseTayPhat
	}
	if po.Status == "" {
		if po.PaidAmount >= po.TotalAmount {
			po.Status = models.PurchaseCompleted
		} else {
			po.Status = models.PurchasePending
		}
	}

	tx := database.DB.Begin()

	if po.SupplierName == "" {
		var supplier models.Supplier
		if err := tx.First(&supplier, "id = ?", po.SupplierID).Error; err == nil {
			po.SupplierName = supplier.Name
		}
	}

	if err := tx.Create(&po).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase order"})
		return
	}

	// Stock increments, one row lock per imported product.
	for _, item := range po.Items {
		var product models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", item.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
			return
		}
		if product.Stock == nil {
			product.Stock = map[models.Warehouse]int{}
		}
		product.Stock[po.Warehouse] += item.Quantity
		if err := tx.Save(&product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
	}

	// Unpaid remainder becomes supplier debt.
	if debt := ledger.SupplierDebt(&po); debt > 0 {
		var supplier models.Supplier
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&supplier, "id = ?", po.SupplierID).Error
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier not found"})
			return
		}
		supplier.TotalDebtToSupplier += debt
		if err := tx.Save(&supplier).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier debt"})
			return
		}
	}

	tx.Commit()
	c.JSON(http.StatusCreated, gin.H{"success": true, "purchaseOrder": po})
}
