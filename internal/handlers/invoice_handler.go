package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"servicesales-pro/internal/database"
	"servicesales-pro/internal/ledger"
	"servicesales-pro/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetInvoices(c *gin.Context) {
	var invoices []models.Invoice
	if err := database.DB.Order("date desc").Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// applyDebtChange folds one invoice's debt movement into its customer,
// inside the same transaction as the invoice write. The customer row is
// locked first so two overlapping edits cannot apply deltas computed from
// stale balances.
func applyDebtChange(tx *gorm.DB, old, updated *models.Invoice) error {
	delta := ledger.Delta(old, updated)
	if delta == 0 {
		return nil
	}

	var customer models.Customer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&customer, "id = ?", updated.CustomerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Walk-in sale with no customer record: nothing to reconcile.
		return nil
	}
	if err != nil {
		return err
	}

	customer.TotalDebt = ledger.ApplyDelta(customer.TotalDebt, delta)
	return tx.Save(&customer).Error
}

// deductStockOnSale is an opt-in behavior: historically stock was only
// moved by goods imports, and the stock report reads on-hand quantity as
// independent state. Enable DEDUCT_STOCK_ON_SALE to also decrement stock
// when an invoice consumes goods.
func deductStockOnSale() bool {
	return os.Getenv("DEDUCT_STOCK_ON_SALE") == "true"
}

func deductStock(tx *gorm.DB, inv *models.Invoice) error {
	for _, item := range inv.Items {
		if item.Type == models.ProductService {
			continue
		}
		var product models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", item.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if product.Stock == nil {
			product.Stock = map[models.Warehouse]int{}
		}
		product.Stock[inv.Warehouse] -= item.Quantity
		if err := tx.Save(&product).Error; err != nil {
			return err
		}
		log.Printf("Stock deducted: %s -%d at %s (invoice %s)", product.Name, item.Quantity, inv.Warehouse.Label(), inv.ID)
	}
	return nil
}

// AddInvoice creates a SALE invoice from POS checkout (repair intake has
// its own endpoint). The invoice insert and the customer debt update are
// one transaction: either both land or neither does.
func AddInvoice(c *gin.Context) {
	var invoice models.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if invoice.ID == "" {
		invoice.ID = uuid.NewString()
	}
	if invoice.Date.IsZero() {
		invoice.Date = time.Now()
	}
	if invoice.InvoiceType == "" {
		invoice.InvoiceType = models.InvoiceSale
	}
	if invoice.Warehouse == "" {
		invoice.Warehouse = models.WarehouseTayPhat
	}
	if invoice.SalesID == "" {
		if employeeID, ok := c.Get("employeeID"); ok {
			invoice.SalesID = employeeID.(string)
		}
	}

	tx := database.DB.Begin()

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	if err := applyDebtChange(tx, nil, &invoice); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer debt"})
		return
	}

	if deductStockOnSale() && !invoice.IsCancelled() {
		if err := deductStock(tx, &invoice); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
	}

	tx.Commit()
	c.JSON(http.StatusCreated, gin.H{"success": true, "invoice": invoice})
}

// InvoiceUpdateRequest carries partial invoice fields: only what was sent
// gets applied. Pointers distinguish "absent" from zero values.
type InvoiceUpdateRequest struct {
	Items        *[]models.InvoiceItem `json:"items"`
	TotalAmount  *float64              `json:"totalAmount"`
	PaidAmount   *float64              `json:"paidAmount"`
	Status       *models.InvoiceStatus `json:"status"`
	RepairStatus *models.RepairStatus  `json:"repairStatus"`
	Note         *string               `json:"note"`
	DeviceInfo   *models.DeviceInfo    `json:"deviceInfo"`
	TechnicianID *string               `json:"technicianId"`
	SalesID      *string               `json:"salesId"`
}

func (r *InvoiceUpdateRequest) applyTo(inv *models.Invoice) {
	if r.Items != nil {
		inv.Items = *r.Items
	}
	if r.TotalAmount != nil {
		inv.TotalAmount = *r.TotalAmount
	}
	if r.PaidAmount != nil {
		inv.PaidAmount = *r.PaidAmount
	}
	if r.Status != nil {
		inv.Status = *r.Status
	}
	if r.RepairStatus != nil {
		inv.RepairStatus = *r.RepairStatus
	}
	if r.Note != nil {
		inv.Note = *r.Note
	}
	if r.DeviceInfo != nil {
		inv.DeviceInfo = r.DeviceInfo
	}
	if r.TechnicianID != nil {
		inv.TechnicianID = *r.TechnicianID
	}
	if r.SalesID != nil {
		inv.SalesID = *r.SalesID
	}
}

// UpdateInvoice applies a partial edit and reconciles the customer's
// balance against the invoice's before/after debt contribution. Setting
// status (or repairStatus) to CANCELLED through here removes the
// invoice's prior contribution.
func UpdateInvoice(c *gin.Context) {
	id := c.Param("id")

	var input InvoiceUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	tx := database.DB.Begin()

	var invoice models.Invoice
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invoice"})
		return
	}

	old := invoice
	input.applyTo(&invoice)

	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}

	if err := applyDebtChange(tx, &old, &invoice); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer debt"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"success": true, "invoice": invoice})
}
