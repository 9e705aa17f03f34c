package handlers

import (
	"net/http"
	"time"

	"servicesales-pro/internal/database"
	"servicesales-pro/internal/models"
	"servicesales-pro/internal/vat"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func GetVATInvoices(c *gin.Context) {
	var invoices []models.VATInvoice
	if err := database.DB.Order("date desc").Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch VAT invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// AddVATInvoice stores a VAT invoice. Line and header totals are always
// recomputed server-side, so a draft pre-filled by the AI parser (or a
// hand-typed one with arithmetic slips) still lands consistent.
func AddVATInvoice(c *gin.Context) {
	var invoice models.VATInvoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if invoice.ID == "" {
		invoice.ID = uuid.NewString()
	}
	if invoice.Date.IsZero() {
		invoice.Date = time.Now()
	}
	if invoice.Warehouse == "" {
		invoice.Warehouse = models.WarehouseTayPhat
	}
	vat.Normalize(&invoice)

	if err := database.DB.Create(&invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create VAT invoice"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "invoice": invoice})
}

// mergeVATUpdate folds a full-replace payload over the stored record.
// Fields the client left empty keep their stored values - notably Status,
// so a payload without it cannot knock a SYNCED invoice back to PENDING -
// then the totals invariant is re-enforced.
func mergeVATUpdate(existing *models.VATInvoice, incoming models.VATInvoice) models.VATInvoice {
	incoming.ID = existing.ID
	if incoming.Date.IsZero() {
		incoming.Date = existing.Date
	}
	if incoming.Warehouse == "" {
		incoming.Warehouse = existing.Warehouse
	}
	if incoming.Status == "" {
		incoming.Status = existing.Status
	}
	vat.Normalize(&incoming)
	return incoming
}

// UpdateVATInvoice replaces an existing record, re-enforcing the totals
// invariant.
func UpdateVATInvoice(c *gin.Context) {
	id := c.Param("id")

	var existing models.VATInvoice
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "VAT invoice not found"})
		return
	}

	var invoice models.VATInvoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	invoice = mergeVATUpdate(&existing, invoice)

	if err := database.DB.Save(&invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update VAT invoice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "invoice": invoice})
}
