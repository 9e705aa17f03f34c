package handlers

import (
	"net/http"
	"os"

	"servicesales-pro/internal/ai"
	"servicesales-pro/internal/database"
	"servicesales-pro/internal/models"
	"servicesales-pro/internal/vat"

	"github.com/gin-gonic/gin"
)

func geminiKey(c *gin.Context) (string, bool) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server missing Gemini API Key"})
		return "", false
	}
	return apiKey, true
}

type SuggestNoteRequest struct {
	Symptoms string `json:"symptoms" binding:"required"`
}

// SuggestRepairNote drafts a technician note from the customer's symptom
// description. Used on the repair intake screen.
func SuggestRepairNote(c *gin.Context) {
	var req SuggestNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symptoms text is required"})
		return
	}

	apiKey, ok := geminiKey(c)
	if !ok {
		return
	}

	note, err := ai.SuggestRepairNote(c.Request.Context(), apiKey, req.Symptoms)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note})
}

type ParseVATRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseVATInvoice turns pasted invoice text into a structured draft. The
// draft's totals are recomputed server-side before it is returned, so the
// client previews the same numbers that would be stored.
func ParseVATInvoice(c *gin.Context) {
	var req ParseVATRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice text is required"})
		return
	}

	apiKey, ok := geminiKey(c)
	if !ok {
		return
	}

	draft, err := ai.ParseVATInvoice(c.Request.Context(), apiKey, req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	vat.Normalize(draft)
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

type DebtReportRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
}

// AnalyzeCustomerDebt produces a short written risk assessment of one
// customer's balance for the debt screen.
func AnalyzeCustomerDebt(c *gin.Context) {
	var req DebtReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerId is required"})
		return
	}

	apiKey, ok := geminiKey(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", req.CustomerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var invoices []models.Invoice
	if err := database.DB.Where("customer_id = ?", customer.ID).Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}

	analysis, err := ai.AnalyzeCustomerDebt(c.Request.Context(), apiKey, &customer, invoices)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
