package handlers

import (
	"errors"
	"net/http"

	"servicesales-pro/internal/database"
	"servicesales-pro/internal/models"
	"servicesales-pro/internal/repair"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RepairIntakeRequest is what the reception desk submits.
type RepairIntakeRequest struct {
	CustomerID   string            `json:"customerId"`
	CustomerName string            `json:"customerName"`
	Warehouse    models.Warehouse  `json:"warehouse"`
	DeviceInfo   models.DeviceInfo `json:"deviceInfo"`
	Note         string            `json:"note"`
	TechnicianID string            `json:"technicianId"`
}

// CreateRepairTicket opens a ticket at RECEIVED. Missing customer or
// device name rejects the request with a user-facing message and no state
// change.
func CreateRepairTicket(c *gin.Context) {
	var input RepairIntakeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ticket, err := repair.NewTicket(repair.IntakeInput{
		CustomerID:   input.CustomerID,
		CustomerName: input.CustomerName,
		Warehouse:    input.Warehouse,
		Device:       input.DeviceInfo,
		Note:         input.Note,
		TechnicianID: input.TechnicianID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu thông tin khách hoặc máy!"})
		return
	}

	if input.CustomerName == "" {
		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", input.CustomerID).Error; err == nil {
			ticket.CustomerName = customer.Name
		} else {
			ticket.CustomerName = "Khách"
		}
	}

	if err := database.DB.Create(ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create repair ticket"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "ticket": ticket})
}

// RepairSaveRequest is one save from the processing screen. TargetStatus
// is optional: when absent the machine infers forward movement from the
// diagnosis and line items.
type RepairSaveRequest struct {
	Items        []models.InvoiceItem `json:"items"`
	Diagnosis    string               `json:"diagnosis"`
	Note         string               `json:"note"`
	TargetStatus *models.RepairStatus `json:"targetStatus"`
}

// lockTicket loads a repair invoice for update within tx.
func lockTicket(tx *gorm.DB, id string) (*models.Invoice, error) {
	var ticket models.Invoice
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ticket, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func repairErrorStatus(err error) int {
	switch {
	case errors.Is(err, repair.ErrTicketClosed),
		errors.Is(err, repair.ErrNotRepairTicket),
		errors.Is(err, repair.ErrUnknownStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// SaveRepairTicket applies item/diagnosis edits and status movement, then
// reconciles the customer balance through the same path as any invoice
// edit.
func SaveRepairTicket(c *gin.Context) {
	id := c.Param("id")

	var input RepairSaveRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	tx := database.DB.Begin()

	ticket, err := lockTicket(tx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Repair ticket not found"})
		return
	}
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load repair ticket"})
		return
	}

	old := *ticket
	err = repair.Transition(ticket, repair.SaveInput{
		Items:     input.Items,
		Diagnosis: input.Diagnosis,
		Note:      input.Note,
		Target:    input.TargetStatus,
	})
	if err != nil {
		tx.Rollback()
		c.JSON(repairErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	if err := tx.Save(ticket).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update repair ticket"})
		return
	}

	if err := applyDebtChange(tx, &old, ticket); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer debt"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"success": true, "ticket": ticket})
}

// RepairSettleRequest carries the collected payment. Payment defaults to
// the full remaining cost when the field is absent.
type RepairSettleRequest struct {
	Items     []models.InvoiceItem `json:"items"`
	Payment   *float64             `json:"payment"`
	Diagnosis string               `json:"diagnosis"`
	Note      string               `json:"note"`
}

// SettleRepairTicket is "Trả máy & Thu tiền": collect payment, force the
// ticket to DELIVERED, and settle the customer's balance - all in one
// transaction.
func SettleRepairTicket(c *gin.Context) {
	id := c.Param("id")

	var input RepairSettleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	salesID := ""
	if employeeID, ok := c.Get("employeeID"); ok {
		salesID = employeeID.(string)
	}

	tx := database.DB.Begin()

	ticket, err := lockTicket(tx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Repair ticket not found"})
		return
	}
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load repair ticket"})
		return
	}

	old := *ticket

	items := input.Items
	if items == nil {
		items = ticket.Items
	}
	payment := repair.Total(items)
	if input.Payment != nil {
		payment = *input.Payment
	}

	if err := repair.Settle(ticket, items, payment, salesID); err != nil {
		tx.Rollback()
		c.JSON(repairErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if input.Note != "" {
		ticket.Note = input.Note
	}
	if input.Diagnosis != "" {
		if ticket.DeviceInfo == nil {
			ticket.DeviceInfo = &models.DeviceInfo{DeviceName: "Unknown"}
		}
		ticket.DeviceInfo.Diagnosis = input.Diagnosis
	}

	if err := tx.Save(ticket).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update repair ticket"})
		return
	}

	if err := applyDebtChange(tx, &old, ticket); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer debt"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"success": true, "ticket": ticket})
}
