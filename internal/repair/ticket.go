// Package repair governs the lifecycle of a repair ticket from intake to
// delivery or cancellation, together with the line items and pricing
// attached to it. Every status change runs through Transition so any future
// tightening of allowed edges is a one-place change.
package repair

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"servicesales-pro/internal/models"
)

var (
	ErrMissingCustomer   = errors.New("repair intake requires a customer")
	ErrMissingDeviceName = errors.New("repair intake requires a device name")
	ErrTicketClosed      = errors.New("ticket is delivered or cancelled")
	ErrNotRepairTicket   = errors.New("invoice is not a repair ticket")
	ErrUnknownStatus     = errors.New("unknown repair status")
)

var validStatuses = map[models.RepairStatus]struct{}{
	models.RepairReceived:     {},
	models.RepairChecking:     {},
	models.RepairQuoting:      {},
	models.RepairWaitingParts: {},
	models.RepairInProgress:   {},
	models.RepairCompleted:    {},
	models.RepairDelivered:    {},
	models.RepairCancelled:    {},
}

// IsTerminal reports whether a ticket in this state accepts no further work.
func IsTerminal(s models.RepairStatus) bool {
	return s == models.RepairDelivered || s == models.RepairCancelled
}

// IntakeInput is what the reception desk captures before a ticket exists.
type IntakeInput struct {
	CustomerID   string
	CustomerName string
	Warehouse    models.Warehouse
	Device       models.DeviceInfo
	Note         string
	TechnicianID string
}

// NewTicket validates intake and builds a fresh ticket: RECEIVED, empty
// item list, zero totals. Validation failures block creation outright -
// nothing is mutated, the caller just shows the message.
func NewTicket(in IntakeInput) (*models.Invoice, error) {
	if in.CustomerID == "" {
		return nil, ErrMissingCustomer
	}
	if in.Device.DeviceName == "" {
		return nil, ErrMissingDeviceName
	}

	warehouse := in.Warehouse
	if warehouse == "" {
		warehouse = models.WarehouseTayPhat
	}

	device := in.Device
	return &models.Invoice{
		ID:           fmt.Sprintf("REP-%s", uuid.NewString()[:8]),
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		Date:         time.Now(),
		Items:        []models.InvoiceItem{},
		TotalAmount:  0,
		PaidAmount:   0,
		Warehouse:    warehouse,
		Status:       models.InvoiceUnpaid,
		InvoiceType:  models.InvoiceRepair,
		RepairStatus: models.RepairReceived,
		Note:         in.Note,
		DeviceInfo:   &device,
		TechnicianID: in.TechnicianID,
	}, nil
}

// Total is the ticket cost: sum of quantity*price over the line items.
func Total(items []models.InvoiceItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// SaveInput is one "Save" from the processing screen: the edited line
// items, diagnosis and note, and optionally an explicit target status
// picked from the action buttons.
type SaveInput struct {
	Items     []models.InvoiceItem
	Diagnosis string
	Note      string
	Target    *models.RepairStatus
}

// Transition applies a save to a ticket in place. An explicit target wins:
// any of the valid labels can be set directly, the machine does not force
// the nominal order (real repairs get reordered). Without a target the
// status is inferred, forward only:
//
//	RECEIVED -> CHECKING once a diagnosis is present
//	CHECKING -> QUOTING  once at least one line item exists
//
// Items may be edited in any non-terminal state; the total is recomputed
// on every save.
func Transition(ticket *models.Invoice, in SaveInput) error {
	if ticket.InvoiceType != models.InvoiceRepair {
		return ErrNotRepairTicket
	}
	if IsTerminal(ticket.RepairStatus) {
		return ErrTicketClosed
	}

	status := ticket.RepairStatus
	if status == "" {
		status = models.RepairReceived
	}
	if in.Target != nil {
		if _, ok := validStatuses[*in.Target]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownStatus, *in.Target)
		}
		status = *in.Target
	} else {
		if status == models.RepairReceived && in.Diagnosis != "" {
			status = models.RepairChecking
		}
		if status == models.RepairChecking && len(in.Items) > 0 {
			status = models.RepairQuoting
		}
	}

	ticket.Items = in.Items
	ticket.TotalAmount = Total(in.Items)
	ticket.Note = in.Note
	ticket.RepairStatus = status
	if ticket.DeviceInfo == nil {
		ticket.DeviceInfo = &models.DeviceInfo{DeviceName: "Unknown"}
	}
	ticket.DeviceInfo.Diagnosis = in.Diagnosis
	return nil
}

// Settle is the "Trả máy & Thu tiền" action: collect a payment and hand
// the device back. The ticket is forced to DELIVERED regardless of its
// current (non-terminal) state, the paid amount is clamped to the total,
// and the invoice status is derived from how much was collected. The
// caller pushes the result through the normal invoice-update path so the
// debt ledger sees it like any other edit.
func Settle(ticket *models.Invoice, items []models.InvoiceItem, payment float64, salesID string) error {
	if ticket.InvoiceType != models.InvoiceRepair {
		return ErrNotRepairTicket
	}
	if IsTerminal(ticket.RepairStatus) {
		return ErrTicketClosed
	}

	total := Total(items)
	paid := payment
	if paid > total {
		paid = total
	}
	if paid < 0 {
		paid = 0
	}

	ticket.Items = items
	ticket.TotalAmount = total
	ticket.PaidAmount = paid
	switch {
	case payment >= total:
		ticket.Status = models.InvoicePaid
	case payment > 0:
		ticket.Status = models.InvoicePartial
	default:
		ticket.Status = models.InvoiceUnpaid
	}
	ticket.RepairStatus = models.RepairDelivered
	ticket.SalesID = salesID
	return nil
}
