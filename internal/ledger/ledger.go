// Package ledger is the debt reconciliation engine. It is the only place
// that decides how an invoice change moves a customer's running balance,
// so the rule lives in one spot instead of being scattered across
// handlers.
package ledger

import (
	"servicesales-pro/internal/models"
)

// Outstanding is the debt contribution of a single invoice: zero when
// cancelled, otherwise the unpaid remainder floored at zero.
func Outstanding(inv *models.Invoice) float64 {
	if inv == nil || inv.IsCancelled() {
		return 0
	}
	debt := inv.TotalAmount - inv.PaidAmount
	if debt < 0 {
		return 0
	}
	return debt
}

// Delta computes the balance movement caused by one invoice change. Pass
// old == nil for a freshly created invoice. The delta is keyed to this one
// invoice's before/after snapshot, not a recompute of the whole customer.
//
// Creation has a stricter rule than later edits: an invoice recorded as
// PAID at checkout adds nothing, even when the captured payment falls
// short of the total. The cashier marked it settled, so no receivable is
// opened for the gap.
func Delta(old, updated *models.Invoice) float64 {
	if old == nil {
		if updated != nil && updated.Status == models.InvoicePaid {
			return 0
		}
		return Outstanding(updated)
	}
	return Outstanding(updated) - Outstanding(old)
}

// ApplyDelta folds a movement into a customer balance, clamping at zero so
// overpayments and cancellations can never drive the ledger negative.
func ApplyDelta(totalDebt, delta float64) float64 {
	next := totalDebt + delta
	if next < 0 {
		return 0
	}
	return next
}

// RecomputeTotalDebt derives a customer's balance from scratch as the sum
// of outstanding amounts over their non-cancelled invoices. This is the
// drift repair for balances that predate transactional updates; the
// incremental Delta path is what normal invoice traffic uses.
func RecomputeTotalDebt(customerID string, invoices []models.Invoice) float64 {
	var total float64
	for i := range invoices {
		if invoices[i].CustomerID != customerID {
			continue
		}
		total += Outstanding(&invoices[i])
	}
	return total
}

// SupplierDebt is the unpaid remainder a purchase order adds to the shop's
// payable balance for its supplier. Purchase orders are append-only, so
// this is only ever applied once, at creation.
func SupplierDebt(po *models.PurchaseOrder) float64 {
	debt := po.TotalAmount - po.PaidAmount
	if debt < 0 {
		return 0
	}
	return debt
}
