// Package vat owns the arithmetic on VAT invoices. Line and header totals
// are always recomputed server-side with decimal math so whatever the
// client (or the AI parser) sent, the stored record satisfies the
// bookkeeping identity.
package vat

import (
	"github.com/shopspring/decimal"

	"servicesales-pro/internal/models"
)

// Totals is the recomputed header of a VAT invoice.
type Totals struct {
	TotalBeforeTax float64
	TaxAmount      float64
	TotalAmount    float64
}

// ComputeTotals derives the invoice header from its lines:
// totalBeforeTax = sum(quantity*unitPrice), taxAmount rounded to whole
// dong, totalAmount their sum.
func ComputeTotals(items []models.VATInvoiceItem, taxRate float64) Totals {
	before := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.UnitPrice))
		before = before.Add(line)
	}

	tax := before.Mul(decimal.NewFromFloat(taxRate)).Div(decimal.NewFromInt(100)).Round(0)
	total := before.Add(tax)

	return Totals{
		TotalBeforeTax: before.InexactFloat64(),
		TaxAmount:      tax.InexactFloat64(),
		TotalAmount:    total.InexactFloat64(),
	}
}

// Normalize rewrites an invoice's line totals and header so they satisfy
// the invariant, regardless of what was submitted. Defaults the status to
// PENDING for fresh records.
func Normalize(inv *models.VATInvoice) {
	for i := range inv.Items {
		line := decimal.NewFromFloat(inv.Items[i].Quantity).Mul(decimal.NewFromFloat(inv.Items[i].UnitPrice))
		inv.Items[i].Total = line.InexactFloat64()
	}

	totals := ComputeTotals(inv.Items, inv.TaxRate)
	inv.TotalBeforeTax = totals.TotalBeforeTax
	inv.TaxAmount = totals.TaxAmount
	inv.TotalAmount = totals.TotalAmount

	if inv.Status == "" {
		inv.Status = models.VATPending
	}
}
