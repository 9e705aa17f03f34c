package vat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"servicesales-pro/internal/models"
)

func TestComputeTotals(t *testing.T) {
	items := []models.VATInvoiceItem{
		{ProductName: "Ổ cứng SSD 500GB", Quantity: 2, UnitPrice: 100000},
	}

	totals := ComputeTotals(items, 10)
	require.Equal(t, 200000.0, totals.TotalBeforeTax)
	require.Equal(t, 20000.0, totals.TaxAmount)
	require.Equal(t, 220000.0, totals.TotalAmount)
}

func TestComputeTotalsRoundsTax(t *testing.T) {
	// 8% of 12345 is 987.6: tax rounds to the whole dong.
	items := []models.VATInvoiceItem{
		{ProductName: "Cáp HDMI", Quantity: 1, UnitPrice: 12345},
	}

	totals := ComputeTotals(items, 8)
	require.Equal(t, 12345.0, totals.TotalBeforeTax)
	require.Equal(t, 988.0, totals.TaxAmount)
	require.Equal(t, 13333.0, totals.TotalAmount)
}

func TestNormalizeOverridesClientTotals(t *testing.T) {
	inv := &models.VATInvoice{
		TaxRate: 10,
		Items: []models.VATInvoiceItem{
			{ProductName: "Bàn phím cơ", Quantity: 3, UnitPrice: 500000, Total: 1}, // bogus line total
		},
		TotalBeforeTax: 999,
		TaxAmount:      999,
		TotalAmount:    999,
	}

	Normalize(inv)
	require.Equal(t, 1500000.0, inv.Items[0].Total)
	require.Equal(t, 1500000.0, inv.TotalBeforeTax)
	require.Equal(t, 150000.0, inv.TaxAmount)
	require.Equal(t, 1650000.0, inv.TotalAmount)
	require.Equal(t, models.VATPending, inv.Status)
}

func TestNormalizeKeepsExplicitStatus(t *testing.T) {
	inv := &models.VATInvoice{Status: models.VATSynced}
	Normalize(inv)
	require.Equal(t, models.VATSynced, inv.Status)
	require.Zero(t, inv.TotalAmount)
}
