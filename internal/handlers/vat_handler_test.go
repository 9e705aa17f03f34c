package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"servicesales-pro/internal/models"
)

func TestMergeVATUpdateKeepsSyncedStatus(t *testing.T) {
	existing := models.VATInvoice{
		ID:        "v1",
		Status:    models.VATSynced,
		Warehouse: models.WarehouseTNC,
		Date:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	updated := mergeVATUpdate(&existing, models.VATInvoice{
		Items:   []models.VATInvoiceItem{{ProductName: "RAM DDR4 8GB", Quantity: 2, UnitPrice: 100000}},
		TaxRate: 10,
	})

	require.Equal(t, "v1", updated.ID)
	require.Equal(t, models.VATSynced, updated.Status)
	require.Equal(t, models.WarehouseTNC, updated.Warehouse)
	require.Equal(t, existing.Date, updated.Date)
	require.Equal(t, 220000.0, updated.TotalAmount)
}

func TestMergeVATUpdateAppliesExplicitFields(t *testing.T) {
	existing := models.VATInvoice{ID: "v1", Status: models.VATSynced, Warehouse: models.WarehouseTNC}

	updated := mergeVATUpdate(&existing, models.VATInvoice{
		Status:    models.VATPending,
		Warehouse: models.WarehouseTayPhat,
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	require.Equal(t, models.VATPending, updated.Status)
	require.Equal(t, models.WarehouseTayPhat, updated.Warehouse)
	require.Equal(t, 2025, updated.Date.Year())
}
