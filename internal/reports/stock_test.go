package reports

import (
	"testing"

	"github.com/stretchr/testify/require"

	"servicesales-pro/internal/models"
)

func fixtureProducts() []models.Product {
	return []models.Product{
		{
			ID: "p1", SKU: "RAM-8G", Name: "RAM DDR4 8GB", Unit: "Thanh",
			Type: models.ProductGoods, CostPrice: 400000,
			Stock: map[models.Warehouse]int{models.WarehouseTayPhat: 7, models.WarehouseTNC: 3},
		},
		{
			ID: "s1", SKU: "SV-BASIC-01", Name: "Cài Win + Vệ sinh", Unit: "Lần",
			Type: models.ProductService, CostPrice: 0,
			Stock: map[models.Warehouse]int{models.WarehouseTayPhat: 9999, models.WarehouseTNC: 9999},
		},
	}
}

func TestStockReportReplaysFullHistory(t *testing.T) {
	orders := []models.PurchaseOrder{
		{ID: "po1", Items: []models.PurchaseOrderItem{{ProductID: "p1", Quantity: 10}}},
		{ID: "po2", Items: []models.PurchaseOrderItem{{ProductID: "p1", Quantity: 5}}},
	}
	invoices := []models.Invoice{
		{ID: "i1", Status: models.InvoiceUnpaid, Items: []models.InvoiceItem{{ProductID: "p1", Quantity: 2}}},
		{ID: "i2", Status: models.InvoicePaid, InvoiceType: models.InvoiceRepair, RepairStatus: models.RepairDelivered,
			Items: []models.InvoiceItem{{ProductID: "p1", Quantity: 1}}},
		// Cancelled invoices contribute nothing, whichever way they were
		// cancelled.
		{ID: "i3", Status: models.InvoiceCancelled, Items: []models.InvoiceItem{{ProductID: "p1", Quantity: 4}}},
		{ID: "i4", Status: models.InvoiceUnpaid, RepairStatus: models.RepairCancelled,
			Items: []models.InvoiceItem{{ProductID: "p1", Quantity: 6}}},
	}

	rows := BuildStockReport(fixtureProducts(), invoices, orders)
	require.Len(t, rows, 1, "services are excluded")

	row := rows[0]
	require.Equal(t, "p1", row.ProductID)
	require.Equal(t, 15, row.TotalImported)
	require.Equal(t, 3, row.TotalExported)

	// CurrentStock is independent state read from the product, not
	// imported-exported (which would be 12).
	require.Equal(t, 10, row.CurrentStock)
	require.NotEqual(t, row.TotalImported-row.TotalExported, row.CurrentStock)
	require.Equal(t, 4000000.0, row.StockValue)
}

func TestStockReportEmptyHistory(t *testing.T) {
	rows := BuildStockReport(fixtureProducts(), nil, nil)
	require.Len(t, rows, 1)
	require.Zero(t, rows[0].TotalImported)
	require.Zero(t, rows[0].TotalExported)
	require.Equal(t, 10, rows[0].CurrentStock)
}

func TestValuationGroupsByWarehouse(t *testing.T) {
	groups, grand := BuildValuation(fixtureProducts())
	require.Len(t, groups, 2)

	require.Equal(t, models.WarehouseTayPhat, groups[0].Warehouse)
	require.Equal(t, "Giải pháp Tây Phát", groups[0].WarehouseName)
	require.Equal(t, 2800000.0, groups[0].Subtotal)
	require.Equal(t, models.WarehouseTNC, groups[1].Warehouse)
	require.Equal(t, 1200000.0, groups[1].Subtotal)
	require.Equal(t, 4000000.0, grand)

	// The service item's sentinel stock never shows up.
	for _, g := range groups {
		for _, item := range g.Items {
			require.NotEqual(t, "Cài Win + Vệ sinh", item.Name)
		}
	}
}
