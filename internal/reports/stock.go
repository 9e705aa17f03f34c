// Package reports derives printable report data from the entity
// collections. Nothing here mutates state: every report is a full replay
// of the invoice and purchase-order history at call time.
package reports

import (
	"servicesales-pro/internal/models"
)

// StockRow is one product line on the import/export/on-hand report.
type StockRow struct {
	ProductID     string  `json:"productId"`
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	TotalImported int     `json:"totalImported"`
	TotalExported int     `json:"totalExported"`
	CurrentStock  int     `json:"currentStock"`
	StockValue    float64 `json:"stockValue"`
}

// BuildStockReport computes the all-time import/export totals per GOODS
// product. Imports come from every purchase order; exports from every
// invoice that is not cancelled (payment status and repair status both
// checked). CurrentStock is read straight off the product record, NOT
// derived as imported minus exported: sales do not decrement stock unless
// the deduct-on-sale flag is on, so the two figures legitimately diverge.
func BuildStockReport(products []models.Product, invoices []models.Invoice, orders []models.PurchaseOrder) []StockRow {
	rows := make([]StockRow, 0, len(products))
	for i := range products {
		p := &products[i]
		if p.Type != models.ProductGoods {
			continue
		}

		imported := 0
		for _, po := range orders {
			for _, item := range po.Items {
				if item.ProductID == p.ID {
					imported += item.Quantity
				}
			}
		}

		exported := 0
		for j := range invoices {
			inv := &invoices[j]
			if inv.IsCancelled() {
				continue
			}
			for _, item := range inv.Items {
				if item.ProductID == p.ID {
					exported += item.Quantity
				}
			}
		}

		current := p.TotalStock()
		rows = append(rows, StockRow{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			Unit:          p.Unit,
			TotalImported: imported,
			TotalExported: exported,
			CurrentStock:  current,
			StockValue:    float64(current) * p.CostPrice,
		})
	}
	return rows
}

// ValuationGroup is one warehouse section on the stock valuation report.
// WarehouseName carries the display label; everywhere else the short code
// travels and the client translates.
type ValuationGroup struct {
	Warehouse     models.Warehouse `json:"warehouse"`
	WarehouseName string           `json:"warehouseName"`
	Items         []ValuationItem  `json:"items"`
	Subtotal      float64          `json:"subtotal"`
}

// ValuationItem is a single product row within a warehouse section.
type ValuationItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	CostPrice float64 `json:"costPrice"`
	TotalCost float64 `json:"totalCost"`
}

// BuildValuation groups on-hand goods value by warehouse. Services are
// skipped: their sentinel stock would dwarf the real numbers.
func BuildValuation(products []models.Product) ([]ValuationGroup, float64) {
	var grandTotal float64
	groups := make([]ValuationGroup, 0, len(models.AllWarehouses))
	for _, wh := range models.AllWarehouses {
		group := ValuationGroup{Warehouse: wh, WarehouseName: wh.Label()}
		for i := range products {
			p := &products[i]
			if p.Type != models.ProductGoods {
				continue
			}
			qty := p.Stock[wh]
			if qty == 0 {
				continue
			}
			total := float64(qty) * p.CostPrice
			group.Items = append(group.Items, ValuationItem{
				Name:      p.Name,
				Quantity:  qty,
				CostPrice: p.CostPrice,
				TotalCost: total,
			})
			group.Subtotal += total
		}
		grandTotal += group.Subtotal
		groups = append(groups, group)
	}
	return groups, grandTotal
}
