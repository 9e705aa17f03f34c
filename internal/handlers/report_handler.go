package handlers

import (
	"net/http"
	"time"

	"servicesales-pro/internal/database"
	"servicesales-pro/internal/models"
	"servicesales-pro/internal/reports"

	"github.com/gin-gonic/gin"
)

// GetStockReport replays the full invoice and purchase-order history into
// per-product import/export/on-hand rows. Nothing is cached: every call
// recomputes from the collections as they stand.
func GetStockReport(c *gin.Context) {
	var products []models.Product
	if err := database.DB.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	var invoices []models.Invoice
	if err := database.DB.Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}

	var orders []models.PurchaseOrder
	if err := database.DB.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": reports.BuildStockReport(products, invoices, orders)})
}

// GetStockValuation groups on-hand goods value by warehouse.
func GetStockValuation(c *gin.Context) {
	var products []models.Product
	if err := database.DB.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	groups, grandTotal := reports.BuildValuation(products)
	c.JSON(http.StatusOK, gin.H{
		"warehouses": groups,
		"grandTotal": grandTotal,
	})
}

// DashboardData is the headline block on the dashboard page.
type DashboardData struct {
	TotalRevenue    float64          `json:"totalRevenue"`
	TotalReceivable float64          `json:"totalReceivable"`
	InvoiceCount    int64            `json:"invoiceCount"`
	CustomerDebt    float64          `json:"customerDebt"`
	SupplierDebt    float64          `json:"supplierDebt"`
	OpenRepairs     int64            `json:"openRepairs"`
	RecentInvoices  []models.Invoice `json:"recentInvoices"`
}

// GetDashboardReport aggregates the figures shown on login. The date
// range defaults to the last 30 days.
func GetDashboardReport(c *gin.Context) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if v := c.Query("start"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			start = t
		}
	}
	if v := c.Query("end"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end = t.Add(23*time.Hour + 59*time.Minute)
		}
	}

	summary, err := database.GetRevenueSummary(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate revenue"})
		return
	}

	var data DashboardData
	data.TotalRevenue = summary.TotalRevenue
	data.TotalReceivable = summary.TotalReceivable
	data.InvoiceCount = summary.InvoiceCount

	err = database.DB.Model(&models.Customer{}).
		Select("COALESCE(SUM(total_debt), 0)").
		Scan(&data.CustomerDebt).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to total customer debt"})
		return
	}

	err = database.DB.Model(&models.Supplier{}).
		Select("COALESCE(SUM(total_debt_to_supplier), 0)").
		Scan(&data.SupplierDebt).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to total supplier debt"})
		return
	}

	err = database.DB.Model(&models.Invoice{}).
		Where("invoice_type = ?", models.InvoiceRepair).
		Where("repair_status NOT IN ?", []models.RepairStatus{models.RepairDelivered, models.RepairCancelled}).
		Count(&data.OpenRepairs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count open repairs"})
		return
	}

	err = database.DB.Order("date desc").Limit(10).Find(&data.RecentInvoices).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent invoices"})
		return
	}

	c.JSON(http.StatusOK, data)
}
