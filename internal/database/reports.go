package database

import (
	"time"

	"gorm.io/gorm"

	"servicesales-pro/internal/models"
)

// RevenueSummary holds the headline figures for the dashboard and the AI
// debt analysis.
type RevenueSummary struct {
	TotalRevenue    float64
	TotalReceivable float64
	InvoiceCount    int64
}

// GetRevenueSummary totals non-cancelled invoices within a date range.
// COALESCE keeps the sums at 0 instead of NULL when no rows match.
func GetRevenueSummary(start, end time.Time) (*RevenueSummary, error) {
	var result RevenueSummary

	base := func() *gorm.DB {
		return DB.Model(&models.Invoice{}).
			Where("date BETWEEN ? AND ?", start, end).
			Where("status <> ?", models.InvoiceCancelled).
			Where("repair_status <> ?", models.RepairCancelled)
	}

	err := base().
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = base().
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").
		Scan(&result.TotalReceivable).Error
	if err != nil {
		return nil, err
	}

	err = base().Count(&result.InvoiceCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
