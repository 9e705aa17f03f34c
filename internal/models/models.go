package models

import (
	"time"
)

// Warehouse is one of the two fixed stock-keeping locations. The short
// code is what is stored and what travels over the wire; Label is the
// display name for receipts and report headers.
type Warehouse string

const (
	WarehouseTayPhat Warehouse = "TAY_PHAT"
	WarehouseTNC     Warehouse = "TNC"
)

var warehouseLabels = map[Warehouse]string{
	WarehouseTayPhat: "Giải pháp Tây Phát",
	WarehouseTNC:     "TNC",
}

// AllWarehouses lists every known location. Product stock carries exactly
// one entry per warehouse in this list.
var AllWarehouses = []Warehouse{WarehouseTayPhat, WarehouseTNC}

// Label returns the human-facing warehouse name.
func (w Warehouse) Label() string {
	if label, ok := warehouseLabels[w]; ok {
		return label
	}
	return string(w)
}

// UnmarshalText accepts either the short code or the display label, so
// payloads built from rendered screens still parse. encoding/json uses
// this for plain fields and stock map keys alike.
func (w *Warehouse) UnmarshalText(text []byte) error {
	s := string(text)
	for code, label := range warehouseLabels {
		if s == string(code) || s == label {
			*w = code
			return nil
		}
	}
	*w = Warehouse(s)
	return nil
}

// ProductType distinguishes physical goods from repair services.
type ProductType string

const (
	ProductGoods   ProductType = "GOODS"
	ProductService ProductType = "SERVICE"
)

// Role is one of the closed set of employee role codes.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleTechnician Role = "TECHNICIAN"
	RoleSales      Role = "SALES"
	RoleAccountant Role = "ACCOUNTANT"
	RoleWarehouse  Role = "WAREHOUSE"
)

// Permission is a capability flag checked by routing and action gating.
type Permission string

const (
	PermViewDashboard   Permission = "VIEW_DASHBOARD"
	PermViewPOS         Permission = "VIEW_POS"
	PermViewRepairs     Permission = "VIEW_REPAIR_TICKETS"
	PermViewInventory   Permission = "VIEW_INVENTORY"
	PermViewImportGoods Permission = "VIEW_IMPORT_GOODS"
	PermViewStockReport Permission = "VIEW_STOCK_REPORT"
	PermViewDebt        Permission = "VIEW_DEBT"
	PermViewVATInvoices Permission = "VIEW_VAT_INVOICES"
	PermViewCustomers   Permission = "VIEW_CUSTOMERS"
	PermViewSuppliers   Permission = "VIEW_SUPPLIERS"
	PermViewEmployees   Permission = "VIEW_EMPLOYEES"
	PermViewSettings    Permission = "VIEW_SETTINGS"
	PermDeleteData      Permission = "ACTION_DELETE_DATA"
	PermEditPrice       Permission = "ACTION_EDIT_PRICE"
)

// Employee - the person logging into the system.
type Employee struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `json:"name"`
	Role         Role      `gorm:"size:20" json:"role"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"` // Never return this in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// RoleDefinition maps a role code to its capability flags. Exactly one
// definition per role code must exist for login and menu filtering to work.
type RoleDefinition struct {
	Code        Role         `gorm:"primaryKey;size:20" json:"code"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `gorm:"serializer:json" json:"permissions"`
}

// Product - the inventory. Stock is keyed by warehouse, one entry per
// known location. SERVICE items carry a nominal large stock as a sentinel
// for "unlimited".
type Product struct {
	ID        string            `gorm:"primaryKey;size:36" json:"id"`
	Name      string            `json:"name"`
	SKU       string            `gorm:"column:sku;size:50" json:"sku"`
	Type      ProductType       `gorm:"size:10" json:"type"`
	Price     float64           `gorm:"type:decimal(15,2)" json:"price"`
	CostPrice float64           `gorm:"type:decimal(15,2)" json:"costPrice"`
	Unit      string            `gorm:"size:20" json:"unit"`
	Stock     map[Warehouse]int `gorm:"serializer:json" json:"stock"`
}

// TotalStock sums on-hand quantity across all warehouses.
func (p *Product) TotalStock() int {
	total := 0
	for _, qty := range p.Stock {
		total += qty
	}
	return total
}

// Customer with its running outstanding balance. TotalDebt is mutated only
// by the debt reconciliation engine, never by direct edits.
type Customer struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	Name      string  `json:"name"`
	Phone     string  `gorm:"size:20" json:"phone"`
	Address   string  `json:"address"`
	TotalDebt float64 `gorm:"type:decimal(15,2)" json:"totalDebt"`
}

// Supplier with the shop's running payable balance.
type Supplier struct {
	ID                  string  `gorm:"primaryKey;size:36" json:"id"`
	Name                string  `json:"name"`
	Phone               string  `gorm:"size:20" json:"phone"`
	Address             string  `json:"address"`
	ContactPerson       string  `json:"contactPerson"`
	TotalDebtToSupplier float64 `gorm:"type:decimal(15,2)" json:"totalDebtToSupplier"`
}

// PurchaseOrderStatus for goods import receipts.
type PurchaseOrderStatus string

const (
	PurchaseCompleted PurchaseOrderStatus = "COMPLETED"
	PurchasePending   PurchaseOrderStatus = "PENDING"
)

// PurchaseOrderItem is one imported line. Product name is a snapshot taken
// at import time.
type PurchaseOrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	ImportPrice float64 `json:"importPrice"`
}

// PurchaseOrder is an append-only goods import receipt: once created it is
// never edited or cancelled.
type PurchaseOrder struct {
	ID           string              `gorm:"primaryKey;size:36" json:"id"`
	SupplierID   string              `gorm:"size:36" json:"supplierId"`
	SupplierName string              `json:"supplierName"`
	Date         time.Time           `json:"date"`
	Warehouse    Warehouse           `gorm:"size:16" json:"warehouse"`
	Items        []PurchaseOrderItem `gorm:"serializer:json" json:"items"`
	TotalAmount  float64             `gorm:"type:decimal(15,2)" json:"totalAmount"`
	PaidAmount   float64             `gorm:"type:decimal(15,2)" json:"paidAmount"`
	Status       PurchaseOrderStatus `gorm:"size:12" json:"status"`
}

// InvoiceStatus is the payment status of a sale or repair invoice.
type InvoiceStatus string

const (
	InvoicePaid      InvoiceStatus = "PAID"
	InvoicePartial   InvoiceStatus = "PARTIAL"
	InvoiceUnpaid    InvoiceStatus = "UNPAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// InvoiceType distinguishes POS checkout sales from repair tickets.
type InvoiceType string

const (
	InvoiceSale   InvoiceType = "SALE"
	InvoiceRepair InvoiceType = "REPAIR"
)

// RepairStatus is the lifecycle state of a repair ticket.
type RepairStatus string

const (
	RepairReceived     RepairStatus = "RECEIVED"
	RepairChecking     RepairStatus = "CHECKING"
	RepairQuoting      RepairStatus = "QUOTING"
	RepairWaitingParts RepairStatus = "WAITING_PARTS"
	RepairInProgress   RepairStatus = "IN_PROGRESS"
	RepairCompleted    RepairStatus = "COMPLETED"
	RepairDelivered    RepairStatus = "DELIVERED"
	RepairCancelled    RepairStatus = "CANCELLED"
)

// InvoiceItem is one sold part or service. Name and price are snapshots
// taken when the line was added.
type InvoiceItem struct {
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	Price       float64     `json:"price"`
	Type        ProductType `json:"type"`
}

// DeviceInfo is the device captured at repair intake.
type DeviceInfo struct {
	DeviceName  string `json:"deviceName"`
	Model       string `json:"model,omitempty"`
	Serial      string `json:"serial,omitempty"`
	Password    string `json:"password,omitempty"`
	Symptoms    string `json:"symptoms"`
	Diagnosis   string `json:"diagnosis,omitempty"`
	Accessories string `json:"accessories,omitempty"`
	Appearance  string `json:"appearance,omitempty"`
}

// Invoice covers both POS sales (create-once) and repair tickets (mutated
// through the repair workflow). Repair-only fields stay empty on SALE rows.
type Invoice struct {
	ID           string        `gorm:"primaryKey;size:36" json:"id"`
	CustomerID   string        `gorm:"size:36;index" json:"customerId"`
	CustomerName string        `json:"customerName"`
	Date         time.Time     `json:"date"`
	Items        []InvoiceItem `gorm:"serializer:json" json:"items"`
	TotalAmount  float64       `gorm:"type:decimal(15,2)" json:"totalAmount"`
	PaidAmount   float64       `gorm:"type:decimal(15,2)" json:"paidAmount"`
	Warehouse    Warehouse     `gorm:"size:16" json:"warehouse"`
	Status       InvoiceStatus `gorm:"size:12" json:"status"`
	InvoiceType  InvoiceType   `gorm:"size:10" json:"invoiceType"`
	RepairStatus RepairStatus  `gorm:"size:16" json:"repairStatus,omitempty"`
	Note         string        `json:"note,omitempty"`
	DeviceInfo   *DeviceInfo   `gorm:"serializer:json" json:"deviceInfo,omitempty"`
	TechnicianID string        `gorm:"size:36" json:"technicianId,omitempty"`
	SalesID      string        `gorm:"size:36" json:"salesId,omitempty"`
}

// IsCancelled reports whether the invoice is dead for every downstream
// aggregate (debt, stock export totals).
func (inv *Invoice) IsCancelled() bool {
	return inv.Status == InvoiceCancelled || inv.RepairStatus == RepairCancelled
}

// VATInvoiceType marks the direction of a VAT invoice.
type VATInvoiceType string

const (
	VATIn  VATInvoiceType = "IN"
	VATOut VATInvoiceType = "OUT"
)

// VATInvoiceStatus tracks bookkeeping sync state.
type VATInvoiceStatus string

const (
	VATPending VATInvoiceStatus = "PENDING"
	VATSynced  VATInvoiceStatus = "SYNCED"
)

// VATInvoiceItem is one line on a VAT invoice.
type VATInvoiceItem struct {
	ProductName string  `json:"productName"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// VATInvoice is an independent bookkeeping record, not linked to customer
// or supplier debt. Totals always satisfy:
//
//	totalBeforeTax = sum(quantity*unitPrice)
//	taxAmount      = round(totalBeforeTax * taxRate / 100)
//	totalAmount    = totalBeforeTax + taxAmount
type VATInvoice struct {
	ID             string           `gorm:"primaryKey;size:36" json:"id"`
	InvoiceNumber  string           `gorm:"size:50" json:"invoiceNumber"`
	Date           time.Time        `json:"date"`
	PartnerName    string           `json:"partnerName"`
	TaxCode        string           `gorm:"size:20" json:"taxCode"`
	Items          []VATInvoiceItem `gorm:"serializer:json" json:"items"`
	TotalBeforeTax float64          `gorm:"type:decimal(15,2)" json:"totalBeforeTax"`
	TaxRate        float64          `json:"taxRate"`
	TaxAmount      float64          `gorm:"type:decimal(15,2)" json:"taxAmount"`
	TotalAmount    float64          `gorm:"type:decimal(15,2)" json:"totalAmount"`
	Type           VATInvoiceType   `gorm:"size:5" json:"type"`
	Warehouse      Warehouse        `gorm:"size:16" json:"warehouse"`
	Status         VATInvoiceStatus `gorm:"size:10" json:"status"`
}

// SystemSettings is a single-row table with company identity and the
// footer notes printed on receipts and repair tickets.
type SystemSettings struct {
	ID                 uint   `gorm:"primaryKey" json:"-"`
	CompanyName        string `json:"companyName"`
	CompanyAddress     string `json:"companyAddress"`
	CompanyPhone       string `json:"companyPhone"`
	InvoiceFooterNote  string `json:"invoiceFooterNote"`
	RepairTicketFooter string `json:"repairTicketFooterNote"`
}
