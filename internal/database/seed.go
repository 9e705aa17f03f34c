package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"servicesales-pro/internal/models"
	"servicesales-pro/internal/permissions"
)

// SeedDefaults fills empty tables with the built-in sample data so a fresh
// install (or a wiped database) still lets someone log in and sell. Tables
// with existing rows are left alone.
func SeedDefaults() {
	seedRoles()
	seedEmployees()
	seedProducts()
	seedSuppliers()
	seedSettings()
}

func seedRoles() {
	var count int64
	DB.Model(&models.RoleDefinition{}).Count(&count)
	if count > 0 {
		return
	}
	defaults := permissions.Defaults()
	if err := DB.Create(&defaults).Error; err != nil {
		log.Println("Warning: failed to seed role definitions:", err)
		return
	}
	log.Println("✅ Seeded default role definitions")
}

func seedEmployees() {
	var count int64
	DB.Model(&models.Employee{}).Count(&count)
	if count > 0 {
		return
	}

	// Default password "123" for every sample account, same as the demo
	// data the frontend ships with. Change these on a real install.
	hash, err := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Warning: failed to hash seed password:", err)
		return
	}

	employees := []models.Employee{
		{ID: "emp1", Name: "Nguyễn Văn Quản Lý", Role: models.RoleAdmin, Username: "admin", PasswordHash: string(hash)},
		{ID: "emp2", Name: "Trần Kỹ Thuật", Role: models.RoleTechnician, Username: "tech", PasswordHash: string(hash)},
		{ID: "emp3", Name: "Lê Bán Hàng", Role: models.RoleSales, Username: "sales", PasswordHash: string(hash)},
		{ID: "emp4", Name: "Phạm Kế Toán", Role: models.RoleAccountant, Username: "ketoan", PasswordHash: string(hash)},
		{ID: "emp5", Name: "Võ Thủ Kho", Role: models.RoleWarehouse, Username: "kho", PasswordHash: string(hash)},
	}
	if err := DB.Create(&employees).Error; err != nil {
		log.Println("Warning: failed to seed employees:", err)
		return
	}
	log.Println("✅ Seeded sample employees")
}

func seedProducts() {
	var count int64
	DB.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return
	}

	unlimited := map[models.Warehouse]int{models.WarehouseTayPhat: 9999, models.WarehouseTNC: 9999}
	products := []models.Product{
		{
			ID: "s1", Name: "Dịch vụ Cài Win + Vệ sinh máy", SKU: "SV-BASIC-01",
			Type: models.ProductService, Price: 150000, CostPrice: 0, Unit: "Lần",
			Stock: unlimited,
		},
		{
			ID: "s2", Name: "Kiểm tra lỗi phần cứng (Phí dịch vụ)", SKU: "SV-CHECK-01",
			Type: models.ProductService, Price: 100000, CostPrice: 0, Unit: "Lần",
			Stock: unlimited,
		},
		{
			ID: "s3", Name: "Thay Keo tản nhiệt MX4", SKU: "SV-THERMAL",
			Type: models.ProductGoods, Price: 50000, CostPrice: 20000, Unit: "Lần",
			Stock: map[models.Warehouse]int{models.WarehouseTayPhat: 50, models.WarehouseTNC: 50},
		},
	}
	if err := DB.Create(&products).Error; err != nil {
		log.Println("Warning: failed to seed products:", err)
		return
	}
	log.Println("✅ Seeded sample products")
}

func seedSuppliers() {
	var count int64
	DB.Model(&models.Supplier{}).Count(&count)
	if count > 0 {
		return
	}

	suppliers := []models.Supplier{
		{ID: "sup1", Name: "Linh Kiện Lê Nam", Phone: "0901234567", ContactPerson: "A. Nam"},
		{ID: "sup2", Name: "Kho Sỉ Minh Thông", Phone: "0987654321", ContactPerson: "C. Thảo", TotalDebtToSupplier: 5000000},
	}
	if err := DB.Create(&suppliers).Error; err != nil {
		log.Println("Warning: failed to seed suppliers:", err)
	}
}

func seedSettings() {
	var count int64
	DB.Model(&models.SystemSettings{}).Count(&count)
	if count > 0 {
		return
	}

	settings := models.SystemSettings{
		ID:                 1,
		CompanyName:        "GIẢI PHÁP TÂY PHÁT & TNC",
		CompanyAddress:     "123 Đường ABC, Phường 1, TP. Tây Ninh",
		CompanyPhone:       "0909.123.456",
		InvoiceFooterNote:  "Cảm ơn quý khách đã tin tưởng và ủng hộ!\nHàng hóa mua rồi miễn đổi trả nếu không do lỗi kỹ thuật.",
		RepairTicketFooter: "* Quý khách vui lòng giữ biên nhận để nhận máy.\n* Trung tâm không chịu trách nhiệm về dữ liệu cá nhân nếu không được yêu cầu sao lưu.",
	}
	if err := DB.Create(&settings).Error; err != nil {
		log.Println("Warning: failed to seed system settings:", err)
	}
}
