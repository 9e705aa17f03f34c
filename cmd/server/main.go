package main

import (
	"log"
	"os"
	"strings"
	"time"

	"servicesales-pro/internal/database"
	"servicesales-pro/internal/handlers"
	"servicesales-pro/internal/middleware"
	"servicesales-pro/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}

	database.Connect()
	database.SeedDefaults()
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:5173"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// Visible to every authenticated role.
		api.GET("/products", handlers.GetProducts)
		api.GET("/customers", handlers.GetCustomers)
		api.POST("/customers", handlers.AddCustomer)
		api.GET("/settings", handlers.GetSettings)

		pos := api.Group("/")
		pos.Use(middleware.RequirePermission(models.PermViewPOS))
		{
			pos.GET("/invoices", handlers.GetInvoices)
			pos.POST("/invoices", handlers.AddInvoice)
			pos.PUT("/invoices/:id", handlers.UpdateInvoice)
		}

		repairs := api.Group("/repairs")
		repairs.Use(middleware.RequirePermission(models.PermViewRepairs))
		{
			repairs.POST("", handlers.CreateRepairTicket)
			repairs.PUT("/:id", handlers.SaveRepairTicket)
			repairs.POST("/:id/settle", handlers.SettleRepairTicket)
			repairs.POST("/suggest-note", handlers.SuggestRepairNote)
		}

		inventory := api.Group("/")
		inventory.Use(middleware.RequirePermission(models.PermViewInventory))
		{
			inventory.POST("/products", handlers.UpsertProduct)
		}

		deletion := api.Group("/")
		deletion.Use(middleware.RequirePermission(models.PermDeleteData))
		{
			deletion.DELETE("/products/:id", handlers.DeleteProduct)
		}

		imports := api.Group("/")
		imports.Use(middleware.RequirePermission(models.PermViewImportGoods))
		{
			imports.GET("/purchase-orders", handlers.GetPurchaseOrders)
			imports.POST("/purchase-orders", handlers.ImportGoods)
			imports.GET("/suppliers", handlers.GetSuppliers)
			imports.POST("/suppliers", handlers.AddSupplier)
		}

		debt := api.Group("/")
		debt.Use(middleware.RequirePermission(models.PermViewDebt))
		{
			debt.PUT("/customers/:id", handlers.UpdateCustomer)
			debt.POST("/customers/:id/reconcile", handlers.ReconcileCustomerDebt)
			debt.POST("/debt-analysis", handlers.AnalyzeCustomerDebt)
		}

		vatGroup := api.Group("/vat-invoices")
		vatGroup.Use(middleware.RequirePermission(models.PermViewVATInvoices))
		{
			vatGroup.GET("", handlers.GetVATInvoices)
			vatGroup.POST("", handlers.AddVATInvoice)
			vatGroup.PUT("/:id", handlers.UpdateVATInvoice)
			vatGroup.POST("/parse", handlers.ParseVATInvoice)
		}

		reportsGroup := api.Group("/reports")
		reportsGroup.Use(middleware.RequirePermission(models.PermViewStockReport))
		{
			reportsGroup.GET("/stock", handlers.GetStockReport)
			reportsGroup.GET("/valuation", handlers.GetStockValuation)
		}

		dashboard := api.Group("/")
		dashboard.Use(middleware.RequirePermission(models.PermViewDashboard))
		{
			dashboard.GET("/dashboard", handlers.GetDashboardReport)
		}

		employees := api.Group("/employees")
		employees.Use(middleware.RequirePermission(models.PermViewEmployees))
		{
			employees.GET("", handlers.GetEmployees)
			employees.POST("", handlers.AddEmployee)
			employees.DELETE("/:id", handlers.DeleteEmployee)
		}

		settings := api.Group("/settings")
		settings.Use(middleware.RequirePermission(models.PermViewSettings))
		{
			settings.PUT("", handlers.UpdateSettings)
			settings.GET("/roles", handlers.GetRoles)
			settings.POST("/roles/toggle", handlers.ToggleRolePermission)
		}
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	log.Println("🚀 Server starting on " + baseURL)
	if err := r.Run(":8080"); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
