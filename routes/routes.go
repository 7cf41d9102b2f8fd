package routes

import (
	"jobtract-backend/config"
	"jobtract-backend/controllers"
	"jobtract-backend/permits"
	"jobtract-backend/services"
	"jobtract-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://app.jobtract.ca",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-token", controllers.VerifyToken)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Project routes
		projects := api.Group("/projects")
		{
			projects.POST("", controllers.CreateProject)
			projects.GET("", controllers.GetProjects)
			projects.GET("/:id", controllers.GetProject)
			projects.PUT("/:id", controllers.UpdateProject)
			projects.DELETE("/:id", controllers.DeleteProject)
		}

		// Equipment routes
		equipment := api.Group("/equipment")
		{
			equipment.POST("", controllers.CreateEquipment)
			equipment.GET("", controllers.GetEquipmentList)
			equipment.GET("/:id", controllers.GetEquipment)
			equipment.PUT("/:id", controllers.UpdateEquipment)
			equipment.DELETE("/:id", controllers.DeleteEquipment)
		}

		// Expense routes
		expenses := api.Group("/expenses")
		{
			expenses.POST("", controllers.CreateExpense)
			expenses.GET("", controllers.GetExpenses)
			expenses.GET("/:id", controllers.GetExpense)
			expenses.PUT("/:id", controllers.UpdateExpense)
			expenses.DELETE("/:id", controllers.DeleteExpense)
		}

		// Quote routes
		quotes := api.Group("/quotes")
		{
			quotes.POST("", controllers.CreateQuote)
			quotes.GET("", controllers.GetQuotes)
			quotes.GET("/:id", controllers.GetQuote)
			quotes.PUT("/:id", controllers.UpdateQuote)
			quotes.DELETE("/:id", controllers.DeleteQuote)
		}

		// Purchase order routes
		purchaseOrders := api.Group("/purchase-orders")
		{
			purchaseOrders.POST("", controllers.CreatePurchaseOrder)
			purchaseOrders.GET("", controllers.GetPurchaseOrders)
			purchaseOrders.GET("/:id", controllers.GetPurchaseOrder)
			purchaseOrders.PUT("/:id", controllers.UpdatePurchaseOrder)
			purchaseOrders.DELETE("/:id", controllers.DeletePurchaseOrder)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", controllers.UpdateInvoice)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
		}

		// Tank deposit routes
		tankDeposits := api.Group("/tank-deposits")
		{
			tankDeposits.POST("", controllers.CreateTankDeposit)
			tankDeposits.GET("", controllers.GetTankDeposits)
			tankDeposits.GET("/:id", controllers.GetTankDeposit)
			tankDeposits.PUT("/:id", controllers.UpdateTankDeposit)
			tankDeposits.DELETE("/:id", controllers.DeleteTankDeposit)
		}

		// Contractor routes
		contractors := api.Group("/contractors")
		{
			contractors.POST("", controllers.CreateContractor)
			contractors.GET("", controllers.GetContractors)
			contractors.GET("/:id", controllers.GetContractor)
			contractors.PUT("/:id", controllers.UpdateContractor)
			contractors.DELETE("/:id", controllers.DeleteContractor)
		}

		// Permit search routes
		permitController := controllers.NewPermitController(
			services.NewPermitClient(config.Logger),
			permits.NewNormalizer(config.Logger),
		)
		api.GET("/permits/search", permitController.SearchPermits)

		// Receipt parsing routes
		api.POST("/receipts/parse", controllers.ParseReceipt)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
