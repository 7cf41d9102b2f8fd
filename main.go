package main

import (
	"fmt"
	"log"
	"os"

	"jobtract-backend/config"
	"jobtract-backend/models"
	"jobtract-backend/routes"
	"jobtract-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.InitLogger()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Equipment{},
		&models.Expense{},
		&models.Quote{},
		&models.PurchaseOrder{},
		&models.Invoice{},
		&models.TankDeposit{},
		&models.Contractor{},
	)
}

func main() {
	maintenance := services.NewMaintenanceService(config.DB, config.Logger)
	maintenance.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
