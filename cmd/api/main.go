package main

import (
	"log"
	"os"

	_ "angaza/api/swagger" // swagger docs
	"angaza/internal/database"
	"angaza/internal/handler"
	"angaza/internal/middleware"
	"angaza/internal/repository"
	"angaza/internal/service"
	"angaza/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Angaza Operations API
// @version         1.0
// @description     Backend for the Angaza Foundation operations dashboard: beneficiaries, inventory, distributions, funding and programs.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "angaza"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	distributionRepo := repository.NewDistributionRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo)
	inventoryService := service.NewInventoryService(resourceRepo, distributionRepo, movementRepo, auditRepo, txManager, wsHub)
	categoryService := service.NewCategoryService(db)
	statisticsService := service.NewStatisticsService(resourceRepo, distributionRepo)
	auditService := service.NewAuditService(auditRepo)
	beneficiaryService := service.NewBeneficiaryService(db)
	fundingService := service.NewFundingService(db)
	organizationService := service.NewOrganizationService(db)
	programService := service.NewProgramService(db)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	accessHandler := handler.NewAccessHandler()
	inventoryHandler := handler.NewInventoryHandler(inventoryService, categoryService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	auditHandler := handler.NewAuditHandler(auditService)
	beneficiaryHandler := handler.NewBeneficiaryHandler(beneficiaryService)
	fundingHandler := handler.NewFundingHandler(fundingService)
	organizationHandler := handler.NewOrganizationHandler(organizationService)
	programHandler := handler.NewProgramHandler(programService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	root := router.Group("")
	userHandler.RegisterRoutes(root)
	accessHandler.RegisterRoutes(root)
	inventoryHandler.RegisterRoutes(root)
	statisticsHandler.RegisterRoutes(root)
	auditHandler.RegisterRoutes(root)
	beneficiaryHandler.RegisterRoutes(root)
	fundingHandler.RegisterRoutes(root)
	organizationHandler.RegisterRoutes(root)
	programHandler.RegisterRoutes(root)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
