package main

import (
	"context"
	"log"
	"os"

	_ "github.com/RohitYadav0014/AccelQuote/api/swagger" // swagger docs
	"github.com/RohitYadav0014/AccelQuote/internal/client"
	"github.com/RohitYadav0014/AccelQuote/internal/database"
	"github.com/RohitYadav0014/AccelQuote/internal/handler"
	"github.com/RohitYadav0014/AccelQuote/internal/middleware"
	"github.com/RohitYadav0014/AccelQuote/internal/repository"
	"github.com/RohitYadav0014/AccelQuote/internal/service"
	"github.com/RohitYadav0014/AccelQuote/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           AccelQuote API
// @version         1.0
// @description     Quoting backend: PDF extraction, CNP pricing and the two-role discount approval workflow.
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
		dbName = "postgres"
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

	engineBaseURL := os.Getenv("QUOTE_ENGINE_BASE_URL")
	if engineBaseURL == "" {
		engineBaseURL = "http://localhost:8000"
	}
	engineClient := client.NewClient(engineBaseURL)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	stateRepo := repository.NewStateRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	userService := service.NewUserService(userRepo, db)
	auditService := service.NewAuditService(auditRepo)
	documentService := service.NewDocumentService(docRepo, engineClient, auditService)
	pricingService := service.NewPricingService(docRepo, stateRepo, engineClient, auditService, wsHub)
	discountService := service.NewDiscountService(docRepo, stateRepo, txManager, auditService, wsHub)
	statisticsService := service.NewStatisticsService(docRepo, auditRepo)

	// Demo credential accounts for the two workflow roles
	if err := userService.SeedDemoUsers(context.Background()); err != nil {
		log.Fatalf("Failed to seed demo users: %v", err)
	}

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	documentHandler := handler.NewDocumentHandler(documentService)
	pricingHandler := handler.NewPricingHandler(pricingService)
	discountHandler := handler.NewDiscountHandler(discountService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"} // Frontend URL
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
	userHandler.RegisterRoutes(router.Group(""))
	api := router.Group("/api")
	documentHandler.RegisterRoutes(api)
	pricingHandler.RegisterRoutes(api)
	discountHandler.RegisterRoutes(api)
	statisticsHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
