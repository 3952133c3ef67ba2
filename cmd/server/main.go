package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment_portal/internal/audit"
	"payment_portal/internal/config"
	"payment_portal/internal/handler"
	"payment_portal/internal/middleware"
	"payment_portal/internal/repository"
	"payment_portal/internal/requestid"
	"payment_portal/internal/service"
	"payment_portal/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const maxBodyBytes = 10 << 10 // 10KB, matches the JSON body cap

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.SessionTTL)
	csrfGuard := middleware.NewCSRFGuard(cfg.Production)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	paymentRepo := repository.NewPaymentRepository(dbPool)
	auditRepo := repository.NewAuditRepository(dbPool)

	// --- Audit Log Worker ---
	auditLogger := audit.NewLogger(auditRepo, 256, slog.Default())
	auditLogger.Start(2)
	defer auditLogger.Shutdown()

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil, cfg)
	paymentService := service.NewPaymentService(paymentRepo, userRepo)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, auditLogger, cfg)
	paymentHandler := handler.NewPaymentHandler(paymentService, auditLogger)
	csrfHandler := handler.NewCSRFHandler(csrfGuard)

	// --- Setup Gin Router ---
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Credentialed CORS for the browser frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "https://localhost:3000")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.CSRFHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Body size cap before anything reads the payload
	router.Use(func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		}
		c.Next()
	})

	router.Use(requestid.Middleware())
	router.Use(middleware.SanitizeRequest())
	router.Use(middleware.AuditFailures(auditLogger))

	// --- Initialize Middlewares ---
	authMW := middleware.SessionAuth(jwtUtil, auditLogger)
	csrfMW := csrfGuard.Verify()
	customerMW := middleware.CustomerMiddleware()
	adminMW := middleware.AdminMiddleware()

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	csrfHandler.RegisterCSRFRoutes(apiGroup)
	authHandler.RegisterAuthRoutes(apiGroup, authMW, csrfMW)
	paymentHandler.RegisterPaymentRoutes(apiGroup, authMW, csrfMW, customerMW, adminMW)

	apiGroup.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
