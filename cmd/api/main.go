package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jayam-backend/config"
	"jayam-backend/internal/delivery/http/middleware"
	v1 "jayam-backend/internal/delivery/http/v1"
	"jayam-backend/internal/infrastructure/cache"
	"jayam-backend/internal/infrastructure/mailer"
	"jayam-backend/internal/repository/postgres"
	"jayam-backend/internal/usecase"
	"jayam-backend/pkg/logger"
	"jayam-backend/pkg/storage"
	"jayam-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Successfully connected to PostgreSQL via pgx")

	// Initialize Repositories
	userRepo := postgres.NewUserRepository(pgxPool)
	productRepo := postgres.NewProductRepository(pgxPool)
	orderRepo := postgres.NewOrderRepository(pgxPool)
	txManager := postgres.NewTransactionManager(pgxPool)

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Set up Router
	mux := http.NewServeMux()

	// --- Modules Initialization ---

	// Auth Module
	otpMailer := mailer.NewEmailSender(cfg)
	authUC := usecase.NewAuthUsecase(userRepo, otpMailer, cfg.BcryptCost, cfg.OTPExpiry, cfg.AccessTokenExpiry)
	authHandler := v1.NewAuthHandler(authUC, cfg.AccessTokenExpiry, cfg.Env != "development")

	// Storage Module (R2)
	r2Storage, err := storage.NewR2Storage(
		context.Background(),
		cfg.R2AccountID,
		cfg.R2AccessKeyID,
		cfg.R2AccessKeySecret,
		cfg.R2BucketName,
		cfg.R2PublicURL,
		cfg.R2UploadTimeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
	}
	uploadHandler := v1.NewUploadHandler(r2Storage, cfg.MaxUploadSizeMB)

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(productRepo, userRepo, txManager, memCache, cfg.CacheProductTTL)
	catalogHandler := v1.NewCatalogHandler(catalogUC)
	adminCatalogHandler := v1.NewAdminCatalogHandler(catalogUC)

	// Order Module
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, txManager)
	orderHandler := v1.NewOrderHandler(orderUC)
	adminOrderHandler := v1.NewAdminOrderHandler(orderUC)

	// Stats Module
	statsUC := usecase.NewStatsUsecase(orderRepo, productRepo, memCache, cfg.CacheStatsTTL)
	adminStatsHandler := v1.NewAdminStatsHandler(statsUC)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/verify", authHandler.VerifyOTP)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct)
	mux.HandleFunc("GET /api/v1/products/{id}/reviews", catalogHandler.ListReviews)
	mux.Handle("POST /api/v1/products/{id}/reviews", middleware.AuthMiddleware(http.HandlerFunc(catalogHandler.AddReview)))

	// Orders (Protected)
	mux.Handle("POST /api/v1/orders/place", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.PlaceOrder)))
	mux.Handle("GET /api/v1/orders/my", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.MyOrders)))
	mux.Handle("DELETE /api/v1/orders/{id}", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.CancelOrder)))
	mux.Handle("POST /api/v1/orders/{id}/return", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.SubmitReturn)))

	// Admin (Protected)
	adminMiddleware := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	// Admin Product Management
	mux.Handle("POST /api/v1/admin/products", adminMiddleware(adminCatalogHandler.CreateProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}", adminMiddleware(adminCatalogHandler.UpdateProduct))
	mux.Handle("DELETE /api/v1/admin/products/{id}", adminMiddleware(adminCatalogHandler.DeleteProduct))
	mux.Handle("POST /api/v1/admin/upload", adminMiddleware(uploadHandler.UploadFile))

	// Admin Orders
	mux.Handle("GET /api/v1/admin/orders", adminMiddleware(adminOrderHandler.ListOrders))
	mux.Handle("GET /api/v1/admin/orders/{id}", adminMiddleware(adminOrderHandler.GetOrder))
	mux.Handle("PATCH /api/v1/admin/orders/{id}/status", adminMiddleware(adminOrderHandler.AdvanceStatus))
	mux.Handle("PATCH /api/v1/admin/orders/{id}/return", adminMiddleware(adminOrderHandler.ResolveReturn))
	mux.Handle("POST /api/v1/admin/orders/update-dates", adminMiddleware(adminOrderHandler.ResetOrderDates))

	// Admin Stats
	mux.Handle("GET /api/v1/admin/statistics", adminMiddleware(adminStatsHandler.GetMonthlyStats))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "db": "connected"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	// 50 req/s, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		50,
		100,
		time.Minute,
		3*time.Minute,
	)

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()

	log.Info().Msg("Server exited properly")
}
