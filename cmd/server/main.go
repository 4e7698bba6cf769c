package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/paluyo/houserent/internal/config"
	"github.com/paluyo/houserent/internal/handler"
	"github.com/paluyo/houserent/internal/repository"
	"github.com/paluyo/houserent/internal/service"
	"github.com/paluyo/houserent/pkg/response"
)

func main() {
	// Load .env if present; real deployments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	billingService := service.NewBillingService(invoiceRepo, tenantRepo, settingsRepo, redisClient, cfg)
	tenantService := service.NewTenantService(tenantRepo, roomRepo, invoiceRepo)
	roomService := service.NewRoomService(roomRepo)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	invoiceHandler := handler.NewInvoiceHandler(billingService)
	tenantHandler := handler.NewTenantHandler(tenantService, billingService)
	roomHandler := handler.NewRoomHandler(roomService)
	settingsHandler := handler.NewSettingsHandler(billingService)
	authHandler := handler.NewAuthHandler(userService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.Health.Timeout)

	router := setupRoutes(invoiceHandler, tenantHandler, roomHandler, settingsHandler, authHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      response.LoggingMiddleware(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	invoiceHandler *handler.InvoiceHandler,
	tenantHandler *handler.TenantHandler,
	roomHandler *handler.RoomHandler,
	settingsHandler *handler.SettingsHandler,
	authHandler *handler.AuthHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/invoices", invoiceHandler.List).Methods("GET")
	api.HandleFunc("/invoices", invoiceHandler.Create).Methods("POST")
	api.HandleFunc("/invoices/revenue", invoiceHandler.Revenue).Methods("GET")
	api.HandleFunc("/invoices/generate", invoiceHandler.Generate).Methods("POST")
	api.HandleFunc("/invoices/month/{month}", invoiceHandler.ListForMonth).Methods("GET")
	api.HandleFunc("/invoices/{invoiceId}", invoiceHandler.Get).Methods("GET")
	api.HandleFunc("/invoices/{invoiceId}", invoiceHandler.Delete).Methods("DELETE")
	api.HandleFunc("/invoices/{invoiceId}/payments", invoiceHandler.RecordPayment).Methods("POST")

	api.HandleFunc("/tenants", tenantHandler.List).Methods("GET")
	api.HandleFunc("/tenants", tenantHandler.Create).Methods("POST")
	api.HandleFunc("/tenants/occupancies", tenantHandler.Occupancies).Methods("GET")
	api.HandleFunc("/tenants/{tenantId}", tenantHandler.Get).Methods("GET")
	api.HandleFunc("/tenants/{tenantId}", tenantHandler.Update).Methods("PUT")
	api.HandleFunc("/tenants/{tenantId}", tenantHandler.Delete).Methods("DELETE")
	api.HandleFunc("/tenants/{tenantId}/invoices", tenantHandler.Invoices).Methods("GET")

	api.HandleFunc("/rooms", roomHandler.List).Methods("GET")
	api.HandleFunc("/rooms", roomHandler.Create).Methods("POST")
	api.HandleFunc("/rooms/status-counts", roomHandler.StatusCounts).Methods("GET")
	api.HandleFunc("/rooms/{roomNumber}", roomHandler.Get).Methods("GET")
	api.HandleFunc("/rooms/{roomNumber}", roomHandler.Update).Methods("PUT")
	api.HandleFunc("/rooms/{roomNumber}", roomHandler.Delete).Methods("DELETE")

	api.HandleFunc("/settings/{name}", settingsHandler.Get).Methods("GET")
	api.HandleFunc("/settings/{name}", settingsHandler.Update).Methods("PUT")

	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")

	return router
}
