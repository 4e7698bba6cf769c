package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/paluyo/houserent/internal/config"
	"github.com/paluyo/houserent/internal/repository"
	"github.com/paluyo/houserent/internal/scheduler"
	"github.com/paluyo/houserent/internal/service"
)

func main() {
	log.Println("Starting billing scheduler...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	invoiceRepo := repository.NewInvoiceRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	billingService := service.NewBillingService(invoiceRepo, tenantRepo, settingsRepo, redisClient, cfg)

	billingScheduler := scheduler.New(billingService, cfg.Scheduler.TickInterval)
	if err := billingScheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	billingScheduler.Stop()
	log.Println("Scheduler stopped")
}
