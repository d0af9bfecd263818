package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"rentora-backend/internal/archive"
	"rentora-backend/internal/billing"
	"rentora-backend/internal/cache"
	"rentora-backend/internal/config"
	"rentora-backend/internal/database"
	"rentora-backend/internal/db"
	"rentora-backend/internal/handlers"
	"rentora-backend/internal/health"
	h "rentora-backend/internal/http"
	"rentora-backend/internal/middleware"
	"rentora-backend/internal/repositories"
	"rentora-backend/internal/services"
	"rentora-backend/internal/timeutil"
	"rentora-backend/internal/whatsapp"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis cache is optional; summaries fall back to the database
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (summaries served from database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.NewMigrator(pool).RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// WhatsApp gateway; nil provider disables notifications
	notifier := whatsapp.NewProvider(
		cfg.WhatsApp.Provider,
		cfg.WhatsApp.APIURL,
		cfg.WhatsApp.APIKey,
		cfg.WhatsApp.PhoneNumberID,
	)
	if notifier == nil {
		log.Println("[WhatsApp] Gateway not configured, notifications disabled")
	} else {
		log.Printf("[WhatsApp] Using %s gateway", notifier.GetName())
	}

	uploader := archive.NewUploader(archive.Options{
		Endpoint:  cfg.Archive.Endpoint,
		Region:    cfg.Archive.Region,
		Bucket:    cfg.Archive.Bucket,
		AccessKey: cfg.Archive.AccessKey,
		SecretKey: cfg.Archive.SecretKey,
	})
	if uploader == nil {
		log.Println("[Archive] R2 not configured, monthly archive disabled")
	}

	// Repositories
	propertyRepo := repositories.NewPropertyRepository(pool)
	unitRepo := repositories.NewUnitRepository(pool)
	tenantRepo := repositories.NewTenantRepository(pool)
	leaseRepo := repositories.NewLeaseRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)

	// Services
	schedule := billing.Schedule{
		WindowDays:   cfg.Billing.WindowDays,
		LookbackDays: cfg.Billing.LookbackDays,
	}
	billingService := services.NewBillingService(schedule, leaseRepo, invoiceRepo, notifier)
	paymentService := services.NewPaymentService(pool, invoiceRepo, leaseRepo, paymentRepo, notifier)
	leaseService := services.NewLeaseService(tenantRepo, unitRepo, leaseRepo)
	reportService := services.NewReportService(unitRepo, tenantRepo, leaseRepo, invoiceRepo, paymentRepo, uploader)

	healthChecker := health.NewHealthChecker(pool)

	// Handlers
	propertyHandler := handlers.NewPropertyHandler(propertyRepo)
	unitHandler := handlers.NewUnitHandler(unitRepo)
	tenantHandler := handlers.NewTenantHandler(tenantRepo, reportService)
	leaseHandler := handlers.NewLeaseHandler(leaseService, leaseRepo)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceRepo, billingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	billingHandler := handlers.NewBillingHandler(billingService)
	reportHandler := handlers.NewReportHandler(reportService)
	webhookHandler := handlers.NewWebhookHandler(billingService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		propertyHandler,
		unitHandler,
		tenantHandler,
		leaseHandler,
		invoiceHandler,
		paymentHandler,
		billingHandler,
		reportHandler,
		webhookHandler,
		healthHandler,
		cfg.Billing.CronSecret,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.RequestLogging(
				corsMiddleware(router))))

	// Internal daily run as a backstop for the external scheduler. The run
	// is idempotent, so overlapping triggers are harmless.
	go runDailyBilling(billingService)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// runDailyBilling triggers invoice generation once per day at 06:00
// Kigali time.
func runDailyBilling(billingService *services.BillingService) {
	for {
		now := timeutil.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, timeutil.Kigali)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		time.Sleep(next.Sub(now))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		result, err := billingService.GenerateInvoices(ctx)
		cancel()
		if err != nil {
			log.Printf("[Billing] Scheduled run failed: %v", err)
			continue
		}
		log.Printf("[Billing] Scheduled run: %s", result.Message)
	}
}
