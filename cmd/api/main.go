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

	"tableorder/internal/auth"
	"tableorder/internal/checkout"
	"tableorder/internal/config"
	"tableorder/internal/db"
	"tableorder/internal/events"
	"tableorder/internal/menu"
	"tableorder/internal/metrics"
	"tableorder/internal/order"
	"tableorder/internal/router"
	"tableorder/internal/scheduler"
	"tableorder/internal/session"
	"tableorder/internal/storage"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── STORES ─────────────────────────
	var (
		orderRepo order.Repository     = order.NewInMemoryRepository()
		staffRepo auth.StaffRepository = auth.NewInMemoryStaffRepository()
		source    menu.Source          = menu.NewStaticSource(menu.DefaultItems())
	)
	if cfg.DatabaseURL != "" {
		pgDB := db.ConnectPostgres(cfg.DatabaseURL)
		defer pgDB.Close()

		orderRepo = order.NewPostgresRepository(pgDB)
		staffRepo = auth.NewPostgresStaffRepository(pgDB)
		source = menu.FallbackSource{Primary: menu.NewPostgresSource(pgDB), Fallback: source}
	} else {
		log.Println("⚠️  DATABASE_URL not set, orders are kept in memory")
	}

	// ───────────────────────── MENU ─────────────────────────
	if cfg.MenuObjectKey != "" {
		r2Client, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		source = menu.NewObjectSource(r2Client, cfg.MenuObjectKey)
	}

	menuService, err := menu.NewService(ctx, source)
	if err != nil {
		log.Fatal("❌ menu load failed:", err)
	}

	// ───────────────────────── EVENTS ─────────────────────────
	broker := events.NewBroker()
	publishers := events.Multi{broker}

	kafkaClient := events.NewKafkaClient(cfg.KafkaBrokers)
	if kafkaClient.Enabled() {
		writer := kafkaClient.NewWriter(cfg.KafkaTopic)
		defer writer.Close()
		publishers = append(publishers, events.NewKafkaPublisher(writer))
		log.Printf("✅ Publishing order events to %s", cfg.KafkaTopic)
	}

	// ───────────────────────── SERVICES ─────────────────────────
	m := metrics.New("api")

	loop := scheduler.NewLoop()
	defer loop.Close()

	orderService := order.NewService(orderRepo, loop, publishers, m, order.Config{
		PreparingDelay:    cfg.PreparingDelay,
		CountdownInterval: cfg.CountdownInterval,
	})
	checkoutService := checkout.NewService(orderService, nil)
	sessionService := session.NewService(session.NewStore(), menuService, checkoutService, orderService, m)

	authService := auth.NewService(staffRepo)
	if cfg.StaffUsername != "" {
		if err := authService.EnsureStaff(ctx, cfg.StaffUsername, cfg.StaffPassword); err != nil {
			log.Fatal("❌ staff seed failed:", err)
		}
	} else {
		log.Println("⚠️  STAFF_USERNAME not set, staff login relies on existing accounts")
	}

	// ───────────────────────── HTTP ─────────────────────────
	r := router.NewRouter(router.Handlers{
		Menu:    menu.NewHandler(menuService),
		Auth:    auth.NewHandler(authService),
		Session: session.NewHandler(sessionService, broker),
		Orders:  order.NewHandler(orderService),
	}, m, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("🚀 API running at http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ server failed:", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
