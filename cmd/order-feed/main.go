package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"tableorder/internal/events"
	"tableorder/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// The kitchen feed follows order events from Kafka, prints a ticket line
// per event and keeps a small board of where every order stands.

type board struct {
	mu     sync.Mutex
	orders map[int]boardEntry
}

type boardEntry struct {
	Table            string    `json:"table"`
	Status           string    `json:"status"`
	RemainingMinutes int       `json:"remaining_minutes"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func newBoard() *board {
	return &board{orders: make(map[int]boardEntry)}
}

func (b *board) apply(e events.Event) boardEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := b.orders[e.OrderID]
	if e.TableNumber != "" {
		entry.Table = e.TableNumber
	}
	if e.Status != "" {
		entry.Status = e.Status
	}
	entry.RemainingMinutes = e.RemainingMinutes
	entry.UpdatedAt = e.At
	b.orders[e.OrderID] = entry
	return entry
}

func (b *board) snapshot() map[int]boardEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[int]boardEntry, len(b.orders))
	for id, entry := range b.orders {
		out[id] = entry
	}
	return out
}

func ticketLine(e events.Event, entry boardEntry) string {
	switch e.Type {
	case events.OrderCreated:
		return fmt.Sprintf("🧾 NEW    #%d table %s, ready in ~%d min", e.OrderID, entry.Table, e.RemainingMinutes)
	case events.OrderStatusChanged:
		return fmt.Sprintf("🍳 STATUS #%d table %s -> %s", e.OrderID, entry.Table, e.Status)
	case events.OrderCountdown:
		return fmt.Sprintf("⏱️  TIMER  #%d table %s, %d min left", e.OrderID, entry.Table, e.RemainingMinutes)
	default:
		return fmt.Sprintf("❔ %s #%d", e.Type, e.OrderID)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	client := events.NewKafkaClient(os.Getenv("KAFKA_BROKERS"))
	if !client.Enabled() {
		log.Fatal("❌ KAFKA_BROKERS is not set")
	}
	topic := getenv("KAFKA_TOPIC", "order-events")
	groupID := getenv("KAFKA_GROUP_ID", "kitchen-feed")
	port := getenv("FEED_PORT", "8081")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New("order_feed")
	b := newBoard()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), m.Middleware())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/board", func(c *gin.Context) {
		c.JSON(http.StatusOK, b.snapshot())
	})

	srv := &http.Server{Addr: ":" + port, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ feed server failed:", err)
		}
	}()

	reader := client.NewReader(topic, groupID)
	defer reader.Close()

	log.Printf("🧠 Kitchen feed following %s as %s (board on :%s)", topic, groupID, port)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("⚠️  kafka read error: %v", err)
			time.Sleep(time.Second)
			continue
		}

		e, err := events.DecodeMessage(msg)
		if err != nil {
			log.Printf("⚠️  skipping malformed event at offset %d: %v", msg.Offset, err)
			continue
		}

		entry := b.apply(e)
		if e.Status != "" {
			m.StatusChanged(e.Status)
		}
		log.Println(ticketLine(e, entry))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	log.Println("🛑 Kitchen feed stopped")
}
