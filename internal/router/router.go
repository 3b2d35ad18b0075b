package router

import (
	"time"

	"tableorder/internal/auth"
	"tableorder/internal/menu"
	"tableorder/internal/metrics"
	"tableorder/internal/middleware"
	"tableorder/internal/order"
	"tableorder/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Menu    *menu.Handler
	Auth    *auth.Handler
	Session *session.Handler
	Orders  *order.Handler
}

func NewRouter(h Handlers, m *metrics.Metrics, corsOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(m.Middleware())

	// ───────────────────────── PUBLIC ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.POST("/sessions/scan", h.Session.Scan)

	menuGroup := r.Group("/menu")
	{
		menuGroup.GET("", h.Menu.List)
		menuGroup.GET("/categories", h.Menu.Categories)
		menuGroup.GET("/items/:id", h.Menu.Get)
	}

	r.POST("/staff/login", h.Auth.Login)

	// ───────────────────────── GUEST ─────────────────────────
	guest := r.Group("")
	guest.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleGuest),
	)
	{
		guest.GET("/cart", h.Session.GetCart)
		guest.POST("/cart/items", h.Session.AddItem)
		guest.PATCH("/cart/lines/:key", h.Session.UpdateLine)
		guest.DELETE("/cart/lines/:key", h.Session.RemoveLine)
		guest.DELETE("/cart", h.Session.ClearCart)

		guest.POST("/checkout", h.Session.Checkout)
		guest.GET("/orders/current", h.Session.CurrentOrder)
		guest.GET("/orders/current/ws", h.Session.StreamOrder)

		guest.DELETE("/sessions/current", h.Session.End)
	}

	// ───────────────────────── STAFF ─────────────────────────
	staff := r.Group("/staff")
	staff.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleStaff),
	)
	{
		staff.GET("/orders", h.Orders.List)
		staff.GET("/orders/export", h.Orders.Export)
		staff.POST("/orders/:id/advance", h.Orders.Advance)
	}

	return r
}
