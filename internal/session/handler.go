package session

import (
	"context"
	"errors"
	"log"
	"net/http"

	"tableorder/internal/cart"
	"tableorder/internal/checkout"
	"tableorder/internal/events"
	"tableorder/internal/menu"
	"tableorder/internal/middleware"
	"tableorder/internal/order"
	"tableorder/internal/restaurant"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	broker  *events.Broker
}

func NewHandler(service *Service, broker *events.Broker) *Handler {
	return &Handler{service: service, broker: broker}
}

// writeError maps domain errors to status codes; anything unknown is a 500.
func writeError(c *gin.Context, err error) {
	var v *checkout.ValidationError

	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": v.Message,
			"code":  v.Code,
			"field": v.Field,
		})
	case errors.Is(err, restaurant.ErrInvalidQRCode),
		errors.Is(err, cart.ErrUnknownOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, menu.ErrItemNotFound),
		errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, ErrNoOrder),
		errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, order.ErrAlreadyTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[SESSION] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// --------------------------------------------------
// POST /sessions/scan
// --------------------------------------------------
type scanRequest struct {
	Payload string `json:"payload"`
}

func (h *Handler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s, token, err := h.service.Scan(req.Payload)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": s.ID,
		"token":      token,
		"table":      s.Table,
	})
}

// --------------------------------------------------
// DELETE /sessions/current
// --------------------------------------------------
func (h *Handler) End(c *gin.Context) {
	if err := h.service.End(middleware.Subject(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// GET /cart
// --------------------------------------------------
func (h *Handler) GetCart(c *gin.Context) {
	v, err := h.service.Cart(middleware.Subject(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// --------------------------------------------------
// POST /cart/items
// --------------------------------------------------
type addItemRequest struct {
	ItemID   int          `json:"item_id"`
	Options  cart.Options `json:"options"`
	Quantity int          `json:"quantity"`
}

func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	line, v, err := h.service.AddItem(middleware.Subject(c), req.ItemID, req.Options, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"line": line, "cart": v})
}

// --------------------------------------------------
// PATCH /cart/lines/:key
// --------------------------------------------------
type updateLineRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) UpdateLine(c *gin.Context) {
	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	v, err := h.service.UpdateQuantity(middleware.Subject(c), cart.LineKey(c.Param("key")), *req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// --------------------------------------------------
// DELETE /cart/lines/:key
// --------------------------------------------------
func (h *Handler) RemoveLine(c *gin.Context) {
	v, err := h.service.RemoveLine(middleware.Subject(c), cart.LineKey(c.Param("key")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// --------------------------------------------------
// DELETE /cart
// --------------------------------------------------
func (h *Handler) ClearCart(c *gin.Context) {
	v, err := h.service.ClearCart(middleware.Subject(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// --------------------------------------------------
// POST /checkout
// --------------------------------------------------
func (h *Handler) Checkout(c *gin.Context) {
	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	o, err := h.service.Checkout(c.Request.Context(), middleware.Subject(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// --------------------------------------------------
// GET /orders/current
// --------------------------------------------------
func (h *Handler) CurrentOrder(c *gin.Context) {
	v, err := h.service.CurrentOrder(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// --------------------------------------------------
// GET /orders/current/ws
// --------------------------------------------------
func (h *Handler) StreamOrder(c *gin.Context) {
	sessionID := middleware.Subject(c)
	orderID, err := h.service.CurrentOrderID(sessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	events.Stream(c, h.broker, orderID, func() (any, error) {
		return h.service.orders.Get(context.Background(), orderID)
	})
}
