package order

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /staff/orders
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("[ORDER] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}
	if orders == nil {
		orders = []*Order{}
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// --------------------------------------------------
// POST /staff/orders/:id/advance
// --------------------------------------------------
func (h *Handler) Advance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.service.Advance(c.Request.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrAlreadyTerminal), errors.Is(err, ErrStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	default:
		log.Printf("[ORDER] advance order=%d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to advance order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           o.ID,
		"status":       o.Status,
		"status_label": o.Status.Label(),
		"progress":     o.Status.Progress(),
	})
}

// --------------------------------------------------
// GET /staff/orders/export
// --------------------------------------------------
func (h *Handler) Export(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("[ORDER] export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := WriteSpreadsheet(c.Writer, orders); err != nil {
		log.Printf("[ORDER] write spreadsheet failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write excel file"})
		return
	}
}
