package menu

import (
	"errors"
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
// GET /menu?category=Pizza
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	category := c.DefaultQuery("category", AllCategories)

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"items":    h.service.Filter(category),
	})
}

// --------------------------------------------------
// GET /menu/categories
// --------------------------------------------------
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.service.Categories(),
	})
}

// --------------------------------------------------
// GET /menu/items/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, err := h.service.Find(id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load item"})
		return
	}

	c.JSON(http.StatusOK, item)
}
