package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/streakmart/internal/domain/errors"
	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/server/http/dto"
)

// PurchaseHandler processes checkout submissions and history reads.
type PurchaseHandler struct {
	facade PurchaseFacade
}

// NewPurchaseHandler creates PurchaseHandler instance.
func NewPurchaseHandler(facade PurchaseFacade) *PurchaseHandler {
	return &PurchaseHandler{facade: facade}
}

// Record handles POST /api/user/purchases.
func (h *PurchaseHandler) Record(c *gin.Context) {
	var req []dto.PurchaseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request body"})
		return
	}
	if len(req) == 0 {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "cart is empty"})
		return
	}

	items := make([]model.PurchaseItem, 0, len(req))
	for _, it := range req {
		items = append(items, model.PurchaseItem{
			ProductID: it.ID,
			Title:     it.Title,
			Price:     it.Price,
			Thumbnail: it.Thumbnail,
		})
	}

	if err := h.facade.RecordPurchase(c.Request.Context(), CurrentUserID(c), items); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "purchase recorded"})
}

// History handles GET /api/user/purchases with _page/_limit pagination.
func (h *PurchaseHandler) History(c *gin.Context) {
	page := queryInt(c, "_page", 0)
	limit := queryInt(c, "_limit", 0)

	items, err := h.facade.PurchaseHistory(c.Request.Context(), CurrentUserID(c), page, limit)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal error"})
		}
		return
	}

	resp := make([]dto.PurchaseItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, dto.PurchaseItemResponse{
			ID:        it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Thumbnail: it.Thumbnail,
			Timestamp: it.Timestamp,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
