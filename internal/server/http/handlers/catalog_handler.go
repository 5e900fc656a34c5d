package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/streakmart/internal/adapter/catalog"
	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/server/http/dto"
)

const (
	defaultProductLimit = 12
	maxProductLimit     = 100
)

// CatalogHandler proxies product reads to the upstream catalog.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler creates CatalogHandler instance.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/products.
func (h *CatalogHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", defaultProductLimit)
	if limit <= 0 || limit > maxProductLimit {
		limit = defaultProductLimit
	}
	skip := queryInt(c, "skip", 0)
	if skip < 0 {
		skip = 0
	}

	page, err := h.facade.Products(c.Request.Context(), limit, skip)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPageResponse(page))
}

// Get handles GET /api/products/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid product id"})
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(*product))
}

// Search handles GET /api/products/search?q=...
func (h *CatalogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "search query is required"})
		return
	}

	page, err := h.facade.SearchProducts(c.Request.Context(), q)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPageResponse(page))
}

func (h *CatalogHandler) upstreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "product not found"})
	case errors.Is(err, catalog.ErrUpstream):
		c.JSON(http.StatusBadGateway, dto.MessageResponse{Message: "catalog unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal error"})
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		Thumbnail:   p.Thumbnail,
		Images:      p.Images,
	}
}

func toPageResponse(page *model.ProductPage) dto.ProductPageResponse {
	products := make([]dto.ProductResponse, 0, len(page.Products))
	for _, p := range page.Products {
		products = append(products, toProductResponse(p))
	}
	return dto.ProductPageResponse{
		Products: products,
		Total:    page.Total,
		Skip:     page.Skip,
		Limit:    page.Limit,
	}
}
