package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skinmatch/backend/internal/domain"
	"github.com/skinmatch/backend/internal/logging"
	"github.com/skinmatch/backend/internal/usecase"
)

// Version is reported by the health check
const Version = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommender *usecase.RecommenderService
	maxLimit    int
}

// NewHandler creates a new HTTP handler. maxLimit caps the limit query
// parameter; values <= 0 leave it uncapped.
func NewHandler(recommender *usecase.RecommenderService, maxLimit int) *Handler {
	return &Handler{
		recommender: recommender,
		maxLimit:    maxLimit,
	}
}

// recommendationQuery is the query string of GET /recommendations
type recommendationQuery struct {
	Condition string   `form:"condition" binding:"required"`
	Limit     *int     `form:"limit"`
	MaxPrice  *float64 `form:"max_price"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "skinmatch-backend",
		"version": Version,
	})
}

// GetRecommendations handles GET /api/v1/recommendations
func (h *Handler) GetRecommendations(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var query recommendationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.badRequest(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	if query.Limit != nil && h.maxLimit > 0 && *query.Limit > h.maxLimit {
		h.badRequest(c, fmt.Errorf("%w: limit must not exceed %d", domain.ErrInvalidRequest, h.maxLimit))
		return
	}

	result, err := h.recommender.Recommend(c.Request.Context(), &domain.RecommendRequest{
		Condition: strings.TrimSpace(query.Condition),
		Limit:     query.Limit,
		MaxPrice:  query.MaxPrice,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListProducts handles GET /api/v1/products
func (h *Handler) ListProducts(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	products, err := h.recommender.Products(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// AddProduct handles POST /api/v1/products
func (h *Handler) AddProduct(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req domain.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	id, err := h.recommender.AddProduct(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetFeatures handles GET /api/v1/features
func (h *Handler) GetFeatures(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	c.JSON(http.StatusOK, h.recommender.Features())
}

// ready rejects the request when no recommender is wired in
func (h *Handler) ready(c *gin.Context) bool {
	if h.recommender != nil {
		return true
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": "recommender not configured",
	})
	return false
}

// respondError maps service errors onto HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidRequest) {
		h.badRequest(c, err)
		return
	}

	logging.Ctx(c.Request.Context()).Error().Err(err).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "internal server error",
	})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	logging.Ctx(c.Request.Context()).Debug().Err(err).Msg("rejected request")
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
	})
}
