package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/domain"
	"github.com/nutrilens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysis *usecase.AnalysisService
}

// NewHandler creates a new HTTP handler
func NewHandler(analysis *usecase.AnalysisService) *Handler {
	return &Handler{analysis: analysis}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutrilens-backend",
		"version": "1.0.0",
	})
}

// AnalyzeProduct scores a product from raw label fields.
func (h *Handler) AnalyzeProduct(c *gin.Context) {
	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	record, err := h.analysis.Analyze(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// labelRequest carries free label text for parsing and analysis.
type labelRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnalyzeLabel parses free label text into raw fields and scores the result.
// The parsed fields are echoed back so callers can show what was extracted.
func (h *Handler) AnalyzeLabel(c *gin.Context) {
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	parsed := usecase.ParseLabelText(req.Text)
	if parsed.Name == "" {
		parsed.Name = "Unknown Product"
	}

	record, err := h.analysis.Analyze(c.Request.Context(), &parsed)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parsed": parsed,
		"result": record,
	})
}

// LookupBarcode resolves a barcode through the history store, cache and
// Open Food Facts, returning the analyzed product.
func (h *Handler) LookupBarcode(c *gin.Context) {
	barcode := c.Param("barcode")

	record, err := h.analysis.LookupBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// SearchProducts searches the analysis history by name or brand.
func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	limit := parseLimit(c.Query("limit"))

	summaries, err := h.analysis.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": summaries})
}

// RecentProducts lists the most recently analyzed products.
func (h *Handler) RecentProducts(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	summaries, err := h.analysis.Recent(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": summaries})
}

// DailyValues returns the FDA/WHO reference table used for percent-DV
// display.
func (h *Handler) DailyValues(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"dailyValues": usecase.DailyValues,
		"sources":     usecase.EvidenceSources(),
	})
}

// writeError maps domain errors to HTTP status codes.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrLookupAPIFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}
