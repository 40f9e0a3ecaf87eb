package handler

import (
	"encoding/base64"
	"net/http"

	"samakicash_backend/internal/analysis/domain"
	"samakicash_backend/internal/analysis/service"
	"samakicash_backend/internal/analysis/transport"
	"samakicash_backend/platform/httpkit"
	"samakicash_backend/platform/sanitize"
	"samakicash_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-catch", h.AnalyzeCatch)
	rg.POST("/match", h.Match)
}

// AnalyzeCatch runs the full analysis pipeline. The pipeline itself
// never errors; an error status in the assembled response means
// assembly faulted and maps to a 500.
func (h *Handler) AnalyzeCatch(c *gin.Context) {
	var req transport.AnalyzeCatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	// The analysis summary is rendered verbatim by clients; strip any
	// markup from the free-text fields before it can reach them.
	catch := domain.CatchRequest{
		FishType:   sanitize.Text(req.FishType),
		QuantityKg: req.QuantityKg,
		Location:   sanitize.Text(req.Location),
		UserID:     req.UserID,
	}
	if req.ImageData != "" {
		image, err := base64.StdEncoding.DecodeString(req.ImageData)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "image_data must be base64 encoded", nil)
			return
		}
		catch.ImageData = image
	}

	resp := h.svc.Analyze(c.Request.Context(), catch)
	if resp.Status == "error" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  resp.Status,
			"message": resp.Message,
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Match runs price and market analysis followed by matchmaking only.
func (h *Handler) Match(c *gin.Context) {
	var req transport.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	catch := domain.CatchRequest{
		FishType:   sanitize.Text(req.FishType),
		QuantityKg: req.QuantityKg,
		Location:   sanitize.Text(req.Location),
		UserID:     req.UserID,
	}

	c.JSON(http.StatusOK, h.svc.Match(c.Request.Context(), catch))
}
