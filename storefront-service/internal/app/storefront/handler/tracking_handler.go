package handler

import (
	"context"
	"errors"
	"net/http"

	"ecoluxe/storefront-service/internal/app/storefront/entity"
	"ecoluxe/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TrackingServiceInterface interface {
	TrackView(ctx context.Context, email, productID string) error
	TrackPurchase(ctx context.Context, email, productID string) error
}

type TrackingHandler struct {
	trackingService TrackingServiceInterface
	validator       *validator.Validate
}

func NewTrackingHandler(trackingService TrackingServiceInterface) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
		validator:       validator.New(),
	}
}

// TrackView обрабатывает POST /track-view
func (h *TrackingHandler) TrackView(c *gin.Context) {
	req, ok := h.bindTrackRequest(c)
	if !ok {
		return
	}

	if err := h.trackingService.TrackView(c.Request.Context(), req.Email, req.ProductID); err != nil {
		respondTrackingError(c, err, "Failed to track product view")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "View tracked"})
}

// TrackPurchase обрабатывает POST /track-purchase
func (h *TrackingHandler) TrackPurchase(c *gin.Context) {
	req, ok := h.bindTrackRequest(c)
	if !ok {
		return
	}

	if err := h.trackingService.TrackPurchase(c.Request.Context(), req.Email, req.ProductID); err != nil {
		respondTrackingError(c, err, "Failed to track purchase")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Purchase tracked"})
}

func (h *TrackingHandler) bindTrackRequest(c *gin.Context) (*entity.TrackRequest, bool) {
	var req entity.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, false
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return nil, false
	}

	return &req, true
}

func respondTrackingError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
