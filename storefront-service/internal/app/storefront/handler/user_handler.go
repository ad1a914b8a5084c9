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

type UserServiceInterface interface {
	GetPreferences(ctx context.Context, email string) (*entity.Preferences, error)
	UpdatePreferences(ctx context.Context, email string, prefs *entity.Preferences) error
}

type UserHandler struct {
	userService UserServiceInterface
	validator   *validator.Validate
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// GetPreferences обрабатывает GET /user/preferences/:email
func (h *UserHandler) GetPreferences(c *gin.Context) {
	email := c.Param("email")

	prefs, err := h.userService.GetPreferences(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get preferences"})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences обрабатывает PUT /user/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var req entity.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.userService.UpdatePreferences(c.Request.Context(), req.Email, req.Preferences); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Preferences updated"})
}
