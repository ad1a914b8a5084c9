package handler

import (
	"context"
	"errors"
	"net/http"

	"ecoluxe/storefront-service/internal/app/storefront/entity"
	"ecoluxe/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultFeedPage  = 1
	defaultFeedLimit = 6
)

type FeedServiceInterface interface {
	GetPersonalizedFeed(ctx context.Context, email string, page, limit int) (*entity.FeedResponse, error)
}

type FeedHandler struct {
	feedService FeedServiceInterface
}

func NewFeedHandler(feedService FeedServiceInterface) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// GetPersonalizedFeed обрабатывает GET /feed/personalized
func (h *FeedHandler) GetPersonalizedFeed(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	page, err := parsePositiveInt(c, "page", defaultFeedPage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, err := parsePositiveInt(c, "limit", defaultFeedLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feed, err := h.feedService.GetPersonalizedFeed(c.Request.Context(), email, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch personalized feed"})
		return
	}

	c.JSON(http.StatusOK, feed)
}
