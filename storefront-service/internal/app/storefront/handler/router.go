package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ecoluxe/pkg/logger"
	"ecoluxe/pkg/metrics"
)

// SetupRoutes настраивает все маршруты Storefront Service
// Браузерные маршруты публичны, трекинг и запись предпочтений требуют токен
func SetupRoutes(
	feedHandler *FeedHandler,
	catalogHandler *CatalogHandler,
	trackingHandler *TrackingHandler,
	userHandler *UserHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("storefront-service"))
	// Фронтенд - браузерное приложение на другом origin
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "storefront-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Персонализированная лента
	router.GET("/feed/personalized", feedHandler.GetPersonalizedFeed)

	// Каталог
	products := router.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/trending", catalogHandler.GetTrending)
		products.GET("/similar/:productId", catalogHandler.GetSimilarProducts)
	}

	// Поиск
	search := router.Group("/search")
	{
		search.GET("", catalogHandler.SearchProducts)
		search.GET("/suggestions", catalogHandler.GetSuggestions)
	}

	// Предпочтения: чтение публично, запись за токеном
	router.GET("/user/preferences/:email", userHandler.GetPreferences)
	router.PUT("/user/preferences", authMiddleware.Authenticate(), userHandler.UpdatePreferences)

	// Трекинг просмотров и покупок
	tracking := router.Group("/")
	tracking.Use(authMiddleware.Authenticate())
	{
		tracking.POST("/track-view", trackingHandler.TrackView)
		tracking.POST("/track-purchase", trackingHandler.TrackPurchase)
	}

	return router
}
