package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/travelrecap/timeline-backend-go/internal/config"
	"github.com/travelrecap/timeline-backend-go/internal/handler"
	"github.com/travelrecap/timeline-backend-go/internal/middleware"
)

// SetupRouter wires middleware and routes
func SetupRouter(cfg *config.Config, timelineHandler *handler.TimelineHandler, placeHandler *handler.PlaceHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS: the analysis UI is served from a different origin
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Timeline Backend API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	analyzeLimiter := middleware.NewRateLimiter(cfg.AnalyzeRateLimit, time.Minute)

	api := r.Group("/api/v1")
	{
		tl := api.Group("/timeline")
		{
			tl.POST("/analyze", analyzeLimiter.Middleware(), timelineHandler.Analyze)
			tl.GET("/runs", timelineHandler.ListRuns)
			tl.GET("/runs/:id", timelineHandler.GetRun)
			tl.DELETE("/runs/:id", middleware.Auth(cfg.JWTSecret), timelineHandler.DeleteRun)
		}

		api.GET("/place-locations", placeHandler.GetPlaceLocations)
	}

	return r
}
