package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP server with all routes configured. The trigger
// and maintenance endpoints require the cron shared secret; read endpoints
// are public.
func NewServer(handler *Handler, cronSecret string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, cronSecret)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, cronSecret string) {
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	{
		api.GET("/articles", handler.GetArticles)
		api.GET("/articles/:id", handler.GetArticle)
		api.GET("/sources", handler.GetSources)

		protected := api.Group("", authMiddleware(cronSecret))
		{
			protected.GET("/ingestion/run", handler.RunIngestion)
			protected.POST("/ingestion/run", handler.RunIngestion)
			protected.GET("/validate-links", handler.ValidateLinks)
		}
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "NewsBrief",
			"version":     "1.0.0",
			"description": "AI-news ingestion service with LLM summarization and keyword categorization",
			"endpoints": map[string]string{
				"health":         "/health",
				"articles":       "/api/articles?category=<category>&limit=<n>",
				"article":        "/api/articles/<id>",
				"sources":        "/api/sources",
				"ingestion":      "/api/ingestion/run (requires bearer secret)",
				"validate_links": "/api/validate-links (requires bearer secret)",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware guards the trigger endpoints with the cron shared secret.
// A non-matching or missing token rejects the request before any work begins.
func authMiddleware(cronSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedSecret := ""

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			providedSecret = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if providedSecret == "" {
			providedSecret = c.GetHeader("X-API-Key")
		}

		if providedSecret == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization required",
				"message": "Provide the secret as Authorization: Bearer <secret> or in the X-API-Key header",
			})
			c.Abort()
			return
		}

		if providedSecret != cronSecret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
