package api

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-web/internal/auth"
	"github.com/newsroom-web/internal/config"
	"github.com/newsroom-web/internal/service"
	"github.com/newsroom-web/internal/web"
	"github.com/newsroom-web/pkg/logger"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router.
// A nil verifier leaves the dashboard open.
func NewRouter(services *service.Services, cfg *config.Config, verifier *auth.Verifier, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(web.Templates()))

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	if verifier != nil {
		router.Use(auth.Middleware(verifier, cfg.Auth.SignInURL, log))
	} else {
		log.Warn().Msg("Auth disabled, dashboard routes are not protected")
	}

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	dashboardHandler := NewDashboardHandler(services, cfg, log)
	siteHandler := NewSiteHandler(services, cfg, log)
	pages := NewPageHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	router.StaticFS("/static", http.FS(web.Static()))
	router.GET("/sitemap.xml", siteHandler.Sitemap)
	router.GET("/robots.txt", siteHandler.Robots)

	// Pages
	router.GET("/", pages.Home)
	router.GET("/category/:slug", pages.Category)
	router.GET("/article/:id", pages.Article)
	router.GET("/about", pages.About)
	router.GET("/contact", pages.Contact)
	router.GET("/portfolio", pages.Portfolio)
	router.GET("/dashboard", pages.Dashboard)
	router.NoRoute(pages.NotFound)

	api := router.Group("/api")
	{
		articles := api.Group("/articles")
		{
			articles.GET("/:id", articleHandler.GetArticle)
			articles.GET("/:id/views", articleHandler.IncrementViews)
		}

		api.GET("/profile", siteHandler.Profile)
		api.GET("/portfolio", siteHandler.Portfolio)

		dashboard := api.Group("/dashboard/articles")
		{
			dashboard.GET("", dashboardHandler.ListArticles)
			dashboard.POST("", dashboardHandler.CreateArticle)
			dashboard.GET("/export", dashboardHandler.ExportArticles)
			dashboard.POST("/import", dashboardHandler.ImportArticles)
			dashboard.PUT("/:id", dashboardHandler.UpdateArticle)
			dashboard.PATCH("/:id/status", dashboardHandler.UpdateStatus)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   logger.ServiceName,
	})
}

// metricsHandler returns article counts
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := services.Article.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect metrics"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"articles":  stats.Total,
				"by_status": stats.ByStatus,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS for the configured origins
func corsMiddleware(allowed []string) gin.HandlerFunc {
	allowAll := len(allowed) == 0
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		origins[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origins[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions,
		}, ", "))
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
