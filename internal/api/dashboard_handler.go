package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-web/internal/auth"
	"github.com/newsroom-web/internal/config"
	"github.com/newsroom-web/internal/models"
	"github.com/newsroom-web/internal/repository"
	"github.com/newsroom-web/internal/service"
	"github.com/rs/zerolog"
)

// DashboardHandler handles the authenticated article management endpoints
type DashboardHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "dashboard").Logger(),
	}
}

// ListArticles handles GET /api/dashboard/articles
func (h *DashboardHandler) ListArticles(c *gin.Context) {
	articles, err := h.services.Article.ListForDashboard(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, articles)
}

// CreateArticle handles POST /api/dashboard/articles
func (h *DashboardHandler) CreateArticle(c *gin.Context) {
	var input models.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	article, err := h.services.Article.CreateArticle(c.Request.Context(), &input)
	if err != nil {
		h.writeError(c, err, "Failed to create article")
		return
	}

	subject, _ := auth.Subject(c)
	h.log.Info().Str("article_id", article.ID).Str("user", subject).Msg("Article created")
	c.JSON(http.StatusCreated, article)
}

// UpdateArticle handles PUT /api/dashboard/articles/:id
func (h *DashboardHandler) UpdateArticle(c *gin.Context) {
	id := c.Param("id")

	var input models.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	article, err := h.services.Article.UpdateArticle(c.Request.Context(), id, &input)
	if err != nil {
		h.writeError(c, err, "Failed to update article")
		return
	}

	c.JSON(http.StatusOK, article)
}

// UpdateStatus handles PATCH /api/dashboard/articles/:id/status
func (h *DashboardHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: draft, published, archived"})
		return
	}

	article, err := h.services.Article.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeError(c, err, "Failed to update article status")
		return
	}

	c.JSON(http.StatusOK, article)
}

// ImportArticles handles POST /api/dashboard/articles/import.
// Accepts a multipart "file" upload or a raw NDJSON body.
func (h *DashboardHandler) ImportArticles(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Site.MaxImport)

	var body io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".ndjson" && ext != ".json" && ext != ".jsonl" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "articles import requires an NDJSON file"})
			return
		}
		h.log.Info().Str("file", header.Filename).Int64("size_bytes", header.Size).Msg("Import upload received")
		body = file
	}

	result, err := h.services.Dashboard.ImportArticles(c.Request.Context(), body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		status, message := http.StatusInternalServerError, "Failed to import articles"
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
			message = fmt.Sprintf("import too large, max size is %d MB", h.cfg.Site.MaxImport/(1024*1024))
		} else {
			h.log.Error().Err(err).Msg("Import failed")
		}
		// rows stored before the failure stay stored
		response := gin.H{"error": message}
		if result != nil {
			response["partial"] = result
		}
		c.JSON(status, response)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportArticles handles GET /api/dashboard/articles/export?format=...
// Streams the export directly to the response
func (h *DashboardHandler) ExportArticles(c *gin.Context) {
	format := c.DefaultQuery("format", "ndjson")
	if format != "ndjson" && format != "json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: ndjson, json"})
		return
	}

	if err := h.services.Dashboard.StreamArticles(c.Request.Context(), c.Writer, format); err != nil {
		// Can't return error JSON after streaming has started
		h.log.Error().Err(err).Str("format", format).Msg("Export failed")
	}
}

// writeError maps service errors onto status codes
func (h *DashboardHandler) writeError(c *gin.Context, err error, message string) {
	var invalid *service.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": invalid.Errors})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
	default:
		h.log.Error().Err(err).Str("article_id", c.Param("id")).Msg(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
