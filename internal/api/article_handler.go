package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-web/internal/service"
	"github.com/rs/zerolog"
)

// ArticleHandler handles the public article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// GetArticle handles GET /api/articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")

	article, err := h.services.Article.GetArticle(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("article_id", id).Msg("Failed to fetch article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch article"})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// IncrementViews handles GET /api/articles/:id/views.
// The body is the store acknowledgment, not the article.
func (h *ArticleHandler) IncrementViews(c *gin.Context) {
	id := c.Param("id")

	result, err := h.services.Article.IncrementViews(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("article_id", id).Msg("Failed to increment view count")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to increment view count"})
		return
	}

	c.JSON(http.StatusOK, result)
}
