package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-web/internal/config"
	"github.com/newsroom-web/internal/models"
	"github.com/newsroom-web/internal/service"
	"github.com/rs/zerolog"
)

// PageHandler renders the server-side HTML pages
type PageHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "pages").Logger(),
	}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	page, err := h.services.Site.HomePage(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load homepage")
		h.renderError(c, http.StatusInternalServerError, "We couldn't load the latest stories.")
		return
	}

	h.render(c, http.StatusOK, "home.html", gin.H{
		"Description": h.cfg.Site.Name + " news coverage",
		"Page":        page,
	})
}

// Category handles GET /category/:slug
func (h *PageHandler) Category(c *gin.Context) {
	slug := c.Param("slug")

	page, err := h.services.Site.CategoryPage(c.Request.Context(), slug)
	if err != nil {
		h.log.Error().Err(err).Str("category", slug).Msg("Failed to load category")
		h.renderError(c, http.StatusInternalServerError, "We couldn't load this section.")
		return
	}
	if page == nil {
		h.renderError(c, http.StatusNotFound, "Section not found")
		return
	}

	h.render(c, http.StatusOK, "category.html", gin.H{
		"Title":       page.Category.Name,
		"Description": page.Category.Description,
		"Page":        page,
	})
}

// Article handles GET /article/:id
func (h *PageHandler) Article(c *gin.Context) {
	id := c.Param("id")

	article, err := h.services.Article.GetArticle(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("article_id", id).Msg("Failed to fetch article")
		h.renderError(c, http.StatusInternalServerError, "Failed to fetch article")
		return
	}
	// drafts and archived stories are only visible from the dashboard API
	if article == nil || article.Status != models.ArticleStatusPublished {
		h.renderError(c, http.StatusNotFound, "Article not found")
		return
	}

	h.render(c, http.StatusOK, "article.html", gin.H{
		"Title":       article.Title,
		"Description": article.Description,
		"Page":        article,
	})
}

// Dashboard handles GET /dashboard
func (h *PageHandler) Dashboard(c *gin.Context) {
	articles, err := h.services.Article.ListForDashboard(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list articles")
		h.renderError(c, http.StatusInternalServerError, "Failed to fetch articles")
		return
	}

	h.render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title": "Dashboard",
		"Page":  articles,
	})
}

// About handles GET /about
func (h *PageHandler) About(c *gin.Context) {
	fields, ok := h.profileFields(c)
	if !ok {
		return
	}

	h.render(c, http.StatusOK, "about.html", gin.H{
		"Title":       "About",
		"Description": fields.Tagline,
		"Page":        fields,
	})
}

// Contact handles GET /contact
func (h *PageHandler) Contact(c *gin.Context) {
	fields, ok := h.profileFields(c)
	if !ok {
		return
	}

	h.render(c, http.StatusOK, "contact.html", gin.H{
		"Title": "Contact",
		"Page":  fields,
	})
}

// Portfolio handles GET /portfolio
func (h *PageHandler) Portfolio(c *gin.Context) {
	items, err := h.services.Site.Portfolio(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch portfolio")
		h.renderError(c, http.StatusInternalServerError, "We couldn't load the portfolio.")
		return
	}

	h.render(c, http.StatusOK, "portfolio.html", gin.H{
		"Title":       "Portfolio",
		"Description": h.cfg.Site.Name + " projects and series",
		"Page":        items,
	})
}

// profileFields loads the site profile. A missing or malformed profile renders as empty.
func (h *PageHandler) profileFields(c *gin.Context) (models.ProfileFields, bool) {
	profile, err := h.services.Site.Profile(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch profile")
		h.renderError(c, http.StatusInternalServerError, "We couldn't load this page.")
		return models.ProfileFields{}, false
	}

	fields, err := profile.Fields()
	if err != nil {
		h.log.Warn().Err(err).Msg("Profile document is not an object")
	}
	return fields, true
}

// NotFound renders the 404 page, or a JSON error for API paths
func (h *PageHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	h.renderError(c, http.StatusNotFound, "Page not found")
}

func (h *PageHandler) renderError(c *gin.Context, status int, message string) {
	h.render(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

func (h *PageHandler) render(c *gin.Context, status int, name string, data gin.H) {
	data["Site"] = h.cfg.Site.Name
	data["Categories"] = models.Categories
	c.HTML(status, name, data)
}
