package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-web/internal/config"
	"github.com/newsroom-web/internal/service"
	"github.com/rs/zerolog"
)

// SiteHandler serves the profile, portfolio and crawler metadata
type SiteHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *SiteHandler {
	return &SiteHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "site").Logger(),
	}
}

// Profile handles GET /api/profile
func (h *SiteHandler) Profile(c *gin.Context) {
	profile, err := h.services.Site.Profile(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", profile.Data)
}

// Portfolio handles GET /api/portfolio
func (h *SiteHandler) Portfolio(c *gin.Context) {
	items, err := h.services.Site.Portfolio(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch portfolio")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolio"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// Sitemap handles GET /sitemap.xml
func (h *SiteHandler) Sitemap(c *gin.Context) {
	var buf bytes.Buffer
	entries := service.Sitemap(h.cfg.Site.BaseURL, time.Now())
	if err := service.WriteSitemapXML(&buf, entries); err != nil {
		h.log.Error().Err(err).Msg("Failed to build sitemap")
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

// Robots handles GET /robots.txt
func (h *SiteHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, service.RobotsTxt(h.cfg.Site.BaseURL))
}
