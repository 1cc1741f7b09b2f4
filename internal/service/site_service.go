package service

import (
	"context"
	"fmt"

	"github.com/newsroom-web/internal/config"
	"github.com/newsroom-web/internal/models"
	"github.com/newsroom-web/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// latestCount is the number of articles in the homepage hero list
const latestCount = 6

// siteService is the concrete implementation of SiteService
type siteService struct {
	repos       *repository.Repositories
	sectionSize int
	log         zerolog.Logger
}

// newSiteService creates a new SiteService
func newSiteService(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *siteService {
	return &siteService{
		repos:       repos,
		sectionSize: cfg.Site.SectionSize,
		log:         log.With().Str("service", "site").Logger(),
	}
}

// HomePage loads the latest articles and one section per category
func (s *siteService) HomePage(ctx context.Context) (*models.HomePage, error) {
	page := &models.HomePage{
		Sections: make([]models.Section, len(models.Categories)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		latest, err := s.repos.Article.ListPublished(gctx, "", latestCount)
		if err != nil {
			return fmt.Errorf("latest articles: %w", err)
		}
		page.Latest = latest
		return nil
	})
	for i, category := range models.Categories {
		i, category := i, category
		g.Go(func() error {
			articles, err := s.repos.Article.ListPublished(gctx, category.Slug, s.sectionSize)
			if err != nil {
				return fmt.Errorf("%s section: %w", category.Slug, err)
			}
			page.Sections[i] = models.Section{Category: category, Articles: articles}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

// CategoryPage loads the published articles of one category, or nil for an unknown slug
func (s *siteService) CategoryPage(ctx context.Context, slug string) (*models.CategoryPage, error) {
	category, ok := models.FindCategory(slug)
	if !ok {
		return nil, nil
	}
	articles, err := s.repos.Article.ListPublished(ctx, slug, 0)
	if err != nil {
		return nil, err
	}
	return &models.CategoryPage{Category: category, Articles: articles}, nil
}

// Profile returns the site profile document, or nil when none is stored
func (s *siteService) Profile(ctx context.Context) (*models.Profile, error) {
	return s.repos.Profile.Get(ctx, models.DefaultProfile)
}

// Portfolio returns every portfolio item in display order
func (s *siteService) Portfolio(ctx context.Context) ([]*models.PortfolioItem, error) {
	return s.repos.Portfolio.List(ctx)
}
