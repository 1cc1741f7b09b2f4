package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/newsroom-web/internal/config"
	"github.com/newsroom-web/internal/models"
	"github.com/newsroom-web/internal/repository"
	"github.com/newsroom-web/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article operations
type ArticleService interface {
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	IncrementViews(ctx context.Context, id string) (*models.WriteResult, error)
	ListForDashboard(ctx context.Context) ([]*models.Article, error)
	CreateArticle(ctx context.Context, input *models.ArticleInput) (*models.Article, error)
	UpdateArticle(ctx context.Context, id string, input *models.ArticleInput) (*models.Article, error)
	UpdateStatus(ctx context.Context, id string, status models.ArticleStatus) (*models.Article, error)
	Stats(ctx context.Context) (*models.ArticleStats, error)
}

// DashboardService defines the interface for bulk dashboard operations
type DashboardService interface {
	// ImportArticles stores valid NDJSON lines in batches. If reading stops early the
	// result so far is returned with the error; batches already stored stay stored.
	ImportArticles(ctx context.Context, r io.Reader) (*models.ImportResult, error)
	StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error
}

// SiteService defines the interface for public site content
type SiteService interface {
	HomePage(ctx context.Context) (*models.HomePage, error)
	CategoryPage(ctx context.Context, slug string) (*models.CategoryPage, error)
	Profile(ctx context.Context) (*models.Profile, error)
	Portfolio(ctx context.Context) ([]*models.PortfolioItem, error)
}

// Services holds all service interfaces
type Services struct {
	Article   ArticleService
	Dashboard DashboardService
	Site      SiteService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Article:   newArticleService(repos, log),
		Dashboard: newDashboardService(repos, log),
		Site:      newSiteService(repos, cfg, log),
	}
}

// InvalidInputError carries field errors for a rejected write
type InvalidInputError struct {
	Errors []validation.ValidationError
}

func (e *InvalidInputError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}
	return fmt.Sprintf("invalid article: %s", strings.Join(fields, ", "))
}
