package repository

import (
	"context"
	"errors"
	"time"

	"github.com/newsroom-web/internal/database"
	"github.com/newsroom-web/internal/models"
)

// ErrNotFound is returned by writes that target a missing document
var ErrNotFound = errors.New("document not found")

// ArticleRepository defines the interface for article document operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	UpdateStatus(ctx context.Context, id string, status models.ArticleStatus, publishDate *time.Time) error
	BatchInsert(ctx context.Context, articles []*models.Article) (int, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	IncrementViews(ctx context.Context, id string) (*models.WriteResult, error)
	ListByPublishDate(ctx context.Context) ([]*models.Article, error)
	ListPublished(ctx context.Context, category string, limit int) ([]*models.Article, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[models.ArticleStatus]int, error)
	StreamAll(ctx context.Context, callback func(*models.Article) error) error
}

// PortfolioRepository defines the interface for portfolio item operations
type PortfolioRepository interface {
	List(ctx context.Context) ([]*models.PortfolioItem, error)
}

// ProfileRepository defines the interface for profile document operations
type ProfileRepository interface {
	Get(ctx context.Context, name string) (*models.Profile, error)
	Put(ctx context.Context, profile *models.Profile) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article   ArticleRepository
	Portfolio PortfolioRepository
	Profile   ProfileRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:   NewArticleRepo(db),
		Portfolio: NewPortfolioRepo(db),
		Profile:   NewProfileRepo(db),
	}
}

// storeTime normalizes timestamps so both drivers order them the same way
func storeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func storeTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return storeTime(*t)
}
