package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newsroom-web/internal/models"
	"github.com/newsroom-web/internal/repository"
	"github.com/newsroom-web/internal/validation"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repos *repository.Repositories
	log   zerolog.Logger
	now   func() time.Time
}

// newArticleService creates a new ArticleService
func newArticleService(repos *repository.Repositories, log zerolog.Logger) *articleService {
	return &articleService{
		repos: repos,
		log:   log.With().Str("service", "article").Logger(),
		now:   time.Now,
	}
}

// GetArticle returns the article with the given id, or nil when there is none
func (s *articleService) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	return s.repos.Article.GetByID(ctx, id)
}

// IncrementViews adds one view and returns the store acknowledgment
func (s *articleService) IncrementViews(ctx context.Context, id string) (*models.WriteResult, error) {
	result, err := s.repos.Article.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		s.log.Debug().Str("article_id", id).Msg("View increment matched no article")
	}
	return result, nil
}

// ListForDashboard returns every article, newest publish date first
func (s *articleService) ListForDashboard(ctx context.Context) ([]*models.Article, error) {
	return s.repos.Article.ListByPublishDate(ctx)
}

// CreateArticle validates the input and stores a new article
func (s *articleService) CreateArticle(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	if err := s.validate(ctx, input, ""); err != nil {
		return nil, err
	}

	now := s.now()
	article := &models.Article{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(article, input, now)

	if err := s.repos.Article.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.log.Info().
		Str("article_id", article.ID).
		Str("status", string(article.Status)).
		Msg("Article created")

	return article, nil
}

// UpdateArticle replaces the editable fields of an article. Views and createdAt are kept,
// as are status and publishDate when the input omits them.
func (s *articleService) UpdateArticle(ctx context.Context, id string, input *models.ArticleInput) (*models.Article, error) {
	existing, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, repository.ErrNotFound
	}

	if err := s.validate(ctx, input, id); err != nil {
		return nil, err
	}

	now := s.now()
	existing.UpdatedAt = now
	applyInput(existing, input, now)

	if err := s.repos.Article.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update article %s: %w", id, err)
	}

	s.log.Info().Str("article_id", id).Msg("Article updated")
	return existing, nil
}

// UpdateStatus moves an article to a new status.
// Publishing an article without a publish date stamps it with the current time.
func (s *articleService) UpdateStatus(ctx context.Context, id string, status models.ArticleStatus) (*models.Article, error) {
	if !models.ValidStatuses[status] {
		return nil, &InvalidInputError{Errors: []validation.ValidationError{{
			Field:   "status",
			Message: "invalid status, must be one of: draft, published, archived",
			Value:   string(status),
		}}}
	}

	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, repository.ErrNotFound
	}

	now := s.now()
	var publishDate *time.Time
	if status == models.ArticleStatusPublished && article.PublishDate == nil {
		publishDate = &now
	}

	if err := s.repos.Article.UpdateStatus(ctx, id, status, publishDate); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update status of %s: %w", id, err)
	}

	article.Status = status
	article.UpdatedAt = now
	if publishDate != nil {
		article.PublishDate = publishDate
	}

	s.log.Info().Str("article_id", id).Str("status", string(status)).Msg("Article status changed")
	return article, nil
}

// Stats returns article counts for the metrics endpoint
func (s *articleService) Stats(ctx context.Context) (*models.ArticleStats, error) {
	total, err := s.repos.Article.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repos.Article.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ArticleStats{Total: total, ByStatus: byStatus}, nil
}

func (s *articleService) validate(ctx context.Context, input *models.ArticleInput, excludeID string) error {
	if input.Slug == "" {
		input.Slug = validation.Slugify(input.Title)
	}

	validator := validation.NewValidator()
	if input.Slug != "" {
		taken, err := s.repos.Article.SlugExists(ctx, input.Slug, excludeID)
		if err != nil {
			return fmt.Errorf("check slug: %w", err)
		}
		if taken {
			validator.AddArticleSlug(input.Slug)
		}
	}

	if errs := validator.ValidateArticle(input); len(errs) > 0 {
		return &InvalidInputError{Errors: errs}
	}
	return nil
}

// applyInput copies the input onto the article and recomputes derived fields
func applyInput(article *models.Article, input *models.ArticleInput, now time.Time) {
	article.Title = input.Title
	article.Author = input.Author
	article.Category = input.Category
	article.Description = input.Description
	article.Content = input.Content
	article.Images = input.Images
	if article.Images == nil {
		article.Images = []string{}
	}
	// an omitted status or publishDate keeps the stored value
	if input.Status != "" {
		article.Status = input.Status
	}
	if article.Status == "" {
		article.Status = models.ArticleStatusDraft
	}
	if input.PublishDate != nil {
		article.PublishDate = input.PublishDate
	}
	if article.Status == models.ArticleStatusPublished && article.PublishDate == nil {
		article.PublishDate = &now
	}
	article.Slug = input.Slug
	article.WordCount = validation.WordCount(input.Content)
	article.ReadTime = validation.ReadTime(article.WordCount)
}
