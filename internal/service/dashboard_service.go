package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/newsroom-web/internal/models"
	"github.com/newsroom-web/internal/repository"
	"github.com/newsroom-web/internal/validation"
	"github.com/rs/zerolog"
)

// importBatchSize is the number of articles written per transaction
const importBatchSize = 500

// dashboardService is the concrete implementation of DashboardService
type dashboardService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newDashboardService creates a new DashboardService
func newDashboardService(repos *repository.Repositories, log zerolog.Logger) *dashboardService {
	return &dashboardService{
		repos: repos,
		log:   log.With().Str("service", "dashboard").Logger(),
	}
}

// ImportArticles reads one article per line and stores the valid ones.
// Invalid lines are counted and reported, they never abort the import.
func (s *dashboardService) ImportArticles(ctx context.Context, r io.Reader) (*models.ImportResult, error) {
	startTime := time.Now()
	result := &models.ImportResult{}

	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	validator := validation.NewValidator()
	var batch []*models.Article
	lineNum := 0

	addErrors := func(line int, errs ...models.ValidationError) {
		result.Failed++
		for _, e := range errs {
			if len(result.Errors) >= models.MaxReportedImportErrors {
				return
			}
			e.Line = line
			result.Errors = append(result.Errors, e)
		}
	}

	flush := func() {
		if len(batch) == 0 {
			return
		}
		inserted, err := s.repos.Article.BatchInsert(ctx, batch)
		if err != nil {
			s.log.Error().Err(err).Int("batch_size", len(batch)).Msg("Batch insert failed")
			result.Failed += len(batch)
		} else {
			result.Successful += inserted
			// rows skipped by ON CONFLICT collided with stored articles
			result.Failed += len(batch) - inserted
		}
		batch = batch[:0]
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result.Total++

		if lineNum%1000 == 0 {
			select {
			case <-ctx.Done():
				result.DurationMs = time.Since(startTime).Milliseconds()
				return result, ctx.Err()
			default:
			}
		}

		var record models.ArticleNDJSON
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			addErrors(lineNum, models.ValidationError{Field: "json", Message: fmt.Sprintf("invalid JSON: %v", err)})
			continue
		}
		if record.Slug == "" {
			record.Slug = validation.Slugify(record.Title)
		}

		if errs := validator.ValidateArticleRecord(&record); len(errs) > 0 {
			converted := make([]models.ValidationError, 0, len(errs))
			for _, e := range errs {
				converted = append(converted, models.ValidationError{Field: e.Field, Message: e.Message, Value: e.Value})
			}
			addErrors(lineNum, converted...)
			continue
		}

		article := convertNDJSONToArticle(&record, time.Now())
		validator.AddArticleSlug(article.Slug)
		validator.AddArticleID(article.ID)
		batch = append(batch, article)

		if len(batch) >= importBatchSize {
			flush()
		}
	}
	flush()

	result.DurationMs = time.Since(startTime).Milliseconds()
	if err := scanner.Err(); err != nil {
		s.log.Warn().
			Err(err).
			Int("successful", result.Successful).
			Int("line", lineNum).
			Msg("Import stopped early")
		return result, fmt.Errorf("read import: %w", err)
	}

	s.log.Info().
		Int("total", result.Total).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int64("duration_ms", result.DurationMs).
		Msg("Import completed")

	return result, nil
}

// StreamArticles streams every article in the given format
func (s *dashboardService) StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting articles export")

	switch format {
	case "ndjson":
		return s.streamArticlesNDJSON(ctx, w)
	case "json":
		return s.streamArticlesJSON(ctx, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (s *dashboardService) streamArticlesNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=articles.ndjson")

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	count := 0

	err := s.repos.Article.StreamAll(ctx, func(article *models.Article) error {
		if err := enc.Encode(article); err != nil {
			return err
		}
		count++

		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Articles export completed")
	return err
}

func (s *dashboardService) streamArticlesJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=articles.json")

	w.Write([]byte("["))
	first := true

	err := s.repos.Article.StreamAll(ctx, func(article *models.Article) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})

	w.Write([]byte("]"))
	return err
}

func convertNDJSONToArticle(record *models.ArticleNDJSON, now time.Time) *models.Article {
	article := &models.Article{
		ID:          record.ID,
		Title:       record.Title,
		Author:      record.Author,
		Category:    record.Category,
		Description: record.Description,
		Content:     record.Content,
		Images:      record.Images,
		Status:      models.ArticleStatus(record.Status),
		Slug:        record.Slug,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	if article.Images == nil {
		article.Images = []string{}
	}
	if article.Status == "" {
		article.Status = models.ArticleStatusDraft
	}
	if record.PublishDate != "" {
		t, _ := time.Parse(time.RFC3339, record.PublishDate)
		article.PublishDate = &t
	} else if article.Status == models.ArticleStatusPublished {
		article.PublishDate = &now
	}
	article.WordCount = validation.WordCount(record.Content)
	article.ReadTime = validation.ReadTime(article.WordCount)
	return article
}
