package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newsroom-web/internal/config"
	"github.com/newsroom-web/internal/mocks"
	"github.com/newsroom-web/internal/models"
	"github.com/newsroom-web/internal/repository"
	"github.com/newsroom-web/internal/service"
	"github.com/rs/zerolog"
)

type testHarness struct {
	services      *service.Services
	articleRepo   *mocks.MockArticleRepository
	portfolioRepo *mocks.MockPortfolioRepository
	profileRepo   *mocks.MockProfileRepository
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	repos, articleRepo, portfolioRepo, profileRepo := mocks.NewMockRepositories()
	cfg := &config.Config{
		Site: config.SiteConfig{
			BaseURL:     "https://news.example.com",
			SectionSize: 2,
		},
	}

	return &testHarness{
		services:      service.NewServices(repos, cfg, zerolog.Nop()),
		articleRepo:   articleRepo,
		portfolioRepo: portfolioRepo,
		profileRepo:   profileRepo,
	}
}

func seedArticle(h *testHarness, id, category string, status models.ArticleStatus, publishDate *time.Time) *models.Article {
	article := &models.Article{
		ID:          id,
		Title:       "Title " + id,
		Author:      "Desk",
		Category:    category,
		Status:      status,
		PublishDate: publishDate,
		Images:      []string{},
		Slug:        "title-" + id,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	h.articleRepo.Create(context.Background(), article)
	return article
}

func date(day int) *time.Time {
	t := time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestArticleService_GetArticle(t *testing.T) {
	h := newTestHarness(t)
	seedArticle(h, "a1", "science", models.ArticleStatusPublished, date(1))

	article, err := h.services.Article.GetArticle(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if article == nil || article.ID != "a1" {
		t.Fatalf("Expected article a1, got %+v", article)
	}

	missing, err := h.services.Article.GetArticle(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetArticle for missing id returned error: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing article, got %+v", missing)
	}
}

func TestArticleService_GetArticle_StoreError(t *testing.T) {
	h := newTestHarness(t)
	h.articleRepo.GetError = errors.New("store unavailable")

	if _, err := h.services.Article.GetArticle(context.Background(), "a1"); err == nil {
		t.Fatal("Expected store error to be returned")
	}
}

func TestArticleService_IncrementViews(t *testing.T) {
	h := newTestHarness(t)
	article := seedArticle(h, "a1", "science", models.ArticleStatusPublished, date(1))

	for i := 0; i < 3; i++ {
		result, err := h.services.Article.IncrementViews(context.Background(), "a1")
		if err != nil {
			t.Fatalf("IncrementViews failed: %v", err)
		}
		if result.RowsAffected != 1 {
			t.Errorf("Expected 1 row affected, got %d", result.RowsAffected)
		}
	}
	if article.Views != 3 {
		t.Errorf("Expected 3 views, got %d", article.Views)
	}

	result, err := h.services.Article.IncrementViews(context.Background(), "missing")
	if err != nil {
		t.Fatalf("IncrementViews for missing id returned error: %v", err)
	}
	if result.RowsAffected != 0 {
		t.Errorf("Expected 0 rows affected for missing article, got %d", result.RowsAffected)
	}
}

func TestArticleService_ListForDashboard(t *testing.T) {
	h := newTestHarness(t)
	seedArticle(h, "old", "world", models.ArticleStatusPublished, date(1))
	seedArticle(h, "draft", "world", models.ArticleStatusDraft, nil)
	seedArticle(h, "new", "world", models.ArticleStatusArchived, date(9))
	seedArticle(h, "mid", "world", models.ArticleStatusPublished, date(5))

	articles, err := h.services.Article.ListForDashboard(context.Background())
	if err != nil {
		t.Fatalf("ListForDashboard failed: %v", err)
	}

	want := []string{"new", "mid", "old", "draft"}
	if len(articles) != len(want) {
		t.Fatalf("Expected %d articles, got %d", len(want), len(articles))
	}
	for i, id := range want {
		if articles[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, articles[i].ID)
		}
	}
}

func TestArticleService_CreateArticle(t *testing.T) {
	h := newTestHarness(t)

	article, err := h.services.Article.CreateArticle(context.Background(), &models.ArticleInput{
		Title:    "Rivers Rise After Storm",
		Author:   "Weather Desk",
		Category: "world",
		Content:  "one two three four five",
		Status:   models.ArticleStatusPublished,
	})
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	if article.ID == "" {
		t.Error("Expected generated ID")
	}
	if article.Slug != "rivers-rise-after-storm" {
		t.Errorf("Expected derived slug, got %q", article.Slug)
	}
	if article.WordCount != 5 {
		t.Errorf("Expected word count 5, got %d", article.WordCount)
	}
	if article.ReadTime != "1 min read" {
		t.Errorf("Expected '1 min read', got %q", article.ReadTime)
	}
	if article.PublishDate == nil {
		t.Error("Expected published article to get a publish date")
	}
	if article.Images == nil {
		t.Error("Expected empty images slice, got nil")
	}
	if _, ok := h.articleRepo.Articles[article.ID]; !ok {
		t.Error("Expected article to be stored")
	}
}

func TestArticleService_CreateArticle_Invalid(t *testing.T) {
	h := newTestHarness(t)
	seedArticle(h, "a1", "world", models.ArticleStatusDraft, nil)

	tests := []struct {
		name  string
		input models.ArticleInput
		field string
	}{
		{"unknown category", models.ArticleInput{Title: "T", Author: "A", Category: "gossip"}, "category"},
		{"bad slug", models.ArticleInput{Title: "T", Author: "A", Category: "world", Slug: "Not A Slug"}, "slug"},
		{"taken slug", models.ArticleInput{Title: "T", Author: "A", Category: "world", Slug: "title-a1"}, "slug"},
		{"bad image", models.ArticleInput{Title: "T", Author: "A", Category: "world", Images: []string{"ftp://x"}}, "images[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.services.Article.CreateArticle(context.Background(), &tt.input)
			var invalid *service.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("Expected InvalidInputError, got %v", err)
			}
			found := false
			for _, e := range invalid.Errors {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error on field %s, got %+v", tt.field, invalid.Errors)
			}
		})
	}
}

func TestArticleService_UpdateArticle(t *testing.T) {
	h := newTestHarness(t)
	original := seedArticle(h, "a1", "world", models.ArticleStatusDraft, nil)
	original.Views = 42

	updated, err := h.services.Article.UpdateArticle(context.Background(), "a1", &models.ArticleInput{
		Title:    "Title a1",
		Author:   "New Author",
		Category: "science",
		Slug:     "title-a1",
	})
	if err != nil {
		t.Fatalf("UpdateArticle failed: %v", err)
	}
	if updated.Author != "New Author" || updated.Category != "science" {
		t.Errorf("Expected fields to be replaced, got %+v", updated)
	}
	if updated.Views != 42 {
		t.Errorf("Expected views to be kept, got %d", updated.Views)
	}

	_, err = h.services.Article.UpdateArticle(context.Background(), "missing", &models.ArticleInput{
		Title: "T", Author: "A", Category: "world",
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestArticleService_UpdateArticle_KeepsLifecycle(t *testing.T) {
	h := newTestHarness(t)
	seedArticle(h, "a1", "world", models.ArticleStatusPublished, date(1))

	updated, err := h.services.Article.UpdateArticle(context.Background(), "a1", &models.ArticleInput{
		Title:    "Title a1",
		Author:   "Desk",
		Category: "world",
		Status:   models.ArticleStatusPublished,
		Slug:     "title-a1",
	})
	if err != nil {
		t.Fatalf("UpdateArticle failed: %v", err)
	}
	if updated.PublishDate == nil || !updated.PublishDate.Equal(*date(1)) {
		t.Errorf("Expected publish date %v to be kept, got %v", date(1), updated.PublishDate)
	}

	updated, err = h.services.Article.UpdateArticle(context.Background(), "a1", &models.ArticleInput{
		Title:    "Title a1",
		Author:   "Desk",
		Category: "world",
		Content:  "edited body",
		Slug:     "title-a1",
	})
	if err != nil {
		t.Fatalf("UpdateArticle failed: %v", err)
	}
	if updated.Status != models.ArticleStatusPublished {
		t.Errorf("Expected status to stay published, got %s", updated.Status)
	}
	if updated.PublishDate == nil || !updated.PublishDate.Equal(*date(1)) {
		t.Errorf("Expected publish date %v to be kept, got %v", date(1), updated.PublishDate)
	}

	stored, _ := h.articleRepo.GetByID(context.Background(), "a1")
	if stored.Status != models.ArticleStatusPublished {
		t.Errorf("Expected stored status published, got %s", stored.Status)
	}
}

func TestArticleService_UpdateStatus(t *testing.T) {
	h := newTestHarness(t)
	seedArticle(h, "draft", "world", models.ArticleStatusDraft, nil)
	seedArticle(h, "dated", "world", models.ArticleStatusArchived, date(3))

	article, err := h.services.Article.UpdateStatus(context.Background(), "draft", models.ArticleStatusPublished)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if article.Status != models.ArticleStatusPublished {
		t.Errorf("Expected published, got %s", article.Status)
	}
	if article.PublishDate == nil {
		t.Error("Expected publish date to be set when publishing")
	}

	article, err = h.services.Article.UpdateStatus(context.Background(), "dated", models.ArticleStatusPublished)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if !article.PublishDate.Equal(*date(3)) {
		t.Errorf("Expected existing publish date to be kept, got %v", article.PublishDate)
	}

	if _, err := h.services.Article.UpdateStatus(context.Background(), "missing", models.ArticleStatusArchived); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	var invalid *service.InvalidInputError
	if _, err := h.services.Article.UpdateStatus(context.Background(), "draft", "deleted"); !errors.As(err, &invalid) {
		t.Errorf("Expected InvalidInputError, got %v", err)
	}
}

func TestArticleService_Stats(t *testing.T) {
	h := newTestHarness(t)
	seedArticle(h, "a1", "world", models.ArticleStatusDraft, nil)
	seedArticle(h, "a2", "world", models.ArticleStatusPublished, date(1))
	seedArticle(h, "a3", "world", models.ArticleStatusPublished, date(2))

	stats, err := h.services.Article.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("Expected total 3, got %d", stats.Total)
	}
	if stats.ByStatus[models.ArticleStatusPublished] != 2 {
		t.Errorf("Expected 2 published, got %d", stats.ByStatus[models.ArticleStatusPublished])
	}
}
