package benchmark

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/newsroom-web/internal/config"
	"github.com/newsroom-web/internal/mocks"
	"github.com/newsroom-web/internal/models"
	"github.com/newsroom-web/internal/service"
	"github.com/newsroom-web/internal/validation"
	"github.com/newsroom-web/internal/web"
	"github.com/newsroom-web/pkg/sessioncache"
	"github.com/rs/zerolog"
)

func articleID(i int) string {
	return fmt.Sprintf("550e8400-e29b-41d4-a716-%012d", i)
}

// BenchmarkStreamArticles benchmarks streaming export over the repository
func BenchmarkStreamArticles(b *testing.B) {
	mockRepo := mocks.NewMockArticleRepository()
	for i := 0; i < 1000; i++ {
		published := time.Now().Add(-time.Duration(i) * time.Minute)
		mockRepo.Create(context.Background(), &models.Article{
			ID:          articleID(i),
			Title:       fmt.Sprintf("Story %d", i),
			Category:    "world",
			Status:      models.ArticleStatusPublished,
			PublishDate: &published,
			Slug:        fmt.Sprintf("story-%d", i),
		})
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		count := 0
		mockRepo.StreamAll(context.Background(), func(article *models.Article) error {
			count++
			return nil
		})
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkImportNDJSON benchmarks the full import pipeline against mocks
func BenchmarkImportNDJSON(b *testing.B) {
	var buf bytes.Buffer
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&buf, `{"id":"%s","title":"Story %d","author":"Desk","category":"science","content":"%s","status":"published","publishDate":"2024-01-01T00:00:00Z"}`+"\n",
			articleID(i), i, strings.Repeat("word ", 300))
	}
	data := buf.Bytes()
	cfg := &config.Config{Site: config.SiteConfig{SectionSize: 4}}

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		repos, _, _, _ := mocks.NewMockRepositories()
		services := service.NewServices(repos, cfg, zerolog.Nop())
		services.Dashboard.ImportArticles(context.Background(), bytes.NewReader(data))
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkValidation benchmarks article record validation
func BenchmarkValidation(b *testing.B) {
	validator := validation.NewValidator()

	record := &models.ArticleNDJSON{
		ID:          "550e8400-e29b-41d4-a716-446655440000",
		Title:       "Rivers Rise After Storm",
		Author:      "Weather Desk",
		Category:    "world",
		Images:      []string{"https://cdn.example.com/river.jpg", "/img/map.png"},
		Status:      "published",
		PublishDate: "2024-01-01T00:00:00Z",
		Slug:        "rivers-rise-after-storm",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validator.ValidateArticleRecord(record)
	}
}

// BenchmarkRenderMarkdown benchmarks article body rendering and sanitizing
func BenchmarkRenderMarkdown(b *testing.B) {
	source := strings.Repeat("## Update\n\nWater levels **rose** overnight, see [the map](https://example.com).\n\n", 50)

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		web.RenderMarkdown(source)
	}
}

// BenchmarkSessionCacheHit benchmarks a fresh cache read
func BenchmarkSessionCacheHit(b *testing.B) {
	cache := sessioncache.New(sessioncache.NewMemoryStorage())
	fetch := func(ctx context.Context) ([]byte, error) {
		return []byte(`{"name":"Newsroom"}`), nil
	}
	cache.Fetch(context.Background(), "profile", fetch)

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			cache.Fetch(context.Background(), "profile", fetch)
		}
	})
}
