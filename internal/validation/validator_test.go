package validation

import (
	"strings"
	"testing"

	"github.com/newsroom-web/internal/models"
)

func hasField(errors []ValidationError, field string) bool {
	for _, err := range errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

func TestValidateArticle(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		input      *models.ArticleInput
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid published article",
			input: &models.ArticleInput{
				Title:    "Parliament passes budget",
				Author:   "Jane Reporter",
				Category: "politics",
				Content:  "The budget passed late on Tuesday.",
				Images:   []string{"https://cdn.example.com/budget.jpg", "/static/img/vote.png"},
				Status:   models.ArticleStatusPublished,
			},
			wantErrors: 0,
		},
		{
			name: "missing required fields",
			input: &models.ArticleInput{
				Title:    "   ",
				Category: "",
			},
			wantErrors: 3,
			wantFields: []string{"title", "author", "category"},
		},
		{
			name: "unknown category",
			input: &models.ArticleInput{
				Title:    "A title",
				Author:   "Desk",
				Category: "gossip",
			},
			wantErrors: 1,
			wantFields: []string{"category"},
		},
		{
			name: "invalid status",
			input: &models.ArticleInput{
				Title:    "A title",
				Author:   "Desk",
				Category: "world",
				Status:   "deleted",
			},
			wantErrors: 1,
			wantFields: []string{"status"},
		},
		{
			name: "invalid slug - not kebab-case",
			input: &models.ArticleInput{
				Title:    "A title",
				Author:   "Desk",
				Category: "world",
				Slug:     "My_Title",
			},
			wantErrors: 1,
			wantFields: []string{"slug"},
		},
		{
			name: "bad image URLs",
			input: &models.ArticleInput{
				Title:    "A title",
				Author:   "Desk",
				Category: "world",
				Images:   []string{"javascript:alert(1)", "//evil.example.com/x.png", "https://ok.example.com/a.jpg"},
			},
			wantErrors: 2,
			wantFields: []string{"images[0]", "images[1]"},
		},
		{
			name: "title too long",
			input: &models.ArticleInput{
				Title:    strings.Repeat("a", MaxTitleLength+1),
				Author:   "Desk",
				Category: "world",
			},
			wantErrors: 1,
			wantFields: []string{"title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateArticle(tt.input)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateArticle() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
			for _, wantField := range tt.wantFields {
				if !hasField(errors, wantField) {
					t.Errorf("Expected error for field '%s' but not found", wantField)
				}
			}
		})
	}
}

func TestValidateArticleRecord(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		article    *models.ArticleNDJSON
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid published article",
			article: &models.ArticleNDJSON{
				ID:          "550e8400-e29b-41d4-a716-446655440000",
				Slug:        "my-first-article",
				Title:       "My First Article",
				Author:      "Desk",
				Category:    "technology",
				Content:     "This is the body content",
				Status:      "published",
				PublishDate: "2024-01-01T00:00:00Z",
			},
			wantErrors: 0,
		},
		{
			name: "id is optional",
			article: &models.ArticleNDJSON{
				Title:    "No id",
				Author:   "Desk",
				Category: "science",
				Status:   "archived",
			},
			wantErrors: 0,
		},
		{
			name: "invalid id",
			article: &models.ArticleNDJSON{
				ID:       "not-a-uuid",
				Title:    "Bad id",
				Author:   "Desk",
				Category: "science",
			},
			wantErrors: 1,
			wantFields: []string{"id"},
		},
		{
			name: "draft with publishDate - logical error",
			article: &models.ArticleNDJSON{
				Title:       "Draft",
				Author:      "Desk",
				Category:    "world",
				Status:      "draft",
				PublishDate: "2024-01-01T00:00:00Z",
			},
			wantErrors: 1,
			wantFields: []string{"publishDate"},
		},
		{
			name: "bad publishDate format",
			article: &models.ArticleNDJSON{
				Title:       "Dated",
				Author:      "Desk",
				Category:    "world",
				Status:      "published",
				PublishDate: "01/02/2024",
			},
			wantErrors: 1,
			wantFields: []string{"publishDate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateArticleRecord(tt.article)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateArticleRecord() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
			for _, wantField := range tt.wantFields {
				if !hasField(errors, wantField) {
					t.Errorf("Expected error for field '%s' but not found", wantField)
				}
			}
		})
	}
}

func TestDuplicateSlugAndIDDetection(t *testing.T) {
	validator := NewValidator()

	record := &models.ArticleNDJSON{
		ID:       "550e8400-e29b-41d4-a716-446655440000",
		Slug:     "same-slug",
		Title:    "First",
		Author:   "Desk",
		Category: "world",
	}

	if errs := validator.ValidateArticleRecord(record); len(errs) != 0 {
		t.Fatalf("First record should be valid, got %v", errs)
	}
	validator.AddArticleSlug(record.Slug)
	validator.AddArticleID(record.ID)

	errs := validator.ValidateArticleRecord(record)
	if !hasField(errs, "slug") || !hasField(errs, "id") {
		t.Errorf("Expected duplicate slug and id errors, got %v", errs)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Parliament Passes Budget":       "parliament-passes-budget",
		"  Markets: up 3% on Friday!  ": "markets-up-3-on-friday",
		"Already-kebab-case":             "already-kebab-case",
		"---":                            "",
	}

	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReadTime(t *testing.T) {
	tests := []struct {
		words int
		want  string
	}{
		{0, "1 min read"},
		{1, "1 min read"},
		{200, "1 min read"},
		{201, "2 min read"},
		{1000, "5 min read"},
	}

	for _, tt := range tests {
		if got := ReadTime(tt.words); got != tt.want {
			t.Errorf("ReadTime(%d) = %q, want %q", tt.words, got, tt.want)
		}
	}

	if got := WordCount("  one two\nthree\tfour "); got != 4 {
		t.Errorf("WordCount() = %d, want 4", got)
	}
}
