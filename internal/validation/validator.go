package validation

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/newsroom-web/internal/models"
)

var (
	slugRegex    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// Field length limits
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxImages            = 20
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator provides validation methods for article writes
type Validator struct {
	articleSlugCache map[string]bool
	articleIDCache   map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		articleSlugCache: make(map[string]bool),
		articleIDCache:   make(map[string]bool),
	}
}

// AddArticleSlug adds a slug to the uniqueness cache
func (v *Validator) AddArticleSlug(slug string) {
	v.articleSlugCache[slug] = true
}

// AddArticleID adds an article ID to the uniqueness cache
func (v *Validator) AddArticleID(id string) {
	v.articleIDCache[id] = true
}

// ValidateArticle validates a dashboard article payload
func (v *Validator) ValidateArticle(input *models.ArticleInput) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateText("title", input.Title, true, MaxTitleLength)...)
	errors = append(errors, validateText("author", input.Author, true, 0)...)
	errors = append(errors, validateCategory(input.Category)...)
	errors = append(errors, validateText("description", input.Description, false, MaxDescriptionLength)...)
	errors = append(errors, validateImages(input.Images)...)

	if input.Status != "" && !models.ValidStatuses[input.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: draft, published, archived",
			Value:   string(input.Status),
		})
	}

	if input.Slug != "" {
		errors = append(errors, v.validateSlug(input.Slug)...)
	}

	return errors
}

// ValidateArticleRecord validates an article record from NDJSON import
func (v *Validator) ValidateArticleRecord(article *models.ArticleNDJSON) []ValidationError {
	var errors []ValidationError

	// Validate ID
	if article.ID != "" {
		if !isValidUUID(article.ID) {
			errors = append(errors, ValidationError{Field: "id", Message: "invalid UUID format", Value: article.ID})
		} else if v.articleIDCache[article.ID] {
			errors = append(errors, ValidationError{Field: "id", Message: "duplicate id", Value: article.ID})
		}
	}

	errors = append(errors, validateText("title", article.Title, true, MaxTitleLength)...)
	errors = append(errors, validateText("author", article.Author, true, 0)...)
	errors = append(errors, validateCategory(article.Category)...)
	errors = append(errors, validateText("description", article.Description, false, MaxDescriptionLength)...)
	errors = append(errors, validateImages(article.Images)...)

	// Validate status
	if article.Status != "" && !models.ValidStatuses[models.ArticleStatus(article.Status)] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: draft, published, archived",
			Value:   article.Status,
		})
	}

	// Validate draft must not have publishDate
	if article.Status == string(models.ArticleStatusDraft) && article.PublishDate != "" {
		errors = append(errors, ValidationError{Field: "publishDate", Message: "draft articles must not have publishDate"})
	}

	// Validate publishDate format if present
	if article.PublishDate != "" {
		if _, err := time.Parse(time.RFC3339, article.PublishDate); err != nil {
			errors = append(errors, ValidationError{Field: "publishDate", Message: "invalid ISO 8601 date format", Value: article.PublishDate})
		}
	}

	if article.Slug != "" {
		errors = append(errors, v.validateSlug(article.Slug)...)
	}

	return errors
}

func (v *Validator) validateSlug(slug string) []ValidationError {
	if !slugRegex.MatchString(slug) {
		return []ValidationError{{Field: "slug", Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)", Value: slug}}
	}
	if v.articleSlugCache[slug] {
		return []ValidationError{{Field: "slug", Message: "duplicate slug", Value: slug}}
	}
	return nil
}

func validateText(field, value string, required bool, maxLen int) []ValidationError {
	trimmed := strings.TrimSpace(value)
	if required && trimmed == "" {
		return []ValidationError{{Field: field, Message: field + " is required"}}
	}
	if maxLen > 0 && len([]rune(trimmed)) > maxLen {
		return []ValidationError{{Field: field, Message: fmt.Sprintf("%s exceeds maximum of %d characters", field, maxLen)}}
	}
	return nil
}

func validateCategory(category string) []ValidationError {
	if category == "" {
		return []ValidationError{{Field: "category", Message: "category is required"}}
	}
	if _, ok := models.FindCategory(category); !ok {
		return []ValidationError{{Field: "category", Message: "unknown category", Value: category}}
	}
	return nil
}

func validateImages(images []string) []ValidationError {
	var errors []ValidationError
	if len(images) > MaxImages {
		errors = append(errors, ValidationError{Field: "images", Message: fmt.Sprintf("at most %d images are allowed", MaxImages)})
	}
	for i, image := range images {
		if !isValidImageURL(image) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("images[%d]", i),
				Message: "image must be an absolute http(s) URL or a site path",
				Value:   image,
			})
		}
	}
	return errors
}

func isValidImageURL(s string) bool {
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isValidUUID checks if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Slugify derives a kebab-case slug from a title
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// WordCount counts whitespace separated words
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// ReadTime formats the reading time for a word count, never less than one minute
func ReadTime(words int) string {
	minutes := int(math.Ceil(float64(words) / float64(models.WordsPerMinute)))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
