package models

import (
	"time"
)

// ArticleStatus is the publication state of an article
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusArchived  ArticleStatus = "archived"
)

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[ArticleStatus]bool{
	ArticleStatusDraft:     true,
	ArticleStatusPublished: true,
	ArticleStatusArchived:  true,
}

// WordsPerMinute is the reading speed used for ReadTime
const WordsPerMinute = 200

// Article represents a news article document
type Article struct {
	ID          string        `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Author      string        `json:"author" db:"author"`
	Category    string        `json:"category" db:"category"`
	Description string        `json:"description" db:"description"`
	Content     string        `json:"content" db:"content"`
	Images      []string      `json:"images" db:"images"` // Stored as JSON in DB
	Status      ArticleStatus `json:"status" db:"status"`
	PublishDate *time.Time    `json:"publishDate,omitempty" db:"publish_date"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
	Slug        string        `json:"slug,omitempty" db:"slug"`
	ReadTime    string        `json:"readTime,omitempty" db:"read_time"`
	WordCount   int           `json:"wordCount,omitempty" db:"word_count"`
	Views       int64         `json:"views" db:"views"`
}

// CoverImage returns the first image, or "" when the article has none
func (a *Article) CoverImage() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0]
}

// WriteResult is the store acknowledgment for a single-document update
type WriteResult struct {
	ID           string    `json:"id"`
	RowsAffected int64     `json:"rowsAffected"`
	UpdateTime   time.Time `json:"updateTime"`
}

// ArticleInput is the dashboard payload for creating or replacing an article
type ArticleInput struct {
	Title       string        `json:"title" binding:"required"`
	Author      string        `json:"author" binding:"required"`
	Category    string        `json:"category" binding:"required"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	Images      []string      `json:"images" binding:"omitempty,dive,required"`
	Status      ArticleStatus `json:"status" binding:"omitempty,oneof=draft published archived"`
	PublishDate *time.Time    `json:"publishDate,omitempty"`
	Slug        string        `json:"slug,omitempty"`
}

// StatusUpdate is the dashboard payload for a status transition
type StatusUpdate struct {
	Status ArticleStatus `json:"status" binding:"required,oneof=draft published archived"`
}

// ArticleNDJSON represents an article record from NDJSON import
type ArticleNDJSON struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Images      []string `json:"images"`
	Status      string   `json:"status"`
	PublishDate string   `json:"publishDate,omitempty"`
	Slug        string   `json:"slug,omitempty"`
}

// ArticleStats is the article section of the metrics endpoint
type ArticleStats struct {
	Total    int                   `json:"total"`
	ByStatus map[ArticleStatus]int `json:"by_status"`
}
