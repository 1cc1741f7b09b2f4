package models

import (
	"encoding/json"
	"time"
)

// PortfolioItem is a read-only showcase record
type PortfolioItem struct {
	ID          string   `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Category    string   `json:"category" db:"category"`
	Description string   `json:"description" db:"description"`
	Images      []string `json:"images" db:"images"`
}

// Profile is an opaque JSON document stored under a fixed name
type Profile struct {
	Name      string          `json:"-" db:"name"`
	Data      json.RawMessage `json:"data" db:"data"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// ProfileFields are the profile keys the about and contact pages show.
// Other keys stay in Data and are only served by the API.
type ProfileFields struct {
	Name    string            `json:"name"`
	Tagline string            `json:"tagline"`
	Bio     string            `json:"bio"`
	Email   string            `json:"email"`
	Social  map[string]string `json:"social"`
}

// Fields decodes the displayable profile keys
func (p *Profile) Fields() (ProfileFields, error) {
	var fields ProfileFields
	if p == nil || len(p.Data) == 0 {
		return fields, nil
	}
	err := json.Unmarshal(p.Data, &fields)
	return fields, err
}

// DefaultProfile is the name of the site profile document
const DefaultProfile = "main"

// Category is one of the fixed site sections
type Category struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Categories lists the site sections in navigation order
var Categories = []Category{
	{Slug: "world", Name: "World", Description: "Reporting from every continent."},
	{Slug: "politics", Name: "Politics", Description: "Elections, policy and the people in power."},
	{Slug: "business", Name: "Business", Description: "Markets, companies and the economy."},
	{Slug: "technology", Name: "Technology", Description: "The tools and platforms changing how we live."},
	{Slug: "science", Name: "Science", Description: "Discoveries, research and the natural world."},
	{Slug: "health", Name: "Health", Description: "Medicine, wellbeing and public health."},
	{Slug: "sports", Name: "Sports", Description: "Scores, transfers and the stories behind them."},
	{Slug: "entertainment", Name: "Entertainment", Description: "Film, music, television and culture."},
}

// FindCategory returns the category with the given slug
func FindCategory(slug string) (Category, bool) {
	for _, c := range Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}

// Section is one category block of the homepage
type Section struct {
	Category Category   `json:"category"`
	Articles []*Article `json:"articles"`
}

// HomePage is the data behind the homepage
type HomePage struct {
	Latest   []*Article `json:"latest"`
	Sections []Section  `json:"sections"`
}

// CategoryPage is the data behind a category page
type CategoryPage struct {
	Category Category   `json:"category"`
	Articles []*Article `json:"articles"`
}

// SitemapEntry is one URL of the sitemap
type SitemapEntry struct {
	URL             string    `json:"url"`
	LastModified    time.Time `json:"lastModified"`
	ChangeFrequency string    `json:"changeFrequency"`
	Priority        float64   `json:"priority"`
}
