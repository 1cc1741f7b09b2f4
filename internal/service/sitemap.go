package service

import (
	"encoding/xml"
	"io"
	"strconv"
	"time"

	"github.com/newsroom-web/internal/models"
)

// Change frequencies used by the sitemap
const (
	ChangeDaily   = "daily"
	ChangeMonthly = "monthly"
)

var staticPages = []string{"/about", "/contact", "/portfolio"}

// Sitemap lists the fixed site URLs, each stamped with generatedAt
func Sitemap(baseURL string, generatedAt time.Time) []models.SitemapEntry {
	entries := make([]models.SitemapEntry, 0, 1+len(staticPages)+len(models.Categories))
	entries = append(entries, models.SitemapEntry{
		URL:             baseURL + "/",
		LastModified:    generatedAt,
		ChangeFrequency: ChangeDaily,
		Priority:        1.0,
	})
	for _, page := range staticPages {
		entries = append(entries, models.SitemapEntry{
			URL:             baseURL + page,
			LastModified:    generatedAt,
			ChangeFrequency: ChangeMonthly,
			Priority:        0.8,
		})
	}
	for _, category := range models.Categories {
		entries = append(entries, models.SitemapEntry{
			URL:             baseURL + "/category/" + category.Slug,
			LastModified:    generatedAt,
			ChangeFrequency: ChangeDaily,
			Priority:        0.9,
		})
	}
	return entries
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// WriteSitemapXML encodes entries in the sitemaps.org format
func WriteSitemapXML(w io.Writer, entries []models.SitemapEntry) error {
	set := xmlURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]xmlURL, 0, len(entries)),
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, xmlURL{
			Loc:        e.URL,
			LastMod:    e.LastModified.UTC().Format(time.RFC3339),
			ChangeFreq: e.ChangeFrequency,
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	return enc.Flush()
}

// RobotsTxt allows every crawler and points at the sitemap
func RobotsTxt(baseURL string) string {
	return "User-agent: *\nAllow: /\nDisallow: /dashboard\nDisallow: /api/\n\nSitemap: " + baseURL + "/sitemap.xml\n"
}
