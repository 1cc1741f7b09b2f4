package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/newsroom-web/internal/models"
	"github.com/newsroom-web/internal/repository"
)

// Verify interface compliance
var (
	_ repository.ArticleRepository   = (*MockArticleRepository)(nil)
	_ repository.PortfolioRepository = (*MockPortfolioRepository)(nil)
	_ repository.ProfileRepository   = (*MockProfileRepository)(nil)
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles         map[string]*models.Article
	SlugToArticle    map[string]*models.Article
	InsertError      error
	GetError         error
	ListError        error
	IncrementError   error
	InsertedCount    int
	BatchInsertFunc  func(ctx context.Context, articles []*models.Article) (int, error)
	BatchInsertCalls int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles:      make(map[string]*models.Article),
		SlugToArticle: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Articles[article.ID] = article
	if article.Slug != "" {
		m.SlugToArticle[article.Slug] = article
	}
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	if _, ok := m.Articles[article.ID]; !ok {
		return repository.ErrNotFound
	}
	m.Articles[article.ID] = article
	if article.Slug != "" {
		m.SlugToArticle[article.Slug] = article
	}
	return nil
}

func (m *MockArticleRepository) UpdateStatus(ctx context.Context, id string, status models.ArticleStatus, publishDate *time.Time) error {
	article, ok := m.Articles[id]
	if !ok {
		return repository.ErrNotFound
	}
	article.Status = status
	if publishDate != nil {
		article.PublishDate = publishDate
	}
	return nil
}

func (m *MockArticleRepository) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	m.BatchInsertCalls++
	if m.BatchInsertFunc != nil {
		return m.BatchInsertFunc(ctx, articles)
	}
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	inserted := 0
	for _, a := range articles {
		if _, exists := m.Articles[a.ID]; exists {
			continue
		}
		if _, exists := m.SlugToArticle[a.Slug]; exists && a.Slug != "" {
			continue
		}
		m.Articles[a.ID] = a
		if a.Slug != "" {
			m.SlugToArticle[a.Slug] = a
		}
		inserted++
	}
	m.InsertedCount += inserted
	return inserted, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Articles[id], nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	article, exists := m.SlugToArticle[slug]
	return exists && article.ID != excludeID, nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id string) (*models.WriteResult, error) {
	if m.IncrementError != nil {
		return nil, m.IncrementError
	}
	result := &models.WriteResult{ID: id, UpdateTime: time.Now().UTC()}
	if article, ok := m.Articles[id]; ok {
		article.Views++
		result.RowsAffected = 1
	}
	return result, nil
}

func (m *MockArticleRepository) ListByPublishDate(ctx context.Context) ([]*models.Article, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.sorted(func(*models.Article) bool { return true }), nil
}

func (m *MockArticleRepository) ListPublished(ctx context.Context, category string, limit int) ([]*models.Article, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	articles := m.sorted(func(a *models.Article) bool {
		return a.Status == models.ArticleStatusPublished && (category == "" || a.Category == category)
	})
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

func (m *MockArticleRepository) CountByStatus(ctx context.Context) (map[models.ArticleStatus]int, error) {
	counts := make(map[models.ArticleStatus]int)
	for _, a := range m.Articles {
		counts[a.Status]++
	}
	return counts, nil
}

func (m *MockArticleRepository) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	for _, article := range m.sorted(func(*models.Article) bool { return true }) {
		if err := callback(article); err != nil {
			return err
		}
	}
	return nil
}

// sorted orders by publish date descending with undated articles last
func (m *MockArticleRepository) sorted(keep func(*models.Article) bool) []*models.Article {
	articles := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		if keep(a) {
			articles = append(articles, a)
		}
	}
	sort.SliceStable(articles, func(i, j int) bool {
		pi, pj := articles[i].PublishDate, articles[j].PublishDate
		switch {
		case pi == nil && pj == nil:
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return pi.After(*pj)
		}
	})
	return articles
}

// MockPortfolioRepository is a mock implementation of PortfolioRepository
type MockPortfolioRepository struct {
	Items     []*models.PortfolioItem
	ListError error
}

func NewMockPortfolioRepository() *MockPortfolioRepository {
	return &MockPortfolioRepository{Items: make([]*models.PortfolioItem, 0)}
}

func (m *MockPortfolioRepository) List(ctx context.Context) ([]*models.PortfolioItem, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Items, nil
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	Profiles map[string]*models.Profile
	GetError error
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{Profiles: make(map[string]*models.Profile)}
}

func (m *MockProfileRepository) Get(ctx context.Context, name string) (*models.Profile, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Profiles[name], nil
}

func (m *MockProfileRepository) Put(ctx context.Context, profile *models.Profile) error {
	m.Profiles[profile.Name] = profile
	return nil
}

// NewMockRepositories wires fresh mocks into a Repositories value
func NewMockRepositories() (*repository.Repositories, *MockArticleRepository, *MockPortfolioRepository, *MockProfileRepository) {
	articles := NewMockArticleRepository()
	portfolio := NewMockPortfolioRepository()
	profiles := NewMockProfileRepository()
	return &repository.Repositories{
		Article:   articles,
		Portfolio: portfolio,
		Profile:   profiles,
	}, articles, portfolio, profiles
}
