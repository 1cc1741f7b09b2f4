package mocks

import (
	"context"
	"io"
	"net/http"

	"github.com/newsroom-web/internal/models"
	"github.com/newsroom-web/internal/service"
)

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	GetFunc          func(ctx context.Context, id string) (*models.Article, error)
	IncrementFunc    func(ctx context.Context, id string) (*models.WriteResult, error)
	ListFunc         func(ctx context.Context) ([]*models.Article, error)
	CreateFunc       func(ctx context.Context, input *models.ArticleInput) (*models.Article, error)
	UpdateFunc       func(ctx context.Context, id string, input *models.ArticleInput) (*models.Article, error)
	UpdateStatusFunc func(ctx context.Context, id string, status models.ArticleStatus) (*models.Article, error)
	Articles         map[string]*models.Article
	IncrementCalls   []string
}

// Verify interface compliance
var _ service.ArticleService = (*MockArticleService)(nil)

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{
		Articles:       make(map[string]*models.Article),
		IncrementCalls: make([]string, 0),
	}
}

func (m *MockArticleService) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return m.Articles[id], nil
}

func (m *MockArticleService) IncrementViews(ctx context.Context, id string) (*models.WriteResult, error) {
	m.IncrementCalls = append(m.IncrementCalls, id)
	if m.IncrementFunc != nil {
		return m.IncrementFunc(ctx, id)
	}
	result := &models.WriteResult{ID: id}
	if article, ok := m.Articles[id]; ok {
		article.Views++
		result.RowsAffected = 1
	}
	return result, nil
}

func (m *MockArticleService) ListForDashboard(ctx context.Context) ([]*models.Article, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	articles := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		articles = append(articles, a)
	}
	return articles, nil
}

func (m *MockArticleService) CreateArticle(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, input)
	}
	article := &models.Article{
		ID:       "test-article-id",
		Title:    input.Title,
		Author:   input.Author,
		Category: input.Category,
		Status:   models.ArticleStatusDraft,
		Images:   []string{},
	}
	m.Articles[article.ID] = article
	return article, nil
}

func (m *MockArticleService) UpdateArticle(ctx context.Context, id string, input *models.ArticleInput) (*models.Article, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, input)
	}
	return m.Articles[id], nil
}

func (m *MockArticleService) UpdateStatus(ctx context.Context, id string, status models.ArticleStatus) (*models.Article, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	article := m.Articles[id]
	if article != nil {
		article.Status = status
	}
	return article, nil
}

func (m *MockArticleService) Stats(ctx context.Context) (*models.ArticleStats, error) {
	stats := &models.ArticleStats{Total: len(m.Articles), ByStatus: make(map[models.ArticleStatus]int)}
	for _, a := range m.Articles {
		stats.ByStatus[a.Status]++
	}
	return stats, nil
}

// MockDashboardService is a mock implementation of DashboardService
type MockDashboardService struct {
	ImportFunc         func(ctx context.Context, r io.Reader) (*models.ImportResult, error)
	StreamArticlesFunc func(ctx context.Context, w http.ResponseWriter, format string) error
}

// Verify interface compliance
var _ service.DashboardService = (*MockDashboardService)(nil)

func NewMockDashboardService() *MockDashboardService {
	return &MockDashboardService{}
}

func (m *MockDashboardService) ImportArticles(ctx context.Context, r io.Reader) (*models.ImportResult, error) {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, r)
	}
	return &models.ImportResult{}, nil
}

func (m *MockDashboardService) StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error {
	if m.StreamArticlesFunc != nil {
		return m.StreamArticlesFunc(ctx, w, format)
	}
	return nil
}

// MockSiteService is a mock implementation of SiteService
type MockSiteService struct {
	HomeFunc     func(ctx context.Context) (*models.HomePage, error)
	CategoryFunc func(ctx context.Context, slug string) (*models.CategoryPage, error)
	ProfileData  *models.Profile
	ProfileError error
	Items        []*models.PortfolioItem
	PortfolioErr error
}

// Verify interface compliance
var _ service.SiteService = (*MockSiteService)(nil)

func NewMockSiteService() *MockSiteService {
	return &MockSiteService{Items: make([]*models.PortfolioItem, 0)}
}

func (m *MockSiteService) HomePage(ctx context.Context) (*models.HomePage, error) {
	if m.HomeFunc != nil {
		return m.HomeFunc(ctx)
	}
	return &models.HomePage{}, nil
}

func (m *MockSiteService) CategoryPage(ctx context.Context, slug string) (*models.CategoryPage, error) {
	if m.CategoryFunc != nil {
		return m.CategoryFunc(ctx, slug)
	}
	category, ok := models.FindCategory(slug)
	if !ok {
		return nil, nil
	}
	return &models.CategoryPage{Category: category, Articles: []*models.Article{}}, nil
}

func (m *MockSiteService) Profile(ctx context.Context) (*models.Profile, error) {
	return m.ProfileData, m.ProfileError
}

func (m *MockSiteService) Portfolio(ctx context.Context) ([]*models.PortfolioItem, error) {
	if m.PortfolioErr != nil {
		return nil, m.PortfolioErr
	}
	return m.Items, nil
}

// NewMockServices wires fresh service mocks into a Services value
func NewMockServices() (*service.Services, *MockArticleService, *MockDashboardService, *MockSiteService) {
	articles := NewMockArticleService()
	dashboard := NewMockDashboardService()
	site := NewMockSiteService()
	return &service.Services{
		Article:   articles,
		Dashboard: dashboard,
		Site:      site,
	}, articles, dashboard, site
}
