package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/newsroom-web/internal/database"
	"github.com/newsroom-web/internal/models"
)

const articleColumns = `id, title, author, category, description, content, images, status,
	publish_date, slug, read_time, word_count, views, created_at, updated_at`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := r.db.Rebind(`
		INSERT INTO articles (` + articleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query, articleArgs(article)...)
	return err
}

// Update replaces the editable fields of an existing article
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	query := r.db.Rebind(`
		UPDATE articles SET
			title = ?, author = ?, category = ?, description = ?, content = ?, images = ?,
			status = ?, publish_date = ?, slug = ?, read_time = ?, word_count = ?, updated_at = ?
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		article.Title, article.Author, article.Category, article.Description, article.Content,
		imagesJSON(article.Images), string(article.Status), storeTimePtr(article.PublishDate),
		nullString(article.Slug), nullString(article.ReadTime), nullInt(article.WordCount),
		storeTime(article.UpdatedAt), article.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// UpdateStatus moves an article to a new status, setting publish_date when given
func (r *articleRepo) UpdateStatus(ctx context.Context, id string, status models.ArticleStatus, publishDate *time.Time) error {
	query := r.db.Rebind(`
		UPDATE articles SET status = ?, publish_date = COALESCE(?, publish_date), updated_at = ?
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query, string(status), storeTimePtr(publishDate), storeTime(time.Now()), id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// BatchInsert inserts multiple articles in one transaction, skipping rows that fail
func (r *articleRepo) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// ON CONFLICT keeps a duplicate id or slug from aborting the whole transaction
	stmt, err := tx.PrepareContext(ctx, r.db.Rebind(`
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, article := range articles {
		result, err := stmt.ExecContext(ctx, articleArgs(article)...)
		if err != nil {
			return 0, err
		}
		if n, _ := result.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return inserted, nil
}

// GetByID retrieves an article by ID, returning nil when it does not exist
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := r.db.Rebind(`SELECT ` + articleColumns + ` FROM articles WHERE id = ?`)

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// SlugExists checks if another article already uses the slug
func (r *articleRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	query := r.db.Rebind("SELECT EXISTS(SELECT 1 FROM articles WHERE slug = ? AND id <> ?)")
	err := r.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists)
	return exists, err
}

// IncrementViews atomically adds one to the view counter, creating it if absent.
// A missing article is not an error: the acknowledgment reports zero rows affected.
func (r *articleRepo) IncrementViews(ctx context.Context, id string) (*models.WriteResult, error) {
	query := r.db.Rebind(`UPDATE articles SET views = COALESCE(views, 0) + 1 WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	return &models.WriteResult{
		ID:           id,
		RowsAffected: rows,
		UpdateTime:   time.Now().UTC(),
	}, nil
}

// ListByPublishDate returns every article, newest publish date first
func (r *articleRepo) ListByPublishDate(ctx context.Context) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY publish_date DESC NULLS LAST, created_at DESC`
	return r.list(ctx, query)
}

// ListPublished returns published articles, optionally restricted to one category
func (r *articleRepo) ListPublished(ctx context.Context, category string, limit int) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE status = ?`
	args := []interface{}{string(models.ArticleStatusPublished)}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY publish_date DESC NULLS LAST, created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.list(ctx, r.db.Rebind(query), args...)
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// CountByStatus returns the number of articles per status
func (r *articleRepo) CountByStatus(ctx context.Context) (map[models.ArticleStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM articles GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.ArticleStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[models.ArticleStatus(status)] = n
	}
	return counts, rows.Err()
}

// StreamAll streams all articles for export
func (r *articleRepo) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return err
		}
		if err := callback(article); err != nil {
			return err
		}
	}

	return rows.Err()
}

func (r *articleRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var status string
	var imagesRaw []byte
	var publishDate sql.NullTime
	var slug, readTime sql.NullString
	var wordCount, views sql.NullInt64

	err := row.Scan(
		&article.ID, &article.Title, &article.Author, &article.Category, &article.Description,
		&article.Content, &imagesRaw, &status, &publishDate, &slug, &readTime, &wordCount,
		&views, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.Status = models.ArticleStatus(status)
	article.Images = decodeImages(imagesRaw)
	if publishDate.Valid {
		t := publishDate.Time.UTC()
		article.PublishDate = &t
	}
	article.CreatedAt = article.CreatedAt.UTC()
	article.UpdatedAt = article.UpdatedAt.UTC()
	article.Slug = slug.String
	article.ReadTime = readTime.String
	article.WordCount = int(wordCount.Int64)
	article.Views = views.Int64

	return &article, nil
}

func articleArgs(a *models.Article) []interface{} {
	return []interface{}{
		a.ID, a.Title, a.Author, a.Category, a.Description, a.Content,
		imagesJSON(a.Images), string(a.Status), storeTimePtr(a.PublishDate),
		nullString(a.Slug), nullString(a.ReadTime), nullInt(a.WordCount),
		a.Views, storeTime(a.CreatedAt), storeTime(a.UpdatedAt),
	}
}

func imagesJSON(images []string) string {
	if images == nil {
		return "[]"
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeImages(raw []byte) []string {
	images := make([]string, 0)
	if len(raw) > 0 {
		json.Unmarshal(raw, &images)
	}
	return images
}

func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// helper to convert empty string to NULL
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(n int) sql.NullInt64 {
	if n == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(n), Valid: true}
}
