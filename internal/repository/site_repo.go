package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/newsroom-web/internal/database"
	"github.com/newsroom-web/internal/models"
)

// portfolioRepo is the concrete implementation of PortfolioRepository
type portfolioRepo struct {
	db *database.DB
}

// NewPortfolioRepo creates a new portfolio repository
func NewPortfolioRepo(db *database.DB) PortfolioRepository {
	return &portfolioRepo{db: db}
}

// List returns all portfolio items in display order
func (r *portfolioRepo) List(ctx context.Context) ([]*models.PortfolioItem, error) {
	query := `SELECT id, title, category, description, images FROM portfolio_items ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.PortfolioItem, 0)
	for rows.Next() {
		var item models.PortfolioItem
		var imagesRaw []byte
		if err := rows.Scan(&item.ID, &item.Title, &item.Category, &item.Description, &imagesRaw); err != nil {
			return nil, err
		}
		item.Images = decodeImages(imagesRaw)
		items = append(items, &item)
	}
	return items, rows.Err()
}

// profileRepo is the concrete implementation of ProfileRepository
type profileRepo struct {
	db *database.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *database.DB) ProfileRepository {
	return &profileRepo{db: db}
}

// Get retrieves a profile by name, returning nil when it does not exist
func (r *profileRepo) Get(ctx context.Context, name string) (*models.Profile, error) {
	query := r.db.Rebind(`SELECT name, data, updated_at FROM profiles WHERE name = ?`)

	var profile models.Profile
	var data []byte
	err := r.db.QueryRowContext(ctx, query, name).Scan(&profile.Name, &data, &profile.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	profile.Data = data
	profile.UpdatedAt = profile.UpdatedAt.UTC()
	return &profile, nil
}

// Put inserts or replaces a profile document
func (r *profileRepo) Put(ctx context.Context, profile *models.Profile) error {
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now()
	}
	query := r.db.Rebind(`
		INSERT INTO profiles (name, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`)
	_, err := r.db.ExecContext(ctx, query, profile.Name, string(profile.Data), storeTime(profile.UpdatedAt))
	return err
}
