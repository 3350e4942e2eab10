package postgres

import (
	"context"

	"github.com/jsandoval/campusmap/internal/core/domain"
)

// CampusRepo implements ports.CampusRepository with pgx.
type CampusRepo struct {
	db *DB
}

// NewCampusRepo creates a new CampusRepo.
func NewCampusRepo(db *DB) *CampusRepo {
	return &CampusRepo{db: db}
}

// Create inserts a new campus.
func (r *CampusRepo) Create(ctx context.Context, c *domain.Campus) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO campuses (slug, name, center, active)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5)
		RETURNING id, created_at
	`, c.Slug, c.Name, c.Center.Lon, c.Center.Lat, c.Active).Scan(&c.ID, &c.CreatedAt)
}

// GetByID returns a campus by UUID.
func (r *CampusRepo) GetByID(ctx context.Context, id string) (*domain.Campus, error) {
	var c domain.Campus
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, slug, name,
		       ST_Y(center::geometry) as lat,
		       ST_X(center::geometry) as lon,
		       active, created_at
		FROM campuses WHERE id = $1
	`, id).Scan(&c.ID, &c.Slug, &c.Name, &c.Center.Lat, &c.Center.Lon, &c.Active, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetBySlug returns a campus by slug.
func (r *CampusRepo) GetBySlug(ctx context.Context, slug string) (*domain.Campus, error) {
	var c domain.Campus
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, slug, name,
		       ST_Y(center::geometry) as lat,
		       ST_X(center::geometry) as lon,
		       active, created_at
		FROM campuses WHERE slug = $1
	`, slug).Scan(&c.ID, &c.Slug, &c.Name, &c.Center.Lat, &c.Center.Lon, &c.Active, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all campuses ordered by name.
func (r *CampusRepo) List(ctx context.Context) ([]domain.Campus, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, slug, name,
		       ST_Y(center::geometry) as lat,
		       ST_X(center::geometry) as lon,
		       active, created_at
		FROM campuses ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campuses []domain.Campus
	for rows.Next() {
		var c domain.Campus
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Center.Lat, &c.Center.Lon, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		campuses = append(campuses, c)
	}
	return campuses, rows.Err()
}

// SetActive toggles the active flag.
func (r *CampusRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE campuses SET active = $2 WHERE id = $1`, id, active)
	return err
}
