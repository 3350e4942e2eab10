package postgres

import (
	"context"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/pkg/geospatial"
)

// POIRepo implements ports.POIRepository with pgx. Locations are stored
// as geography points so ST_DWithin works in meters.
type POIRepo struct {
	db *DB
}

// NewPOIRepo creates a new POIRepo.
func NewPOIRepo(db *DB) *POIRepo {
	return &POIRepo{db: db}
}

// Create inserts a new point of interest.
func (r *POIRepo) Create(ctx context.Context, p *domain.PointOfInterest) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO points_of_interest (campus_id, name, location, category, description, active)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5, $6, $7)
		RETURNING id, created_at
	`, p.CampusID, p.Name, p.Location.Lon, p.Location.Lat, p.Category, p.Description, p.Active).Scan(&p.ID, &p.CreatedAt)
}

// GetByID returns a point of interest by UUID.
func (r *POIRepo) GetByID(ctx context.Context, id string) (*domain.PointOfInterest, error) {
	var p domain.PointOfInterest
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, campus_id, name,
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       COALESCE(category, ''), COALESCE(description, ''), active, created_at
		FROM points_of_interest WHERE id = $1
	`, id).Scan(&p.ID, &p.CampusID, &p.Name, &p.Location.Lat, &p.Location.Lon, &p.Category, &p.Description, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByCampus returns points of interest for a campus ordered by name.
func (r *POIRepo) ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.PointOfInterest, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, campus_id, name,
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       COALESCE(category, ''), COALESCE(description, ''), active, created_at
		FROM points_of_interest
		WHERE campus_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name
	`, campusID, nameFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPOIs(rows)
}

// ExistsByName reports whether a point of interest with this name
// (case-insensitive) already exists in the campus.
func (r *POIRepo) ExistsByName(ctx context.Context, campusID, name string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM points_of_interest WHERE campus_id = $1 AND lower(name) = lower($2)
		)
	`, campusID, name).Scan(&exists)
	return exists, err
}

// FindNearby returns active points of interest within radiusMeters of a
// location, closest first. A bounding-box prefilter lets the planner use
// the geometry index before the exact geography distance check.
func (r *POIRepo) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.PointOfInterest, error) {
	minLat, minLon, maxLat, maxLon := geospatial.BoundingBox(lat, lon, radiusMeters)
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, campus_id, name,
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       COALESCE(category, ''), COALESCE(description, ''), active, created_at,
		       ST_Distance(location, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography) as distance
		FROM points_of_interest
		WHERE active = true
		  AND location::geometry && ST_MakeEnvelope($4, $5, $6, $7, 4326)
		  AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
		ORDER BY distance
		LIMIT $8
	`, lat, lon, radiusMeters, minLon, minLat, maxLon, maxLat, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pois []domain.PointOfInterest
	for rows.Next() {
		var p domain.PointOfInterest
		var dist float64
		if err := rows.Scan(&p.ID, &p.CampusID, &p.Name, &p.Location.Lat, &p.Location.Lon,
			&p.Category, &p.Description, &p.Active, &p.CreatedAt, &dist); err != nil {
			return nil, err
		}
		p.Distance = &dist
		pois = append(pois, p)
	}
	return pois, rows.Err()
}

// Search finds active points of interest by name or category substring.
// pg_trgm similarity orders better matches first.
func (r *POIRepo) Search(ctx context.Context, query string, limit int) ([]domain.PointOfInterest, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, campus_id, name,
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       COALESCE(category, ''), COALESCE(description, ''), active, created_at
		FROM points_of_interest
		WHERE active = true
		  AND (name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%')
		ORDER BY similarity(name, $1) DESC, name
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPOIs(rows)
}

// SetActive toggles the active flag.
func (r *POIRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE points_of_interest SET active = $2 WHERE id = $1`, id, active)
	return err
}

// Delete removes a point of interest.
func (r *POIRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM points_of_interest WHERE id = $1`, id)
	return err
}

type poiRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanPOIs(rows poiRows) ([]domain.PointOfInterest, error) {
	var pois []domain.PointOfInterest
	for rows.Next() {
		var p domain.PointOfInterest
		if err := rows.Scan(&p.ID, &p.CampusID, &p.Name, &p.Location.Lat, &p.Location.Lon,
			&p.Category, &p.Description, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		pois = append(pois, p)
	}
	return pois, rows.Err()
}
