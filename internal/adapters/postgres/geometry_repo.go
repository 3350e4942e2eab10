package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/jsandoval/campusmap/internal/core/domain"
)

// PathwayRepo implements ports.PathwayRepository with pgx.
type PathwayRepo struct {
	db *DB
}

// NewPathwayRepo creates a new PathwayRepo.
func NewPathwayRepo(db *DB) *PathwayRepo {
	return &PathwayRepo{db: db}
}

// Create inserts a new pathway.
func (r *PathwayRepo) Create(ctx context.Context, p *domain.Pathway) error {
	gj, err := json.Marshal(p.Geometry)
	if err != nil {
		return fmt.Errorf("marshal geometry: %w", err)
	}
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO pathways (campus_id, name, geometry, path_type, active)
		VALUES ($1, $2, ST_SetSRID(ST_GeomFromGeoJSON($3), 4326), $4, $5)
		RETURNING id, created_at
	`, p.CampusID, p.Name, string(gj), p.PathType, p.Active).Scan(&p.ID, &p.CreatedAt)
}

// GetByID returns a pathway by UUID.
func (r *PathwayRepo) GetByID(ctx context.Context, id string) (*domain.Pathway, error) {
	var p domain.Pathway
	var geom string
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, campus_id, name, ST_AsGeoJSON(geometry), COALESCE(path_type, ''), active, created_at
		FROM pathways WHERE id = $1
	`, id).Scan(&p.ID, &p.CampusID, &p.Name, &geom, &p.PathType, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if p.Geometry, err = geojson.UnmarshalGeometry([]byte(geom)); err != nil {
		return nil, fmt.Errorf("unmarshal geometry: %w", err)
	}
	return &p, nil
}

// ListByCampus returns pathways for a campus ordered by name.
func (r *PathwayRepo) ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.Pathway, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, campus_id, name, ST_AsGeoJSON(geometry), COALESCE(path_type, ''), active, created_at
		FROM pathways
		WHERE campus_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name
	`, campusID, nameFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pathways []domain.Pathway
	for rows.Next() {
		var p domain.Pathway
		var geom string
		if err := rows.Scan(&p.ID, &p.CampusID, &p.Name, &geom, &p.PathType, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		if p.Geometry, err = geojson.UnmarshalGeometry([]byte(geom)); err != nil {
			return nil, fmt.Errorf("unmarshal geometry: %w", err)
		}
		pathways = append(pathways, p)
	}
	return pathways, rows.Err()
}

// ExistsByName reports whether a pathway with this name (case-insensitive)
// already exists in the campus.
func (r *PathwayRepo) ExistsByName(ctx context.Context, campusID, name string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pathways WHERE campus_id = $1 AND lower(name) = lower($2)
		)
	`, campusID, name).Scan(&exists)
	return exists, err
}

// SetActive toggles the active flag.
func (r *PathwayRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE pathways SET active = $2 WHERE id = $1`, id, active)
	return err
}

// Delete removes a pathway.
func (r *PathwayRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM pathways WHERE id = $1`, id)
	return err
}

// BoundaryRepo implements ports.BoundaryRepository with pgx.
type BoundaryRepo struct {
	db *DB
}

// NewBoundaryRepo creates a new BoundaryRepo.
func NewBoundaryRepo(db *DB) *BoundaryRepo {
	return &BoundaryRepo{db: db}
}

// Create inserts a new boundary.
func (r *BoundaryRepo) Create(ctx context.Context, b *domain.Boundary) error {
	gj, err := json.Marshal(b.Geometry)
	if err != nil {
		return fmt.Errorf("marshal geometry: %w", err)
	}
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO boundaries (campus_id, name, geometry, boundary_type, active)
		VALUES ($1, $2, ST_SetSRID(ST_GeomFromGeoJSON($3), 4326), $4, $5)
		RETURNING id, created_at
	`, b.CampusID, b.Name, string(gj), b.BoundaryType, b.Active).Scan(&b.ID, &b.CreatedAt)
}

// GetByID returns a boundary by UUID.
func (r *BoundaryRepo) GetByID(ctx context.Context, id string) (*domain.Boundary, error) {
	var b domain.Boundary
	var geom string
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, campus_id, name, ST_AsGeoJSON(geometry), COALESCE(boundary_type, ''), active, created_at
		FROM boundaries WHERE id = $1
	`, id).Scan(&b.ID, &b.CampusID, &b.Name, &geom, &b.BoundaryType, &b.Active, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if b.Geometry, err = geojson.UnmarshalGeometry([]byte(geom)); err != nil {
		return nil, fmt.Errorf("unmarshal geometry: %w", err)
	}
	return &b, nil
}

// ListByCampus returns boundaries for a campus ordered by name.
func (r *BoundaryRepo) ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.Boundary, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, campus_id, name, ST_AsGeoJSON(geometry), COALESCE(boundary_type, ''), active, created_at
		FROM boundaries
		WHERE campus_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name
	`, campusID, nameFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boundaries []domain.Boundary
	for rows.Next() {
		var b domain.Boundary
		var geom string
		if err := rows.Scan(&b.ID, &b.CampusID, &b.Name, &geom, &b.BoundaryType, &b.Active, &b.CreatedAt); err != nil {
			return nil, err
		}
		if b.Geometry, err = geojson.UnmarshalGeometry([]byte(geom)); err != nil {
			return nil, fmt.Errorf("unmarshal geometry: %w", err)
		}
		boundaries = append(boundaries, b)
	}
	return boundaries, rows.Err()
}

// ExistsByName reports whether a boundary with this name (case-insensitive)
// already exists in the campus.
func (r *BoundaryRepo) ExistsByName(ctx context.Context, campusID, name string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM boundaries WHERE campus_id = $1 AND lower(name) = lower($2)
		)
	`, campusID, name).Scan(&exists)
	return exists, err
}

// SetActive toggles the active flag.
func (r *BoundaryRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE boundaries SET active = $2 WHERE id = $1`, id, active)
	return err
}

// Delete removes a boundary.
func (r *BoundaryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM boundaries WHERE id = $1`, id)
	return err
}
