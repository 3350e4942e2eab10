package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/jsandoval/campusmap/internal/core/domain"
)

// BuildingRepo implements ports.BuildingRepository with pgx.
type BuildingRepo struct {
	db *DB
}

// NewBuildingRepo creates a new BuildingRepo.
func NewBuildingRepo(db *DB) *BuildingRepo {
	return &BuildingRepo{db: db}
}

// Create inserts a new building. The GeoJSON geometry is stored as PostGIS geometry.
func (r *BuildingRepo) Create(ctx context.Context, b *domain.Building) error {
	gj, err := json.Marshal(b.Geometry)
	if err != nil {
		return fmt.Errorf("marshal geometry: %w", err)
	}
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO buildings (campus_id, name, geometry, height, floors, active)
		VALUES ($1, $2, ST_SetSRID(ST_GeomFromGeoJSON($3), 4326), $4, $5, $6)
		RETURNING id, created_at
	`, b.CampusID, b.Name, string(gj), b.Height, b.Floors, b.Active).Scan(&b.ID, &b.CreatedAt)
}

// GetByID returns a building by UUID.
func (r *BuildingRepo) GetByID(ctx context.Context, id string) (*domain.Building, error) {
	var b domain.Building
	var geom string
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, campus_id, name, ST_AsGeoJSON(geometry), height, floors, active, created_at
		FROM buildings WHERE id = $1
	`, id).Scan(&b.ID, &b.CampusID, &b.Name, &geom, &b.Height, &b.Floors, &b.Active, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if b.Geometry, err = geojson.UnmarshalGeometry([]byte(geom)); err != nil {
		return nil, fmt.Errorf("unmarshal geometry: %w", err)
	}
	return &b, nil
}

// ListByCampus returns buildings for a campus ordered by name,
// optionally filtered by a case-insensitive name substring.
func (r *BuildingRepo) ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.Building, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, campus_id, name, ST_AsGeoJSON(geometry), height, floors, active, created_at
		FROM buildings
		WHERE campus_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name
	`, campusID, nameFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []domain.Building
	for rows.Next() {
		var b domain.Building
		var geom string
		if err := rows.Scan(&b.ID, &b.CampusID, &b.Name, &geom, &b.Height, &b.Floors, &b.Active, &b.CreatedAt); err != nil {
			return nil, err
		}
		if b.Geometry, err = geojson.UnmarshalGeometry([]byte(geom)); err != nil {
			return nil, fmt.Errorf("unmarshal geometry: %w", err)
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

// ExistsByName reports whether a building with this name (case-insensitive)
// already exists in the campus.
func (r *BuildingRepo) ExistsByName(ctx context.Context, campusID, name string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM buildings WHERE campus_id = $1 AND lower(name) = lower($2)
		)
	`, campusID, name).Scan(&exists)
	return exists, err
}

// SetActive toggles the active flag.
func (r *BuildingRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE buildings SET active = $2 WHERE id = $1`, id, active)
	return err
}

// Delete removes a building.
func (r *BuildingRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM buildings WHERE id = $1`, id)
	return err
}
