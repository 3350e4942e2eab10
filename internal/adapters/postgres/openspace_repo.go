package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/jsandoval/campusmap/internal/core/domain"
)

// OpenSpaceRepo implements ports.OpenSpaceRepository with pgx.
type OpenSpaceRepo struct {
	db *DB
}

// NewOpenSpaceRepo creates a new OpenSpaceRepo.
func NewOpenSpaceRepo(db *DB) *OpenSpaceRepo {
	return &OpenSpaceRepo{db: db}
}

// Create inserts a new open space.
func (r *OpenSpaceRepo) Create(ctx context.Context, s *domain.OpenSpace) error {
	gj, err := json.Marshal(s.Geometry)
	if err != nil {
		return fmt.Errorf("marshal geometry: %w", err)
	}
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO open_spaces (campus_id, name, geometry, space_type, capacity, active)
		VALUES ($1, $2, ST_SetSRID(ST_GeomFromGeoJSON($3), 4326), $4, $5, $6)
		RETURNING id, created_at
	`, s.CampusID, s.Name, string(gj), s.SpaceType, s.Capacity, s.Active).Scan(&s.ID, &s.CreatedAt)
}

// GetByID returns an open space by UUID.
func (r *OpenSpaceRepo) GetByID(ctx context.Context, id string) (*domain.OpenSpace, error) {
	var s domain.OpenSpace
	var geom string
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, campus_id, name, ST_AsGeoJSON(geometry), COALESCE(space_type, ''), capacity, active, created_at
		FROM open_spaces WHERE id = $1
	`, id).Scan(&s.ID, &s.CampusID, &s.Name, &geom, &s.SpaceType, &s.Capacity, &s.Active, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if s.Geometry, err = geojson.UnmarshalGeometry([]byte(geom)); err != nil {
		return nil, fmt.Errorf("unmarshal geometry: %w", err)
	}
	return &s, nil
}

// ListByCampus returns open spaces for a campus ordered by name.
func (r *OpenSpaceRepo) ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.OpenSpace, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, campus_id, name, ST_AsGeoJSON(geometry), COALESCE(space_type, ''), capacity, active, created_at
		FROM open_spaces
		WHERE campus_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name
	`, campusID, nameFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spaces []domain.OpenSpace
	for rows.Next() {
		var s domain.OpenSpace
		var geom string
		if err := rows.Scan(&s.ID, &s.CampusID, &s.Name, &geom, &s.SpaceType, &s.Capacity, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		if s.Geometry, err = geojson.UnmarshalGeometry([]byte(geom)); err != nil {
			return nil, fmt.Errorf("unmarshal geometry: %w", err)
		}
		spaces = append(spaces, s)
	}
	return spaces, rows.Err()
}

// ExistsByName reports whether an open space with this name (case-insensitive)
// already exists in the campus.
func (r *OpenSpaceRepo) ExistsByName(ctx context.Context, campusID, name string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM open_spaces WHERE campus_id = $1 AND lower(name) = lower($2)
		)
	`, campusID, name).Scan(&exists)
	return exists, err
}

// SetActive toggles the active flag.
func (r *OpenSpaceRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE open_spaces SET active = $2 WHERE id = $1`, id, active)
	return err
}

// Delete removes an open space.
func (r *OpenSpaceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM open_spaces WHERE id = $1`, id)
	return err
}
