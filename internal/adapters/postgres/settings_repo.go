package postgres

import (
	"context"

	"github.com/jsandoval/campusmap/internal/core/domain"
)

// SettingsRepo implements ports.SettingsRepository with pgx.
// Each campus has at most one settings row.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the map settings for a campus, or pgx.ErrNoRows when unset.
func (r *SettingsRepo) Get(ctx context.Context, campusID string) (*domain.MapSettings, error) {
	var s domain.MapSettings
	err := r.db.Pool.QueryRow(ctx, `
		SELECT campus_id,
		       ST_Y(center::geometry) as lat,
		       ST_X(center::geometry) as lon,
		       zoom, bearing, pitch, style, show_labels, show_paths, updated_at
		FROM map_settings WHERE campus_id = $1
	`, campusID).Scan(&s.CampusID, &s.Center.Lat, &s.Center.Lon, &s.Zoom, &s.Bearing,
		&s.Pitch, &s.Style, &s.ShowLabels, &s.ShowPaths, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Put upserts the map settings for a campus.
func (r *SettingsRepo) Put(ctx context.Context, s *domain.MapSettings) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO map_settings (campus_id, center, zoom, bearing, pitch, style, show_labels, show_paths, updated_at)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (campus_id) DO UPDATE SET
			center = EXCLUDED.center,
			zoom = EXCLUDED.zoom,
			bearing = EXCLUDED.bearing,
			pitch = EXCLUDED.pitch,
			style = EXCLUDED.style,
			show_labels = EXCLUDED.show_labels,
			show_paths = EXCLUDED.show_paths,
			updated_at = now()
		RETURNING updated_at
	`, s.CampusID, s.Center.Lon, s.Center.Lat, s.Zoom, s.Bearing, s.Pitch, s.Style, s.ShowLabels, s.ShowPaths).Scan(&s.UpdatedAt)
}
