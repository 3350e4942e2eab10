package usecases

import (
	"context"
	"fmt"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/ports"
)

// SettingsService handles per-campus map render settings.
type SettingsService struct {
	settings ports.SettingsRepository
	campuses ports.CampusRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settings ports.SettingsRepository, campuses ports.CampusRepository) *SettingsService {
	return &SettingsService{settings: settings, campuses: campuses}
}

// Get returns the settings for a campus, falling back to defaults centered on
// the campus itself when nothing has been saved yet.
func (s *SettingsService) Get(ctx context.Context, campusID string) (*domain.MapSettings, error) {
	campus, err := s.campuses.GetByID(ctx, campusID)
	if err != nil {
		return nil, fmt.Errorf("campus %s not found", campusID)
	}

	settings, err := s.settings.Get(ctx, campusID)
	if err == nil {
		return settings, nil
	}

	return &domain.MapSettings{
		CampusID:   campusID,
		Center:     campus.Center,
		Zoom:       16,
		Style:      "default",
		ShowLabels: true,
		ShowPaths:  true,
	}, nil
}

// Put validates and saves settings for a campus.
func (s *SettingsService) Put(ctx context.Context, settings *domain.MapSettings) error {
	if _, err := s.campuses.GetByID(ctx, settings.CampusID); err != nil {
		return fmt.Errorf("campus %s not found", settings.CampusID)
	}
	if settings.Zoom < 1 || settings.Zoom > 22 {
		return fmt.Errorf("zoom must be between 1 and 22, got %g", settings.Zoom)
	}
	if settings.Pitch < 0 || settings.Pitch > 85 {
		return fmt.Errorf("pitch must be between 0 and 85, got %g", settings.Pitch)
	}
	if settings.Style == "" {
		settings.Style = "default"
	}
	return s.settings.Put(ctx, settings)
}
