package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/ports"
)

// BuildingService handles building-related business logic.
type BuildingService struct {
	buildings ports.BuildingRepository
	cache     ports.CacheService
	events    ports.EventPublisher
}

// NewBuildingService creates a new BuildingService.
func NewBuildingService(buildings ports.BuildingRepository, cache ports.CacheService, events ports.EventPublisher) *BuildingService {
	return &BuildingService{buildings: buildings, cache: cache, events: events}
}

// ListByCampus returns buildings for a campus, optionally filtered by name.
func (s *BuildingService) ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.Building, error) {
	cacheKey := buildingListKey(campusID)
	if s.cache != nil && nameFilter == "" {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var buildings []domain.Building
			if err := json.Unmarshal(data, &buildings); err == nil {
				return buildings, nil
			}
		}
	}

	buildings, err := s.buildings.ListByCampus(ctx, campusID, nameFilter)
	if err != nil {
		return nil, err
	}

	// Cache unfiltered lists for 5 minutes; imports invalidate on completion.
	if s.cache != nil && nameFilter == "" {
		if data, err := json.Marshal(buildings); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return buildings, nil
}

// GetByID returns a single building.
func (s *BuildingService) GetByID(ctx context.Context, id string) (*domain.Building, error) {
	return s.buildings.GetByID(ctx, id)
}

// Create validates and persists a new building.
func (s *BuildingService) Create(ctx context.Context, b *domain.Building) error {
	if b.Name == "" {
		return fmt.Errorf("building name must not be empty")
	}
	if b.CampusID == "" {
		return fmt.Errorf("campus id must not be empty")
	}
	b.Active = true
	if err := s.buildings.Create(ctx, b); err != nil {
		return err
	}
	s.invalidate(ctx, b.CampusID)
	if s.events != nil {
		if err := s.events.PublishEntityCreated(ctx, domain.KindBuilding, b.CampusID, b.Name); err != nil {
			slog.Warn("publish building created", "name", b.Name, "error", err)
		}
	}
	return nil
}

// SetActive toggles the active flag.
func (s *BuildingService) SetActive(ctx context.Context, id, campusID string, active bool) error {
	if err := s.buildings.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.invalidate(ctx, campusID)
	return nil
}

// Delete removes a building.
func (s *BuildingService) Delete(ctx context.Context, id, campusID string) error {
	if err := s.buildings.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, campusID)
	return nil
}

// InvalidateCampus drops the cached building list for a campus. Event
// subscribers call this when another process creates buildings.
func (s *BuildingService) InvalidateCampus(ctx context.Context, campusID string) {
	s.invalidate(ctx, campusID)
}

func (s *BuildingService) invalidate(ctx context.Context, campusID string) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, buildingListKey(campusID))
	}
}

func buildingListKey(campusID string) string {
	return "buildings:campus:" + campusID
}
