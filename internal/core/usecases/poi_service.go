package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/ports"
	"github.com/jsandoval/campusmap/internal/pkg/metrics"
)

// POIService handles point-of-interest business logic.
type POIService struct {
	pois  ports.POIRepository
	cache ports.CacheService
}

// NewPOIService creates a new POIService.
func NewPOIService(pois ports.POIRepository, cache ports.CacheService) *POIService {
	return &POIService{pois: pois, cache: cache}
}

// ListByCampus returns POIs for a campus, optionally filtered by name.
func (s *POIService) ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.PointOfInterest, error) {
	return s.pois.ListByCampus(ctx, campusID, nameFilter)
}

// GetByID returns a single POI.
func (s *POIService) GetByID(ctx context.Context, id string) (*domain.PointOfInterest, error) {
	return s.pois.GetByID(ctx, id)
}

// FindNearby returns POIs within radiusMeters of the given point.
func (s *POIService) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.PointOfInterest, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("pois:nearby:%.4f:%.4f:%.0f:%d", lat, lon, radiusMeters, limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var pois []domain.PointOfInterest
			if err := json.Unmarshal(data, &pois); err == nil {
				metrics.CacheHits.WithLabelValues("pois_nearby").Inc()
				return pois, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("pois_nearby").Inc()
	}

	pois, err := s.pois.FindNearby(ctx, lat, lon, radiusMeters, limit)
	if err != nil {
		return nil, err
	}

	// POIs change rarely outside imports; 5 minutes is plenty.
	if s.cache != nil {
		if data, err := json.Marshal(pois); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return pois, nil
}

// Search performs name search across all campuses.
func (s *POIService) Search(ctx context.Context, query string, limit int) ([]domain.PointOfInterest, error) {
	if query == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.pois.Search(ctx, query, limit)
}

// Create validates and persists a new POI.
func (s *POIService) Create(ctx context.Context, p *domain.PointOfInterest) error {
	if p.Name == "" {
		return fmt.Errorf("poi name must not be empty")
	}
	if p.CampusID == "" {
		return fmt.Errorf("campus id must not be empty")
	}
	p.Active = true
	return s.pois.Create(ctx, p)
}

// SetActive toggles the active flag.
func (s *POIService) SetActive(ctx context.Context, id string, active bool) error {
	return s.pois.SetActive(ctx, id, active)
}

// Delete removes a POI.
func (s *POIService) Delete(ctx context.Context, id string) error {
	return s.pois.Delete(ctx, id)
}
