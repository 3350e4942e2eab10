package usecases

import (
	"context"
	"fmt"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/ports"
)

// OpenSpaceService handles open-space business logic.
type OpenSpaceService struct {
	spaces ports.OpenSpaceRepository
}

// NewOpenSpaceService creates a new OpenSpaceService.
func NewOpenSpaceService(spaces ports.OpenSpaceRepository) *OpenSpaceService {
	return &OpenSpaceService{spaces: spaces}
}

// ListByCampus returns open spaces for a campus, optionally filtered by name.
func (s *OpenSpaceService) ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.OpenSpace, error) {
	return s.spaces.ListByCampus(ctx, campusID, nameFilter)
}

// GetByID returns a single open space.
func (s *OpenSpaceService) GetByID(ctx context.Context, id string) (*domain.OpenSpace, error) {
	return s.spaces.GetByID(ctx, id)
}

// Create validates and persists a new open space.
func (s *OpenSpaceService) Create(ctx context.Context, sp *domain.OpenSpace) error {
	if sp.Name == "" {
		return fmt.Errorf("open space name must not be empty")
	}
	sp.Active = true
	return s.spaces.Create(ctx, sp)
}

// SetActive toggles the active flag.
func (s *OpenSpaceService) SetActive(ctx context.Context, id string, active bool) error {
	return s.spaces.SetActive(ctx, id, active)
}

// Delete removes an open space.
func (s *OpenSpaceService) Delete(ctx context.Context, id string) error {
	return s.spaces.Delete(ctx, id)
}

// PathwayService handles pathway business logic.
type PathwayService struct {
	pathways ports.PathwayRepository
}

// NewPathwayService creates a new PathwayService.
func NewPathwayService(pathways ports.PathwayRepository) *PathwayService {
	return &PathwayService{pathways: pathways}
}

// ListByCampus returns pathways for a campus, optionally filtered by name.
func (s *PathwayService) ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.Pathway, error) {
	return s.pathways.ListByCampus(ctx, campusID, nameFilter)
}

// GetByID returns a single pathway.
func (s *PathwayService) GetByID(ctx context.Context, id string) (*domain.Pathway, error) {
	return s.pathways.GetByID(ctx, id)
}

// Create validates and persists a new pathway.
func (s *PathwayService) Create(ctx context.Context, p *domain.Pathway) error {
	if p.Name == "" {
		return fmt.Errorf("pathway name must not be empty")
	}
	p.Active = true
	return s.pathways.Create(ctx, p)
}

// SetActive toggles the active flag.
func (s *PathwayService) SetActive(ctx context.Context, id string, active bool) error {
	return s.pathways.SetActive(ctx, id, active)
}

// Delete removes a pathway.
func (s *PathwayService) Delete(ctx context.Context, id string) error {
	return s.pathways.Delete(ctx, id)
}

// BoundaryService handles boundary business logic.
type BoundaryService struct {
	boundaries ports.BoundaryRepository
}

// NewBoundaryService creates a new BoundaryService.
func NewBoundaryService(boundaries ports.BoundaryRepository) *BoundaryService {
	return &BoundaryService{boundaries: boundaries}
}

// ListByCampus returns boundaries for a campus, optionally filtered by name.
func (s *BoundaryService) ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.Boundary, error) {
	return s.boundaries.ListByCampus(ctx, campusID, nameFilter)
}

// GetByID returns a single boundary.
func (s *BoundaryService) GetByID(ctx context.Context, id string) (*domain.Boundary, error) {
	return s.boundaries.GetByID(ctx, id)
}

// Create validates and persists a new boundary.
func (s *BoundaryService) Create(ctx context.Context, b *domain.Boundary) error {
	if b.Name == "" {
		return fmt.Errorf("boundary name must not be empty")
	}
	b.Active = true
	return s.boundaries.Create(ctx, b)
}

// SetActive toggles the active flag.
func (s *BoundaryService) SetActive(ctx context.Context, id string, active bool) error {
	return s.boundaries.SetActive(ctx, id, active)
}

// Delete removes a boundary.
func (s *BoundaryService) Delete(ctx context.Context, id string) error {
	return s.boundaries.Delete(ctx, id)
}
