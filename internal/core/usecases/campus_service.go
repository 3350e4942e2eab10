package usecases

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/ports"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CampusService handles campus-related business logic.
type CampusService struct {
	campuses ports.CampusRepository
}

// NewCampusService creates a new CampusService.
func NewCampusService(campuses ports.CampusRepository) *CampusService {
	return &CampusService{campuses: campuses}
}

// List returns all campuses.
func (s *CampusService) List(ctx context.Context) ([]domain.Campus, error) {
	return s.campuses.List(ctx)
}

// GetBySlug returns a campus by slug.
func (s *CampusService) GetBySlug(ctx context.Context, slug string) (*domain.Campus, error) {
	return s.campuses.GetBySlug(ctx, slug)
}

// GetByID returns a campus by ID.
func (s *CampusService) GetByID(ctx context.Context, id string) (*domain.Campus, error) {
	return s.campuses.GetByID(ctx, id)
}

// Create validates and persists a new campus. New campuses start active.
func (s *CampusService) Create(ctx context.Context, campus *domain.Campus) error {
	campus.Name = strings.TrimSpace(campus.Name)
	campus.Slug = strings.TrimSpace(campus.Slug)
	if campus.Name == "" {
		return fmt.Errorf("campus name must not be empty")
	}
	if !slugPattern.MatchString(campus.Slug) {
		return fmt.Errorf("invalid slug %q (lowercase letters, digits and hyphens)", campus.Slug)
	}
	campus.Active = true
	return s.campuses.Create(ctx, campus)
}

// SetActive toggles the active flag on a campus.
func (s *CampusService) SetActive(ctx context.Context, id string, active bool) error {
	return s.campuses.SetActive(ctx, id, active)
}
