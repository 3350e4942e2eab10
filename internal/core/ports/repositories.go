package ports

import (
	"context"

	"github.com/jsandoval/campusmap/internal/core/domain"
)

// CampusRepository persists campuses.
type CampusRepository interface {
	Create(ctx context.Context, campus *domain.Campus) error
	GetByID(ctx context.Context, id string) (*domain.Campus, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Campus, error)
	List(ctx context.Context) ([]domain.Campus, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// BuildingRepository persists buildings.
type BuildingRepository interface {
	Create(ctx context.Context, b *domain.Building) error
	GetByID(ctx context.Context, id string) (*domain.Building, error)
	ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.Building, error)
	ExistsByName(ctx context.Context, campusID, name string) (bool, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// OpenSpaceRepository persists open spaces.
type OpenSpaceRepository interface {
	Create(ctx context.Context, s *domain.OpenSpace) error
	GetByID(ctx context.Context, id string) (*domain.OpenSpace, error)
	ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.OpenSpace, error)
	ExistsByName(ctx context.Context, campusID, name string) (bool, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// POIRepository persists points of interest.
type POIRepository interface {
	Create(ctx context.Context, p *domain.PointOfInterest) error
	GetByID(ctx context.Context, id string) (*domain.PointOfInterest, error)
	ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.PointOfInterest, error)
	ExistsByName(ctx context.Context, campusID, name string) (bool, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.PointOfInterest, error)
	Search(ctx context.Context, query string, limit int) ([]domain.PointOfInterest, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// PathwayRepository persists pathways.
type PathwayRepository interface {
	Create(ctx context.Context, p *domain.Pathway) error
	GetByID(ctx context.Context, id string) (*domain.Pathway, error)
	ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.Pathway, error)
	ExistsByName(ctx context.Context, campusID, name string) (bool, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// BoundaryRepository persists boundaries.
type BoundaryRepository interface {
	Create(ctx context.Context, b *domain.Boundary) error
	GetByID(ctx context.Context, id string) (*domain.Boundary, error)
	ListByCampus(ctx context.Context, campusID, nameFilter string) ([]domain.Boundary, error)
	ExistsByName(ctx context.Context, campusID, name string) (bool, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// UserRepository persists console accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// AccessRequestRepository persists access/reservation requests.
type AccessRequestRepository interface {
	Create(ctx context.Context, r *domain.AccessRequest) error
	GetByID(ctx context.Context, id string) (*domain.AccessRequest, error)
	ListByStatus(ctx context.Context, status string) ([]domain.AccessRequest, error)
	Review(ctx context.Context, id, status, reviewer, note string) error
}

// SettingsRepository persists per-campus map render settings.
type SettingsRepository interface {
	Get(ctx context.Context, campusID string) (*domain.MapSettings, error)
	Put(ctx context.Context, s *domain.MapSettings) error
}
