package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/ports"
)

// extractCommon validates the fields every kind shares: a non-empty name and
// a geometry of an accepted GeoJSON type.
func extractCommon(f *geojson.Feature, accepted ...string) (string, *geojson.Geometry, error) {
	name := strings.TrimSpace(f.Properties.MustString("name", ""))
	if name == "" {
		name = strings.TrimSpace(f.Properties.MustString("title", ""))
	}
	if name == "" {
		return "", nil, errors.New("missing name property")
	}
	if f.Geometry == nil {
		return "", nil, errors.New("missing geometry")
	}
	gt := f.Geometry.GeoJSONType()
	for _, a := range accepted {
		if gt == a {
			return name, geojson.NewGeometry(f.Geometry), nil
		}
	}
	return "", nil, fmt.Errorf("unexpected geometry type %s (want %s)", gt, strings.Join(accepted, " or "))
}

func attrFloat(c *domain.Candidate, key string) float64 {
	v, _ := c.Attributes[key].(float64)
	return v
}

func attrInt(c *domain.Candidate, key string) int {
	v, _ := c.Attributes[key].(int)
	return v
}

func attrString(c *domain.Candidate, key string) string {
	v, _ := c.Attributes[key].(string)
	return v
}

// BuildingAdapter imports building footprints.
type BuildingAdapter struct {
	repo ports.BuildingRepository
}

func NewBuildingAdapter(repo ports.BuildingRepository) *BuildingAdapter {
	return &BuildingAdapter{repo: repo}
}

func (a *BuildingAdapter) Kind() string { return domain.KindBuilding }

func (a *BuildingAdapter) Extract(f *geojson.Feature, campusID string) (*domain.Candidate, error) {
	name, geom, err := extractCommon(f, "Polygon", "MultiPolygon")
	if err != nil {
		return nil, err
	}
	return &domain.Candidate{
		Name:     name,
		CampusID: campusID,
		Geometry: geom,
		Attributes: map[string]any{
			"height": f.Properties.MustFloat64("height", 0),
			"floors": f.Properties.MustInt("floors", 0),
		},
	}, nil
}

func (a *BuildingAdapter) Exists(ctx context.Context, campusID, name string) (bool, error) {
	return a.repo.ExistsByName(ctx, campusID, name)
}

func (a *BuildingAdapter) Create(ctx context.Context, c *domain.Candidate) error {
	return a.repo.Create(ctx, &domain.Building{
		CampusID: c.CampusID,
		Name:     c.Name,
		Geometry: c.Geometry,
		Height:   attrFloat(c, "height"),
		Floors:   attrInt(c, "floors"),
		Active:   true,
	})
}

// OpenSpaceAdapter imports lawns, plazas and fields.
type OpenSpaceAdapter struct {
	repo ports.OpenSpaceRepository
}

func NewOpenSpaceAdapter(repo ports.OpenSpaceRepository) *OpenSpaceAdapter {
	return &OpenSpaceAdapter{repo: repo}
}

func (a *OpenSpaceAdapter) Kind() string { return domain.KindOpenSpace }

func (a *OpenSpaceAdapter) Extract(f *geojson.Feature, campusID string) (*domain.Candidate, error) {
	name, geom, err := extractCommon(f, "Polygon", "MultiPolygon")
	if err != nil {
		return nil, err
	}
	return &domain.Candidate{
		Name:     name,
		CampusID: campusID,
		Geometry: geom,
		Attributes: map[string]any{
			"space_type": f.Properties.MustString("openSpaceType", ""),
			"capacity":   f.Properties.MustInt("capacity", 0),
		},
	}, nil
}

func (a *OpenSpaceAdapter) Exists(ctx context.Context, campusID, name string) (bool, error) {
	return a.repo.ExistsByName(ctx, campusID, name)
}

func (a *OpenSpaceAdapter) Create(ctx context.Context, c *domain.Candidate) error {
	return a.repo.Create(ctx, &domain.OpenSpace{
		CampusID:  c.CampusID,
		Name:      c.Name,
		Geometry:  c.Geometry,
		SpaceType: attrString(c, "space_type"),
		Capacity:  attrInt(c, "capacity"),
		Active:    true,
	})
}

// POIAdapter imports points of interest.
type POIAdapter struct {
	repo ports.POIRepository
}

func NewPOIAdapter(repo ports.POIRepository) *POIAdapter {
	return &POIAdapter{repo: repo}
}

func (a *POIAdapter) Kind() string { return domain.KindPOI }

func (a *POIAdapter) Extract(f *geojson.Feature, campusID string) (*domain.Candidate, error) {
	name, geom, err := extractCommon(f, "Point")
	if err != nil {
		return nil, err
	}
	return &domain.Candidate{
		Name:     name,
		CampusID: campusID,
		Geometry: geom,
		Attributes: map[string]any{
			"category":    f.Properties.MustString("category", ""),
			"description": f.Properties.MustString("description", ""),
		},
	}, nil
}

func (a *POIAdapter) Exists(ctx context.Context, campusID, name string) (bool, error) {
	return a.repo.ExistsByName(ctx, campusID, name)
}

func (a *POIAdapter) Create(ctx context.Context, c *domain.Candidate) error {
	pt, ok := c.Geometry.Geometry().(orb.Point)
	if !ok {
		return errors.New("poi candidate geometry is not a point")
	}
	return a.repo.Create(ctx, &domain.PointOfInterest{
		CampusID:    c.CampusID,
		Name:        c.Name,
		Location:    domain.GeoPoint{Lat: pt.Lat(), Lon: pt.Lon()},
		Category:    attrString(c, "category"),
		Description: attrString(c, "description"),
		Active:      true,
	})
}

// PathwayAdapter imports walkways, roads and bike paths.
type PathwayAdapter struct {
	repo ports.PathwayRepository
}

func NewPathwayAdapter(repo ports.PathwayRepository) *PathwayAdapter {
	return &PathwayAdapter{repo: repo}
}

func (a *PathwayAdapter) Kind() string { return domain.KindPathway }

func (a *PathwayAdapter) Extract(f *geojson.Feature, campusID string) (*domain.Candidate, error) {
	name, geom, err := extractCommon(f, "LineString", "MultiLineString")
	if err != nil {
		return nil, err
	}
	return &domain.Candidate{
		Name:     name,
		CampusID: campusID,
		Geometry: geom,
		Attributes: map[string]any{
			"path_type": f.Properties.MustString("pathType", ""),
		},
	}, nil
}

func (a *PathwayAdapter) Exists(ctx context.Context, campusID, name string) (bool, error) {
	return a.repo.ExistsByName(ctx, campusID, name)
}

func (a *PathwayAdapter) Create(ctx context.Context, c *domain.Candidate) error {
	return a.repo.Create(ctx, &domain.Pathway{
		CampusID: c.CampusID,
		Name:     c.Name,
		Geometry: c.Geometry,
		PathType: attrString(c, "path_type"),
		Active:   true,
	})
}

// BoundaryAdapter imports administrative perimeters.
type BoundaryAdapter struct {
	repo ports.BoundaryRepository
}

func NewBoundaryAdapter(repo ports.BoundaryRepository) *BoundaryAdapter {
	return &BoundaryAdapter{repo: repo}
}

func (a *BoundaryAdapter) Kind() string { return domain.KindBoundary }

func (a *BoundaryAdapter) Extract(f *geojson.Feature, campusID string) (*domain.Candidate, error) {
	name, geom, err := extractCommon(f, "Polygon", "MultiPolygon")
	if err != nil {
		return nil, err
	}
	return &domain.Candidate{
		Name:     name,
		CampusID: campusID,
		Geometry: geom,
		Attributes: map[string]any{
			"boundary_type": f.Properties.MustString("boundaryType", ""),
		},
	}, nil
}

func (a *BoundaryAdapter) Exists(ctx context.Context, campusID, name string) (bool, error) {
	return a.repo.ExistsByName(ctx, campusID, name)
}

func (a *BoundaryAdapter) Create(ctx context.Context, c *domain.Candidate) error {
	return a.repo.Create(ctx, &domain.Boundary{
		CampusID:     c.CampusID,
		Name:         c.Name,
		Geometry:     c.Geometry,
		BoundaryType: attrString(c, "boundary_type"),
		Active:       true,
	})
}
