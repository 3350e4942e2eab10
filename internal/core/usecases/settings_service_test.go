package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/usecases"
)

type mockSettingsRepo struct {
	stored *domain.MapSettings
}

func (m *mockSettingsRepo) Get(ctx context.Context, campusID string) (*domain.MapSettings, error) {
	if m.stored != nil && m.stored.CampusID == campusID {
		return m.stored, nil
	}
	return nil, errors.New("no rows")
}
func (m *mockSettingsRepo) Put(ctx context.Context, s *domain.MapSettings) error {
	m.stored = s
	return nil
}

func TestSettingsService_Get_Defaults(t *testing.T) {
	campuses := &mockCampusRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Campus, error) {
			return &domain.Campus{
				ID:     id,
				Slug:   "north",
				Name:   "North Campus",
				Center: domain.GeoPoint{Lat: 40.4168, Lon: -3.7038},
				Active: true,
			}, nil
		},
	}
	svc := usecases.NewSettingsService(&mockSettingsRepo{}, campuses)

	s, err := svc.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Zoom != 16 || s.Style != "default" || !s.ShowLabels || !s.ShowPaths {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.Center.Lat != 40.4168 || s.Center.Lon != -3.7038 {
		t.Fatalf("defaults not centered on campus: %+v", s.Center)
	}
}

func TestSettingsService_Get_Stored(t *testing.T) {
	repo := &mockSettingsRepo{stored: &domain.MapSettings{CampusID: "c1", Zoom: 18, Style: "satellite"}}
	svc := usecases.NewSettingsService(repo, activeCampusRepo())

	s, err := svc.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Zoom != 18 || s.Style != "satellite" {
		t.Fatalf("stored settings not returned: %+v", s)
	}
}

func TestSettingsService_Get_UnknownCampus(t *testing.T) {
	svc := usecases.NewSettingsService(&mockSettingsRepo{}, &mockCampusRepo{})

	if _, err := svc.Get(context.Background(), "ghost"); err == nil {
		t.Fatal("unknown campus should be rejected")
	}
}

func TestSettingsService_Put(t *testing.T) {
	repo := &mockSettingsRepo{}
	svc := usecases.NewSettingsService(repo, activeCampusRepo())

	s := &domain.MapSettings{CampusID: "c1", Zoom: 17, Pitch: 45}
	if err := svc.Put(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.stored == nil {
		t.Fatal("settings were not persisted")
	}
	if s.Style != "default" {
		t.Fatalf("empty style should fall back to default, got %q", s.Style)
	}
}

func TestSettingsService_Put_Validation(t *testing.T) {
	svc := usecases.NewSettingsService(&mockSettingsRepo{}, activeCampusRepo())

	cases := []struct {
		name     string
		settings domain.MapSettings
	}{
		{"zoom too low", domain.MapSettings{CampusID: "c1", Zoom: 0}},
		{"zoom too high", domain.MapSettings{CampusID: "c1", Zoom: 23}},
		{"pitch too high", domain.MapSettings{CampusID: "c1", Zoom: 16, Pitch: 90}},
		{"negative pitch", domain.MapSettings{CampusID: "c1", Zoom: 16, Pitch: -1}},
	}
	for _, tc := range cases {
		s := tc.settings
		if err := svc.Put(context.Background(), &s); err == nil {
			t.Fatalf("%s: should be rejected", tc.name)
		}
	}
}
