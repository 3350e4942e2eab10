package usecases_test

import (
	"context"
	"testing"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/usecases"
)

type captureCampusRepo struct {
	mockCampusRepo
	created *domain.Campus
}

func (c *captureCampusRepo) Create(ctx context.Context, campus *domain.Campus) error {
	c.created = campus
	return nil
}

func TestCampusService_Create(t *testing.T) {
	repo := &captureCampusRepo{}
	svc := usecases.NewCampusService(repo)

	campus := &domain.Campus{Slug: "north-campus", Name: "  North Campus  ", Active: false}
	if err := svc.Create(context.Background(), campus); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created == nil {
		t.Fatal("campus was not persisted")
	}
	if campus.Name != "North Campus" {
		t.Fatalf("name not trimmed: %q", campus.Name)
	}
	if !campus.Active {
		t.Fatal("new campuses must start active")
	}
}

func TestCampusService_Create_InvalidSlug(t *testing.T) {
	svc := usecases.NewCampusService(&captureCampusRepo{})

	for _, slug := range []string{"", "North", "north_campus", "-north", "north-", "north campus"} {
		err := svc.Create(context.Background(), &domain.Campus{Slug: slug, Name: "North"})
		if err == nil {
			t.Fatalf("slug %q should be rejected", slug)
		}
	}
}

func TestCampusService_Create_EmptyName(t *testing.T) {
	svc := usecases.NewCampusService(&captureCampusRepo{})

	err := svc.Create(context.Background(), &domain.Campus{Slug: "north", Name: "   "})
	if err == nil {
		t.Fatal("empty name should be rejected")
	}
}
