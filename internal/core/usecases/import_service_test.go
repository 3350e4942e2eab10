package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/usecases"
)

// ---- Mock repositories ----

type mockCampusRepo struct {
	getByIDFn func(ctx context.Context, id string) (*domain.Campus, error)
}

func (m *mockCampusRepo) Create(ctx context.Context, c *domain.Campus) error { return nil }
func (m *mockCampusRepo) GetByID(ctx context.Context, id string) (*domain.Campus, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, errors.New("no rows")
}
func (m *mockCampusRepo) GetBySlug(ctx context.Context, slug string) (*domain.Campus, error) {
	return nil, errors.New("no rows")
}
func (m *mockCampusRepo) List(ctx context.Context) ([]domain.Campus, error) { return nil, nil }
func (m *mockCampusRepo) SetActive(ctx context.Context, id string, a bool) error {
	return nil
}

// memBuildingRepo is an in-memory building store. ExistsByName is
// case-insensitive, mirroring the SQL lower(name) comparison.
type memBuildingRepo struct {
	names       map[string]bool
	createErr   error
	existsErr   error
	createCalls int
	existsCalls int
}

func newMemBuildingRepo() *memBuildingRepo {
	return &memBuildingRepo{names: make(map[string]bool)}
}

func (m *memBuildingRepo) Create(ctx context.Context, b *domain.Building) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	m.names[strings.ToLower(b.Name)] = true
	return nil
}
func (m *memBuildingRepo) GetByID(ctx context.Context, id string) (*domain.Building, error) {
	return nil, errors.New("no rows")
}
func (m *memBuildingRepo) ListByCampus(ctx context.Context, campusID, f string) ([]domain.Building, error) {
	return nil, nil
}
func (m *memBuildingRepo) ExistsByName(ctx context.Context, campusID, name string) (bool, error) {
	m.existsCalls++
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.names[strings.ToLower(name)], nil
}
func (m *memBuildingRepo) SetActive(ctx context.Context, id string, a bool) error { return nil }
func (m *memBuildingRepo) Delete(ctx context.Context, id string) error            { return nil }

// ---- Helpers ----

func activeCampusRepo() *mockCampusRepo {
	return &mockCampusRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Campus, error) {
			return &domain.Campus{ID: id, Slug: "north", Name: "North Campus", Active: true}, nil
		},
	}
}

const polygon = `{"type":"Polygon","coordinates":[[[-3.0,40.0],[-3.0,40.001],[-2.999,40.001],[-3.0,40.0]]]}`

func buildingFeature(name string) string {
	props := "{}"
	if name != "" {
		props = fmt.Sprintf(`{"name":%q}`, name)
	}
	return fmt.Sprintf(`{"type":"Feature","properties":%s,"geometry":%s}`, props, polygon)
}

func featureCollection(features ...string) []byte {
	return []byte(fmt.Sprintf(`{"type":"FeatureCollection","features":[%s]}`, strings.Join(features, ",")))
}

func newBuildingImport(campuses *mockCampusRepo, repo *memBuildingRepo) *usecases.ImportService {
	return usecases.NewImportService(campuses, nil, usecases.NewBuildingAdapter(repo))
}

// ---- Fatal preconditions ----

func TestImport_UnknownKind(t *testing.T) {
	repo := newMemBuildingRepo()
	svc := newBuildingImport(activeCampusRepo(), repo)

	tally, err := svc.Import(context.Background(), "c1", "volcano", featureCollection(buildingFeature("Library")))
	if !errors.Is(err, usecases.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if tally != nil {
		t.Fatal("expected nil tally on fatal error")
	}
	if repo.createCalls != 0 || repo.existsCalls != 0 {
		t.Fatal("no repository call should happen before validation passes")
	}
}

func TestImport_CampusNotFound(t *testing.T) {
	repo := newMemBuildingRepo()
	svc := newBuildingImport(&mockCampusRepo{}, repo)

	_, err := svc.Import(context.Background(), "missing", domain.KindBuilding, featureCollection(buildingFeature("Library")))
	if !errors.Is(err, usecases.ErrCampusNotFound) {
		t.Fatalf("expected ErrCampusNotFound, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatal("nothing may be persisted when the campus is missing")
	}
}

func TestImport_CampusInactive(t *testing.T) {
	campuses := &mockCampusRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Campus, error) {
			return &domain.Campus{ID: id, Slug: "old", Active: false}, nil
		},
	}
	repo := newMemBuildingRepo()
	svc := newBuildingImport(campuses, repo)

	_, err := svc.Import(context.Background(), "c1", domain.KindBuilding, featureCollection(buildingFeature("Library")))
	if !errors.Is(err, usecases.ErrCampusInactive) {
		t.Fatalf("expected ErrCampusInactive, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatal("nothing may be persisted against an inactive campus")
	}
}

func TestImport_MalformedPayload(t *testing.T) {
	repo := newMemBuildingRepo()
	svc := newBuildingImport(activeCampusRepo(), repo)

	_, err := svc.Import(context.Background(), "c1", domain.KindBuilding, []byte(`{"not":"geojson"`))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if repo.createCalls != 0 || repo.existsCalls != 0 {
		t.Fatal("a payload that fails to parse must not touch the store")
	}
}

// ---- Tally semantics ----

func TestImport_MixedOutcomes(t *testing.T) {
	repo := newMemBuildingRepo()
	repo.names["old hall"] = true

	svc := newBuildingImport(activeCampusRepo(), repo)

	payload := featureCollection(
		buildingFeature("Library"),
		buildingFeature("Old Hall"), // already persisted
		buildingFeature(""),         // missing name
	)

	tally, err := svc.Import(context.Background(), "c1", domain.KindBuilding, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tally.Total != 3 {
		t.Fatalf("total = %d, want 3", tally.Total)
	}
	if tally.Imported != 1 || tally.Duplicates != 1 || tally.Errors != 1 {
		t.Fatalf("buckets = %d/%d/%d, want 1/1/1", tally.Imported, tally.Duplicates, tally.Errors)
	}
	if tally.Imported+tally.Duplicates+tally.Errors != tally.Total {
		t.Fatal("buckets must partition the total")
	}

	if got := tally.Details.Imported; len(got) != 1 || got[0] != "Library" {
		t.Fatalf("imported details = %v", got)
	}
	if got := tally.Details.Duplicates; len(got) != 1 || got[0] != "Old Hall" {
		t.Fatalf("duplicate details = %v", got)
	}
	if got := tally.Details.Errors; len(got) != 1 || !strings.Contains(got[0].Error, "missing name") {
		t.Fatalf("error details = %v", got)
	}
}

func TestImport_DuplicateIsCaseInsensitive(t *testing.T) {
	repo := newMemBuildingRepo()
	repo.names["library"] = true

	svc := newBuildingImport(activeCampusRepo(), repo)

	tally, err := svc.Import(context.Background(), "c1", domain.KindBuilding,
		featureCollection(buildingFeature("LIBRARY")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tally.Duplicates != 1 || tally.Imported != 0 {
		t.Fatalf("case-variant name must count as duplicate, got %+v", tally)
	}
	if repo.createCalls != 0 {
		t.Fatal("duplicate must not be persisted")
	}
}

func TestImport_SameNameTwiceInOneUpload(t *testing.T) {
	repo := newMemBuildingRepo()
	svc := newBuildingImport(activeCampusRepo(), repo)

	tally, err := svc.Import(context.Background(), "c1", domain.KindBuilding,
		featureCollection(buildingFeature("Gym"), buildingFeature("gym")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tally.Imported != 1 || tally.Duplicates != 1 {
		t.Fatalf("second occurrence must be a duplicate, got %+v", tally)
	}
	if repo.createCalls != 1 {
		t.Fatalf("create calls = %d, want 1", repo.createCalls)
	}
}

func TestImport_Idempotent(t *testing.T) {
	repo := newMemBuildingRepo()
	svc := newBuildingImport(activeCampusRepo(), repo)

	payload := featureCollection(
		buildingFeature("Library"),
		buildingFeature("Gym"),
		buildingFeature("Aula Magna"),
	)

	first, err := svc.Import(context.Background(), "c1", domain.KindBuilding, payload)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Imported != 3 {
		t.Fatalf("first run imported = %d, want 3", first.Imported)
	}

	second, err := svc.Import(context.Background(), "c1", domain.KindBuilding, payload)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Imported != 0 || second.Duplicates != 3 {
		t.Fatalf("second run must import nothing, got %+v", second)
	}
}

func TestImport_CreateFailureIsRecoverable(t *testing.T) {
	repo := newMemBuildingRepo()
	repo.createErr = errors.New("disk full")

	svc := newBuildingImport(activeCampusRepo(), repo)

	tally, err := svc.Import(context.Background(), "c1", domain.KindBuilding,
		featureCollection(buildingFeature("Library"), buildingFeature("Gym")))
	if err != nil {
		t.Fatalf("persistence failures must not abort the run: %v", err)
	}
	if tally.Errors != 2 || tally.Total != 2 {
		t.Fatalf("both features should land in the error bucket, got %+v", tally)
	}
}

func TestImport_ExistsFailureIsRecoverable(t *testing.T) {
	repo := newMemBuildingRepo()
	repo.existsErr = errors.New("connection reset")

	svc := newBuildingImport(activeCampusRepo(), repo)

	tally, err := svc.Import(context.Background(), "c1", domain.KindBuilding,
		featureCollection(buildingFeature("Library")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tally.Errors != 1 {
		t.Fatalf("failed duplicate check should land in the error bucket, got %+v", tally)
	}
	if got := tally.Details.Errors[0].Error; !strings.Contains(got, "duplicate check") {
		t.Fatalf("error detail should mention the duplicate check, got %q", got)
	}
}

func TestImport_WrongGeometryType(t *testing.T) {
	repo := newMemBuildingRepo()
	svc := newBuildingImport(activeCampusRepo(), repo)

	point := `{"type":"Feature","properties":{"name":"Fountain"},"geometry":{"type":"Point","coordinates":[-3.0,40.0]}}`
	tally, err := svc.Import(context.Background(), "c1", domain.KindBuilding, featureCollection(point))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tally.Errors != 1 {
		t.Fatalf("point geometry is not a building footprint, got %+v", tally)
	}
	if got := tally.Details.Errors[0].Error; !strings.Contains(got, "unexpected geometry type") {
		t.Fatalf("error detail = %q", got)
	}
}

func TestImport_NullFeature(t *testing.T) {
	repo := newMemBuildingRepo()
	svc := newBuildingImport(activeCampusRepo(), repo)

	// A literal null in the features array decodes to a nil feature pointer.
	payload := featureCollection("null", buildingFeature("Library"))

	tally, err := svc.Import(context.Background(), "c1", domain.KindBuilding, payload)
	if err != nil {
		t.Fatalf("a null feature must not abort the run: %v", err)
	}
	if tally.Total != 2 || tally.Imported != 1 || tally.Errors != 1 {
		t.Fatalf("tally = %+v, want total 2, imported 1, errors 1", tally)
	}
	if got := tally.Details.Errors[0]; got.Name != "feature 0" || got.Error != "invalid feature" {
		t.Fatalf("error detail = %+v", got)
	}
}

func TestImport_DetailsPreserveDocumentOrder(t *testing.T) {
	repo := newMemBuildingRepo()
	svc := newBuildingImport(activeCampusRepo(), repo)

	payload := featureCollection(
		buildingFeature("Charlie"),
		buildingFeature("Alpha"),
		buildingFeature("Bravo"),
	)

	tally, err := svc.Import(context.Background(), "c1", domain.KindBuilding, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Charlie", "Alpha", "Bravo"}
	for i, name := range want {
		if tally.Details.Imported[i] != name {
			t.Fatalf("imported order = %v, want %v", tally.Details.Imported, want)
		}
	}
}

func TestImport_EmptyCollection(t *testing.T) {
	repo := newMemBuildingRepo()
	svc := newBuildingImport(activeCampusRepo(), repo)

	tally, err := svc.Import(context.Background(), "c1", domain.KindBuilding,
		[]byte(`{"type":"FeatureCollection","features":[]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tally.Total != 0 {
		t.Fatalf("empty collection must produce an empty tally, got %+v", tally)
	}
}

func TestImport_Kinds(t *testing.T) {
	svc := newBuildingImport(activeCampusRepo(), newMemBuildingRepo())
	kinds := svc.Kinds()
	if len(kinds) != 1 || kinds[0] != domain.KindBuilding {
		t.Fatalf("kinds = %v", kinds)
	}
}
