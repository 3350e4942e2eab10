//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	handler "github.com/jsandoval/campusmap/internal/adapters/http"
	"github.com/jsandoval/campusmap/internal/adapters/postgres"
	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/usecases"
	"github.com/jsandoval/campusmap/internal/pkg/config"
)

// setupTestDB connects to the test database.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("campusmap-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	db := &postgres.DB{Pool: pool}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	return db
}

// setupTestDeps creates dependencies with real repos, no cache or broker.
func setupTestDeps(t *testing.T, db *postgres.DB) *handler.Dependencies {
	campusRepo := postgres.NewCampusRepo(db)
	buildingRepo := postgres.NewBuildingRepo(db)
	openSpaceRepo := postgres.NewOpenSpaceRepo(db)
	poiRepo := postgres.NewPOIRepo(db)
	pathwayRepo := postgres.NewPathwayRepo(db)
	boundaryRepo := postgres.NewBoundaryRepo(db)

	return &handler.Dependencies{
		Campuses:   usecases.NewCampusService(campusRepo),
		Buildings:  usecases.NewBuildingService(buildingRepo, nil, nil),
		OpenSpaces: usecases.NewOpenSpaceService(openSpaceRepo),
		POIs:       usecases.NewPOIService(poiRepo, nil),
		Pathways:   usecases.NewPathwayService(pathwayRepo),
		Boundaries: usecases.NewBoundaryService(boundaryRepo),
		Imports: usecases.NewImportService(campusRepo, nil,
			usecases.NewBuildingAdapter(buildingRepo),
			usecases.NewOpenSpaceAdapter(openSpaceRepo),
			usecases.NewPOIAdapter(poiRepo),
			usecases.NewPathwayAdapter(pathwayRepo),
			usecases.NewBoundaryAdapter(boundaryRepo)),
		Users:          usecases.NewUserService(postgres.NewUserRepo(db)),
		Requests:       usecases.NewRequestService(postgres.NewRequestRepo(db), campusRepo),
		Settings:       usecases.NewSettingsService(postgres.NewSettingsRepo(db), campusRepo),
		DB:             db,
		MaxUploadBytes: 1 << 20,
	}
}

// seedTestCampus inserts a test campus and returns its UUID.
func seedTestCampus(t *testing.T, db *postgres.DB, slug string) string {
	ctx := context.Background()
	var id string
	if err := db.Pool.QueryRow(ctx, `
		INSERT INTO campuses (slug, name, center, active)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint(-3.7038, 40.4168), 4326)::geography, true)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, slug, "Test Campus "+slug).Scan(&id); err != nil {
		t.Fatalf("seed campus: %v", err)
	}
	return id
}

// seedTestPOI inserts a test point of interest.
func seedTestPOI(t *testing.T, db *postgres.DB, campusID, name string) {
	ctx := context.Background()
	if _, err := db.Pool.Exec(ctx, `
		INSERT INTO points_of_interest (campus_id, name, location, category, active)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint(-3.7038, 40.4168), 4326)::geography, 'test', true)
	`, campusID, name); err != nil {
		t.Fatalf("seed poi: %v", err)
	}
}

func TestListCampuses_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	seedTestCampus(t, db, "test-north")
	seedTestCampus(t, db, "test-south")

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/campuses", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Campus     `json:"data"`
		Pagination struct{ Total int } `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Pagination.Total < 2 {
		t.Errorf("expected at least 2 campuses, got %d", result.Pagination.Total)
	}
}

func TestGetCampus_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	slug := "test-integ-" + time.Now().Format("20060102150405")
	seedTestCampus(t, db, slug)

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/campuses/"+slug, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var campus domain.Campus
	if err := json.NewDecoder(resp.Body).Decode(&campus); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if campus.Slug != slug {
		t.Errorf("expected slug %s, got %s", slug, campus.Slug)
	}
}

func TestNearbyPOIs_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	campusID := seedTestCampus(t, db, "test-spatial")
	seedTestPOI(t, db, campusID, "Test Fountain")

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/pois/nearby?lat=40.4168&lon=-3.7038&radius=5000", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var pois []domain.PointOfInterest
	if err := json.NewDecoder(resp.Body).Decode(&pois); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	found := false
	for _, p := range pois {
		if p.Name == "Test Fountain" {
			found = true
			if p.Distance == nil {
				t.Error("expected computed distance on nearby result")
			}
		}
	}
	if !found {
		t.Error("seeded POI not returned by nearby query")
	}
}

func TestImport_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	campusID := seedTestCampus(t, db, "test-import")

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	name := "Test Hall " + time.Now().Format("150405")
	payload := buildingCollection(name, name) // second feature is an in-run duplicate

	doImport := func() domain.ImportTally {
		req := httptest.NewRequest("POST", "/v1/campuses/"+campusID+"/import/building",
			strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var tally domain.ImportTally
		if err := json.NewDecoder(resp.Body).Decode(&tally); err != nil {
			t.Fatalf("decode tally: %v", err)
		}
		return tally
	}

	first := doImport()
	if first.Imported != 1 || first.Duplicates != 1 {
		t.Fatalf("first run: imported=%d duplicates=%d, want 1/1", first.Imported, first.Duplicates)
	}

	// Same file again: everything is a duplicate now.
	second := doImport()
	if second.Imported != 0 || second.Duplicates != 2 {
		t.Fatalf("second run: imported=%d duplicates=%d, want 0/2", second.Imported, second.Duplicates)
	}
}
