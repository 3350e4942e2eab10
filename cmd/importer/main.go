package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync"

	natsadapter "github.com/jsandoval/campusmap/internal/adapters/nats"
	"github.com/jsandoval/campusmap/internal/adapters/postgres"
	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/ports"
	"github.com/jsandoval/campusmap/internal/core/usecases"
	"github.com/jsandoval/campusmap/internal/pkg/config"
	"github.com/jsandoval/campusmap/internal/pkg/geospatial"
)

// ---------------------------------------------------------------------------
// Manifest types
// ---------------------------------------------------------------------------

type Manifest struct {
	Source   string        `json:"source"`
	Campuses []CampusEntry `json:"campuses"`
}

type CampusEntry struct {
	Slug   string          `json:"slug"`
	Name   string          `json:"name"`
	Center domain.GeoPoint `json:"center"`

	// Files maps entity kind (building, open_space, poi, pathway, boundary)
	// to a GeoJSON FeatureCollection path.
	Files map[string]string `json:"files"`
}

// Kinds are imported in a fixed order so boundaries and pathways land after
// the buildings they reference on the map.
var kindOrder = []string{
	domain.KindBuilding,
	domain.KindOpenSpace,
	domain.KindPOI,
	domain.KindPathway,
	domain.KindBoundary,
}

// ---------------------------------------------------------------------------
// Main
// ---------------------------------------------------------------------------

func main() {
	cfg, err := config.Load("campusmap-importer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Load manifest
	manifestPath := "manifest.json"
	if len(os.Args) > 1 {
		manifestPath = os.Args[1]
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		log.Fatalf("read manifest: %v", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		log.Fatalf("parse manifest: %v", err)
	}

	log.Printf("CampusMap Importer — %d campuses from %s", len(manifest.Campuses), manifest.Source)

	// Filter campuses (optional CLI arg: slug list)
	slugFilter := map[string]bool{}
	if len(os.Args) > 2 {
		for _, s := range strings.Split(os.Args[2], ",") {
			slugFilter[strings.TrimSpace(s)] = true
		}
	}

	// Events are best effort; a dead broker never blocks a bulk import.
	var events ports.EventPublisher
	if pub, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		log.Printf("nats unavailable, import events disabled: %v", err)
	} else {
		events = pub
		defer pub.Close()
	}

	campusRepo := postgres.NewCampusRepo(db)
	importSvc := usecases.NewImportService(campusRepo, events,
		usecases.NewBuildingAdapter(postgres.NewBuildingRepo(db)),
		usecases.NewOpenSpaceAdapter(postgres.NewOpenSpaceRepo(db)),
		usecases.NewPOIAdapter(postgres.NewPOIRepo(db)),
		usecases.NewPathwayAdapter(postgres.NewPathwayRepo(db)),
		usecases.NewBoundaryAdapter(postgres.NewBoundaryRepo(db)),
	)

	var wg sync.WaitGroup
	sem := make(chan struct{}, 4) // max 4 campuses in flight

	for _, campus := range manifest.Campuses {
		if len(slugFilter) > 0 && !slugFilter[campus.Slug] {
			continue
		}

		wg.Add(1)
		go func(entry CampusEntry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := importCampus(ctx, campusRepo, importSvc, entry); err != nil {
				log.Printf("ERROR [%s]: %v", entry.Slug, err)
			}
		}(campus)
	}

	wg.Wait()
	log.Println("import complete")
}

// ---------------------------------------------------------------------------
// Per-campus import
// ---------------------------------------------------------------------------

func importCampus(ctx context.Context, campuses ports.CampusRepository, svc *usecases.ImportService, entry CampusEntry) error {
	campus, err := campuses.GetBySlug(ctx, entry.Slug)
	if err != nil {
		// First run for this campus — register it from the manifest.
		campus = &domain.Campus{
			Slug:   entry.Slug,
			Name:   entry.Name,
			Center: entry.Center,
			Active: true,
		}
		if err := campuses.Create(ctx, campus); err != nil {
			return err
		}
		log.Printf("[%s] campus registered", entry.Slug)
	} else {
		// A manifest pointing far away from the stored center usually means
		// the wrong slug; warn rather than refuse.
		dist := geospatial.Haversine(entry.Center.Lat, entry.Center.Lon, campus.Center.Lat, campus.Center.Lon)
		if dist > 2000 {
			log.Printf("WARN [%s] manifest center is %.0fm from stored campus center", entry.Slug, dist)
		}
	}

	for _, kind := range kindOrder {
		path, ok := entry.Files[kind]
		if !ok {
			continue
		}

		payload, err := os.ReadFile(path)
		if err != nil {
			log.Printf("ERROR [%s/%s] read %s: %v", entry.Slug, kind, path, err)
			continue
		}

		tally, err := svc.Import(ctx, campus.ID, kind, payload)
		if err != nil {
			log.Printf("ERROR [%s/%s]: %v", entry.Slug, kind, err)
			continue
		}

		log.Printf("[%s/%s] total=%d imported=%d duplicates=%d errors=%d",
			entry.Slug, kind, tally.Total, tally.Imported, tally.Duplicates, tally.Errors)
	}

	return nil
}
