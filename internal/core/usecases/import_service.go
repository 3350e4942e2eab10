package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/ports"
	"github.com/jsandoval/campusmap/internal/pkg/metrics"
)

// Fatal pre-loop errors. Anything else that goes wrong during an import is
// recorded per feature in the tally and never aborts the run.
var (
	ErrUnknownKind    = errors.New("unknown entity kind")
	ErrCampusNotFound = errors.New("campus not found")
	ErrCampusInactive = errors.New("campus is not active")
)

// EntityAdapter is the per-kind plug-in the generic reconciler runs against.
// Extract turns one GeoJSON feature into a transient candidate, Exists is the
// read-only duplicate check scoped to a campus, Create attempts persistence
// exactly once.
type EntityAdapter interface {
	Kind() string
	Extract(f *geojson.Feature, campusID string) (*domain.Candidate, error)
	Exists(ctx context.Context, campusID, name string) (bool, error)
	Create(ctx context.Context, c *domain.Candidate) error
}

// ImportService reconciles uploaded GeoJSON FeatureCollections against the
// entities already persisted for a campus.
type ImportService struct {
	campuses ports.CampusRepository
	adapters map[string]EntityAdapter
	events   ports.EventPublisher
}

// NewImportService creates an ImportService with one adapter per entity kind.
// events may be nil; publishing is best effort and never affects the tally.
func NewImportService(campuses ports.CampusRepository, events ports.EventPublisher, adapters ...EntityAdapter) *ImportService {
	byKind := make(map[string]EntityAdapter, len(adapters))
	for _, a := range adapters {
		byKind[a.Kind()] = a
	}
	return &ImportService{campuses: campuses, adapters: byKind, events: events}
}

// Kinds returns the entity kinds this service can import, for request validation.
func (s *ImportService) Kinds() []string {
	kinds := make([]string, 0, len(s.adapters))
	for k := range s.adapters {
		kinds = append(kinds, k)
	}
	return kinds
}

// Import processes one uploaded FeatureCollection against a campus scope.
//
// Fatal preconditions (unknown kind, missing or inactive campus, payload that
// is not a FeatureCollection) abort before any feature is touched: no tally,
// zero entities created. Once the per-feature loop starts, every feature lands
// in exactly one tally bucket and the run always completes.
//
// Features are processed strictly in document order because a later feature's
// duplicate classification may depend on a name persisted earlier in the same
// run.
func (s *ImportService) Import(ctx context.Context, campusID, kind string, payload []byte) (*domain.ImportTally, error) {
	adapter, ok := s.adapters[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	campus, err := s.campuses.GetByID(ctx, campusID)
	if err != nil {
		metrics.ImportRuns.WithLabelValues(kind, "fatal").Inc()
		return nil, fmt.Errorf("%w: %s", ErrCampusNotFound, campusID)
	}
	if !campus.Active {
		metrics.ImportRuns.WithLabelValues(kind, "fatal").Inc()
		return nil, fmt.Errorf("%w: %s", ErrCampusInactive, campus.Slug)
	}

	fc, err := geojson.UnmarshalFeatureCollection(payload)
	if err != nil {
		metrics.ImportRuns.WithLabelValues(kind, "fatal").Inc()
		return nil, fmt.Errorf("parse feature collection: %w", err)
	}

	runID := uuid.NewString()
	start := time.Now()
	tally := &domain.ImportTally{}

	// Names already counted as present in this run, lowercased. Seeds the
	// duplicate check for same-name features inside one upload.
	seen := make(map[string]struct{})

	for i, f := range fc.Features {
		// A JSON null in the features array decodes to a nil *Feature.
		if f == nil {
			tally.AddError(bestEffortName(f, i), "invalid feature")
			continue
		}

		cand, err := adapter.Extract(f, campusID)
		if err != nil {
			tally.AddError(bestEffortName(f, i), err.Error())
			continue
		}

		key := strings.ToLower(cand.Name)
		if _, dup := seen[key]; dup {
			tally.AddDuplicate(cand.Name)
			continue
		}

		exists, err := adapter.Exists(ctx, campusID, cand.Name)
		if err != nil {
			tally.AddError(cand.Name, fmt.Sprintf("duplicate check: %v", err))
			continue
		}
		if exists {
			seen[key] = struct{}{}
			tally.AddDuplicate(cand.Name)
			continue
		}

		if err := adapter.Create(ctx, cand); err != nil {
			tally.AddError(cand.Name, err.Error())
			continue
		}
		seen[key] = struct{}{}
		tally.AddImported(cand.Name)
	}

	metrics.ImportRuns.WithLabelValues(kind, "ok").Inc()
	metrics.ImportFeatures.WithLabelValues(kind, "imported").Add(float64(tally.Imported))
	metrics.ImportFeatures.WithLabelValues(kind, "duplicate").Add(float64(tally.Duplicates))
	metrics.ImportFeatures.WithLabelValues(kind, "error").Add(float64(tally.Errors))
	metrics.ImportDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	slog.Info("import run complete",
		"run_id", runID,
		"campus", campus.Slug,
		"kind", kind,
		"total", tally.Total,
		"imported", tally.Imported,
		"duplicates", tally.Duplicates,
		"errors", tally.Errors,
	)

	if s.events != nil && tally.Imported > 0 {
		if err := s.events.PublishImportCompleted(ctx, campusID, kind, tally); err != nil {
			slog.Warn("publish import event", "run_id", runID, "error", err)
		}
	}

	return tally, nil
}

// bestEffortName pulls a display name out of a feature that failed extraction,
// falling back to the feature's position in the document.
func bestEffortName(f *geojson.Feature, index int) string {
	if f != nil {
		if name := strings.TrimSpace(f.Properties.MustString("name", "")); name != "" {
			return name
		}
		if title := strings.TrimSpace(f.Properties.MustString("title", "")); title != "" {
			return title
		}
	}
	return fmt.Sprintf("feature %d", index)
}
