package domain

import "github.com/paulmach/orb/geojson"

// EntityKind names the map entity kinds the import pipeline understands.
const (
	KindBuilding  = "building"
	KindOpenSpace = "open_space"
	KindPOI       = "poi"
	KindPathway   = "pathway"
	KindBoundary  = "boundary"
)

// Candidate is a feature extracted from GeoJSON, ready for the duplicate
// check and a single persistence attempt. It is never stored on its own.
type Candidate struct {
	Name       string
	CampusID   string
	Geometry   *geojson.Geometry
	Attributes map[string]any
}

// ImportErrorDetail records one failed feature inside a tally.
type ImportErrorDetail struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// ImportTallyDetails lists the names behind each tally bucket,
// in original feature order.
type ImportTallyDetails struct {
	Imported   []string            `json:"imported"`
	Duplicates []string            `json:"duplicates"`
	Errors     []ImportErrorDetail `json:"errors"`
}

// ImportTally is the result of one import run. Every feature in the
// uploaded collection lands in exactly one bucket.
type ImportTally struct {
	Total      int                `json:"total"`
	Imported   int                `json:"imported"`
	Duplicates int                `json:"duplicates"`
	Errors     int                `json:"errors"`
	Details    ImportTallyDetails `json:"details"`
}

// AddImported records a successfully persisted feature.
func (t *ImportTally) AddImported(name string) {
	t.Total++
	t.Imported++
	t.Details.Imported = append(t.Details.Imported, name)
}

// AddDuplicate records a feature skipped as an already-known name.
func (t *ImportTally) AddDuplicate(name string) {
	t.Total++
	t.Duplicates++
	t.Details.Duplicates = append(t.Details.Duplicates, name)
}

// AddError records a feature that failed extraction or persistence.
func (t *ImportTally) AddError(name, reason string) {
	t.Total++
	t.Errors++
	t.Details.Errors = append(t.Details.Errors, ImportErrorDetail{Name: name, Error: reason})
}
