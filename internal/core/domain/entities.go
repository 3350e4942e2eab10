package domain

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// Campus is the administrative scope every map entity belongs to.
// All duplicate checks during import are relative to one campus.
type Campus struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Center    GeoPoint  `json:"center"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Building is a campus building footprint (Polygon geometry).
type Building struct {
	ID        string            `json:"id"`
	CampusID  string            `json:"campus_id"`
	Name      string            `json:"name"`
	Geometry  *geojson.Geometry `json:"geometry,omitempty"`
	Height    float64           `json:"height,omitempty"`
	Floors    int               `json:"floors,omitempty"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"created_at"`
}

// OpenSpace is a lawn, plaza, sports field or similar area (Polygon geometry).
type OpenSpace struct {
	ID        string            `json:"id"`
	CampusID  string            `json:"campus_id"`
	Name      string            `json:"name"`
	Geometry  *geojson.Geometry `json:"geometry,omitempty"`
	SpaceType string            `json:"space_type,omitempty"`
	Capacity  int               `json:"capacity,omitempty"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"created_at"`
}

// PointOfInterest is a single-point map entity (entrance, ATM, cafeteria, ...).
type PointOfInterest struct {
	ID          string    `json:"id"`
	CampusID    string    `json:"campus_id"`
	Name        string    `json:"name"`
	Location    GeoPoint  `json:"location"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Distance    *float64  `json:"distance,omitempty"` // computed field
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Pathway is a walkway, road or bike path (LineString geometry).
type Pathway struct {
	ID        string            `json:"id"`
	CampusID  string            `json:"campus_id"`
	Name      string            `json:"name"`
	Geometry  *geojson.Geometry `json:"geometry,omitempty"`
	PathType  string            `json:"path_type,omitempty"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"created_at"`
}

// Boundary is a named administrative perimeter (Polygon or MultiPolygon).
type Boundary struct {
	ID           string            `json:"id"`
	CampusID     string            `json:"campus_id"`
	Name         string            `json:"name"`
	Geometry     *geojson.Geometry `json:"geometry,omitempty"`
	BoundaryType string            `json:"boundary_type,omitempty"`
	Active       bool              `json:"active"`
	CreatedAt    time.Time         `json:"created_at"`
}

// User is a console account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // admin | editor | viewer
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AccessRequest is a pending access or reservation request awaiting review.
type AccessRequest struct {
	ID             string     `json:"id"`
	CampusID       string     `json:"campus_id"`
	RequesterName  string     `json:"requester_name"`
	RequesterEmail string     `json:"requester_email"`
	Kind           string     `json:"kind"`   // access | reservation
	Status         string     `json:"status"` // pending | approved | rejected
	Note           string     `json:"note,omitempty"`
	ReviewedBy     string     `json:"reviewed_by,omitempty"`
	ReviewNote     string     `json:"review_note,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MapSettings holds per-campus rendering configuration for the map client.
type MapSettings struct {
	CampusID   string    `json:"campus_id"`
	Center     GeoPoint  `json:"center"`
	Zoom       float64   `json:"zoom"`
	Bearing    float64   `json:"bearing"`
	Pitch      float64   `json:"pitch"`
	Style      string    `json:"style"`
	ShowLabels bool      `json:"show_labels"`
	ShowPaths  bool      `json:"show_paths"`
	UpdatedAt  time.Time `json:"updated_at"`
}
