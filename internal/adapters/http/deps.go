package http

import (
	"github.com/nats-io/nats.go"

	"github.com/jsandoval/campusmap/internal/adapters/postgres"
	"github.com/jsandoval/campusmap/internal/adapters/valkey"
	"github.com/jsandoval/campusmap/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Campuses   *usecases.CampusService
	Buildings  *usecases.BuildingService
	OpenSpaces *usecases.OpenSpaceService
	POIs       *usecases.POIService
	Pathways   *usecases.PathwayService
	Boundaries *usecases.BoundaryService
	Imports    *usecases.ImportService
	Users      *usecases.UserService
	Requests   *usecases.RequestService
	Settings   *usecases.SettingsService
	NATS       *nats.Conn
	DB         *postgres.DB
	Cache      *valkey.Cache

	// MaxUploadBytes caps GeoJSON upload size on the import endpoint.
	MaxUploadBytes int64
}
