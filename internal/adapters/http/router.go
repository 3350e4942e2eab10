package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/jsandoval/campusmap/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Legacy endpoints carry RFC 8594 deprecation headers
	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{Path: "/v1/places", SunsetDate: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), Alternative: "/v1/campuses/{id}/pois"},
	}))

	// Health & readiness (no timeout — fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1 — 15s per-request timeout
	v1 := app.Group("/v1")
	v1.Get("/campuses", timeout.NewWithContext(ListCampusesHandler(deps), 15*time.Second))
	v1.Post("/campuses", timeout.NewWithContext(CreateCampusHandler(deps), 15*time.Second))
	v1.Get("/campuses/:id", timeout.NewWithContext(GetCampusHandler(deps), 15*time.Second))
	v1.Patch("/campuses/:id/active", timeout.NewWithContext(SetCampusActiveHandler(deps), 15*time.Second))
	v1.Get("/campuses/:id/stats", timeout.NewWithContext(CampusStatsHandler(deps), 15*time.Second))

	// Buildings
	v1.Get("/campuses/:id/buildings", timeout.NewWithContext(CampusBuildingsHandler(deps), 15*time.Second))
	v1.Post("/campuses/:id/buildings", timeout.NewWithContext(CreateBuildingHandler(deps), 15*time.Second))
	v1.Get("/buildings/:id", timeout.NewWithContext(GetBuildingHandler(deps), 15*time.Second))
	v1.Patch("/buildings/:id/active", timeout.NewWithContext(SetBuildingActiveHandler(deps), 15*time.Second))
	v1.Delete("/buildings/:id", timeout.NewWithContext(DeleteBuildingHandler(deps), 15*time.Second))

	// Open spaces
	v1.Get("/campuses/:id/open-spaces", timeout.NewWithContext(CampusOpenSpacesHandler(deps), 15*time.Second))
	v1.Post("/campuses/:id/open-spaces", timeout.NewWithContext(CreateOpenSpaceHandler(deps), 15*time.Second))
	v1.Get("/open-spaces/:id", timeout.NewWithContext(GetOpenSpaceHandler(deps), 15*time.Second))
	v1.Patch("/open-spaces/:id/active", timeout.NewWithContext(SetOpenSpaceActiveHandler(deps), 15*time.Second))
	v1.Delete("/open-spaces/:id", timeout.NewWithContext(DeleteOpenSpaceHandler(deps), 15*time.Second))

	// Points of interest (nearby/search must come before :id)
	v1.Get("/pois/nearby", timeout.NewWithContext(NearbyPOIsHandler(deps), 15*time.Second))
	v1.Get("/pois/search", timeout.NewWithContext(SearchPOIsHandler(deps), 15*time.Second))
	v1.Get("/campuses/:id/pois", timeout.NewWithContext(CampusPOIsHandler(deps), 15*time.Second))
	v1.Post("/campuses/:id/pois", timeout.NewWithContext(CreatePOIHandler(deps), 15*time.Second))
	v1.Get("/pois/:id", timeout.NewWithContext(GetPOIHandler(deps), 15*time.Second))
	v1.Patch("/pois/:id/active", timeout.NewWithContext(SetPOIActiveHandler(deps), 15*time.Second))
	v1.Delete("/pois/:id", timeout.NewWithContext(DeletePOIHandler(deps), 15*time.Second))

	// Pathways
	v1.Get("/campuses/:id/pathways", timeout.NewWithContext(CampusPathwaysHandler(deps), 15*time.Second))
	v1.Post("/campuses/:id/pathways", timeout.NewWithContext(CreatePathwayHandler(deps), 15*time.Second))
	v1.Get("/pathways/:id", timeout.NewWithContext(GetPathwayHandler(deps), 15*time.Second))
	v1.Patch("/pathways/:id/active", timeout.NewWithContext(SetPathwayActiveHandler(deps), 15*time.Second))
	v1.Delete("/pathways/:id", timeout.NewWithContext(DeletePathwayHandler(deps), 15*time.Second))

	// Boundaries
	v1.Get("/campuses/:id/boundaries", timeout.NewWithContext(CampusBoundariesHandler(deps), 15*time.Second))
	v1.Post("/campuses/:id/boundaries", timeout.NewWithContext(CreateBoundaryHandler(deps), 15*time.Second))
	v1.Get("/boundaries/:id", timeout.NewWithContext(GetBoundaryHandler(deps), 15*time.Second))
	v1.Patch("/boundaries/:id/active", timeout.NewWithContext(SetBoundaryActiveHandler(deps), 15*time.Second))
	v1.Delete("/boundaries/:id", timeout.NewWithContext(DeleteBoundaryHandler(deps), 15*time.Second))

	// GeoJSON import — no timeout wrapper, large uploads take what they take
	v1.Post("/campuses/:id/import/:kind", ImportHandler(deps))

	// Map render settings
	v1.Get("/campuses/:id/settings", timeout.NewWithContext(GetSettingsHandler(deps), 15*time.Second))
	v1.Put("/campuses/:id/settings", timeout.NewWithContext(PutSettingsHandler(deps), 15*time.Second))

	// Console accounts & access requests
	v1.Get("/users", timeout.NewWithContext(ListUsersHandler(deps), 15*time.Second))
	v1.Post("/users", timeout.NewWithContext(CreateUserHandler(deps), 15*time.Second))
	v1.Get("/users/:id", timeout.NewWithContext(GetUserHandler(deps), 15*time.Second))
	v1.Patch("/users/:id/active", timeout.NewWithContext(SetUserActiveHandler(deps), 15*time.Second))
	v1.Get("/requests", timeout.NewWithContext(ListRequestsHandler(deps), 15*time.Second))
	v1.Post("/requests", timeout.NewWithContext(CreateRequestHandler(deps), 15*time.Second))
	v1.Post("/requests/:id/approve", timeout.NewWithContext(ApproveRequestHandler(deps), 15*time.Second))
	v1.Post("/requests/:id/reject", timeout.NewWithContext(RejectRequestHandler(deps), 15*time.Second))

	// Legacy places API (deprecated, see DeprecationMiddleware above)
	v1.Get("/places", timeout.NewWithContext(LegacyPlacesHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}

// LegacyPlacesHandler serves the pre-v1 "places" listing backed by points of
// interest. Kept alive for old map clients until the sunset date.
func LegacyPlacesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		campusID := c.Query("campus_id")
		if campusID == "" {
			return errBadRequest(c, "campus_id query parameter is required")
		}
		pois, err := deps.POIs.ListByCampus(c.Context(), campusID, c.Query("name"))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"places": pois, "count": len(pois)})
	}
}
