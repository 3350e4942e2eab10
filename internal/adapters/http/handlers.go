package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jsandoval/campusmap/internal/core/domain"
)

// CampusStats holds row counts for a single campus.
type CampusStats struct {
	Buildings  int `json:"buildings"`
	OpenSpaces int `json:"open_spaces"`
	POIs       int `json:"pois"`
	Pathways   int `json:"pathways"`
	Boundaries int `json:"boundaries"`
}

// ListCampusesHandler returns all campuses.
func ListCampusesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		campuses, err := deps.Campuses.List(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}

		page, pg := paginate(c, campuses, 100, 200)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// GetCampusHandler returns a single campus by slug or UUID.
func GetCampusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("id")
		if key == "" {
			return errBadRequest(c, "campus id is required")
		}

		campus, err := deps.Campuses.GetBySlug(c.Context(), key)
		if err != nil {
			campus, err = deps.Campuses.GetByID(c.Context(), key)
		}
		if err != nil {
			return errNotFound(c, "campus not found")
		}
		return c.JSON(campus)
	}
}

// campusIDFromParams resolves the :id path segment, which accepts either a
// campus slug or a UUID, to the campus UUID. Unknown keys pass through
// unchanged so UUID lookups still apply downstream.
func campusIDFromParams(c *fiber.Ctx, deps *Dependencies) string {
	key := c.Params("id")
	if campus, err := deps.Campuses.GetBySlug(c.Context(), key); err == nil {
		return campus.ID
	}
	return key
}

// CreateCampusHandler registers a new campus.
func CreateCampusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var campus domain.Campus
		if err := c.BodyParser(&campus); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Campuses.Create(c.Context(), &campus); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(campus)
	}
}

// SetCampusActiveHandler toggles a campus on or off.
func SetCampusActiveHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := campusIDFromParams(c, deps)
		var body struct {
			Active bool `json:"active"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Campuses.SetActive(c.Context(), id, body.Active); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"id": id, "active": body.Active})
	}
}

// CampusStatsHandler returns entity counts for a campus.
func CampusStatsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := campusIDFromParams(c, deps)
		campus, err := deps.Campuses.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "campus not found")
		}

		if deps.DB == nil {
			return errInternal(c, "database not available")
		}

		var stats CampusStats
		row := deps.DB.Pool.QueryRow(c.Context(), `
			SELECT
				(SELECT count(*) FROM buildings WHERE campus_id = $1),
				(SELECT count(*) FROM open_spaces WHERE campus_id = $1),
				(SELECT count(*) FROM points_of_interest WHERE campus_id = $1),
				(SELECT count(*) FROM pathways WHERE campus_id = $1),
				(SELECT count(*) FROM boundaries WHERE campus_id = $1)
		`, campus.ID)
		if err := row.Scan(&stats.Buildings, &stats.OpenSpaces, &stats.POIs,
			&stats.Pathways, &stats.Boundaries); err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(fiber.Map{
			"campus": campus,
			"stats":  stats,
		})
	}
}

// CampusBuildingsHandler lists buildings for a campus.
func CampusBuildingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		campusID := campusIDFromParams(c, deps)
		buildings, err := deps.Buildings.ListByCampus(c.Context(), campusID, c.Query("name"))
		if err != nil {
			return errInternal(c, err.Error())
		}

		page, pg := paginate(c, buildings, 100, 500)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// CreateBuildingHandler adds a single building to a campus.
func CreateBuildingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var b domain.Building
		if err := c.BodyParser(&b); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		b.CampusID = campusIDFromParams(c, deps)

		if _, err := deps.Campuses.GetByID(c.Context(), b.CampusID); err != nil {
			return errNotFound(c, "campus not found")
		}
		if err := deps.Buildings.Create(c.Context(), &b); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(b)
	}
}

// GetBuildingHandler returns a building by ID.
func GetBuildingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		b, err := deps.Buildings.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return errNotFound(c, "building not found")
		}
		return c.JSON(b)
	}
}

// SetBuildingActiveHandler toggles a building on or off.
func SetBuildingActiveHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var body struct {
			Active bool `json:"active"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		b, err := deps.Buildings.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "building not found")
		}
		if err := deps.Buildings.SetActive(c.Context(), id, b.CampusID, body.Active); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"id": id, "active": body.Active})
	}
}

// DeleteBuildingHandler removes a building.
func DeleteBuildingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		b, err := deps.Buildings.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "building not found")
		}
		if err := deps.Buildings.Delete(c.Context(), id, b.CampusID); err != nil {
			return errInternal(c, err.Error())
		}
		return c.SendStatus(204)
	}
}

// CampusOpenSpacesHandler lists open spaces for a campus.
func CampusOpenSpacesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		spaces, err := deps.OpenSpaces.ListByCampus(c.Context(), campusIDFromParams(c, deps), c.Query("name"))
		if err != nil {
			return errInternal(c, err.Error())
		}

		page, pg := paginate(c, spaces, 100, 500)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// CreateOpenSpaceHandler adds a single open space to a campus.
func CreateOpenSpaceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sp domain.OpenSpace
		if err := c.BodyParser(&sp); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		sp.CampusID = campusIDFromParams(c, deps)

		if _, err := deps.Campuses.GetByID(c.Context(), sp.CampusID); err != nil {
			return errNotFound(c, "campus not found")
		}
		if err := deps.OpenSpaces.Create(c.Context(), &sp); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(sp)
	}
}

// GetOpenSpaceHandler returns an open space by ID.
func GetOpenSpaceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sp, err := deps.OpenSpaces.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return errNotFound(c, "open space not found")
		}
		return c.JSON(sp)
	}
}

// SetOpenSpaceActiveHandler toggles an open space on or off.
func SetOpenSpaceActiveHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var body struct {
			Active bool `json:"active"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.OpenSpaces.SetActive(c.Context(), id, body.Active); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"id": id, "active": body.Active})
	}
}

// DeleteOpenSpaceHandler removes an open space.
func DeleteOpenSpaceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.OpenSpaces.Delete(c.Context(), c.Params("id")); err != nil {
			return errInternal(c, err.Error())
		}
		return c.SendStatus(204)
	}
}

// CampusPOIsHandler lists points of interest for a campus.
func CampusPOIsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pois, err := deps.POIs.ListByCampus(c.Context(), campusIDFromParams(c, deps), c.Query("name"))
		if err != nil {
			return errInternal(c, err.Error())
		}

		page, pg := paginate(c, pois, 100, 500)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// CreatePOIHandler adds a single point of interest to a campus.
func CreatePOIHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p domain.PointOfInterest
		if err := c.BodyParser(&p); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		p.CampusID = campusIDFromParams(c, deps)

		if _, err := deps.Campuses.GetByID(c.Context(), p.CampusID); err != nil {
			return errNotFound(c, "campus not found")
		}
		if err := deps.POIs.Create(c.Context(), &p); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(p)
	}
}

// NearbyPOIsHandler returns points of interest within a radius of a point.
func NearbyPOIsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lon := c.QueryFloat("lon", 0)
		radius := c.QueryFloat("radius", 500)
		limit := c.QueryInt("limit", 20)

		if lat == 0 || lon == 0 {
			return errBadRequest(c, "lat and lon are required")
		}
		if radius <= 0 || radius > 10000 {
			return errBadRequest(c, "radius must be between 1 and 10000 meters")
		}

		pois, err := deps.POIs.FindNearby(c.Context(), lat, lon, radius, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(pois)
	}
}

// SearchPOIsHandler performs fuzzy search on POI names and categories.
func SearchPOIsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}

		pois, err := deps.POIs.Search(c.Context(), query, c.QueryInt("limit", 20))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(pois)
	}
}

// GetPOIHandler returns a point of interest by ID.
func GetPOIHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.POIs.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return errNotFound(c, "point of interest not found")
		}
		return c.JSON(p)
	}
}

// SetPOIActiveHandler toggles a point of interest on or off.
func SetPOIActiveHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var body struct {
			Active bool `json:"active"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.POIs.SetActive(c.Context(), id, body.Active); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"id": id, "active": body.Active})
	}
}

// DeletePOIHandler removes a point of interest.
func DeletePOIHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.POIs.Delete(c.Context(), c.Params("id")); err != nil {
			return errInternal(c, err.Error())
		}
		return c.SendStatus(204)
	}
}

// CampusPathwaysHandler lists pathways for a campus.
func CampusPathwaysHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pathways, err := deps.Pathways.ListByCampus(c.Context(), campusIDFromParams(c, deps), c.Query("name"))
		if err != nil {
			return errInternal(c, err.Error())
		}

		page, pg := paginate(c, pathways, 100, 500)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// CreatePathwayHandler adds a single pathway to a campus.
func CreatePathwayHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p domain.Pathway
		if err := c.BodyParser(&p); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		p.CampusID = campusIDFromParams(c, deps)

		if _, err := deps.Campuses.GetByID(c.Context(), p.CampusID); err != nil {
			return errNotFound(c, "campus not found")
		}
		if err := deps.Pathways.Create(c.Context(), &p); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(p)
	}
}

// GetPathwayHandler returns a pathway by ID.
func GetPathwayHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.Pathways.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return errNotFound(c, "pathway not found")
		}
		return c.JSON(p)
	}
}

// SetPathwayActiveHandler toggles a pathway on or off.
func SetPathwayActiveHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var body struct {
			Active bool `json:"active"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Pathways.SetActive(c.Context(), id, body.Active); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"id": id, "active": body.Active})
	}
}

// DeletePathwayHandler removes a pathway.
func DeletePathwayHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Pathways.Delete(c.Context(), c.Params("id")); err != nil {
			return errInternal(c, err.Error())
		}
		return c.SendStatus(204)
	}
}

// CampusBoundariesHandler lists boundaries for a campus.
func CampusBoundariesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		boundaries, err := deps.Boundaries.ListByCampus(c.Context(), campusIDFromParams(c, deps), c.Query("name"))
		if err != nil {
			return errInternal(c, err.Error())
		}

		page, pg := paginate(c, boundaries, 100, 500)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// CreateBoundaryHandler adds a single boundary to a campus.
func CreateBoundaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var b domain.Boundary
		if err := c.BodyParser(&b); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		b.CampusID = campusIDFromParams(c, deps)

		if _, err := deps.Campuses.GetByID(c.Context(), b.CampusID); err != nil {
			return errNotFound(c, "campus not found")
		}
		if err := deps.Boundaries.Create(c.Context(), &b); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(b)
	}
}

// GetBoundaryHandler returns a boundary by ID.
func GetBoundaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		b, err := deps.Boundaries.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return errNotFound(c, "boundary not found")
		}
		return c.JSON(b)
	}
}

// SetBoundaryActiveHandler toggles a boundary on or off.
func SetBoundaryActiveHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var body struct {
			Active bool `json:"active"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Boundaries.SetActive(c.Context(), id, body.Active); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"id": id, "active": body.Active})
	}
}

// DeleteBoundaryHandler removes a boundary.
func DeleteBoundaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Boundaries.Delete(c.Context(), c.Params("id")); err != nil {
			return errInternal(c, err.Error())
		}
		return c.SendStatus(204)
	}
}

// GetSettingsHandler returns the map render settings for a campus.
func GetSettingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		settings, err := deps.Settings.Get(c.Context(), campusIDFromParams(c, deps))
		if err != nil {
			return errNotFound(c, err.Error())
		}
		return c.JSON(settings)
	}
}

// PutSettingsHandler upserts the map render settings for a campus.
func PutSettingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var settings domain.MapSettings
		if err := c.BodyParser(&settings); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		settings.CampusID = campusIDFromParams(c, deps)

		if err := deps.Settings.Put(c.Context(), &settings); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(settings)
	}
}
