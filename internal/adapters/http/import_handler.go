package http

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jsandoval/campusmap/internal/core/usecases"
)

// ImportHandler accepts a GeoJSON FeatureCollection upload and reconciles it
// against the campus. The file goes in a multipart form field named "file";
// a raw JSON body works too. The kind path segment picks the target entity
// type (building, open_space, poi, pathway, boundary).
func ImportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		campusID := campusIDFromParams(c, deps)
		kind := c.Params("kind")

		payload, err := readImportPayload(c, deps.MaxUploadBytes)
		if err != nil {
			if errors.Is(err, errTooLarge) {
				return errPayloadTooLarge(c, err.Error())
			}
			return errBadRequest(c, err.Error())
		}

		tally, err := deps.Imports.Import(c.UserContext(), campusID, kind, payload)
		if err != nil {
			switch {
			case errors.Is(err, usecases.ErrUnknownKind):
				return errBadRequest(c, err.Error())
			case errors.Is(err, usecases.ErrCampusNotFound):
				return errNotFound(c, err.Error())
			case errors.Is(err, usecases.ErrCampusInactive):
				return errConflict(c, err.Error())
			default:
				return errBadRequest(c, err.Error())
			}
		}

		return c.JSON(tally)
	}
}

var errTooLarge = errors.New("upload exceeds size limit")

// readImportPayload pulls the GeoJSON document from a multipart "file" field,
// falling back to the raw request body.
func readImportPayload(c *fiber.Ctx, maxBytes int64) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		// No multipart file — accept a raw JSON body.
		body := c.Body()
		if len(body) == 0 {
			return nil, errors.New("multipart field 'file' or a JSON body is required")
		}
		if maxBytes > 0 && int64(len(body)) > maxBytes {
			return nil, errTooLarge
		}
		return body, nil
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".json" && ext != ".geojson" {
		return nil, errors.New("file must be .json or .geojson")
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, errTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
