package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jsandoval/campusmap/internal/core/domain"
)

// ListUsersHandler returns all console accounts.
func ListUsersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := deps.Users.List(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(users)
	}
}

// CreateUserHandler registers a console account.
func CreateUserHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var u domain.User
		if err := c.BodyParser(&u); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Users.Create(c.Context(), &u); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(u)
	}
}

// GetUserHandler returns a console account by ID.
func GetUserHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := deps.Users.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return errNotFound(c, "user not found")
		}
		return c.JSON(u)
	}
}

// SetUserActiveHandler enables or disables an account.
func SetUserActiveHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var body struct {
			Active bool `json:"active"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Users.SetActive(c.Context(), id, body.Active); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"id": id, "active": body.Active})
	}
}

// ListRequestsHandler returns access requests filtered by status (default pending).
func ListRequestsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := c.Query("status", "pending")
		requests, err := deps.Requests.ListByStatus(c.Context(), status)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(requests)
	}
}

// CreateRequestHandler files a new access or reservation request.
func CreateRequestHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req domain.AccessRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Requests.Create(c.Context(), &req); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(req)
	}
}

type reviewBody struct {
	Reviewer string `json:"reviewer"`
	Note     string `json:"note"`
}

// ApproveRequestHandler approves a pending request.
func ApproveRequestHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body reviewBody
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Requests.Approve(c.Context(), c.Params("id"), body.Reviewer, body.Note); err != nil {
			return errConflict(c, err.Error())
		}
		return c.JSON(fiber.Map{"id": c.Params("id"), "status": "approved"})
	}
}

// RejectRequestHandler rejects a pending request.
func RejectRequestHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body reviewBody
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Requests.Reject(c.Context(), c.Params("id"), body.Reviewer, body.Note); err != nil {
			return errConflict(c, err.Error())
		}
		return c.JSON(fiber.Map{"id": c.Params("id"), "status": "rejected"})
	}
}
