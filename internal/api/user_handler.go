package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"colvote.com/internal/api/middleware"
	"colvote.com/internal/domain"
	"colvote.com/internal/model"
)

// UserHandler serves electoral-roll management.
type UserHandler struct {
	users domain.UserService
}

func NewUserHandler(users domain.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers returns a page of the roll. Admin-only by policy.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 50)

	users, total, err := h.users.ListUsers(c.UserContext(), page, pageSize)
	if err != nil {
		return sendError(c, err)
	}
	return SendPaginatedResponse(c, users, page, pageSize, total)
}

// GetUser returns one user. Voters may only read their own record.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id := idParam(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	if !selfOrAdmin(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission denied"})
	}

	user, err := h.users.GetUser(c.UserContext(), id)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(user)
}

type UpdateUserRequest struct {
	Name      *string     `json:"name,omitempty"`
	Email     *string     `json:"email,omitempty"`
	BirthDate *string     `json:"birthDate,omitempty"`
	Password  *string     `json:"password,omitempty"`
	Role      *model.Role `json:"role,omitempty"`
}

// UpdateUser applies a partial update. Voters may only update themselves, and
// only an admin token can change a role.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id := idParam(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	if !selfOrAdmin(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission denied"})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	claims := middleware.ClaimsFromCtx(c)
	asAdmin := claims != nil && claims.Role == model.RoleAdmin

	user, err := h.users.UpdateUser(c.UserContext(), id, domain.UserUpdate{
		Name:      req.Name,
		Email:     req.Email,
		BirthDate: req.BirthDate,
		Password:  req.Password,
		Role:      req.Role,
	}, asAdmin)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser removes a user. Admin-only by policy.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id := idParam(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	if err := h.users.DeleteUser(c.UserContext(), id); err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "user deleted"})
}

// idParam parses a positive integer route parameter; 0 means invalid.
func idParam(c *fiber.Ctx, name string) uint {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// selfOrAdmin allows admins everywhere and voters only on their own record.
func selfOrAdmin(c *fiber.Ctx, id uint) bool {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return false
	}
	switch claims.Role {
	case model.RoleAdmin:
		return true
	case model.RoleVoter:
		return claims.UserID == id
	default:
		return false
	}
}
