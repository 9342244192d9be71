package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/warehouse-rental/internal/api/dto"
	"github.com/spec-kit/warehouse-rental/internal/service"
	apperrors "github.com/spec-kit/warehouse-rental/pkg/util"
)

// RolesHandler exposes role CRUD endpoints.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roleService *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roleService}
}

// Create handles POST /api/roles.
func (h *RolesHandler) Create(c *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	role, err := h.roles.Create(c.Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(dto.RoleFromDomain(role))
}

// GetByID handles GET /api/roles/:id.
func (h *RolesHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	role, err := h.roles.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.RoleFromDomain(role))
}

// List handles GET /api/roles.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	roles, err := h.roles.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.RolesFromDomain(roles))
}

// Update handles PUT /api/roles/:id.
func (h *RolesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	role, err := h.roles.Update(c.Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(dto.RoleFromDomain(role))
}

// Delete handles DELETE /api/roles/:id.
func (h *RolesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.roles.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, map[string]any{name: c.Params(name)})
	}
	return id, nil
}
