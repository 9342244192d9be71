package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/warehouse-rental/internal/api/dto"
	"github.com/spec-kit/warehouse-rental/internal/domain"
	"github.com/spec-kit/warehouse-rental/internal/service"
	apperrors "github.com/spec-kit/warehouse-rental/pkg/util"
)

// SectorsHandler exposes sector query and state-update endpoints.
type SectorsHandler struct {
	sectors *service.SectorService
}

// NewSectorsHandler constructs handler.
func NewSectorsHandler(sectorService *service.SectorService) *SectorsHandler {
	return &SectorsHandler{sectors: sectorService}
}

// List handles GET /api/sectores.
func (h *SectorsHandler) List(c *fiber.Ctx) error {
	sectors, err := h.sectors.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.SectorsFromDomain(sectors))
}

// ListAvailable handles GET /api/sectores/disponibles.
func (h *SectorsHandler) ListAvailable(c *fiber.Ctx) error {
	sectors, err := h.sectors.ListAvailable(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.SectorsFromDomain(sectors))
}

// GetByID handles GET /api/sectores/:id.
func (h *SectorsHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	sector, err := h.sectors.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.SectorFromDomain(sector))
}

// GetByName handles GET /api/sectores/nombre/:nombre.
func (h *SectorsHandler) GetByName(c *fiber.Ctx) error {
	name := c.Params("nombre")
	if name == "" {
		return apperrors.NewValidationError("sector name required", nil)
	}
	sector, err := h.sectors.GetByName(c.Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(dto.SectorFromDomain(sector))
}

// UpdateState handles PUT /api/sectores/:id/estado?estado=X.
func (h *SectorsHandler) UpdateState(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	state := domain.SectorState(c.Query("estado"))
	if state == "" {
		return apperrors.NewValidationError("estado query parameter required", nil)
	}

	sector, err := h.sectors.UpdateState(c.Context(), id, state)
	if err != nil {
		return err
	}
	return c.JSON(dto.SectorFromDomain(sector))
}
