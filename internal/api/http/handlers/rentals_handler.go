package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/warehouse-rental/internal/api/dto"
	"github.com/spec-kit/warehouse-rental/internal/service"
	apperrors "github.com/spec-kit/warehouse-rental/pkg/util"
)

// RentalsHandler exposes the rental workflow endpoints.
type RentalsHandler struct {
	rentals *service.RentalService
}

// NewRentalsHandler constructs handler.
func NewRentalsHandler(rentalService *service.RentalService) *RentalsHandler {
	return &RentalsHandler{rentals: rentalService}
}

// Create handles POST /api/alquileres.
func (h *RentalsHandler) Create(c *fiber.Ctx) error {
	var req dto.RentalCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SectorID <= 0 || req.UserID <= 0 {
		return apperrors.NewValidationError("sectorId and usuarioId required", nil)
	}

	rental, err := h.rentals.Create(c.Context(), service.RentalCreateInput{
		SectorID:        req.SectorID,
		UserID:          req.UserID,
		OrderID:         req.OrderID,
		AmountPaidCents: dto.UnitsToCents(req.AmountPaid),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.RentalFromDomain(rental))
}

// ListByUser handles GET /api/alquileres/usuario/:usuarioId.
func (h *RentalsHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "usuarioId")
	if err != nil {
		return err
	}
	rentals, err := h.rentals.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.RentalsFromDomain(rentals))
}

// Finalize handles POST /api/alquileres/:id/finalizar.
func (h *RentalsHandler) Finalize(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.rentals.Finalize(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}
