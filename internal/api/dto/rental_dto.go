package dto

import (
	"time"

	"github.com/spec-kit/warehouse-rental/internal/domain"
)

// RentalCreateRequest payload for creating a rental.
type RentalCreateRequest struct {
	SectorID   int64     `json:"sectorId"`
	UserID     int64     `json:"usuarioId"`
	OrderID    string    `json:"ordenId"`
	AmountPaid float64   `json:"montoPagado"`
	StartTime  time.Time `json:"fechaInicio"`
	EndTime    time.Time `json:"fechaFin"`
}

// RentalResponse mirrors a rental record.
type RentalResponse struct {
	ID         int64     `json:"id"`
	SectorID   int64     `json:"sectorId"`
	SectorName string    `json:"sectorNombre"`
	UserID     int64     `json:"usuarioId"`
	OrderID    string    `json:"ordenId"`
	AmountPaid float64   `json:"montoPagado"`
	StartTime  time.Time `json:"fechaInicio"`
	EndTime    time.Time `json:"fechaFin"`
	State      string    `json:"estado"`
	CreatedAt  time.Time `json:"fechaCreacion"`
}

// RentalFromDomain converts a domain rental.
func RentalFromDomain(rental *domain.Rental) RentalResponse {
	return RentalResponse{
		ID:         rental.ID,
		SectorID:   rental.SectorID,
		SectorName: rental.SectorName,
		UserID:     rental.UserID,
		OrderID:    rental.OrderID,
		AmountPaid: centsToUnits(rental.AmountPaidCents),
		StartTime:  rental.StartTime,
		EndTime:    rental.EndTime,
		State:      string(rental.State),
		CreatedAt:  rental.CreatedAt,
	}
}

// RentalsFromDomain converts a slice of domain rentals.
func RentalsFromDomain(rentals []domain.Rental) []RentalResponse {
	out := make([]RentalResponse, 0, len(rentals))
	for i := range rentals {
		out = append(out, RentalFromDomain(&rentals[i]))
	}
	return out
}
