package dto

import (
	"time"

	"github.com/spec-kit/warehouse-rental/internal/domain"
)

// SectorResponse mirrors a sector record. The monthly price is rendered in
// currency units with cent precision.
type SectorResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nombre"`
	AreaSqMeters int32     `json:"metrosCuadrados"`
	MonthlyPrice float64   `json:"precioMensual"`
	Features     string    `json:"caracteristicas"`
	State        string    `json:"estado"`
	CreatedAt    time.Time `json:"fechaCreacion"`
}

// SectorFromDomain converts a domain sector.
func SectorFromDomain(sector *domain.Sector) SectorResponse {
	return SectorResponse{
		ID:           sector.ID,
		Name:         sector.Name,
		AreaSqMeters: sector.AreaSqMeters,
		MonthlyPrice: centsToUnits(sector.MonthlyPriceCents),
		Features:     sector.Features,
		State:        string(sector.State),
		CreatedAt:    sector.CreatedAt,
	}
}

// SectorsFromDomain converts a slice of domain sectors.
func SectorsFromDomain(sectors []domain.Sector) []SectorResponse {
	out := make([]SectorResponse, 0, len(sectors))
	for i := range sectors {
		out = append(out, SectorFromDomain(&sectors[i]))
	}
	return out
}

func centsToUnits(cents int64) float64 {
	return float64(cents) / 100
}

// UnitsToCents converts a currency amount to cents, rounding to the nearest cent.
func UnitsToCents(units float64) int64 {
	if units >= 0 {
		return int64(units*100 + 0.5)
	}
	return int64(units*100 - 0.5)
}
