package domain

import "time"

// SectorState enumerates occupancy states for storage sectors.
type SectorState string

const (
	SectorStateAvailable   SectorState = "DISPONIBLE"
	SectorStateOccupied    SectorState = "OCUPADO"
	SectorStateMaintenance SectorState = "MANTENIMIENTO"
)

// ValidSectorState reports whether s is a known sector state.
func ValidSectorState(s SectorState) bool {
	switch s {
	case SectorStateAvailable, SectorStateOccupied, SectorStateMaintenance:
		return true
	}
	return false
}

// Sector is a rentable storage unit. State is the sole gate for rentability.
type Sector struct {
	ID           int64
	Name         string
	AreaSqMeters int32
	// MonthlyPriceCents stores the monthly price in cents to avoid float drift.
	MonthlyPriceCents int64
	Features          string
	State             SectorState
	CreatedAt         time.Time
}
