package domain

import "time"

// RentalState enumerates lifecycle states for rentals.
type RentalState string

const (
	RentalStateActive   RentalState = "ACTIVO"
	RentalStateFinished RentalState = "FINALIZADO"
	// RentalStateCancelled is reserved: no operation currently sets it.
	RentalStateCancelled RentalState = "CANCELADO"
)

// Rental is a time-boxed lease binding a user to a sector at a paid price.
type Rental struct {
	ID       int64
	SectorID int64
	// SectorName is denormalized for API responses; populated on reads.
	SectorName string
	UserID     int64
	OrderID    string
	// AmountPaidCents stores the paid amount in cents.
	AmountPaidCents int64
	StartTime       time.Time
	EndTime         time.Time
	State           RentalState
	CreatedAt       time.Time
}
