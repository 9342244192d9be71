package events

import (
	"time"

	"github.com/spec-kit/warehouse-rental/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRentalCreated      EventType = "rental_created"
	EventRentalFinished     EventType = "rental_finished"
	EventSectorStateChanged EventType = "sector_state_changed"
	EventUserRegistered     EventType = "user_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RentalCreatedPayload payload.
type RentalCreatedPayload struct {
	RentalID int64     `json:"rental_id"`
	SectorID int64     `json:"sector_id"`
	UserID   int64     `json:"user_id"`
	OrderID  string    `json:"order_id"`
	EndTime  time.Time `json:"end_time"`
}

// RentalFinishedPayload payload.
type RentalFinishedPayload struct {
	RentalID int64 `json:"rental_id"`
	SectorID int64 `json:"sector_id"`
}

// SectorStateChangedPayload payload.
type SectorStateChangedPayload struct {
	SectorID int64              `json:"sector_id"`
	OldState domain.SectorState `json:"old_state"`
	NewState domain.SectorState `json:"new_state"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
