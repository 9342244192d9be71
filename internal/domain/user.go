package domain

import "time"

// User is the domain model for registered customers.
type User struct {
	ID             int64
	FullName       string
	Mobile         string
	Email          string
	RoleID         int64
	Credential     string
	EmailConfirmed bool
	GoogleAccount  bool
	Photo          []byte
	CreatedAt      time.Time
}
