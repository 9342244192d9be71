package dto

import (
	"time"

	"github.com/spec-kit/warehouse-rental/internal/domain"
)

// UserRequest payload for creating or updating a user. On update, a blank
// contrasena and an absent foto leave the stored values untouched.
type UserRequest struct {
	FullName       string `json:"nombreCompleto"`
	Mobile         string `json:"movil"`
	Email          string `json:"correoElectronico"`
	RoleID         int64  `json:"rolId"`
	Credential     string `json:"contrasena"`
	EmailConfirmed bool   `json:"correoConfirmado"`
	GoogleAccount  bool   `json:"google"`
	Photo          []byte `json:"foto"`
}

// AuthenticateRequest payload for credential checks.
type AuthenticateRequest struct {
	Email      string `json:"correoElectronico"`
	Credential string `json:"contrasena"`
}

// CredentialUpdateRequest payload for replacing a credential.
type CredentialUpdateRequest struct {
	Email         string `json:"correoElectronico"`
	NewCredential string `json:"nuevaContrasena"`
}

// UserResponse mirrors a user record. The stored credential is never exposed.
type UserResponse struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"nombreCompleto"`
	Mobile         string    `json:"movil"`
	Email          string    `json:"correoElectronico"`
	RoleID         int64     `json:"rolId"`
	EmailConfirmed bool      `json:"correoConfirmado"`
	GoogleAccount  bool      `json:"google"`
	Photo          []byte    `json:"foto,omitempty"`
	CreatedAt      time.Time `json:"fechaCreacion"`
}

// AuthResponse carries the authenticated user and its access token.
type AuthResponse struct {
	User      UserResponse `json:"usuario"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt time.Time    `json:"expiraEn,omitempty"`
}

// UserFromDomain converts a domain user.
func UserFromDomain(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		FullName:       user.FullName,
		Mobile:         user.Mobile,
		Email:          user.Email,
		RoleID:         user.RoleID,
		EmailConfirmed: user.EmailConfirmed,
		GoogleAccount:  user.GoogleAccount,
		Photo:          user.Photo,
		CreatedAt:      user.CreatedAt,
	}
}

// UsersFromDomain converts a slice of domain users.
func UsersFromDomain(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, UserFromDomain(&users[i]))
	}
	return out
}
