package dto

import "github.com/spec-kit/warehouse-rental/internal/domain"

// RoleRequest payload for creating or renaming a role.
type RoleRequest struct {
	Name string `json:"nombre"`
}

// RoleResponse mirrors a role record.
type RoleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// RoleFromDomain converts a domain role.
func RoleFromDomain(role *domain.Role) RoleResponse {
	return RoleResponse{ID: role.ID, Name: role.Name}
}

// RolesFromDomain converts a slice of domain roles.
func RolesFromDomain(roles []domain.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, RoleFromDomain(&roles[i]))
	}
	return out
}
