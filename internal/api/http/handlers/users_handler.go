package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/warehouse-rental/internal/api/dto"
	"github.com/spec-kit/warehouse-rental/internal/service"
	apperrors "github.com/spec-kit/warehouse-rental/pkg/util"
)

// UsersHandler exposes user CRUD and credential endpoints. The mutating
// endpoints route their failures through the error mapper, which in legacy
// mode collapses them to 500 the way the replaced system did.
type UsersHandler struct {
	users  *service.UserService
	mapper *apperrors.ErrorMapper
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, mapper *apperrors.ErrorMapper) *UsersHandler {
	return &UsersHandler{users: userService, mapper: mapper}
}

// Create handles POST /api/usuarios.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Credential == "" || req.FullName == "" {
		return apperrors.NewValidationError("nombreCompleto, correoElectronico and contrasena required", nil)
	}

	user, err := h.users.Create(c.Context(), service.UserCreateInput{
		FullName:       req.FullName,
		Mobile:         req.Mobile,
		Email:          req.Email,
		RoleID:         req.RoleID,
		Credential:     req.Credential,
		EmailConfirmed: req.EmailConfirmed,
		GoogleAccount:  req.GoogleAccount,
		Photo:          req.Photo,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.UserFromDomain(user))
}

// GetByID handles GET /api/usuarios/:id.
func (h *UsersHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserFromDomain(user))
}

// GetByEmail handles GET /api/usuarios/correo/:correo.
func (h *UsersHandler) GetByEmail(c *fiber.Ctx) error {
	email := c.Params("correo")
	if email == "" {
		return apperrors.NewValidationError("correoElectronico required", nil)
	}
	user, err := h.users.GetByEmail(c.Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserFromDomain(user))
}

// List handles GET /api/usuarios.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.UsersFromDomain(users))
}

// Update handles PUT /api/usuarios/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.Update(c.Context(), id, service.UserUpdateInput{
		FullName:      req.FullName,
		Mobile:        req.Mobile,
		Email:         req.Email,
		RoleID:        req.RoleID,
		Credential:    req.Credential,
		GoogleAccount: req.GoogleAccount,
		Photo:         req.Photo,
	})
	if err != nil {
		return h.mapper.Map(err, true)
	}
	return c.JSON(dto.UserFromDomain(user))
}

// Delete handles DELETE /api/usuarios/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Context(), id); err != nil {
		return h.mapper.Map(err, true)
	}
	return c.SendStatus(fiber.StatusOK)
}

// Authenticate handles POST /api/usuarios/autenticar.
func (h *UsersHandler) Authenticate(c *fiber.Ctx) error {
	var req dto.AuthenticateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Credential == "" {
		return apperrors.NewValidationError("correoElectronico and contrasena required", nil)
	}

	user, token, exp, err := h.users.Authenticate(c.Context(), req.Email, req.Credential)
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{
		User:      dto.UserFromDomain(user),
		Token:     token,
		ExpiresAt: exp,
	})
}

// ConfirmEmail handles POST /api/usuarios/confirmarCorreo/:email.
func (h *UsersHandler) ConfirmEmail(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if err := h.users.ConfirmEmail(c.Context(), email); err != nil {
		return h.mapper.Map(err, true)
	}
	return c.SendStatus(fiber.StatusOK)
}

// UpdateCredential handles POST /api/usuarios/actualizarContrasena.
func (h *UsersHandler) UpdateCredential(c *fiber.Ctx) error {
	var req dto.CredentialUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.NewCredential == "" {
		return apperrors.NewValidationError("correoElectronico and nuevaContrasena required", nil)
	}
	if err := h.users.UpdateCredential(c.Context(), req.Email, req.NewCredential); err != nil {
		return h.mapper.Map(err, true)
	}
	return c.SendStatus(fiber.StatusOK)
}
