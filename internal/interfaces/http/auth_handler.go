package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/unibh/user-service/internal/application/dto"
	"github.com/unibh/user-service/internal/application/usecase"
	"github.com/unibh/user-service/internal/domain"
)

// AuthHandler endpoints públicos de registro e login.
type AuthHandler struct {
	users *usecase.UserService
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(users *usecase.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register godoc
// @Summary      Registra um novo usuário
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "username, email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if msgs := validateRequired(map[string]string{
		"username": in.Username,
		"email":    in.Email,
		"password": in.Password,
	}); len(msgs) > 0 {
		return validationError(c, msgs)
	}

	out, err := h.users.CreateUser(in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Autentica um usuário
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AuthenticationRequest  true  "login (username ou email), password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.AuthenticationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if msgs := validateRequired(map[string]string{
		"login":    in.Login,
		"password": in.Password,
	}); len(msgs) > 0 {
		return validationError(c, msgs)
	}

	out, err := h.users.Authenticate(in)
	if err != nil {
		if errors.Is(err, domain.ErrLoginNotFound) || errors.Is(err, domain.ErrInvalidPassword) {
			return errorResponse(c, fiber.StatusUnauthorized, "Credenciais inválidas", err.Error())
		}
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
