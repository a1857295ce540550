package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unibh/user-service/internal/application/dto"
	"github.com/unibh/user-service/internal/application/usecase"
	"github.com/unibh/user-service/internal/domain/entity"
)

// UserHandler endpoints protegidos de gerenciamento de usuários.
type UserHandler struct {
	users *usecase.UserService
}

// NewUserHandler constrói o handler de usuários.
func NewUserHandler(users *usecase.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List godoc
// @Summary      Lista usuários paginados
// @Tags         users
// @Produce      json
// @Param        lastKey  query  string  false  "cursor: id do último item visto"
// @Param        limit    query  int     false  "máximo de itens por página"  default(10)
// @Success      200  {object}  dto.PaginatedResult[dto.UserResponse]
// @Router       /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	lastKey := c.Query("lastKey")
	limit := c.QueryInt("limit", 10)

	out, err := h.users.ListUsers(lastKey, limit)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Detalhes do usuário autenticado
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(dto.NewAuthError(fiber.StatusUnauthorized, "Autenticação requerida."))
	}
	return c.JSON(dto.ToUserResponse(user))
}

// Delete godoc
// @Summary      Exclui um usuário por ID
// @Tags         users
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor, _ := CurrentPrincipal(c)
	if err := h.users.DeleteUser(actor, c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateUsername godoc
// @Summary      Atualiza o username
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.UserUpdateResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /users/{id}/username [patch]
func (h *UserHandler) UpdateUsername(c *fiber.Ctx) error {
	var in dto.UpdateUsernameRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if msgs := validateRequired(map[string]string{"username": in.Username}); len(msgs) > 0 {
		return validationError(c, msgs)
	}

	actor, _ := CurrentPrincipal(c)
	out, err := h.users.UpdateUsername(actor, c.Params("id"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateEmail godoc
// @Summary      Atualiza o email
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.UserUpdateResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /users/{id}/email [patch]
func (h *UserHandler) UpdateEmail(c *fiber.Ctx) error {
	var in dto.UpdateEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if msgs := validateRequired(map[string]string{"email": in.Email}); len(msgs) > 0 {
		return validationError(c, msgs)
	}

	actor, _ := CurrentPrincipal(c)
	out, err := h.users.UpdateEmail(actor, c.Params("id"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdatePassword godoc
// @Summary      Rotaciona a senha
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.UserUpdateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /users/{id}/password [patch]
func (h *UserHandler) UpdatePassword(c *fiber.Ctx) error {
	var in dto.UpdatePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if msgs := validateRequired(map[string]string{
		"oldPassword": in.OldPassword,
		"newPassword": in.NewPassword,
	}); len(msgs) > 0 {
		return validationError(c, msgs)
	}

	actor, _ := CurrentPrincipal(c)
	out, err := h.users.UpdatePassword(actor, c.Params("id"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateRole godoc
// @Summary      Atualiza o papel (admin-only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.UserUpdateResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return validationError(c, map[string]string{"role": "valor inválido; aceitos: USER, ADMIN"})
	}

	actor, _ := CurrentPrincipal(c)
	out, err := h.users.UpdateRole(actor, c.Params("id"), role)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Atualiza o status da conta (admin-only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.UserUpdateResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /users/{id}/state [patch]
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	status, ok := entity.ParseStatus(in.UserState)
	if !ok {
		return validationError(c, map[string]string{"userState": "valor inválido; aceitos: ACTIVE, INACTIVE, BLOCKED"})
	}

	actor, _ := CurrentPrincipal(c)
	out, err := h.users.UpdateStatus(actor, c.Params("id"), status)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
