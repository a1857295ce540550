package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/unibh/user-service/internal/application/dto"
	"github.com/unibh/user-service/internal/domain"
)

// mapDomainError traduz a taxonomia de erros do domínio para o status HTTP.
// Falhas de store não mapeadas propagam como 500.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return errorResponse(c, fiber.StatusNotFound, "User Not Found", err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		return errorResponse(c, fiber.StatusConflict, "Conflito", err.Error())
	case errors.Is(err, domain.ErrAccessDenied):
		return errorResponse(c, fiber.StatusForbidden, "Acesso Negado", err.Error())
	case errors.Is(err, domain.ErrAccountNotActive):
		return errorResponse(c, fiber.StatusForbidden, "Conta Inativa", err.Error())
	case errors.Is(err, domain.ErrLoginNotFound), errors.Is(err, domain.ErrInvalidPassword):
		return errorResponse(c, fiber.StatusUnauthorized, "Credenciais inválidas", err.Error())
	case errors.Is(err, domain.ErrInvalidOldPassword), errors.Is(err, domain.ErrInvalidNewPassword):
		return errorResponse(c, fiber.StatusBadRequest, "Senha inválida", err.Error())
	default:
		return errorResponse(c, fiber.StatusInternalServerError, "Erro Interno", err.Error())
	}
}

func errorResponse(c *fiber.Ctx, status int, erro, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Status: status, Error: erro, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusBadRequest, "Bad Request", message)
}

func validationError(c *fiber.Ctx, messages map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
		Status:   fiber.StatusBadRequest,
		Error:    "Erro de Validação",
		Messages: messages,
	})
}

// validateRequired devolve mensagem por campo vazio.
func validateRequired(fields map[string]string) map[string]string {
	msgs := make(map[string]string)
	for name, value := range fields {
		if value == "" {
			msgs[name] = name + " é obrigatório."
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return msgs
}

// requirePrincipal exige requisição autenticada; o filtro não bloqueia, então
// rotas protegidas checam aqui.
func requirePrincipal(c *fiber.Ctx) error {
	if _, ok := CurrentPrincipal(c); !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(dto.NewAuthError(fiber.StatusUnauthorized, "Autenticação requerida."))
	}
	return c.Next()
}
