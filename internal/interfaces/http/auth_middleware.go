package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/unibh/user-service/internal/application/dto"
	"github.com/unibh/user-service/internal/domain/entity"
	"github.com/unibh/user-service/internal/domain/repository"
	"github.com/unibh/user-service/pkg/token"
)

// Locals keys do principal autenticado no Fiber.
const (
	LocalPrincipal = "principal"
	LocalUser      = "auth_user"
)

// AuthMiddleware filtro de autenticação por requisição.
// Sem token a requisição segue anônima; com token ele é validado, o usuário do
// subject é carregado (email primeiro, depois username) e anexado aos locals.
// Qualquer falha de validação ou principal inexistente responde 401 com
// {status, erro, mensagem}. O filtro não bloqueia por autorização — isso é
// responsabilidade do serviço de usuários.
func AuthMiddleware(tokens *token.Service, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := recoverToken(c)
		if tokenString == "" {
			return c.Next()
		}

		subject, err := tokens.Validate(tokenString)
		if err != nil {
			return unauthorized(c, authFailureMessage(err))
		}

		user, err := users.FindByEmail(subject)
		if err != nil {
			return err
		}
		if user == nil {
			if user, err = users.FindByUsername(subject); err != nil {
				return err
			}
		}
		if user == nil {
			return unauthorized(c, "Usuário associado ao token não foi encontrado.")
		}

		c.Locals(LocalPrincipal, entity.PrincipalOf(user))
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// CurrentPrincipal devolve o principal autenticado, se houver.
func CurrentPrincipal(c *fiber.Ctx) (entity.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(entity.Principal)
	return p, ok
}

// CurrentUser devolve o usuário autenticado carregado pelo filtro, se houver.
func CurrentUser(c *fiber.Ctx) (*entity.User, bool) {
	u, ok := c.Locals(LocalUser).(*entity.User)
	return u, ok
}

func recoverToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(authHeader)
}

func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "Token expirado."
	case errors.Is(err, token.ErrMalformed):
		return "Token inválido."
	default:
		return "Falha na verificação do token."
	}
}

func unauthorized(c *fiber.Ctx, mensagem string) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(dto.NewAuthError(fiber.StatusUnauthorized, mensagem))
}
