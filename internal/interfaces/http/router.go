package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unibh/user-service/internal/application/usecase"
	"github.com/unibh/user-service/internal/domain/repository"
	"github.com/unibh/user-service/pkg/token"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	Users    *usecase.UserService
	UserRepo repository.UserRepository
	Tokens   *token.Service
}

// Router registra as rotas da API. O filtro de autenticação roda em todas as
// rotas (anônimo passa); as rotas de /users exigem principal.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(AuthMiddleware(deps.Tokens, deps.UserRepo))

	// Auth (público)
	authHandler := NewAuthHandler(deps.Users)
	auth := app.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	// Users (protegido)
	userHandler := NewUserHandler(deps.Users)
	users := app.Group("/users", requirePrincipal)
	users.Get("/", userHandler.List)
	users.Get("/me", userHandler.Me)
	users.Delete("/:id", userHandler.Delete)
	users.Patch("/:id/state", userHandler.UpdateStatus)
	users.Patch("/:id/username", userHandler.UpdateUsername)
	users.Patch("/:id/email", userHandler.UpdateEmail)
	users.Patch("/:id/password", userHandler.UpdatePassword)
	users.Patch("/:id/role", userHandler.UpdateRole)
}
