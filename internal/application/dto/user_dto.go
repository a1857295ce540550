package dto

import (
	"time"

	"github.com/unibh/user-service/internal/domain/entity"
)

// CreateUserRequest entrada do registro (password em texto, hasheado no serviço).
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticationRequest credenciais de login: aceita username ou email no campo login.
type AuthenticationRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse saída do login com o token emitido.
type LoginResponse struct {
	Token    string `json:"token"`
	IDUser   string `json:"idUser"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserResponse visão pública de um usuário (nunca expõe campos de senha).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
	Role      string    `json:"role"`
}

// UserUpdateResponse saída das atualizações de campo: o estado novo mais o
// token reemitido refletindo os claims atualizados.
type UserUpdateResponse struct {
	Token     string    `json:"token"`
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
	Role      string    `json:"role"`
}

// UpdateUsernameRequest troca de username.
type UpdateUsernameRequest struct {
	Username string `json:"username"`
}

// UpdateEmailRequest troca de email.
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

// UpdatePasswordRequest rotação de senha.
type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword"`
	OldPassword string `json:"oldPassword"`
}

// UpdateRoleRequest troca de papel (admin-only).
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateStatusRequest troca de estado da conta (admin-only).
type UpdateStatusRequest struct {
	UserState string `json:"userState"`
}

// ToUserResponse converte a entidade para a visão pública.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Status:    string(u.Status),
		UpdatedAt: u.UpdatedAt,
		Role:      string(u.Role),
	}
}

// ToUserUpdateResponse converte a entidade atualizada mais o token reemitido.
func ToUserUpdateResponse(u *entity.User, token string) UserUpdateResponse {
	return UserUpdateResponse{
		Token:     token,
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Status:    string(u.Status),
		UpdatedAt: u.UpdatedAt,
		Role:      string(u.Role),
	}
}
