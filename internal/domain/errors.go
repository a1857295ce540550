package domain

import "errors"

// Erros de domínio (taxonomia fechada, sem dependências externas).
// Os serviços envolvem estes sentinelas com %w para agregar contexto;
// os handlers mapeiam com errors.Is para o status HTTP. As falhas de
// validação de token vivem em pkg/token.
var (
	// Resolução de login.
	ErrLoginNotFound    = errors.New("usuário não encontrado com o login informado")
	ErrAccountNotActive = errors.New("usuário inativo ou bloqueado")
	ErrInvalidPassword  = errors.New("login ou senha inválidos")

	// Consultas e mutações de conta.
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrAlreadyExists      = errors.New("usuário já cadastrado")
	ErrInvalidOldPassword = errors.New("senha antiga inválida")
	ErrInvalidNewPassword = errors.New("nova senha inválida")
	ErrAccessDenied       = errors.New("acesso negado")
)
