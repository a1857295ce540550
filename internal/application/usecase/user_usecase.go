package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unibh/user-service/internal/application/dto"
	"github.com/unibh/user-service/internal/application/query"
	"github.com/unibh/user-service/internal/domain"
	"github.com/unibh/user-service/internal/domain/entity"
	"github.com/unibh/user-service/internal/domain/repository"
	"github.com/unibh/user-service/pkg/hash"
	"github.com/unibh/user-service/pkg/logger"
	"github.com/unibh/user-service/pkg/token"
)

// UserService orquestra registro, login e as mutações de conta.
// Toda operação autorizada recebe o Principal explícito, extraído do token já
// validado pelo filtro. Cada mutação persiste o registro inteiro e reemite o
// token para refletir os claims novos.
type UserService struct {
	repo    repository.UserRepository
	queries *query.UserQueryService
	tokens  *token.Service
	log     *logger.Logger
}

// NewUserService constrói o serviço de usuários.
func NewUserService(repo repository.UserRepository, queries *query.UserQueryService, tokens *token.Service, log *logger.Logger) *UserService {
	return &UserService{repo: repo, queries: queries, tokens: tokens, log: log}
}

// CreateUser registra um novo usuário: normaliza, valida unicidade, hasheia a
// senha e persiste com role USER e status ACTIVE.
func (s *UserService) CreateUser(req dto.CreateUserRequest) (dto.UserResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.validateRegistration(username, email); err != nil {
		return dto.UserResponse{}, err
	}

	passwordHash, err := hash.Hash(req.Password)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("hash da senha: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Save(user); err != nil {
		return dto.UserResponse{}, err
	}

	s.log.Info().Str("id", user.ID).Str("username", username).Msg("usuário registrado")
	return dto.ToUserResponse(user), nil
}

// validateRegistration checa unicidade de email e username, distinguindo na
// mensagem quando ambos já estão tomados.
func (s *UserService) validateRegistration(username, email string) error {
	emailTaken, err := s.queries.ExistsByEmail(email)
	if err != nil {
		return err
	}
	usernameTaken, err := s.queries.ExistsByUsername(username)
	if err != nil {
		return err
	}
	switch {
	case emailTaken && usernameTaken:
		return fmt.Errorf("%w: Email e Username já cadastrados", domain.ErrAlreadyExists)
	case emailTaken:
		return fmt.Errorf("%w: Email já cadastrado", domain.ErrAlreadyExists)
	case usernameTaken:
		return fmt.Errorf("%w: Username já cadastrado", domain.ErrAlreadyExists)
	}
	return nil
}

// ResolveLogin resolve a string de login como email ou username, nessa ordem,
// e exige que a conta esteja ACTIVE.
func (s *UserService) ResolveLogin(login string) (*entity.User, error) {
	var user *entity.User

	if ok, err := s.repo.ExistsByEmail(login); err != nil {
		return nil, err
	} else if ok {
		if user, err = s.repo.FindByEmail(login); err != nil {
			return nil, err
		}
	} else if ok, err := s.repo.ExistsByUsername(login); err != nil {
		return nil, err
	} else if ok {
		if user, err = s.repo.FindByUsername(login); err != nil {
			return nil, err
		}
	}

	if user == nil {
		s.log.Warn().Str("login", login).Msg("usuário não encontrado com o login informado")
		return nil, fmt.Errorf("%w: %s", domain.ErrLoginNotFound, login)
	}
	if !user.IsActive() {
		s.log.Warn().Str("login", login).Str("status", string(user.Status)).Msg("usuário inativo ou bloqueado")
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotActive, login)
	}
	return user, nil
}

// Authenticate resolve o login, verifica a credencial e emite o token.
func (s *UserService) Authenticate(req dto.AuthenticationRequest) (dto.LoginResponse, error) {
	user, err := s.ResolveLogin(req.Login)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if !hash.Verify(req.Password, user.PasswordHash) {
		return dto.LoginResponse{}, domain.ErrInvalidPassword
	}
	tok, err := s.tokens.Generate(user.Username, string(user.Role))
	if err != nil {
		return dto.LoginResponse{}, err
	}
	s.log.Info().Str("id", user.ID).Msg("login efetuado")
	return dto.LoginResponse{
		Token:    tok,
		IDUser:   user.ID,
		Role:     string(user.Role),
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// updateUserField aplica uma mutação ao registro, atualiza UpdatedAt, persiste
// e reemite o token com os claims novos.
func (s *UserService) updateUserField(id string, apply func(*entity.User)) (dto.UserUpdateResponse, error) {
	user, err := s.queries.FindOrThrow(id)
	if err != nil {
		return dto.UserUpdateResponse{}, err
	}
	apply(user)
	user.UpdatedAt = time.Now()

	if err := s.repo.Save(user); err != nil {
		return dto.UserUpdateResponse{}, err
	}

	tok, err := s.tokens.Generate(user.Username, string(user.Role))
	if err != nil {
		return dto.UserUpdateResponse{}, err
	}
	return dto.ToUserUpdateResponse(user, tok), nil
}

// UpdateUsername troca o username (self-or-admin; exige username livre).
func (s *UserService) UpdateUsername(actor entity.Principal, id string, req dto.UpdateUsernameRequest) (dto.UserUpdateResponse, error) {
	if err := s.checkAdminOrSelf(actor, id); err != nil {
		return dto.UserUpdateResponse{}, err
	}
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if taken, err := s.queries.ExistsByUsername(username); err != nil {
		return dto.UserUpdateResponse{}, err
	} else if taken {
		return dto.UserUpdateResponse{}, fmt.Errorf("%w: Username já cadastrado: %s", domain.ErrAlreadyExists, req.Username)
	}

	s.log.Info().Str("id", id).Msg("atualizando username do usuário")
	return s.updateUserField(id, func(u *entity.User) { u.Username = username })
}

// UpdateEmail troca o email (self-or-admin; exige email livre).
func (s *UserService) UpdateEmail(actor entity.Principal, id string, req dto.UpdateEmailRequest) (dto.UserUpdateResponse, error) {
	if err := s.checkAdminOrSelf(actor, id); err != nil {
		return dto.UserUpdateResponse{}, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if taken, err := s.queries.ExistsByEmail(email); err != nil {
		return dto.UserUpdateResponse{}, err
	} else if taken {
		return dto.UserUpdateResponse{}, fmt.Errorf("%w: Email já cadastrado: %s", domain.ErrAlreadyExists, req.Email)
	}

	s.log.Info().Str("id", id).Msg("atualizando email do usuário")
	return s.updateUserField(id, func(u *entity.User) { u.Email = email })
}

// UpdatePassword rotaciona a senha (self-or-admin). Rejeita senha antiga
// incorreta, rotação no-op (nova == atual) e reuso de qualquer uma das últimas
// 3 senhas. O hash atual entra no histórico, descartando o mais antigo.
func (s *UserService) UpdatePassword(actor entity.Principal, id string, req dto.UpdatePasswordRequest) (dto.UserUpdateResponse, error) {
	if err := s.checkAdminOrSelf(actor, id); err != nil {
		return dto.UserUpdateResponse{}, err
	}
	s.log.Info().Str("id", id).Msg("atualizando senha do usuário")

	user, err := s.queries.FindOrThrow(id)
	if err != nil {
		return dto.UserUpdateResponse{}, err
	}

	if !hash.Verify(req.OldPassword, user.PasswordHash) {
		return dto.UserUpdateResponse{}, fmt.Errorf("%w para o usuário com id: %s", domain.ErrInvalidOldPassword, id)
	}
	if hash.Verify(req.NewPassword, user.PasswordHash) {
		return dto.UserUpdateResponse{}, fmt.Errorf("%w: a nova senha não pode ser igual à última senha", domain.ErrInvalidNewPassword)
	}
	for _, oldHash := range user.PasswordHistory {
		if hash.Verify(req.NewPassword, oldHash) {
			return dto.UserUpdateResponse{}, fmt.Errorf("%w: a nova senha não pode ser igual a nenhuma das últimas 3 senhas utilizadas", domain.ErrInvalidOldPassword)
		}
	}

	newHash, err := hash.Hash(req.NewPassword)
	if err != nil {
		return dto.UserUpdateResponse{}, fmt.Errorf("hash da senha: %w", err)
	}

	history := append([]string(nil), user.PasswordHistory...)
	currentHash := user.PasswordHash

	return s.updateUserField(id, func(u *entity.User) {
		u.PasswordHistory = history
		u.PushPasswordHistory(currentHash)
		u.PasswordHash = newHash
	})
}

// UpdateRole troca o papel do usuário (admin-only).
func (s *UserService) UpdateRole(actor entity.Principal, id string, role entity.Role) (dto.UserUpdateResponse, error) {
	if err := s.requireAdmin(actor); err != nil {
		return dto.UserUpdateResponse{}, err
	}
	s.log.Info().Str("id", id).Str("role", string(role)).Msg("atualizando role do usuário")
	return s.updateUserField(id, func(u *entity.User) { u.Role = role })
}

// UpdateStatus troca o estado da conta (admin-only).
func (s *UserService) UpdateStatus(actor entity.Principal, id string, status entity.Status) (dto.UserUpdateResponse, error) {
	if err := s.requireAdmin(actor); err != nil {
		return dto.UserUpdateResponse{}, err
	}
	s.log.Info().Str("id", id).Str("status", string(status)).Msg("atualizando status do usuário")
	return s.updateUserField(id, func(u *entity.User) { u.Status = status })
}

// DeleteUser remove o registro permanentemente (self-or-admin; sem soft delete).
func (s *UserService) DeleteUser(actor entity.Principal, id string) error {
	if err := s.checkAdminOrSelf(actor, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("deletando usuário")
	user, err := s.queries.FindOrThrow(id)
	if err != nil {
		return err
	}
	_, err = s.repo.DeleteByID(user.ID)
	return err
}

// ListUsers varre a tabela a partir do cursor opaco (ID do último item visto).
// Sem garantia de ordem além da varredura nativa da tabela; sem snapshot.
func (s *UserService) ListUsers(lastKey string, limit int) (dto.PaginatedResult[dto.UserResponse], error) {
	if limit <= 0 {
		limit = 10
	}
	users, nextKey, err := s.repo.Scan(lastKey, limit)
	if err != nil {
		return dto.PaginatedResult[dto.UserResponse]{}, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.ToUserResponse(u))
	}
	return dto.PaginatedResult[dto.UserResponse]{Items: items, NextKey: nextKey}, nil
}

func (s *UserService) checkAdminOrSelf(actor entity.Principal, targetID string) error {
	if actor.CanManageUser(targetID) {
		return nil
	}
	return fmt.Errorf("%w: você só pode alterar seus próprios dados", domain.ErrAccessDenied)
}

func (s *UserService) requireAdmin(actor entity.Principal) error {
	if actor.IsAdmin() {
		return nil
	}
	return fmt.Errorf("%w: operação restrita a administradores", domain.ErrAccessDenied)
}
