// Package query concentra o lado de leitura: buscas e sondas de existência.
// Sem mutação e sem autorização — autorização é responsabilidade do chamador.
package query

import (
	"fmt"

	"github.com/unibh/user-service/internal/domain"
	"github.com/unibh/user-service/internal/domain/entity"
	"github.com/unibh/user-service/internal/domain/repository"
	"github.com/unibh/user-service/pkg/logger"
)

// UserQueryService consultas de usuário sobre o porto de persistência.
type UserQueryService struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserQueryService constrói o serviço de consulta.
func NewUserQueryService(repo repository.UserRepository, log *logger.Logger) *UserQueryService {
	return &UserQueryService{repo: repo, log: log}
}

// FindByEmail busca por email. Retorna ErrUserNotFound se não existir.
func (s *UserQueryService) FindByEmail(email string) (*entity.User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: email %s", domain.ErrUserNotFound, email)
	}
	return user, nil
}

// FindByUsername busca por username. Retorna ErrUserNotFound se não existir.
func (s *UserQueryService) FindByUsername(username string) (*entity.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: username %s", domain.ErrUserNotFound, username)
	}
	return user, nil
}

// FindOrThrow busca canônica por id usada por todas as mutações.
func (s *UserQueryService) FindOrThrow(id string) (*entity.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w com o id: %s", domain.ErrUserNotFound, id)
	}
	return user, nil
}

// ExistsByUsername sonda de unicidade de username.
func (s *UserQueryService) ExistsByUsername(username string) (bool, error) {
	exists, err := s.repo.ExistsByUsername(username)
	if err != nil {
		return false, err
	}
	if exists {
		s.log.Warn().Str("username", username).Msg("username já cadastrado")
	}
	return exists, nil
}

// ExistsByEmail sonda de unicidade de email.
func (s *UserQueryService) ExistsByEmail(email string) (bool, error) {
	exists, err := s.repo.ExistsByEmail(email)
	if err != nil {
		return false, err
	}
	if exists {
		s.log.Warn().Str("email", email).Msg("email já cadastrado")
	}
	return exists, nil
}
