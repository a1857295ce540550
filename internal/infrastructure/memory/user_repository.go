// Package memory guarda usuários em um mapa protegido por mutex.
// Adaptador usado em testes e desenvolvimento local sem banco.
package memory

import (
	"sort"
	"sync"

	"github.com/unibh/user-service/internal/domain/entity"
	"github.com/unibh/user-service/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação em memória do porto UserRepository.
// A ordem nativa de varredura é a ordem lexicográfica dos IDs.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

// NewUserRepository constrói o repositório em memória.
func NewUserRepository() *UserRepo {
	return &UserRepo{users: make(map[string]entity.User)}
}

// Save faz upsert do registro completo pelo ID.
func (r *UserRepo) Save(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	u.PasswordHistory = append([]string(nil), user.PasswordHistory...)
	r.users[u.ID] = u
	return nil
}

// FindByID busca pela chave. Retorna nil quando ausente.
func (r *UserRepo) FindByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return copyOf(u), nil
	}
	return nil, nil
}

// DeleteByID remove e retorna o registro; nil quando ausente.
func (r *UserRepo) DeleteByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	delete(r.users, id)
	return copyOf(u), nil
}

// FindByUsername busca secundária por username.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return copyOf(u), nil
		}
	}
	return nil, nil
}

// FindByEmail busca secundária por email.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return copyOf(u), nil
		}
	}
	return nil, nil
}

// ExistsByUsername sonda de unicidade.
func (r *UserRepo) ExistsByUsername(username string) (bool, error) {
	u, err := r.FindByUsername(username)
	return u != nil, err
}

// ExistsByEmail sonda de unicidade.
func (r *UserRepo) ExistsByEmail(email string) (bool, error) {
	u, err := r.FindByEmail(email)
	return u != nil, err
}

// Scan varre os registros na ordem dos IDs a partir do cursor.
// Cursor de retorno vazio quando a página não está cheia (varredura exausta).
func (r *UserRepo) Scan(cursor string, limit int) ([]*entity.User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		if cursor == "" || id > cursor {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var page []*entity.User
	for _, id := range ids {
		if len(page) == limit {
			break
		}
		u := r.users[id]
		page = append(page, copyOf(u))
	}

	nextKey := ""
	if limit > 0 && len(page) == limit {
		nextKey = page[len(page)-1].ID
	}
	return page, nextKey, nil
}

func copyOf(u entity.User) *entity.User {
	c := u
	c.PasswordHistory = append([]string(nil), u.PasswordHistory...)
	return &c
}
