package repository

import "github.com/unibh/user-service/internal/domain/entity"

// UserRepository porto de persistência para User sobre a tabela chave-valor.
// Cada operação é atômica por chave; não há transação entre campos — o serviço
// lê o registro inteiro, altera em memória e grava de volta (last-write-wins).
type UserRepository interface {
	// Save faz upsert do registro completo pelo ID.
	Save(user *entity.User) error
	// FindByID busca pela chave de partição. Retorna nil sem erro quando ausente.
	FindByID(id string) (*entity.User, error)
	// DeleteByID remove o registro e o retorna; nil sem erro quando ausente.
	DeleteByID(id string) (*entity.User, error)
	// FindByUsername e FindByEmail são buscas secundárias. Retornam nil quando ausente.
	FindByUsername(username string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// ExistsByUsername e ExistsByEmail são sondas de unicidade.
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	// Scan varre a tabela a partir do cursor (ID do último item visto; vazio =
	// início), retornando até limit itens e o próximo cursor (vazio quando a
	// varredura terminou). Sem snapshot: escritas concorrentes podem pular ou
	// duplicar itens entre páginas.
	Scan(cursor string, limit int) ([]*entity.User, string, error)
}
