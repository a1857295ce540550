package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unibh/user-service/internal/domain"
	"github.com/unibh/user-service/internal/domain/entity"
	"github.com/unibh/user-service/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação do porto UserRepository sobre PostgreSQL.
// Uso chave-valor: upsert do registro inteiro pelo id, varredura por keyset.
// A identidade da tabela vem da configuração e é opaca para o core.
type UserRepo struct {
	pool  *pgxpool.Pool
	table string
}

// NewUserRepository constrói o adaptador de persistência de usuários.
func NewUserRepository(pool *pgxpool.Pool, table string) *UserRepo {
	if table == "" {
		table = "users"
	}
	return &UserRepo{pool: pool, table: table}
}

const userColumns = "id, username, email, password_hash, password_history, role, status, created_at, updated_at"

// Save faz upsert do registro completo pelo id.
func (r *UserRepo) Save(user *entity.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			password_history = EXCLUDED.password_history,
			role = EXCLUDED.role,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`, r.table, userColumns)
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.PasswordHistory,
		string(user.Role), string(user.Status), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		// Índices únicos em username/email são o último recurso; a unicidade
		// é validada antes pelo serviço com as sondas de existência.
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// FindByID busca pela chave de partição. Retorna nil sem erro quando ausente.
func (r *UserRepo) FindByID(id string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userColumns, r.table)
	return r.queryOne(query, id)
}

// DeleteByID remove o registro e o retorna; nil quando ausente.
func (r *UserRepo) DeleteByID(id string) (*entity.User, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 RETURNING %s`, r.table, userColumns)
	return r.queryOne(query, id)
}

// FindByUsername busca secundária por username.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE username = $1 LIMIT 1`, userColumns, r.table)
	return r.queryOne(query, username)
}

// FindByEmail busca secundária por email.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1 LIMIT 1`, userColumns, r.table)
	return r.queryOne(query, email)
}

// ExistsByUsername sonda de unicidade de username.
func (r *UserRepo) ExistsByUsername(username string) (bool, error) {
	return r.exists(fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE username = $1)`, r.table), username)
}

// ExistsByEmail sonda de unicidade de email.
func (r *UserRepo) ExistsByEmail(email string) (bool, error) {
	return r.exists(fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE email = $1)`, r.table), email)
}

// Scan varre a tabela na ordem dos ids a partir do cursor (keyset). Sem
// snapshot: escritas concorrentes podem pular ou duplicar itens entre páginas.
func (r *UserRepo) Scan(cursor string, limit int) ([]*entity.User, string, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE ($1 = '' OR id > $1)
		ORDER BY id
		LIMIT $2`, userColumns, r.table)
	rows, err := r.pool.Query(context.Background(), query, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("scan users: %w", err)
	}
	defer rows.Close()

	var page []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, "", err
		}
		page = append(page, u)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("scan users: %w", err)
	}

	nextKey := ""
	if len(page) == limit && limit > 0 {
		nextKey = page[len(page)-1].ID
	}
	return page, nextKey, nil
}

func (r *UserRepo) queryOne(query string, arg any) (*entity.User, error) {
	row := r.pool.QueryRow(context.Background(), query, arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) exists(query string, arg any) (bool, error) {
	var ok bool
	if err := r.pool.QueryRow(context.Background(), query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return ok, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	var role, status string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.PasswordHistory,
		&role, &status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Role = entity.Role(role)
	u.Status = entity.Status(status)
	return &u, nil
}
