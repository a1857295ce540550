package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibh/user-service/internal/domain/entity"
)

func newUser(id, username, email string) *entity.User {
	now := time.Now()
	return &entity.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestSaveEFindByID_CopiaDefensiva(t *testing.T) {
	repo := NewUserRepository()
	u := newUser("u1", "alice", "a@x.com")
	u.PasswordHistory = []string{"h1"}
	require.NoError(t, repo.Save(u))

	// mutações no objeto original não vazam para o repositório
	u.Username = "mutado"
	u.PasswordHistory[0] = "h-mutado"

	stored, err := repo.FindByID("u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, []string{"h1"}, stored.PasswordHistory)
}

func TestFindByID_Ausente(t *testing.T) {
	repo := NewUserRepository()
	stored, err := repo.FindByID("nao-existe")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSave_UpsertPeloID(t *testing.T) {
	repo := NewUserRepository()
	require.NoError(t, repo.Save(newUser("u1", "alice", "a@x.com")))

	atualizado := newUser("u1", "alicia", "a@x.com")
	require.NoError(t, repo.Save(atualizado))

	stored, err := repo.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "alicia", stored.Username)
}

func TestDeleteByID_RetornaORegistroRemovido(t *testing.T) {
	repo := NewUserRepository()
	require.NoError(t, repo.Save(newUser("u1", "alice", "a@x.com")))

	deleted, err := repo.DeleteByID("u1")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "alice", deleted.Username)

	// segunda remoção: ausente, sem erro
	deleted, err = repo.DeleteByID("u1")
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestBuscasSecundariasESondas(t *testing.T) {
	repo := NewUserRepository()
	require.NoError(t, repo.Save(newUser("u1", "alice", "a@x.com")))

	byUsername, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, byUsername)

	byEmail, err := repo.FindByEmail("a@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	ok, err := repo.ExistsByUsername("alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByEmail("b@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScan_CursorPercorreTodaATabela(t *testing.T) {
	repo := NewUserRepository()
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("u%02d", i)
		require.NoError(t, repo.Save(newUser(id, "user"+id, id+"@x.com")))
	}

	page1, next, err := repo.Scan("", 3)
	require.NoError(t, err)
	assert.Len(t, page1, 3)
	assert.Equal(t, page1[2].ID, next, "cursor é o id do último item retornado")

	page2, next, err := repo.Scan(next, 3)
	require.NoError(t, err)
	assert.Len(t, page2, 3)

	page3, next, err := repo.Scan(next, 3)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
	assert.Empty(t, next, "varredura exausta não devolve cursor")
}
