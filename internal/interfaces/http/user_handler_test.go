package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibh/user-service/internal/application/query"
	"github.com/unibh/user-service/internal/application/usecase"
	"github.com/unibh/user-service/internal/domain/entity"
	"github.com/unibh/user-service/internal/infrastructure/memory"
	apphttp "github.com/unibh/user-service/internal/interfaces/http"
	"github.com/unibh/user-service/pkg/logger"
	"github.com/unibh/user-service/pkg/token"
)

// buildAPI monta a aplicação completa (router + filtro) sobre o repositório em memória.
func buildAPI(t *testing.T) (*fiber.App, *memory.UserRepo) {
	t.Helper()
	repo := memory.NewUserRepository()
	log := logger.Nop()
	tokens := token.NewService(testSecret, testIssuer)
	queries := query.NewUserQueryService(repo, log)
	users := usecase.NewUserService(repo, queries, tokens, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Users: users, UserRepo: repo, Tokens: tokens})
	return app, repo
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// registerAndLogin registra um usuário via API e devolve (id, token).
func registerAndLogin(t *testing.T, app *fiber.App, username, email, password string) (string, string) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"login": username, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeBody(t, resp)
	resp.Body.Close()

	return created["id"].(string), login["token"].(string)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro e login
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegisterELogin(t *testing.T) {
	app, _ := buildAPI(t)

	id, tok := registerAndLogin(t, app, "alice", "a@x.com", "pw1")
	assert.NotEmpty(t, id)
	assert.NotEmpty(t, tok)
}

func TestAPI_Register_CamposObrigatorios(t *testing.T) {
	app, _ := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{"username": "alice"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Erro de Validação", body["error"])
	msgs := body["messages"].(map[string]any)
	assert.Contains(t, msgs, "email")
	assert.Contains(t, msgs, "password")
}

func TestAPI_Register_Conflito409(t *testing.T) {
	app, _ := buildAPI(t)
	registerAndLogin(t, app, "alice", "a@x.com", "pw1")

	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"username": "alice", "email": "b@x.com", "password": "pw2",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["message"], "Username")
}

func TestAPI_Login_CredenciaisInvalidas401(t *testing.T) {
	app, _ := buildAPI(t)
	registerAndLogin(t, app, "alice", "a@x.com", "pw1")

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"login": "alice", "password": "errada",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_Login_ContaInativa403(t *testing.T) {
	app, repo := buildAPI(t)
	id, _ := registerAndLogin(t, app, "alice", "a@x.com", "pw1")

	stored, err := repo.FindByID(id)
	require.NoError(t, err)
	stored.Status = entity.StatusInactive
	require.NoError(t, repo.Save(stored))

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"login": "alice", "password": "pw1",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rotas protegidas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_UsersExigeAutenticacao(t *testing.T) {
	app, _ := buildAPI(t)

	resp := doJSON(t, app, http.MethodGet, "/users/me", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Falha na Autenticação", decodeBody(t, resp)["erro"])
}

func TestAPI_Me(t *testing.T) {
	app, _ := buildAPI(t)
	id, tok := registerAndLogin(t, app, "alice", "a@x.com", "pw1")

	resp := doJSON(t, app, http.MethodGet, "/users/me", tok, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "passwordHash", "a visão pública nunca expõe campos de senha")
}

func TestAPI_PatchUsername_ReemiteToken(t *testing.T) {
	app, _ := buildAPI(t)
	id, tok := registerAndLogin(t, app, "alice", "a@x.com", "pw1")

	resp := doJSON(t, app, http.MethodPatch, "/users/"+id+"/username", tok, fiber.Map{"username": "alicia"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "alicia", body["username"])
	assert.NotEmpty(t, body["token"], "atualização devolve token reemitido")

	// o token novo funciona no lugar do antigo
	resp2 := doJSON(t, app, http.MethodGet, "/users/me", body["token"].(string), nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestAPI_PatchRole_NaoAdmin403(t *testing.T) {
	app, _ := buildAPI(t)
	id, tok := registerAndLogin(t, app, "alice", "a@x.com", "pw1")

	resp := doJSON(t, app, http.MethodPatch, "/users/"+id+"/role", tok, fiber.Map{"role": "ADMIN"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "troca de role é admin-only, mesmo sobre a própria conta")
}

func TestAPI_PatchRole_Admin200(t *testing.T) {
	app, repo := buildAPI(t)
	id, _ := registerAndLogin(t, app, "alice", "a@x.com", "pw1")
	admin := seedUser(t, repo, "id-admin", "root", "root@x.com", "pw-admin", entity.RoleAdmin)

	tokens := token.NewService(testSecret, testIssuer)
	adminTok, err := tokens.Generate(admin.Username, string(admin.Role))
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPatch, "/users/"+id+"/role", adminTok, fiber.Map{"role": "ADMIN"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ADMIN", decodeBody(t, resp)["role"])
}

func TestAPI_PatchRole_ValorInvalido400(t *testing.T) {
	app, repo := buildAPI(t)
	id, _ := registerAndLogin(t, app, "alice", "a@x.com", "pw1")
	admin := seedUser(t, repo, "id-admin", "root", "root@x.com", "pw-admin", entity.RoleAdmin)

	adminTok, err := token.NewService(testSecret, testIssuer).Generate(admin.Username, string(admin.Role))
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPatch, "/users/"+id+"/role", adminTok, fiber.Map{"role": "SUPREMO"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Delete204(t *testing.T) {
	app, repo := buildAPI(t)
	id, tok := registerAndLogin(t, app, "alice", "a@x.com", "pw1")

	resp := doJSON(t, app, http.MethodDelete, "/users/"+id, tok, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	stored, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Nil(t, stored, "remoção é permanente, sem soft delete")
}

func TestAPI_ListaPaginada(t *testing.T) {
	app, _ := buildAPI(t)
	_, tok := registerAndLogin(t, app, "alice", "a@x.com", "pw1")
	registerAndLogin(t, app, "bob", "b@x.com", "pw2")
	registerAndLogin(t, app, "carol", "c@x.com", "pw3")

	resp := doJSON(t, app, http.MethodGet, "/users/?limit=2", tok, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	items := body["items"].([]any)
	assert.Len(t, items, 2)
	require.NotEmpty(t, body["nextKey"])

	resp2 := doJSON(t, app, http.MethodGet, "/users/?limit=2&lastKey="+body["nextKey"].(string), tok, nil)
	defer resp2.Body.Close()
	body2 := decodeBody(t, resp2)
	assert.Len(t, body2["items"].([]any), 1)
	assert.Nil(t, body2["nextKey"], "última página não devolve cursor")
}
