package dto

// AuthErrorResponse corpo de erro das falhas de autenticação (401 do filtro).
type AuthErrorResponse struct {
	Status   int    `json:"status"`
	Erro     string `json:"erro"`
	Mensagem string `json:"mensagem"`
}

// NewAuthError monta o corpo padrão de falha de autenticação.
func NewAuthError(status int, mensagem string) AuthErrorResponse {
	return AuthErrorResponse{Status: status, Erro: "Falha na Autenticação", Mensagem: mensagem}
}

// ErrorResponse corpo de erro para validação, conflito e não-encontrado.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse corpo de erro de validação com mensagem por campo.
type ValidationErrorResponse struct {
	Status   int               `json:"status"`
	Error    string            `json:"error"`
	Messages map[string]string `json:"messages"`
}

// PaginatedResult página de itens mais o cursor para continuar a varredura.
// NextKey vazio indica que a varredura terminou.
type PaginatedResult[T any] struct {
	Items   []T    `json:"items"`
	NextKey string `json:"nextKey,omitempty"`
}
