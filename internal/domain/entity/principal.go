package entity

// Principal identidade autenticada da requisição, extraída do token já validado
// pelo filtro de autenticação. Passada explicitamente para o serviço de usuários.
type Principal struct {
	ID   string
	Role Role
}

// PrincipalOf deriva o Principal de um usuário carregado.
func PrincipalOf(u *User) Principal {
	return Principal{ID: u.ID, Role: u.Role}
}

// CanManageUser regra "self-or-admin": o ator pode alterar o usuário alvo se for
// ADMIN ou se for o próprio alvo.
func (p Principal) CanManageUser(targetID string) bool {
	return p.Role == RoleAdmin || p.ID == targetID
}

// IsAdmin regra "admin-only", usada para troca de role e status.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
