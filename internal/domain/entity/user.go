package entity

import (
	"strings"
	"time"
)

// Role papel do usuário no sistema.
type Role string

// Roles válidos.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole converte uma string em Role. Retorna false se não for um papel válido.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Status estado da conta.
type Status string

// Status válidos. Somente ACTIVE pode fazer login; BLOCKED também nega checagens de bloqueio.
const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusBlocked  Status = "BLOCKED"
)

// ParseStatus converte uma string em Status. Retorna false se não for um estado válido.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, true
	case StatusInactive:
		return StatusInactive, true
	case StatusBlocked:
		return StatusBlocked, true
	}
	return "", false
}

// MaxPasswordHistory limite de hashes antigos guardados para bloquear reuso de senha.
const MaxPasswordHistory = 3

// User entidade única do serviço. ID é a chave de partição da tabela e nunca muda.
type User struct {
	ID              string
	Username        string
	Email           string
	PasswordHash    string   // hash bcrypt, nunca a senha em texto
	PasswordHistory []string // até MaxPasswordHistory hashes anteriores, o mais antigo primeiro
	Role            Role
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive indica se a conta pode autenticar.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsNotLocked indica se a conta não está bloqueada (checagem de lock separada do login).
func (u *User) IsNotLocked() bool {
	return u.Status != StatusBlocked
}

// PushPasswordHistory adiciona o hash atual ao histórico, descartando o mais
// antigo quando o limite de MaxPasswordHistory seria excedido.
func (u *User) PushPasswordHistory(currentHash string) {
	if len(u.PasswordHistory) >= MaxPasswordHistory {
		u.PasswordHistory = u.PasswordHistory[1:]
	}
	u.PasswordHistory = append(u.PasswordHistory, currentHash)
}
