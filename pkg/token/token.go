// Package token emite e valida os bearer tokens JWT do serviço.
// Tokens são stateless: não há lista de revogação; logout é descarte no cliente.
// Atualizações de conta reemitem o token para refletir os claims novos.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Erros de validação de token (conjunto fechado).
var (
	ErrExpired          = errors.New("token expirado")
	ErrInvalidSignature = errors.New("falha na verificação do token")
	ErrMalformed        = errors.New("token inválido")
)

// TTL validade do token a partir da emissão.
const TTL = 2 * time.Hour

// A expiração é calculada no relógio de parede de Brasília (UTC-3),
// compatível com os tokens emitidos pela versão anterior do serviço.
var zonaBrasilia = time.FixedZone("-03:00", -3*60*60)

// Claims claims registrados mais o papel do usuário.
// O papel serve apenas para inspeção do cliente: a autorização sempre
// recarrega o registro vivo, o claim não é confiado.
type Claims struct {
	jwt.RegisteredClaims
	Roles string `json:"roles"`
}

// Service emite e valida tokens assinados com segredo simétrico (HS256).
type Service struct {
	secret string
	issuer string
	now    func() time.Time
}

// NewService constrói o serviço de tokens.
func NewService(secret, issuer string) *Service {
	return &Service{secret: secret, issuer: issuer, now: time.Now}
}

// Generate emite um token compacto com issuer, subject (username), claim roles
// e expiração em agora+2h no relógio UTC-3.
func (s *Service) Generate(subject, role string) (string, error) {
	if s.secret == "" {
		return "", fmt.Errorf("token: segredo vazio")
	}
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.expirationFrom(now)),
		},
		Roles: role,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// Validate verifica assinatura, issuer e expiração e devolve o subject.
// Retorna ErrExpired, ErrInvalidSignature ou ErrMalformed conforme a falha.
func (s *Service) Validate(tokenString string) (string, error) {
	if s.secret == "" {
		return "", fmt.Errorf("token: segredo vazio")
	}
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return "", mapError(err)
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return "", ErrInvalidSignature
	}
	return claims.Subject, nil
}

func (s *Service) expirationFrom(now time.Time) time.Time {
	wall := time.Date(now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), zonaBrasilia)
	return wall.Add(TTL)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		// assinatura inválida, issuer errado, token não verificável
		return ErrInvalidSignature
	}
}
