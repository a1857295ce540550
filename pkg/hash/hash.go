// Package hash encapsula o hashing de credenciais com bcrypt.
package hash

import "golang.org/x/crypto/bcrypt"

// Hash gera o hash bcrypt (salt aleatório) da senha em texto.
func Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara a senha em texto com um hash armazenado em tempo constante.
func Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
