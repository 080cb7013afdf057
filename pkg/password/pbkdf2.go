// Package password hashea y verifica contraseñas con PBKDF2-SHA256.
//
// Formato almacenado: pbkdf2_sha256$<iteraciones>$<salt base64>$<hash base64>
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	algorithm         = "pbkdf2_sha256"
	DefaultIterations = 100_000
	saltLen           = 16
	keyLen            = 32
)

// ErrMalformedHash el hash almacenado no tiene el formato esperado.
var ErrMalformedHash = errors.New("password: hash con formato inválido")

// Hash genera el hash PBKDF2 de plain con un salt aleatorio.
func Hash(plain string) (string, error) {
	return HashWithIterations(plain, DefaultIterations)
}

// HashWithIterations permite fijar las iteraciones (tests usan valores bajos).
func HashWithIterations(plain string, iterations int) (string, error) {
	if iterations <= 0 {
		return "", fmt.Errorf("password: iteraciones inválidas %d", iterations)
	}
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generar salt: %w", err)
	}
	key := pbkdf2.Key([]byte(plain), salt, iterations, keyLen, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s", algorithm, iterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify compara plain contra el hash almacenado en tiempo constante.
func Verify(plain, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != algorithm {
		return false, ErrMalformedHash
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false, ErrMalformedHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}
	got := pbkdf2.Key([]byte(plain), salt, iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
