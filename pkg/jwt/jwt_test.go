package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Electrotienda-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "electrotienda-test"
)

func TestGenerateYVerify(t *testing.T) {
	tok, exp, err := pkgjwt.Generate(testSecret, "user-1", "bodeguero", testIssuer, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := pkgjwt.Verify(testSecret, testIssuer, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "bodeguero", claims.Role)
}

func TestVerify_Rechazos(t *testing.T) {
	valid, _, err := pkgjwt.Generate(testSecret, "user-1", "admin", testIssuer, time.Hour)
	require.NoError(t, err)
	expired, _, err := pkgjwt.Generate(testSecret, "user-1", "admin", testIssuer, -time.Hour)
	require.NoError(t, err)
	noSub, _, err := pkgjwt.Generate(testSecret, "", "admin", testIssuer, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name, secret, issuer, token string
	}{
		{"expirado", testSecret, testIssuer, expired},
		{"secret incorrecto", "otro-secret-completamente-distinto", testIssuer, valid},
		{"emisor distinto", testSecret, "otro-emisor", valid},
		{"sin sub", testSecret, testIssuer, noSub},
		{"malformado", testSecret, testIssuer, "token.invalido.aqui"},
		{"secret vacío", "", testIssuer, valid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pkgjwt.Verify(tc.secret, tc.issuer, tc.token)
			assert.Error(t, err)
		})
	}
}

func TestVerify_SinEmisorNoLoValida(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, "user-1", "vendedor", "cualquiera", time.Hour)
	require.NoError(t, err)

	claims, err := pkgjwt.Verify(testSecret, "", tok)
	require.NoError(t, err)
	assert.Equal(t, "vendedor", claims.Role)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, _, err := pkgjwt.Generate("", "user-1", "admin", testIssuer, time.Hour)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
