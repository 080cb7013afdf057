package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Electrotienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Electrotienda-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "electrotienda-test"
)

// signToken firma un token de pruebas; role vacío emula un token sin claim de rol.
func signToken(t *testing.T, role, issuer string, ttl time.Duration) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, testUserID, role, issuer, ttl)
	require.NoError(t, err)
	return "Bearer " + tok
}

func tokenForRole(t *testing.T, role string) string {
	return signToken(t, role, testIssuer, time.Hour)
}

// guardedApp expone GET /bodega y GET /mostrador con las mismas guardas que usa el router.
func guardedApp() *fiber.App {
	app := fiber.New()
	auth := apphttp.AuthMiddleware(testJWTSecret, testIssuer)
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	}
	app.Get("/bodega", auth, apphttp.RequireRole(entity.RoleAdmin, entity.RoleBodeguero), ok)
	app.Get("/mostrador", auth, apphttp.RequireRole(entity.RoleAdmin, entity.RoleVendedor), ok)
	return app
}

func TestRequireRole_Matriz(t *testing.T) {
	app := guardedApp()
	cases := []struct {
		path, role string
		want       int
	}{
		{"/bodega", entity.RoleAdmin, http.StatusOK},
		{"/bodega", entity.RoleBodeguero, http.StatusOK},
		{"/bodega", entity.RoleVendedor, http.StatusForbidden},
		{"/mostrador", entity.RoleAdmin, http.StatusOK},
		{"/mostrador", entity.RoleVendedor, http.StatusOK},
		{"/mostrador", entity.RoleBodeguero, http.StatusForbidden},
		{"/mostrador", "cajero", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.path+"/"+tc.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.Header.Set("Authorization", tokenForRole(t, tc.role))
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := guardedApp()
	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema distinto", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"expirado", signToken(t, entity.RoleAdmin, testIssuer, -time.Hour), "INVALID_TOKEN"},
		{"otro emisor", signToken(t, entity.RoleAdmin, "otra-app", time.Hour), "INVALID_TOKEN"},
		{"sin rol", signToken(t, "", testIssuer, time.Hour), "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/bodega", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}

func TestRequireRole_ForbiddenIncluyeCodigo(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/bodega", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleVendedor))
	resp, err := guardedApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
	assert.Contains(t, string(body), "vendedor")
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/mostrador", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleVendedor))
	resp, err := guardedApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, entity.RoleVendedor, body["role"])
}
