package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpx "github.com/Blawness/project-tanah-garapan-sub000/internal/interfaces/http"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/jwt"
)

const testJWTSecret = "middleware-test-secret"

// buildTestApp wires three probe routes behind the real middlewares so the
// tests exercise exactly what production requests pass through.
func buildTestApp() *fiber.App {
	app := fiber.New()
	auth := httpx.AuthMiddleware(testJWTSecret)

	app.Get("/whoami", auth, func(c *fiber.Ctx) error {
		id := httpx.GetIdentity(c)
		return c.JSON(fiber.Map{"name": id.Name, "email": id.Email, "role": string(id.Role)})
	})
	app.Get("/manage", auth, httpx.RequireManageData, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/logs", auth, httpx.RequireViewLogs, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testJWTSecret, "user-1", "Siti", "siti@example.com", role, "test", 60)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestAuthMiddleware_RejectsAnonymousAndMalformed(t *testing.T) {
	app := buildTestApp()

	foreign, err := jwt.Generate("some-other-secret", "u", "n", "e", "USER", "test", 60)
	require.NoError(t, err)

	cases := map[string]string{
		"no header":       "",
		"no scheme":       tokenForRole(t, "USER"),
		"wrong scheme":    "Basic " + tokenForRole(t, "USER"),
		"garbage token":   "Bearer not-a-jwt",
		"wrong signature": "Bearer " + foreign,
	}
	for name, header := range cases {
		status, body := doRequest(t, app, "/whoami", header)
		assert.Equal(t, fiber.StatusUnauthorized, status, name)
		assert.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, string(body), name)
	}
}

func TestAuthMiddleware_ResolvesIdentityFromClaims(t *testing.T) {
	app := buildTestApp()

	status, body := doRequest(t, app, "/whoami", "Bearer "+tokenForRole(t, "MANAGER"))
	require.Equal(t, fiber.StatusOK, status)

	var got struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Siti", got.Name)
	assert.Equal(t, "siti@example.com", got.Email)
	assert.Equal(t, "MANAGER", got.Role)
}

// A token signed with the right key but carrying a role outside the closed
// set is treated as no session at all.
func TestAuthMiddleware_UnknownRoleRejected(t *testing.T) {
	app := buildTestApp()
	status, _ := doRequest(t, app, "/whoami", "Bearer "+tokenForRole(t, "SUPERADMIN"))
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRequireManageData_ByRole(t *testing.T) {
	app := buildTestApp()

	for role, want := range map[string]int{
		"USER":      fiber.StatusUnauthorized,
		"MANAGER":   fiber.StatusOK,
		"ADMIN":     fiber.StatusOK,
		"DEVELOPER": fiber.StatusOK,
	} {
		status, _ := doRequest(t, app, "/manage", "Bearer "+tokenForRole(t, role))
		assert.Equal(t, want, status, "role %s", role)
	}
}

func TestRequireViewLogs_ByRole(t *testing.T) {
	app := buildTestApp()

	for role, want := range map[string]int{
		"USER":      fiber.StatusUnauthorized,
		"MANAGER":   fiber.StatusUnauthorized,
		"ADMIN":     fiber.StatusOK,
		"DEVELOPER": fiber.StatusOK,
	} {
		status, _ := doRequest(t, app, "/logs", "Bearer "+tokenForRole(t, role))
		assert.Equal(t, want, status, "role %s", role)
	}
}
