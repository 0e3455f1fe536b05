package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mockmate/interview-coach/internal/config"
	"mockmate/interview-coach/internal/middleware"
	"mockmate/interview-coach/internal/repositories"
)

var testDBCounter atomic.Int64

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))

	store := session.New()
	authHandler := NewAuthHandler(repositories.NewUserRepository(db), store)

	app := fiber.New()
	app.Post("/auth/register", authHandler.HandleRegister)
	app.Post("/auth/login", authHandler.HandleLogin)
	app.Post("/auth/logout", authHandler.HandleLogout)

	authed := app.Group("/", middleware.RequireAuth(store))
	authed.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": middleware.CurrentUserID(c).String()})
	})

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRegister_Validation(t *testing.T) {
	app := newAuthApp(t)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"short name", map[string]string{"full_name": "J", "email": "j@example.com", "password": "password123"}},
		{"bad email", map[string]string{"full_name": "Jane Doe", "email": "not-an-email", "password": "password123"}},
		{"short password", map[string]string{"full_name": "Jane Doe", "email": "j@example.com", "password": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/auth/register", tt.payload)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app := newAuthApp(t)
	payload := map[string]string{"full_name": "Jane Doe", "email": "jane@example.com", "password": "password123"}

	resp := postJSON(t, app, "/auth/register", payload)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/register", payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRegister_EmailNormalized(t *testing.T) {
	app := newAuthApp(t)

	resp := postJSON(t, app, "/auth/register", map[string]string{
		"full_name": "Jane Doe", "email": "  Jane@Example.COM ", "password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "jane@example.com", body["email"])
	assert.NotContains(t, body, "password_hash")
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newAuthApp(t)

	resp := postJSON(t, app, "/auth/register", map[string]string{
		"full_name": "Jane Doe", "email": "jane@example.com", "password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", map[string]string{
		"email": "jane@example.com", "password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_UnknownEmail(t *testing.T) {
	app := newAuthApp(t)

	resp := postJSON(t, app, "/auth/login", map[string]string{
		"email": "ghost@example.com", "password": "password123",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_SessionGrantsAccess(t *testing.T) {
	app := newAuthApp(t)

	resp := postJSON(t, app, "/auth/register", map[string]string{
		"full_name": "Jane Doe", "email": "jane@example.com", "password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// No session: protected routes reject the request.
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	noSession, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, noSession.StatusCode)

	resp = postJSON(t, app, "/auth/login", map[string]string{
		"email": "jane@example.com", "password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			cookie = c.Value
		}
	}
	require.NotEmpty(t, cookie, "login must set the session cookie")

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: cookie})
	withSession, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, withSession.StatusCode)
}
