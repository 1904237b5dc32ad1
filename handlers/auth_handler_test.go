package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	payload := fiber.Map{
		"name":     "alice",
		"email":    "alice@example.com",
		"password": "secret-pass",
	}
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["avatar_url"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, status)
}

func TestLogin(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     "alice",
		"email":    "alice@example.com",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": "secret-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}
