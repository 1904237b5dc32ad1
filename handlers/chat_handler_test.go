package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kibet721/chat_sphere/database"
	"github.com/kibet721/chat_sphere/models"
	"github.com/kibet721/chat_sphere/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "handlers-test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.SetupJoinTable(&models.Conversation{}, "Members", &models.ConversationMember{}))
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.ConversationMember{},
		&models.Message{},
	))
	database.DB = db

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.ChatRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func registerTestUser(t *testing.T, app *fiber.App, name string) (id, token string) {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     name,
		"email":    fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusCreated, status)
	return body["id"].(string), body["token"].(string)
}

func TestChatRoutesRequireAuth(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/chats", "", fiber.Map{})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/chats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAccessChatValidation(t *testing.T) {
	app := setupApp(t)
	_, token := registerTestUser(t, app, "alice")

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/chats", token, fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAccessChatResolvesSameConversation(t *testing.T) {
	app := setupApp(t)
	_, aliceToken := registerTestUser(t, app, "alice")
	bobID, _ := registerTestUser(t, app, "bob")

	status, first := doJSON(t, app, http.MethodPost, "/api/v1/chats", aliceToken, fiber.Map{
		"target_user_id": bobID,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, first["is_group"])
	assert.Len(t, first["members"], 2)

	status, second := doJSON(t, app, http.MethodPost, "/api/v1/chats", aliceToken, fiber.Map{
		"target_user_id": bobID,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, first["id"], second["id"])
}

func TestCreateGroupChatRequiresTwoMembers(t *testing.T) {
	app := setupApp(t)
	_, aliceToken := registerTestUser(t, app, "alice")
	bobID, _ := registerTestUser(t, app, "bob")

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/chats/group", aliceToken, fiber.Map{
		"name":       "Team",
		"member_ids": []string{bobID},
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateGroupChat(t *testing.T) {
	app := setupApp(t)
	aliceID, aliceToken := registerTestUser(t, app, "alice")
	bobID, _ := registerTestUser(t, app, "bob")
	carolID, _ := registerTestUser(t, app, "carol")

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/chats/group", aliceToken, fiber.Map{
		"name":       "Team",
		"member_ids": []string{bobID, carolID},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["is_group"])
	assert.Equal(t, aliceID, body["admin_id"])
	assert.Len(t, body["members"], 3)
}

func TestRenameGroupNotFound(t *testing.T) {
	app := setupApp(t)
	_, token := registerTestUser(t, app, "alice")

	status, _ := doJSON(t, app, http.MethodPut, "/api/v1/chats/group/rename", token, fiber.Map{
		"conversation_id": uuid.NewString(),
		"name":            "Renamed",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGroupMembershipOverHTTP(t *testing.T) {
	app := setupApp(t)
	_, aliceToken := registerTestUser(t, app, "alice")
	bobID, _ := registerTestUser(t, app, "bob")
	carolID, _ := registerTestUser(t, app, "carol")
	daveID, _ := registerTestUser(t, app, "dave")

	status, group := doJSON(t, app, http.MethodPost, "/api/v1/chats/group", aliceToken, fiber.Map{
		"name":       "Team",
		"member_ids": []string{bobID, carolID},
	})
	require.Equal(t, http.StatusCreated, status)
	groupID := group["id"].(string)

	status, body := doJSON(t, app, http.MethodPut, "/api/v1/chats/group/add", aliceToken, fiber.Map{
		"conversation_id": groupID,
		"user_id":         daveID,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["members"], 4)

	status, body = doJSON(t, app, http.MethodPut, "/api/v1/chats/group/remove", aliceToken, fiber.Map{
		"conversation_id": groupID,
		"user_id":         daveID,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["members"], 3)
}
