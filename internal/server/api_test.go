package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/middleware"
	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testApp    *fiber.App
	testServer *Server
	testDB     *gorm.DB
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open("file:chirpapi?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("API tests skipped: in-memory database unavailable: %v", err)
		os.Exit(0)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("API tests skipped: %v", err)
		os.Exit(0)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		log.Printf("API tests skipped: migration failed: %v", err)
		os.Exit(0)
	}
	testDB = db

	cfg := &config.Config{
		Port:          "0",
		Env:           "test",
		JWTSecret:     "test-secret",
		StaticBaseURL: "/static",
		UploadDir:     os.TempDir(),
	}
	middleware.InitMiddleware(cfg)

	testServer, err = NewServerWithDeps(cfg, db, nil)
	if err != nil {
		log.Printf("API tests skipped: server setup failed: %v", err)
		os.Exit(0)
	}
	testApp = fiber.New()
	testServer.SetupRoutes(testApp)

	os.Exit(m.Run())
}

func resetAPITables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"messages", "notifications", "follows", "comments", "reactions", "posts", "users"} {
		require.NoError(t, testDB.Exec("DELETE FROM "+table).Error)
	}
}

func doJSON(t *testing.T, method, target, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := testApp.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

// signupUser registers a user through the API and returns their token.
func signupUser(t *testing.T, username string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup %s: %v", username, body)
	return body["token"].(string)
}

func TestAuthFlow(t *testing.T) {
	resetAPITables(t)

	token := signupUser(t, "alice")
	require.NotEmpty(t, token)

	// Duplicate username conflicts.
	resp, body := doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice",
		"email":    "alice2@example.com",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	// Login with correct credentials.
	resp, body = doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	// Wrong password is a 401, indistinguishable from unknown email.
	resp, _ = doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Protected routes without a token are rejected.
	resp, _ = doJSON(t, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPostFeedAndReactions(t *testing.T) {
	resetAPITables(t)

	alice := signupUser(t, "alice")
	bob := signupUser(t, "bob")

	// Bob follows alice.
	resp, body := doJSON(t, http.MethodPost, "/api/follow", bob, map[string]string{"username": "alice"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "followed", body["action"])

	// Alice posts; bob should get a new_post notification and see it in feed.
	resp, body = doJSON(t, http.MethodPost, "/api/posts", alice, map[string]string{"content": "first chirp"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	post := body["post"].(map[string]any)
	postID := uint(post["id"].(float64))
	assert.Equal(t, true, post["canDelete"])

	resp, body = doJSON(t, http.MethodGet, "/api/posts", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	posts := body["posts"].([]any)
	require.Len(t, posts, 1)
	feedPost := posts[0].(map[string]any)
	assert.Equal(t, "first chirp", feedPost["content"])
	assert.Equal(t, false, feedPost["canDelete"])

	resp, body = doJSON(t, http.MethodGet, "/api/notifications", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notifications := body["notifications"].([]any)
	require.Len(t, notifications, 1)
	assert.Equal(t, "new_post", notifications[0].(map[string]any)["type"])

	// Bob likes the post twice: on, then off.
	resp, body = doJSON(t, http.MethodPost, "/api/react", bob, map[string]any{"post_id": postID, "kind": "LIKE"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["toggled"])
	assert.Equal(t, float64(1), body["newCount"])

	resp, body = doJSON(t, http.MethodPost, "/api/react", bob, map[string]any{"post_id": postID, "kind": "LIKE"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["toggled"])
	assert.Equal(t, float64(0), body["newCount"])

	// Unknown reaction kind is rejected.
	resp, _ = doJSON(t, http.MethodPost, "/api/react", bob, map[string]any{"post_id": postID, "kind": "FAVORITE"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Bob cannot delete alice's post.
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), bob, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Alice can.
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), alice, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Reacting to the deleted post is a 404.
	resp, _ = doJSON(t, http.MethodPost, "/api/react", bob, map[string]any{"post_id": postID, "kind": "LIKE"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMentionNotification(t *testing.T) {
	resetAPITables(t)

	alice := signupUser(t, "alice")
	bob := signupUser(t, "bob")
	_ = bob

	resp, _ := doJSON(t, http.MethodPost, "/api/posts", alice, map[string]string{"content": "hey @bob check this"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var notifications []models.Notification
	require.NoError(t, testDB.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationMention, notifications[0].Kind)
}

func TestCommentFlow(t *testing.T) {
	resetAPITables(t)

	alice := signupUser(t, "alice")
	bob := signupUser(t, "bob")

	resp, body := doJSON(t, http.MethodPost, "/api/posts", alice, map[string]string{"content": "comment on me"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	postID := uint(body["post"].(map[string]any)["id"].(float64))

	resp, body = doJSON(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), bob, map[string]string{"content": "nice chirp"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["comment_count"])
	commentID := uint(body["comment"].(map[string]any)["id"].(float64))

	resp, body = doJSON(t, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", postID), alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	comments := body["comments"].([]any)
	require.Len(t, comments, 1)
	assert.Equal(t, "bob", comments[0].(map[string]any)["username"])

	// Only the comment author can delete it.
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), alice, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), bob, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMessagingFlow(t *testing.T) {
	resetAPITables(t)

	alice := signupUser(t, "alice")
	bob := signupUser(t, "bob")

	resp, _ := doJSON(t, http.MethodPost, "/api/messages/bob", alice, map[string]string{"content": "hi bob"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Self-send rejected.
	resp, _ = doJSON(t, http.MethodPost, "/api/messages/alice", alice, map[string]string{"content": "dear me"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, "/api/messages/conversations", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	conversations := body["conversations"].([]any)
	require.Len(t, conversations, 1)
	conv := conversations[0].(map[string]any)
	assert.Equal(t, "alice", conv["partner_username"])
	assert.Equal(t, float64(1), conv["unread_count"])

	// Reading the history marks it read.
	resp, body = doJSON(t, http.MethodGet, "/api/messages/alice", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	messages := body["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, false, messages[0].(map[string]any)["is_outgoing"])

	_, body = doJSON(t, http.MethodGet, "/api/messages/conversations", bob, nil)
	conversations = body["conversations"].([]any)
	assert.Equal(t, float64(0), conversations[0].(map[string]any)["unread_count"])
}

func TestProfileAndSearch(t *testing.T) {
	resetAPITables(t)

	alice := signupUser(t, "alice")
	bob := signupUser(t, "bob")

	resp, _ := doJSON(t, http.MethodPost, "/api/posts", bob, map[string]string{"content": "gopher content"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, "/api/profile/bob", alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := body["profile"].(map[string]any)
	assert.Equal(t, "@bob", profile["handle"])
	assert.Equal(t, false, profile["isOwnProfile"])
	assert.Len(t, body["posts"].([]any), 1)

	resp, body = doJSON(t, http.MethodGet, "/api/search?q=gopher&type=chirps", alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["results"].([]any), 1)

	resp, body = doJSON(t, http.MethodGet, "/api/users/search?q=bo", alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := body["users"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].(map[string]any)["username"])

	// Unknown profile is a 404.
	resp, _ = doJSON(t, http.MethodGet, "/api/profile/ghost", alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRelationshipsAndRemoveFollower(t *testing.T) {
	resetAPITables(t)

	alice := signupUser(t, "alice")
	bob := signupUser(t, "bob")
	carol := signupUser(t, "carol")

	// bob and carol follow alice; alice follows carol.
	_, _ = doJSON(t, http.MethodPost, "/api/follow", bob, map[string]string{"username": "alice"})
	_, _ = doJSON(t, http.MethodPost, "/api/follow", carol, map[string]string{"username": "alice"})
	_, _ = doJSON(t, http.MethodPost, "/api/follow", alice, map[string]string{"username": "carol"})

	resp, body := doJSON(t, http.MethodGet, "/api/relationships/followers/alice", alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := body["users"].([]any)
	require.Len(t, users, 2)
	for _, raw := range users {
		u := raw.(map[string]any)
		if u["username"] == "carol" {
			assert.Equal(t, true, u["isFollowing"])
		} else {
			assert.Equal(t, false, u["isFollowing"])
		}
	}

	// Self-follow rejected.
	resp, _ = doJSON(t, http.MethodPost, "/api/follow", alice, map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Alice removes bob as a follower.
	resp, _ = doJSON(t, http.MethodPost, "/api/remove_follower", alice, map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Removing again: the edge is gone.
	resp, _ = doJSON(t, http.MethodPost, "/api/remove_follower", alice, map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
