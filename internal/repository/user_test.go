package repository

import (
	"context"
	"testing"

	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	resetTables(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	first := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, first))

	dup := &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, models.HTTPStatus(err))
}

func TestUserRepository_GetByUsername(t *testing.T) {
	resetTables(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	createTestUser(t, "alice")

	user, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = repo.GetByUsername(ctx, "nobody")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, models.HTTPStatus(err))
}

func TestUserRepository_GetByEmail_MissingIsNotAnError(t *testing.T) {
	resetTables(t)
	repo := NewUserRepository(testDB)

	user, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_Search(t *testing.T) {
	resetTables(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	alice := createTestUser(t, "alice")
	createTestUser(t, "alicia")
	createTestUser(t, "malice")

	prefix, err := repo.SearchPrefix(ctx, "Ali", alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, prefix, 1, "prefix match, requester excluded")
	assert.Equal(t, "alicia", prefix[0].Username)

	contains, err := repo.SearchContains(ctx, "ali", alice.ID, 10)
	require.NoError(t, err)
	assert.Len(t, contains, 2)
}

func TestUserRepository_UpdateImages(t *testing.T) {
	resetTables(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	alice := createTestUser(t, "alice")
	err := repo.UpdateImages(ctx, alice.ID, map[string]interface{}{"profile_image": "uploads/p.png"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "uploads/p.png", got.ProfileImage)
}
