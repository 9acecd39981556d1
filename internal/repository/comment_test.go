package repository

import (
	"context"
	"testing"
	"time"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndList(t *testing.T) {
	resetTables(t)
	repo := NewCommentRepository(testDB)
	ctx := context.Background()

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	post := createTestPost(t, alice.ID, "post", time.Now())

	base := time.Now().Add(-10 * time.Minute)
	require.NoError(t, repo.Create(ctx, &models.Comment{UserID: bob.ID, PostID: post.ID, Content: "first", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &models.Comment{UserID: alice.ID, PostID: post.ID, Content: "second", CreatedAt: base.Add(time.Minute)}))

	comments, err := repo.ByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	// Oldest first, authors preloaded.
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "bob", comments[0].User.Username)
	assert.Equal(t, "second", comments[1].Content)

	count, err := repo.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
