package service

import (
	"context"
	"testing"

	"chirp/internal/models"
)

func TestCommentServiceAddEmpty(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	_, err := svc.AddComment(context.Background(), 1, 1, " \n ")
	requireAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestCommentServiceAddUnknownPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post not found")
	}
	svc := NewCommentService(noopCommentRepo(), posts)
	_, err := svc.AddComment(context.Background(), 1, 404, "nice")
	requireAppErrorCode(t, err, "NOT_FOUND")
}

func TestCommentServiceAddReturnsCount(t *testing.T) {
	comments := noopCommentRepo()
	comments.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 10
		return nil
	}
	comments.countByPostFn = func(context.Context, uint) (int64, error) { return 4, nil }
	comments.byPostFn = func(context.Context, uint) ([]models.Comment, error) {
		return []models.Comment{{ID: 10, UserID: 1, Content: "trimmed", User: models.User{Username: "me"}}}, nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	result, err := svc.AddComment(context.Background(), 1, 1, "  trimmed  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CommentCount != 4 {
		t.Fatalf("expected refreshed count 4, got %d", result.CommentCount)
	}
	if result.Comment.Username != "me" || !result.Comment.CanDelete {
		t.Fatalf("unexpected comment view: %#v", result.Comment)
	}
}

func TestCommentServiceDeleteForbidden(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 5, UserID: 99}, nil
	}
	svc := NewCommentService(comments, noopPostRepo())
	err := svc.DeleteComment(context.Background(), 1, 5)
	requireAppErrorCode(t, err, "FORBIDDEN")
}
