package service

import (
	"context"
	"strings"

	"chirp/internal/models"
	"chirp/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// AddCommentResult carries the new comment plus the post's refreshed comment
// count so the client can update its counter without a refetch.
type AddCommentResult struct {
	Comment      models.CommentView `json:"comment"`
	CommentCount int64              `json:"comment_count"`
}

// AddComment creates a comment on an existing post. Content is trimmed and
// must be non-empty.
func (s *CommentService) AddComment(ctx context.Context, userID, postID uint, content string) (*AddCommentResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxPostLen {
		return nil, models.NewValidationError("Comment is too long")
	}
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}

	comment := &models.Comment{UserID: userID, PostID: postID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	count, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	created, err := s.hydrate(ctx, comment, userID)
	if err != nil {
		return nil, err
	}
	return &AddCommentResult{Comment: created, CommentCount: count}, nil
}

// ListComments returns a post's comments oldest first.
func (s *CommentService) ListComments(ctx context.Context, viewerID, postID uint) ([]models.CommentView, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, models.NewCommentView(&comments[i], viewerID))
	}
	return views, nil
}

// DeleteComment removes a comment. Only the comment's author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}

// hydrate reloads the comment with its author so the view has a username.
func (s *CommentService) hydrate(ctx context.Context, comment *models.Comment, viewerID uint) (models.CommentView, error) {
	fresh, err := s.commentRepo.ByPost(ctx, comment.PostID)
	if err != nil {
		return models.CommentView{}, err
	}
	for i := range fresh {
		if fresh[i].ID == comment.ID {
			return models.NewCommentView(&fresh[i], viewerID), nil
		}
	}
	return models.NewCommentView(comment, viewerID), nil
}
