package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	views, err := s.commentService.ListComments(c.Context(), currentUserID(c), postID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"comments": views,
	})
}

// CreateComment handles POST /api/posts/:id/comments. The response includes
// the post's refreshed comment count.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.commentService.AddComment(c.Context(), currentUserID(c), postID, req.Content)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"comment":       result.Comment,
		"comment_count": result.CommentCount,
	})
}

// DeleteComment handles DELETE /api/comments/:id. Owner only.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.commentService.DeleteComment(c.Context(), currentUserID(c), commentID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Comment deleted",
	})
}
