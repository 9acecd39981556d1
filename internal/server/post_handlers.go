package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. Mention and follower notifications are
// written in the same transaction as the post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), currentUserID(c), req.Content)
	if err != nil {
		return models.RespondError(c, err)
	}

	view := models.NewPostView(post, currentUserID(c))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"post":    view,
	})
}

// GetFeed handles GET /api/posts. The feed is the viewer's own posts plus
// posts from followed users, newest first, paginated.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	views, err := s.postService.Feed(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"posts":   views,
	})
}

// DeletePost handles DELETE /api/posts/:id. Author only.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.postService.DeletePost(c.Context(), currentUserID(c), postID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Chirp deleted",
	})
}

// React handles POST /api/react. The response carries the toggled state and
// the recomputed count for that kind.
func (s *Server) React(c *fiber.Ctx) error {
	var req struct {
		PostID uint   `json:"post_id"`
		Kind   string `json:"kind"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	result, err := s.postService.React(c.Context(), currentUserID(c), req.PostID, models.ReactionKind(req.Kind))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"toggled":  result.Toggled,
		"newCount": result.NewCount,
	})
}

// GetBookmarks handles GET /api/bookmarks.
func (s *Server) GetBookmarks(c *fiber.Ctx) error {
	views, err := s.postService.Bookmarks(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"posts":   views,
	})
}
