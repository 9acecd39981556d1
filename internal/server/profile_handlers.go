package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile/:username. Returns the profile header
// plus the user's posts annotated for the viewer.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	result, err := s.userService.Profile(c.Context(), currentUserID(c), c.Params("username"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"profile": result.Profile,
		"posts":   result.Posts,
	})
}

// GetLikedPosts handles GET /api/profile/:username/liked.
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	views, err := s.userService.LikedPosts(c.Context(), currentUserID(c), c.Params("username"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"posts":   views,
	})
}

// GetRetweetedPosts handles GET /api/profile/:username/retweeted.
func (s *Server) GetRetweetedPosts(c *fiber.Ctx) error {
	views, err := s.userService.RetweetedPosts(c.Context(), currentUserID(c), c.Params("username"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"posts":   views,
	})
}

// GetCommentedPosts handles GET /api/profile/:username/commented.
func (s *Server) GetCommentedPosts(c *fiber.Ctx) error {
	views, err := s.userService.CommentedPosts(c.Context(), currentUserID(c), c.Params("username"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"posts":   views,
	})
}
