package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleFollow handles POST /api/follow. The response names the action taken.
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	action, err := s.followService.ToggleFollow(c.Context(), currentUserID(c), req.Username)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"action":  action,
	})
}

// GetFollowing handles GET /api/follow. Returns the users the viewer follows,
// used by the message compose picker.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	users, err := s.followService.Following(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	type entry struct {
		Username string `json:"username"`
		UserID   uint   `json:"user_id"`
	}
	list := make([]entry, 0, len(users))
	for _, u := range users {
		list = append(list, entry{Username: u.Username, UserID: u.ID})
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"following": list,
	})
}

// GetRelationships handles GET /api/relationships/:viewType/:username.
func (s *Server) GetRelationships(c *fiber.Ctx) error {
	viewType := c.Params("viewType")
	username := c.Params("username")

	views, err := s.followService.Relationships(c.Context(), currentUserID(c), viewType, username)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"users":   views,
	})
}

// RemoveFollower handles POST /api/remove_follower. Deletes the edge where the
// named user follows the viewer.
func (s *Server) RemoveFollower(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	if err := s.followService.RemoveFollower(c.Context(), currentUserID(c), req.Username); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Follower removed",
	})
}
