package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	userSearchLimit      = 10
	universalSearchLimit = 20
)

// SearchUsers handles GET /api/users/search?q=. Prefix match on usernames,
// excluding the viewer, for the compose autocomplete.
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	views, err := s.userService.SearchUsersPrefix(c.Context(), currentUserID(c), c.Query("q"), userSearchLimit)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"users":   views,
	})
}

// UniversalSearch handles GET /api/search?q=&type=users|chirps.
func (s *Server) UniversalSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	searchType := c.Query("type", "chirps")

	switch searchType {
	case "users":
		views, err := s.userService.SearchUsersContains(c.Context(), currentUserID(c), query, universalSearchLimit)
		if err != nil {
			return models.RespondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"type":    "users",
			"results": views,
		})
	case "chirps":
		views, err := s.postService.SearchPosts(c.Context(), query, currentUserID(c), universalSearchLimit)
		if err != nil {
			return models.RespondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"type":    "chirps",
			"results": views,
		})
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search type must be users or chirps"))
	}
}
