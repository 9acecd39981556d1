package server

import (
	"chirp/internal/middleware"
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. Retrieval marks the
// returned unread notifications as read in the same transaction; on failure
// nothing is marked and the client sees a generic 500.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	views, err := s.notificationService.Recent(c.Context(), currentUserID(c))
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "notification retrieval failed", "error", err)
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"notifications": views,
	})
}
