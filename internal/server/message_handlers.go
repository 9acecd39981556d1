package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetConversations handles GET /api/messages/conversations.
func (s *Server) GetConversations(c *fiber.Ctx) error {
	conversations, err := s.messageService.Conversations(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"conversations": conversations,
	})
}

// GetMessageHistory handles GET /api/messages/:username. Fetching the thread
// marks the partner's messages to the viewer as read.
func (s *Server) GetMessageHistory(c *fiber.Ctx) error {
	views, err := s.messageService.History(c.Context(), currentUserID(c), c.Params("username"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"messages": views,
	})
}

// SendMessage handles POST /api/messages/:username. Returns the stored message
// for optimistic display.
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.messageService.Send(c.Context(), currentUserID(c), c.Params("username"), req.Content)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": view,
	})
}
