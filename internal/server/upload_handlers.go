package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// maxUploadBytes caps uploaded image size at 5 MB.
const maxUploadBytes = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// UploadProfileImage handles POST /api/upload/profile-image.
func (s *Server) UploadProfileImage(c *fiber.Ctx) error {
	return s.uploadUserImage(c, "profile")
}

// UploadBannerImage handles POST /api/upload/banner-image.
func (s *Server) UploadBannerImage(c *fiber.Ctx) error {
	return s.uploadUserImage(c, "banner")
}

func (s *Server) uploadUserImage(c *fiber.Ctx, kind string) error {
	userID := currentUserID(c)

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}
	if file.Size > maxUploadBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image must be 5MB or smaller"))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image must be png, jpg, jpeg, gif or webp"))
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// Generated name avoids collisions and path traversal from the original
	// filename.
	name := fmt.Sprintf("%s_%d_%d_%s%s", kind, userID, time.Now().Unix(), uuid.New().String()[:8], ext)
	if err := c.SaveFile(file, filepath.Join(s.config.UploadDir, name)); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// The user row stores the path relative to the static root.
	relPath := "uploads/" + name

	var url string
	if kind == "profile" {
		url, err = s.userService.UpdateProfileImage(c.Context(), userID, relPath)
	} else {
		url, err = s.userService.UpdateBannerImage(c.Context(), userID, relPath)
	}
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"path":    relPath,
		"url":     url,
	})
}
