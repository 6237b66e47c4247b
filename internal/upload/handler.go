package upload

import (
	"io"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	saver *Saver
}

func NewHandler(saver *Saver) *Handler {
	return &Handler{saver: saver}
}

// RegisterProtectedRoutes attaches the upload endpoint behind the admin guard.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App, guard fiber.Handler) {
	app.Post("/api/upload", guard, h.uploadImage)
}

func (h *Handler) uploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "image is required"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
	}

	path, err := h.saver.Save(fh.Filename, data)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(fiber.Map{"success": true, "path": path})
}
