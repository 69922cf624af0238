package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type HomeHandler struct{}

// Index renders the tracking form with the outcome of the last submission, if any.
func (h *HomeHandler) Index(c *fiber.Ctx) error {
	return render(c, "index", fiber.Map{
		"Message": c.Query("message"),
		"Error":   c.Query("error"),
	})
}
