package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	applog "pricewatch/internal/log"
	"pricewatch/internal/repos"
	"pricewatch/internal/services"
)

const (
	msgTracked     = "Product URL successfully added for tracking!"
	msgTrackFailed = "Failed to add product URL for tracking."
	msgURLRequired = "URL is required."
)

type TrackHandler struct {
	Tracking *services.TrackingService
}

// Submit handles the productUrl form post and redirects back to the form with
// either ?message= or ?error=.
func (h *TrackHandler) Submit(c *fiber.Ctx) error {
	raw := c.FormValue("productUrl")
	t, err := h.Tracking.Track(raw)
	switch {
	case errors.Is(err, services.ErrURLRequired):
		applog.Info(c, "track.reject", map[string]any{"reason": "missing url"})
		return backToForm(c, "error", msgURLRequired)
	case errors.Is(err, repos.ErrConflict):
		applog.Warn(c, "track.rollback", err, map[string]any{"url": raw})
		return backToForm(c, "error", msgTrackFailed)
	case err != nil:
		applog.Error(c, "track.fail", err, map[string]any{"url": raw})
		return backToForm(c, "error", msgTrackFailed)
	}
	applog.Audit(c, "track.add", map[string]any{"id": t.ID, "url": t.URL})
	return backToForm(c, "message", msgTracked)
}

func backToForm(c *fiber.Ctx, key, msg string) error {
	return c.Redirect("/?"+url.Values{key: {msg}}.Encode(), fiber.StatusSeeOther)
}
