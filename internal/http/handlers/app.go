package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	applog "pricewatch/internal/log"
	"pricewatch/web"
)

// NewApp wires middlewares and routes for the tracking form.
func NewApp(deps *Deps) *fiber.App {
	engine := html.NewFileSystem(web.Templates(), ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			code := fiber.StatusInternalServerError
			msg := "Something went wrong. Please try again."
			var fe *fiber.Error
			if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
				code = fe.Code
				msg = "Request could not be handled."
			}
			if rerr := c.Status(code).Render("error", fiber.Map{"Message": msg}); rerr != nil {
				return c.Status(code).SendString(msg)
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(fiberrecover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())

	app.Get("/", deps.HomeHandler.Index)
	app.Post("/track-url", deps.TrackHandler.Submit)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("error", fiber.Map{"Message": "Page not found"})
	})

	return app
}
