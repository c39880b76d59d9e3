package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type AppOptions struct {
	BodyLimit         int
	AccessLog         bool
	SimilarityBackend string
}

// NewApp creates the Fiber app with middleware and routes.
func NewApp(match *MatchHandler, history *HistoryHandler, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Resume Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "healthy",
			"similarity": opts.SimilarityBackend,
			"time":       time.Now(),
		})
	})

	// API endpoints
	api.Post("/match", match.HandleMatch)
	api.Get("/history", history.HandleList)
	api.Get("/history/similar", history.HandleSimilar)
	api.Get("/history/:id", history.HandleGet)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "live",
			"message": "Resume Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/match",
				"GET /api/v1/history",
				"GET /api/v1/history/similar",
				"GET /api/v1/history/:id",
			},
		})
	})

	return app
}
