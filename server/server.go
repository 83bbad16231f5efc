// Package server exposes the video analysis pipeline over HTTP.
package server

import (
	"strings"

	"tubewise/shared/cache"
	"tubewise/shared/monitoring"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

type Server struct {
	coordinator Coordinator
	cache       *cache.Cache
	monitor     *monitoring.Monitor
	validate    *validator.Validate
}

func New(coord Coordinator, artifactCache *cache.Cache, monitor *monitoring.Monitor) *Server {
	return &Server{
		coordinator: coord,
		cache:       artifactCache,
		monitor:     monitor,
		validate:    validator.New(),
	}
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		// Frame payloads make some responses large.
		BodyLimit: 16 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(logger.New())

	app.Get("/", s.handleWelcome)
	app.Get("/health", s.handleHealth)

	apiV1 := app.Group("/api/v1")
	apiV1.Post("/questions", s.handleQuestion)
	apiV1.Post("/videos/transcript", s.handleTranscript)
	apiV1.Post("/videos/summary", s.handleSummary)
	apiV1.Get("/cache/stats", s.handleCacheStats)
	apiV1.Delete("/cache", s.handleClearCache)

	return app
}

// validateYouTubeURL rejects empty or non-YouTube URLs before any
// extraction work starts.
func validateYouTubeURL(url string) error {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a YouTube URL")
	}
	if !strings.Contains(trimmed, "youtube.com") && !strings.Contains(trimmed, "youtu.be") {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a valid YouTube URL")
	}
	return nil
}
