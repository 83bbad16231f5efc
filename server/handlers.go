package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tubewise/coordinator"
	"tubewise/internal/models"
	"tubewise/shared/cache"

	"github.com/gofiber/fiber/v2"
)

// Coordinator is the analysis pipeline the handlers dispatch into.
type Coordinator interface {
	AnswerQuestion(ctx context.Context, videoURL, question string) (*models.Answer, error)
	GetTranscript(ctx context.Context, videoURL string) (*cache.TranscriptEntry, bool, error)
	Summarize(ctx context.Context, videoURL string) (*models.Answer, error)
	Stats() coordinator.Stats
}

func (s *Server) handleWelcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to the Video Analysis API!",
		"features": []string{
			"Extract transcripts from YouTube videos",
			"Ask questions about video content",
			"Visual analysis - ask about what you see in videos",
			"Smart caching for faster responses",
		},
		"endpoints": fiber.Map{
			"ask_question":    "POST /api/v1/questions - Ask any question about a video",
			"process_video":   "POST /api/v1/videos/transcript - Extract transcript only",
			"summarize_video": "POST /api/v1/videos/summary - Get video summary",
			"health":          "GET /health - Check if server is working",
			"cache_stats":     "GET /api/v1/cache/stats - View cache information",
			"clear_cache":     "DELETE /api/v1/cache - Clear cached data",
		},
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	stats := s.coordinator.Stats()
	return c.JSON(fiber.Map{
		"status":             "Server is running!",
		"coordinator_status": stats.CoordinatorStatus,
		"capabilities":       stats.Capabilities,
		"cache_stats":        stats.Cache,
		"last_run":           s.monitor.GetStatusSummary(),
		"ready":              s.monitor.IsHealthy(),
	})
}

func (s *Server) handleQuestion(c *fiber.Ctx) error {
	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a URL and a question to ask")
	}
	if err := validateYouTubeURL(req.URL); err != nil {
		return err
	}

	start := time.Now()
	answer, err := s.coordinator.AnswerQuestion(c.Context(), req.URL, req.Question)
	if err != nil {
		s.monitor.RecordFailure(err, time.Since(start))
		return answerFailure(c, req.Question, err)
	}
	s.monitor.RecordSuccess(fmt.Sprintf("answered via %s", answer.Method), time.Since(start))

	return c.JSON(QuestionResponse{
		Success:       true,
		Question:      answer.Question,
		Answer:        answer.Text,
		VideoTitle:    answer.VideoTitle,
		MethodUsed:    answer.Method,
		Message:       "Analysis complete!",
		Timestamps:    answer.Timestamps,
		HasTimestamps: answer.HasTimestamps(),
	})
}

func (s *Server) handleTranscript(c *fiber.Ctx) error {
	var req VideoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a YouTube URL")
	}
	if err := validateYouTubeURL(req.URL); err != nil {
		return err
	}

	entry, cached, err := s.coordinator.GetTranscript(c.Context(), req.URL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(VideoResponse{
			Success: false,
			Message: "Could not extract transcript from this video",
			Error:   err.Error(),
		})
	}

	method := entry.Method
	message := fmt.Sprintf("Got transcript via %s", method)
	if cached {
		method = method + " (cached)"
		message = "Retrieved from cache"
	}

	return c.JSON(VideoResponse{
		Success:    true,
		VideoTitle: entry.VideoTitle,
		Transcript: entry.Transcript,
		MethodUsed: method,
		Message:    message,
	})
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	var req VideoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a YouTube URL")
	}
	if err := validateYouTubeURL(req.URL); err != nil {
		return err
	}

	start := time.Now()
	answer, err := s.coordinator.Summarize(c.Context(), req.URL)
	if err != nil {
		s.monitor.RecordFailure(err, time.Since(start))
		return answerFailure(c, "Please provide a summary of this video", err)
	}
	s.monitor.RecordSuccess("summarized video", time.Since(start))

	return c.JSON(QuestionResponse{
		Success:       true,
		Question:      answer.Question,
		Answer:        answer.Text,
		VideoTitle:    answer.VideoTitle,
		MethodUsed:    answer.Method,
		Message:       "Analysis complete!",
		Timestamps:    answer.Timestamps,
		HasTimestamps: answer.HasTimestamps(),
	})
}

func (s *Server) handleCacheStats(c *fiber.Ctx) error {
	stats := s.coordinator.Stats()
	return c.JSON(fiber.Map{
		"cache_info":         "Current cache statistics",
		"coordinator_status": stats.CoordinatorStatus,
		"cache_details":      stats.Cache,
		"capabilities":       stats.Capabilities,
	})
}

func (s *Server) handleClearCache(c *fiber.Ctx) error {
	removed := s.cache.Clear()
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Cache cleared! Removed %d videos.", removed),
	})
}

// answerFailure maps pipeline errors onto responses. Transcript and
// frame failures are reported with their reason; everything else is a
// generic analysis failure.
func answerFailure(c *fiber.Ctx, question string, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, coordinator.ErrNoTranscript) || errors.Is(err, coordinator.ErrNoFrames) {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(QuestionResponse{
		Success:  false,
		Question: question,
		Message:  "Analysis failed",
		Error:    err.Error(),
	})
}
