package server

import "tubewise/internal/models"

// VideoRequest asks for transcript-level processing of one video.
type VideoRequest struct {
	URL string `json:"url" validate:"required"`
}

// QuestionRequest asks a question about one video.
type QuestionRequest struct {
	URL      string `json:"url" validate:"required"`
	Question string `json:"question" validate:"required"`
}

// VideoResponse is the result of transcript extraction.
type VideoResponse struct {
	Success    bool               `json:"success"`
	VideoTitle string             `json:"video_title,omitempty"`
	Transcript *models.Transcript `json:"transcript,omitempty"`
	MethodUsed string             `json:"method_used,omitempty"`
	Message    string             `json:"message"`
	Error      string             `json:"error,omitempty"`
}

// QuestionResponse is the result of answering a question.
type QuestionResponse struct {
	Success       bool                  `json:"success"`
	Question      string                `json:"question"`
	Answer        string                `json:"answer,omitempty"`
	VideoTitle    string                `json:"video_title,omitempty"`
	MethodUsed    string                `json:"method_used,omitempty"`
	Message       string                `json:"message"`
	Error         string                `json:"error,omitempty"`
	Timestamps    []models.TimestampRef `json:"timestamps"`
	HasTimestamps bool                  `json:"has_timestamps"`
}
