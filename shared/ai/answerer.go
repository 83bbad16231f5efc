// Package ai wraps the Gemini model behind the capabilities the
// coordinator needs: text answering, visual answering, question
// classification, and whole-video summaries.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tubewise/internal/models"
	"tubewise/shared/config"

	"google.golang.org/genai"
)

// ErrNoAnswer signals that the model returned no usable text.
var ErrNoAnswer = errors.New("model returned no answer")

type Client struct {
	client    *genai.Client
	model     string
	maxFrames int
}

func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:    client,
		model:     cfg.Model,
		maxFrames: cfg.MaxModelFrames,
	}, nil
}

// AnswerFromTranscript answers a question using only the transcript.
func (c *Client) AnswerFromTranscript(ctx context.Context, question, transcriptText, videoTitle string) (string, error) {
	prompt := fmt.Sprintf(`You are a professional video analyst who has just finished watching and analyzing "%s". You have extensive experience in content analysis and extracting key insights from video content.

QUESTION TO ANSWER: %s

VIDEO TRANSCRIPT (Complete Content):
%s

ANALYSIS INSTRUCTIONS:
- Answer as a knowledgeable expert who fully understands this video's content, themes, and context
- Provide specific, detailed answers based on what was actually discussed
- Be conversational but authoritative, like explaining to a colleague who hasn't seen the video
- If the question asks about something not covered in the video, clearly state that
- Reference specific moments naturally without forcing timestamp formats
IMPORTANT: give timestamps in H:MM:SS format

Your expert analysis:`, videoTitle, question, transcriptText)

	return c.generate(ctx, []*genai.Part{genai.NewPartFromText(prompt)})
}

// AnswerWithFrames answers a question using sampled frames alongside
// the transcript. At most maxFrames frames are attached, earliest
// first, no matter how many were sampled.
func (c *Client) AnswerWithFrames(ctx context.Context, question, transcriptText string, frames []models.Frame, videoTitle string) (string, error) {
	prompt := fmt.Sprintf(`You are a professional video analyst specializing in multimodal content analysis. You have just completed a comprehensive review of "%s" using both audio transcription and visual frame analysis.

ANALYSIS REQUEST: %s

AUDIO TRANSCRIPT (What was said):
%s

VISUAL FRAMES: You are now viewing key frames extracted from this video showing the visual elements, actions, objects, people, text, colors, and settings throughout the content.

EXPERT ANALYSIS GUIDELINES:
- Combine both audio and visual information to give a complete answer
- Be specific about visual details: colors, objects, people, text, actions, settings
- Reference both what you see AND what you hear
- If asked about something visual that's not clearly shown in the frames, acknowledge this limitation
IMPORTANT: give timestamps in H:MM:SS format

Your comprehensive multimodal analysis:`, videoTitle, question, transcriptText)

	parts := []*genai.Part{genai.NewPartFromText(prompt)}

	limit := c.maxFrames
	if limit <= 0 || limit > len(frames) {
		limit = len(frames)
	}
	for _, frame := range frames[:limit] {
		parts = append(parts, genai.NewPartFromBytes(frame.Data, "image/jpeg"))
	}

	return c.generate(ctx, parts)
}

// Summarize produces a structured whole-video breakdown from the
// transcript, with markdown emphasis stripped for plain display.
func (c *Client) Summarize(ctx context.Context, transcriptText, videoTitle string) (string, error) {
	prompt := fmt.Sprintf(`You are a professional content strategist who creates comprehensive video breakdowns for audiences who want to understand content structure and key insights.

VIDEO TITLE: "%s"

COMPLETE TRANSCRIPT:
%s

ANALYSIS TASK: Create a professional video breakdown covering:
- CONTENT STRUCTURE: main themes, topic transitions, narrative flow
- KEY INSIGHTS: most valuable takeaways, conclusions, calls-to-action
- CONTENT SUMMARY: what viewers will learn, tone and approach, target audience
- TOPICAL BREAKDOWN: logical flow of the main topics and how sections build on each other

Present your analysis in a clear, structured format useful for someone deciding whether to watch or looking for specific information.

Your professional content analysis:`, videoTitle, transcriptText)

	text, err := c.generate(ctx, []*genai.Part{genai.NewPartFromText(prompt)})
	if err != nil {
		return "", err
	}

	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	return text, nil
}

// MaxFrames reports the per-request frame bound.
func (c *Client) MaxFrames() int {
	return c.maxFrames
}

func (c *Client) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrNoAnswer
	}
	return text, nil
}
