package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"tubewise/internal/models"
	"tubewise/shared/logging"

	"google.golang.org/genai"
)

var (
	typeRe       = regexp.MustCompile(`(?i)TYPE:\s*(transcript|visual)`)
	confidenceRe = regexp.MustCompile(`CONFIDENCE:\s*([\d.]+)`)
	reasoningRe  = regexp.MustCompile(`(?i)REASONING:\s*(.+)`)
)

// Classify decides whether a question needs visual analysis or can be
// answered from the transcript alone. Classification never fails:
// model errors and unparseable responses default to transcript-only
// routing so the question still gets answered.
func (c *Client) Classify(ctx context.Context, question string) models.Classification {
	prompt := fmt.Sprintf(`I need to determine if this question requires looking at video images or can be answered from the transcript alone.

Question: "%s"

TRANSCRIPT questions (audio/speech content only):
- What people said, discussed, topics
- Example: "What did he say about exercise?"

VISUAL questions (need to see video frames):
- Colors, objects, people's appearance, actions
- Counting things, describing what's visible
- Example: "What color is the car?" or "How many people?"

If the question asks about COLORS, APPEARANCE, COUNTING, or OBJECTS - it needs VISUAL analysis.

Answer format:
TYPE: [transcript/visual]
CONFIDENCE: [0.1-1.0]
REASONING: [brief explanation]`, question)

	text, err := c.generate(ctx, []*genai.Part{genai.NewPartFromText(prompt)})
	if err != nil {
		logging.L().WithError(err).Warn("question classification failed, defaulting to transcript analysis")
		return models.Classification{
			Type:       models.AnalysisTranscript,
			Confidence: 0.5,
			Reasoning:  "Detection failed, using transcript analysis",
		}
	}

	return parseClassification(text)
}

func parseClassification(response string) models.Classification {
	classification := models.Classification{
		Type:       models.AnalysisTranscript,
		Confidence: 0.7,
		Reasoning:  "Analysis completed",
	}

	if match := typeRe.FindStringSubmatch(response); match != nil {
		classification.Type = strings.ToLower(match[1])
	}
	if match := confidenceRe.FindStringSubmatch(response); match != nil {
		if confidence, err := strconv.ParseFloat(match[1], 64); err == nil {
			classification.Confidence = confidence
		}
	}
	if match := reasoningRe.FindStringSubmatch(response); match != nil {
		classification.Reasoning = strings.TrimSpace(match[1])
	}

	return classification
}
