package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pocketledger/backend/internal/report"
	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used when none is configured.
const DefaultModelName = "gemini-2.0-flash"

var ErrEmptyResponse = errors.New("the model returned an empty response")

// Gemini generates insights with the Gemini API. The API key is read by
// the genai client from the environment (GEMINI_API_KEY).
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed generator.
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client failed: %w", err)
	}

	if model == "" {
		model = DefaultModelName
	}

	return &Gemini{client: client, model: model}, nil
}

// Insights sends the summary and breakdown to the model and returns its
// free-text analysis.
func (g *Gemini) Insights(ctx context.Context, summary report.Summary, breakdown report.Breakdown) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"summary":   summary,
		"breakdown": breakdown,
	})
	if err != nil {
		return "", err
	}

	prompt := "You are a personal finance assistant.\n\n" +
		"Below is a user's financial summary and spending breakdown for one period as JSON. " +
		"Write three to five short, concrete observations about their spending and saving. " +
		"Plain text only, no Markdown, no headings.\n\n" +
		string(payload)

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generating insights failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
