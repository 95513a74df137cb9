package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the model used when the input doesn't name one.
const DefaultModel = "gemini-2.0-flash"

// ModelInfo describes one selectable inference model.
type ModelInfo struct {
	Name             string
	InputTokenLimit  int
	OutputTokenLimit int
}

// GeminiClient is the narrow slice of the Gemini SDK scribe depends on.
// The indirection keeps the generator testable without network access.
type GeminiClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// SDKClient wraps the official SDK client to satisfy GeminiClient.
type SDKClient struct {
	client *genai.Client
}

// NewSDKClient creates a Gemini SDK wrapper from an API key.
func NewSDKClient(ctx context.Context, apiKey string) (*SDKClient, error) {
	if apiKey == "" {
		return nil, errors.New("inference API key is not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &SDKClient{client: client}, nil
}

// GenerateContent calls the SDK's GenerateContent method.
func (c *SDKClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.client.Models.GenerateContent(ctx, model, contents, config)
}

// ListModels returns the available text-generation models, filtered to
// gemini-* and excluding embedding, image, audio, and live variants.
func (c *SDKClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	for model, err := range c.client.Models.All(ctx) {
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(model.Name, "models/gemini-") &&
			!strings.Contains(model.Name, "embedding") &&
			!strings.Contains(model.Name, "image") &&
			!strings.Contains(model.Name, "audio") &&
			!strings.Contains(model.Name, "live") {
			models = append(models, ModelInfo{
				Name:             model.Name,
				InputTokenLimit:  int(model.InputTokenLimit),
				OutputTokenLimit: int(model.OutputTokenLimit),
			})
		}
	}
	return models, nil
}

// GeminiGenerator generates commit messages through the Gemini API.
type GeminiGenerator struct {
	client GeminiClient
}

// NewGeminiGenerator creates a generator on top of a GeminiClient.
func NewGeminiGenerator(client GeminiClient) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

// Generate sends the digest prompt to Gemini and returns the cleaned
// message text. No retry or backoff: a failure surfaces immediately so the
// caller can fall back to a local message.
func (g *GeminiGenerator) Generate(ctx context.Context, input Input) (string, error) {
	model := input.Model
	if model == "" {
		model = DefaultModel
	}

	contents := []*genai.Content{
		genai.NewContentFromText(BuildPrompt(input.Digest), genai.RoleUser),
	}

	resp, err := g.client.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generating commit message: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("model returned an empty message")
	}

	return StripMarkdownFences(text), nil
}
