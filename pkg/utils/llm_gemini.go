package utils

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiPlanClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlanClient(apiKey, model string) (*GeminiPlanClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlanClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiPlanClient) GeneratePlanText(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.7)
	m.SetTopP(0.9)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrUpstreamService, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content generated", ErrUpstreamService)
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (c *GeminiPlanClient) Close() error {
	return c.client.Close()
}
