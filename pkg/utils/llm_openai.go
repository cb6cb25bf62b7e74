package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIPlanClient struct {
	client *openai.Client
	model  string
	retry  RetryPolicy
}

func NewOpenAIPlanClient(apiKey, model string, retry RetryPolicy) *OpenAIPlanClient {
	return &OpenAIPlanClient{
		client: openai.NewClient(apiKey),
		model:  model,
		retry:  retry,
	}
}

func (c *OpenAIPlanClient) GeneratePlanText(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: 0.7,
		})
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", fmt.Errorf("%w: empty completion", ErrUpstreamService)
			}
			return resp.Choices[0].Message.Content, nil
		}

		lastErr = err
		if !isRetryableLLMError(err) || attempt == c.retry.MaxAttempts {
			break
		}

		backoff := c.retry.Backoff(attempt)
		log.Printf("openai attempt %d failed, retrying in %s: %v", attempt, backoff, err)
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrUpstreamService, ctx.Err())
		case <-time.After(backoff):
		}
	}

	return "", fmt.Errorf("%w: %v", ErrUpstreamService, lastErr)
}

func (c *OpenAIPlanClient) Close() error { return nil }

// isRetryableLLMError reports whether the upstream failure is transient:
// rate limits, 5xx responses, and network timeouts.
func isRetryableLLMError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode == 408 {
			return true
		}
		return apiErr.HTTPStatusCode >= 500 && apiErr.HTTPStatusCode <= 599
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
