package utils

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PlanModelClient is the outbound chat-completion boundary of the plan
// generation pipeline. Implementations return the raw model text; extraction
// and repair of the JSON payload happen downstream.
type PlanModelClient interface {
	GeneratePlanText(ctx context.Context, prompt string) (string, error)
	Close() error
}

// RetryPolicy bounds the automatic retry loop around transient upstream
// failures (5xx, 429, network timeouts). It is explicit configuration rather
// than something inherited from the task queue.
type RetryPolicy struct {
	MaxAttempts int
	BaseBackoff time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	policy := RetryPolicy{MaxAttempts: 3, BaseBackoff: 2 * time.Second}
	if v := os.Getenv("LLM_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			policy.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("LLM_BACKOFF_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			policy.BaseBackoff = time.Duration(parsed) * time.Second
		}
	}
	return policy
}

// Backoff returns the sleep before retry attempt n (1-based), doubling each time.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	d := p.BaseBackoff
	for i := 1; i < attempt; i++ {
		d *= 2
	}
	return d
}

// NewPlanModelClient creates an LLM client based on environment variables.
func NewPlanModelClient() (PlanModelClient, error) {
	provider := GetEnvWithDefault("LLM_PROVIDER", "openai")

	switch strings.ToLower(provider) {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using the openai provider")
		}
		model := GetEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		return NewOpenAIPlanClient(apiKey, model, DefaultRetryPolicy()), nil
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using the gemini provider")
		}
		model := GetEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		return NewGeminiPlanClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'openai' or 'gemini'", provider)
	}
}

// GetEnvWithDefault returns environment variable or default value.
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
