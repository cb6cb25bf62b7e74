package utils

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// VideoSearchClient resolves an exercise name to a video ID via an external
// search API. Lookups that find nothing return ("", nil) so callers can
// persist a null reference instead of failing the plan.
type VideoSearchClient interface {
	SearchVideoID(ctx context.Context, query string) (string, error)
}

type YouTubeSearchClient struct {
	service *youtube.Service
}

func NewYouTubeSearchClient() (*YouTubeSearchClient, error) {
	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY is required")
	}

	service, err := youtube.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}
	return &YouTubeSearchClient{service: service}, nil
}

func (c *YouTubeSearchClient) SearchVideoID(ctx context.Context, query string) (string, error) {
	call := c.service.Search.List([]string{"id"}).
		Context(ctx).
		Q(query + " exercise form").
		Type("video").
		VideoDuration("short").
		MaxResults(1)

	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("%w: youtube search: %v", ErrUpstreamService, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Id == nil {
		return "", nil
	}
	return resp.Items[0].Id.VideoId, nil
}
