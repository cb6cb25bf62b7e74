package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"fitplan/internal/models/plan_models"
	"fitplan/internal/repositories"
	"fitplan/pkg/logger"
	"fitplan/pkg/utils"
)

const videoCacheTTL = 7 * 24 * time.Hour

var nonAlpha = regexp.MustCompile(`[^a-z]+`)

// videoNameSynonyms folds common naming variants onto one canonical lookup
// key, so "barbell squat" and "Barbell Squats" share a cache entry.
var videoNameSynonyms = map[string]string{
	"barbellsquat":     "barbellsquats",
	"squat":            "barbellsquats",
	"squats":           "barbellsquats",
	"pushup":           "pushups",
	"pressup":          "pushups",
	"pressups":         "pushups",
	"pullup":           "pullups",
	"chinup":           "pullups",
	"chinups":          "pullups",
	"situp":            "situps",
	"crunch":           "situps",
	"crunches":         "situps",
	"deadlifts":        "deadlift",
	"romaniandeadlift": "deadlift",
	"benchpresses":     "benchpress",
	"lunge":            "lunges",
	"jumpingjack":      "jumpingjacks",
	"plankhold":        "plank",
}

// StandardizeExerciseName produces the canonical lookup key for an exercise
// name: case-folded, reduced to lowercase alphabetics, then mapped through
// the curated synonym table.
func StandardizeExerciseName(name string) string {
	key := nonAlpha.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "")
	if canonical, ok := videoNameSynonyms[key]; ok {
		return canonical
	}
	return key
}

type VideoServiceInterface interface {
	// EnrichPlan resolves video IDs for every exercise in the document
	// that lacks one. Unresolved exercises keep a null reference; the
	// plan is never blocked on enrichment.
	EnrichPlan(ctx context.Context, doc *plan_models.Document)
	ResolveVideoID(ctx context.Context, exerciseName string) (string, error)
}

// VideoCache is the video-ID lookup cache. Get returns ("", err) on a miss;
// callers treat any error as a miss and fall through to the search API.
type VideoCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type redisVideoCache struct {
	rdb *goredis.Client
}

func NewRedisVideoCache(rdb *goredis.Client) VideoCache {
	return &redisVideoCache{rdb: rdb}
}

func (c *redisVideoCache) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

func (c *redisVideoCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

type VideoService struct {
	exerciseRepo repositories.ExerciseRepositoryInterface
	cache        VideoCache
	search       utils.VideoSearchClient
	log          *logger.Logger

	// Lookups run in small batches with a pause in between to respect
	// external rate limits.
	batchSize  int
	batchDelay time.Duration
}

func NewVideoService(
	exerciseRepo repositories.ExerciseRepositoryInterface,
	cache VideoCache,
	search utils.VideoSearchClient,
	log *logger.Logger,
) VideoServiceInterface {
	return &VideoService{
		exerciseRepo: exerciseRepo,
		cache:        cache,
		search:       search,
		log:          log.With("service", "VideoService"),
		batchSize:    3,
		batchDelay:   time.Second,
	}
}

func (s *VideoService) EnrichPlan(ctx context.Context, doc *plan_models.Document) {
	type slot struct {
		day, idx int
	}

	// Slots are grouped by standardized name so a movement appearing on
	// several days costs one lookup, even within a single batch.
	groups := make(map[string][]slot)
	var pending []string
	for d := range doc.WorkoutDays {
		for i := range doc.WorkoutDays[d].Exercises {
			if doc.WorkoutDays[d].Exercises[i].VideoID != nil {
				continue
			}
			key := StandardizeExerciseName(doc.WorkoutDays[d].Exercises[i].Name)
			if key == "" {
				continue
			}
			if _, seen := groups[key]; !seen {
				pending = append(pending, key)
			}
			groups[key] = append(groups[key], slot{day: d, idx: i})
		}
	}

	for start := 0; start < len(pending); start += s.batchSize {
		end := start + s.batchSize
		if end > len(pending) {
			end = len(pending)
		}

		var wg sync.WaitGroup
		for _, key := range pending[start:end] {
			wg.Add(1)
			go func(slots []slot) {
				defer wg.Done()
				name := doc.WorkoutDays[slots[0].day].Exercises[slots[0].idx].Name
				videoID, err := s.ResolveVideoID(ctx, name)
				if err != nil {
					s.log.Warn("video lookup failed", "exercise", name, "error", err)
					return
				}
				if videoID == "" {
					return
				}
				for _, sl := range slots {
					v := videoID
					doc.WorkoutDays[sl.day].Exercises[sl.idx].VideoID = &v
				}
			}(groups[key])
		}
		wg.Wait()

		if end < len(pending) {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.batchDelay):
			}
		}
	}
}

// ResolveVideoID looks a standardized exercise name up through three tiers:
// catalog row, cache, then the external search API. Fresh fetches are
// written back to both the catalog (existing rows only) and the cache.
// Resolution never creates catalog rows; registering a new canonical
// exercise is a separate, explicit operation.
func (s *VideoService) ResolveVideoID(ctx context.Context, exerciseName string) (string, error) {
	key := StandardizeExerciseName(exerciseName)
	if key == "" {
		return "", nil
	}

	row, err := s.exerciseRepo.FindByStandardizedName(ctx, key)
	if err == nil && row != nil && row.VideoID != nil && *row.VideoID != "" {
		return *row.VideoID, nil
	}

	cacheKey := "video:" + key
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		return cached, nil
	}

	videoID, err := s.search.SearchVideoID(ctx, exerciseName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrUpstreamService, err)
	}
	if videoID == "" {
		return "", nil
	}

	if err := s.cache.Set(ctx, cacheKey, videoID, videoCacheTTL); err != nil {
		s.log.Warn("video cache write failed", "key", cacheKey, "error", err)
	}
	if row != nil {
		if err := s.exerciseRepo.UpdateVideoID(ctx, key, videoID); err != nil {
			s.log.Warn("catalog video write failed", "key", key, "error", err)
		}
	}

	return videoID, nil
}
