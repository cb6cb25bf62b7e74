package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fitplan/internal/models/db_models"
	"fitplan/internal/models/plan_models"
)

type fakeExerciseRepo struct {
	mu      sync.Mutex
	rows    map[string]*db_models.Exercise
	updated map[string]string
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{
		rows:    make(map[string]*db_models.Exercise),
		updated: make(map[string]string),
	}
}

func (f *fakeExerciseRepo) Insert(ctx context.Context, exercise *db_models.Exercise) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[exercise.StandardizedName] = exercise
	return nil
}

func (f *fakeExerciseRepo) FindByID(ctx context.Context, id string) (*db_models.Exercise, error) {
	return nil, nil
}

func (f *fakeExerciseRepo) FindByStandardizedName(ctx context.Context, name string) (*db_models.Exercise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[name], nil
}

func (f *fakeExerciseRepo) UpdateVideoID(ctx context.Context, standardizedName string, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[standardizedName] = videoID
	return nil
}

func (f *fakeExerciseRepo) ListAll(ctx context.Context, page int, pageSize int) ([]db_models.Exercise, error) {
	return nil, nil
}

type fakeSearchClient struct {
	mu      sync.Mutex
	calls   int
	results map[string]string
}

func (f *fakeSearchClient) SearchVideoID(ctx context.Context, query string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.results[query], nil
}

type fakeVideoCache struct {
	mu   sync.Mutex
	data map[string]string
	gets int
	sets int
}

func newFakeVideoCache() *fakeVideoCache {
	return &fakeVideoCache{data: make(map[string]string)}
}

func (f *fakeVideoCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	v, ok := f.data[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (f *fakeVideoCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.data[key] = value
	return nil
}

func newTestVideoService(t *testing.T, repo *fakeExerciseRepo, cache *fakeVideoCache, search *fakeSearchClient) *VideoService {
	t.Helper()
	return &VideoService{
		exerciseRepo: repo,
		cache:        cache,
		search:       search,
		log:          newTestLogger(t).With("service", "VideoService"),
		batchSize:    3,
		batchDelay:   time.Millisecond,
	}
}

func TestStandardizeExerciseName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Barbell Squats", "barbellsquats"},
		{"barbell squat", "barbellsquats"},
		{"  BARBELL-SQUAT  ", "barbellsquats"},
		{"Push Ups", "pushups"},
		{"push-up", "pushups"},
		{"Press Ups", "pushups"},
		{"Romanian Deadlift", "deadlift"},
		{"Jumping-Jacks", "jumpingjacks"},
		{"Walking Lunges", "walkinglunges"},
		{"", ""},
	}
	for _, c := range cases {
		if got := StandardizeExerciseName(c.in); got != c.want {
			t.Errorf("StandardizeExerciseName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStandardizeExerciseNameVariantsShareAKey(t *testing.T) {
	a := StandardizeExerciseName("barbell squat")
	b := StandardizeExerciseName("Barbell Squats")
	if a != b {
		t.Fatalf("variants map to different keys: %q vs %q", a, b)
	}
}

func TestResolveVideoIDCatalogHitSkipsSearch(t *testing.T) {
	repo := newFakeExerciseRepo()
	videoID := "abc123"
	repo.rows["pushups"] = &db_models.Exercise{StandardizedName: "pushups", VideoID: &videoID}

	search := &fakeSearchClient{results: map[string]string{}}
	svc := newTestVideoService(t, repo, newFakeVideoCache(), search)

	got, err := svc.ResolveVideoID(context.Background(), "Push Ups")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc123" {
		t.Fatalf("videoID = %q, want abc123", got)
	}
	if search.calls != 0 {
		t.Fatalf("search API called %d times on catalog hit", search.calls)
	}
}

func TestResolveVideoIDFallsThroughToSearch(t *testing.T) {
	repo := newFakeExerciseRepo()
	search := &fakeSearchClient{results: map[string]string{"Burpees": "vid42"}}
	svc := newTestVideoService(t, repo, newFakeVideoCache(), search)

	got, err := svc.ResolveVideoID(context.Background(), "Burpees")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "vid42" {
		t.Fatalf("videoID = %q, want vid42", got)
	}
	if search.calls != 1 {
		t.Fatalf("search calls = %d, want 1", search.calls)
	}
}

func TestResolveVideoIDWritesBackToExistingCatalogRow(t *testing.T) {
	repo := newFakeExerciseRepo()
	repo.rows["burpees"] = &db_models.Exercise{StandardizedName: "burpees"}

	search := &fakeSearchClient{results: map[string]string{"Burpees": "vid42"}}
	svc := newTestVideoService(t, repo, newFakeVideoCache(), search)

	if _, err := svc.ResolveVideoID(context.Background(), "Burpees"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updated["burpees"] != "vid42" {
		t.Fatalf("catalog row not updated: %v", repo.updated)
	}
}

func TestResolveVideoIDNeverCreatesCatalogRows(t *testing.T) {
	repo := newFakeExerciseRepo()
	search := &fakeSearchClient{results: map[string]string{"Burpees": "vid42"}}
	svc := newTestVideoService(t, repo, newFakeVideoCache(), search)

	if _, err := svc.ResolveVideoID(context.Background(), "Burpees"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("resolution created catalog rows: %v", repo.rows)
	}
	if len(repo.updated) != 0 {
		t.Fatalf("resolution updated a missing row: %v", repo.updated)
	}
}

func TestResolveVideoIDEmptyName(t *testing.T) {
	svc := newTestVideoService(t, newFakeExerciseRepo(), newFakeVideoCache(), &fakeSearchClient{})
	got, err := svc.ResolveVideoID(context.Background(), "???")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty videoID, got %q", got)
	}
}

func TestEnrichPlanFillsMissingVideoIDs(t *testing.T) {
	repo := newFakeExerciseRepo()
	existing := "keepme"
	search := &fakeSearchClient{results: map[string]string{
		"Push Ups": "vidpush",
		"Burpees":  "vidburp",
	}}
	svc := newTestVideoService(t, repo, newFakeVideoCache(), search)

	doc := &plan_models.Document{
		WorkoutDays: []plan_models.Day{
			{
				Day:  "Day 1",
				Type: plan_models.DayTypeWorkout,
				Exercises: []plan_models.Exercise{
					{Name: "Push Ups"},
					{Name: "Burpees"},
					{Name: "Plank", VideoID: &existing},
				},
			},
		},
	}

	svc.EnrichPlan(context.Background(), doc)

	exercises := doc.WorkoutDays[0].Exercises
	if exercises[0].VideoID == nil || *exercises[0].VideoID != "vidpush" {
		t.Errorf("Push Ups videoID = %v", exercises[0].VideoID)
	}
	if exercises[1].VideoID == nil || *exercises[1].VideoID != "vidburp" {
		t.Errorf("Burpees videoID = %v", exercises[1].VideoID)
	}
	if *exercises[2].VideoID != "keepme" {
		t.Errorf("pre-resolved videoID overwritten: %v", *exercises[2].VideoID)
	}
	if search.calls != 2 {
		t.Errorf("search calls = %d, want 2", search.calls)
	}
}

func TestResolveVideoIDSecondLookupHitsCache(t *testing.T) {
	repo := newFakeExerciseRepo()
	cache := newFakeVideoCache()
	search := &fakeSearchClient{results: map[string]string{
		"Barbell Squats": "sq001",
		"barbell squat":  "sq001",
	}}
	svc := newTestVideoService(t, repo, cache, search)

	first, err := svc.ResolveVideoID(context.Background(), "Barbell Squats")
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if first != "sq001" {
		t.Fatalf("first videoID = %q", first)
	}
	if search.calls != 1 {
		t.Fatalf("search calls after first lookup = %d, want 1", search.calls)
	}
	if cache.data["video:barbellsquats"] != "sq001" {
		t.Fatalf("cache not written back: %v", cache.data)
	}

	// The singular variant standardizes to the same key and must be
	// served from cache without touching the API again.
	second, err := svc.ResolveVideoID(context.Background(), "barbell squat")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if second != "sq001" {
		t.Fatalf("second videoID = %q", second)
	}
	if search.calls != 1 {
		t.Fatalf("search calls after cached lookup = %d, want 1", search.calls)
	}
}

func TestEnrichPlanDeduplicatesWithinBatch(t *testing.T) {
	repo := newFakeExerciseRepo()
	cache := newFakeVideoCache()
	search := &fakeSearchClient{results: map[string]string{
		"Barbell Squats": "sq001",
		"barbell squat":  "sq001",
	}}
	svc := newTestVideoService(t, repo, cache, search)

	// Same movement under two spellings, both inside one batch.
	doc := &plan_models.Document{
		WorkoutDays: []plan_models.Day{
			{
				Day:  "Day 1",
				Type: plan_models.DayTypeWorkout,
				Exercises: []plan_models.Exercise{
					{Name: "Barbell Squats"},
					{Name: "barbell squat"},
				},
			},
		},
	}

	svc.EnrichPlan(context.Background(), doc)

	if search.calls != 1 {
		t.Fatalf("search calls = %d, want 1 for a deduplicated batch", search.calls)
	}
	for i, exercise := range doc.WorkoutDays[0].Exercises {
		if exercise.VideoID == nil || *exercise.VideoID != "sq001" {
			t.Errorf("exercise %d videoID = %v, want sq001", i, exercise.VideoID)
		}
	}
}

func TestEnrichPlanUnresolvedStaysNull(t *testing.T) {
	repo := newFakeExerciseRepo()
	search := &fakeSearchClient{results: map[string]string{}}
	svc := newTestVideoService(t, repo, newFakeVideoCache(), search)

	doc := &plan_models.Document{
		WorkoutDays: []plan_models.Day{
			{
				Day:       "Day 1",
				Type:      plan_models.DayTypeWorkout,
				Exercises: []plan_models.Exercise{{Name: "Obscure Movement"}},
			},
		},
	}

	svc.EnrichPlan(context.Background(), doc)

	if doc.WorkoutDays[0].Exercises[0].VideoID != nil {
		t.Fatal("unresolved exercise must keep a null video reference")
	}
}
