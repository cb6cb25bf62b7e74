package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hibiken/asynq"

	"fitplan/internal/services"
	"fitplan/pkg/logger"
)

const TypeGeneratePlan = "plan:generate"

type GeneratePlanPayload struct {
	UserID   string `json:"user_id"`
	Feedback string `json:"feedback,omitempty"`
	Strict   bool   `json:"strict,omitempty"`
}

func redisOpt() asynq.RedisClientOpt {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return asynq.RedisClientOpt{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

func maxRetry() int {
	if v, err := strconv.Atoi(os.Getenv("PLAN_TASK_MAX_RETRY")); err == nil && v >= 0 {
		return v
	}
	return 3
}

// Enqueuer pushes generation requests onto the queue; it is the
// services.PlanEnqueuer implementation.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer() *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(redisOpt())}
}

func (e *Enqueuer) EnqueueGeneration(ctx context.Context, userID string, feedback string, strict bool) error {
	payload, err := json.Marshal(GeneratePlanPayload{
		UserID:   userID,
		Feedback: feedback,
		Strict:   strict,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeGeneratePlan, payload)
	_, err = e.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(maxRetry()),
		asynq.Timeout(5*time.Minute),
		// One plan per user: a newer request supersedes a queued one.
		asynq.TaskID("plan:generate:"+userID),
	)
	if err != nil && err != asynq.ErrTaskIDConflict {
		return err
	}
	return nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}

// Worker runs the plan-generation handler against the queue.
type Worker struct {
	server      *asynq.Server
	planService services.PlanServiceInterface
	log         *logger.Logger
}

func NewWorker(planService services.PlanServiceInterface, log *logger.Logger) *Worker {
	server := asynq.NewServer(redisOpt(), asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{"default": 1},
	})
	return &Worker{
		server:      server,
		planService: planService,
		log:         log.With("service", "PlanWorker"),
	}
}

func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeGeneratePlan, w.handleGeneratePlan)
	return w.server.Start(mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleGeneratePlan(ctx context.Context, t *asynq.Task) error {
	var payload GeneratePlanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// A malformed payload will never succeed; skip retries.
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	w.log.Info("generating plan", "user_id", payload.UserID, "strict", payload.Strict)
	if err := w.planService.GeneratePlan(ctx, payload.UserID, payload.Feedback, payload.Strict); err != nil {
		w.log.Error("plan generation task failed", "user_id", payload.UserID, "error", err)
		return err
	}
	return nil
}
