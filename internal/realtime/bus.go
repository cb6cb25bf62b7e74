package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"fitplan/internal/models/response_models"
	"fitplan/pkg/logger"
)

// Bus carries plan lifecycle events between the worker that generates plans
// and whichever instance holds the user's WebSocket connection.
type Bus interface {
	Publish(ctx context.Context, event response_models.PlanCompletedEvent) error
	StartForwarder(ctx context.Context, onEvent func(e response_models.PlanCompletedEvent)) error
	Close() error
}

type redisBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewRedisBus(rdb *goredis.Client, log *logger.Logger) Bus {
	ch := os.Getenv("REDIS_PLAN_CHANNEL")
	if ch == "" {
		ch = "plan_events"
	}
	return &redisBus{
		log:     log.With("service", "PlanEventBus"),
		rdb:     rdb,
		channel: ch,
	}
}

func (b *redisBus) Publish(ctx context.Context, event response_models.PlanCompletedEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *redisBus) StartForwarder(ctx context.Context, onEvent func(e response_models.PlanCompletedEvent)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var event response_models.PlanCompletedEvent
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					b.log.Warn("bad plan event payload", "error", err)
					continue
				}
				onEvent(event)
			}
		}
	}()

	return nil
}

func (b *redisBus) Close() error {
	return nil
}
