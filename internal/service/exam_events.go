package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/gatemock-backend/internal/config"
	"github.com/stemsi/gatemock-backend/internal/model"
)

// EventType identifies an exam event pushed to live clients.
type EventType string

const (
	EventTick      EventType = "tick"
	EventSubmitted EventType = "submitted"
	EventState     EventType = "state"
)

// ExamEvent is emitted on every countdown tick and when an exam is scored.
type ExamEvent struct {
	Type          EventType         `json:"event"`
	TimeRemaining int               `json:"time_remaining"`
	AutoSubmitted bool              `json:"auto_submitted,omitempty"`
	Result        *model.ExamResult `json:"result,omitempty"`
	Warnings      []string          `json:"warnings,omitempty"`
}

// EventPublisher forwards exam events beyond this process.
type EventPublisher interface {
	Publish(ctx context.Context, userID string, ev ExamEvent) error
}

// RedisEventPublisher publishes exam events on a per-user Redis channel.
type RedisEventPublisher struct {
	rdb *redis.Client
}

// NewRedisEventPublisher creates a new RedisEventPublisher.
func NewRedisEventPublisher(rdb *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{rdb: rdb}
}

func (p *RedisEventPublisher) Publish(ctx context.Context, userID string, ev ExamEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, config.StorageKey.ExamEventsChannel(userID), payload).Err()
}
