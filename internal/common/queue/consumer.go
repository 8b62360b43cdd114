// Package queue implements the Redis-backed job consumption runtime. The
// platform web app pushes JSON job envelopes onto a Redis list; workers
// registered here pop and dispatch them by job name. Delivery is
// at-most-once, best-effort: a message is removed from the list before its
// handler runs, and a crash mid-job loses it. Retry, if any, belongs to the
// producer.
package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"resume-workers/internal/common/logger"
)

// Message is the queue envelope. Data holds the job-specific payload.
type Message struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// Handler processes one dequeued message. Handlers own their outcome
// reporting; the consumer never retries.
type Handler interface {
	Handle(ctx context.Context, msg *Message)
}

// Consumer pops messages off one Redis list and dispatches them to the
// handler registered for their job name. Jobs run to completion one at a
// time per consumer; concurrency degree is how many consumer processes a
// deployment runs.
type Consumer struct {
	client   *redis.Client
	queueKey string
	handlers map[string]Handler
	logger   logger.Logger

	popTimeout time.Duration
}

func NewConsumer(client *redis.Client, queueKey string, log logger.Logger) *Consumer {
	return &Consumer{
		client:     client,
		queueKey:   queueKey,
		handlers:   make(map[string]Handler),
		logger:     log.WithFields(map[string]interface{}{"queue": queueKey}),
		popTimeout: 5 * time.Second,
	}
}

// Register binds a handler to a job name. Not safe to call after Run.
func (c *Consumer) Register(jobName string, h Handler) {
	c.handlers[jobName] = h
}

// Run blocks consuming the queue until ctx is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started", map[string]interface{}{
		"jobs": len(c.handlers),
	})

	for {
		if err := ctx.Err(); err != nil {
			c.logger.Info("consumer stopping", nil)
			return err
		}

		res, err := c.client.BRPop(ctx, c.popTimeout, c.queueKey).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopping", nil)
				return ctx.Err()
			}
			c.logger.Error("queue pop failed", map[string]interface{}{"error": err})
			time.Sleep(time.Second)
			continue
		}

		// BRPop returns [key, value]
		if len(res) != 2 {
			continue
		}
		c.dispatch(ctx, []byte(res[1]))
	}
}

func (c *Consumer) dispatch(ctx context.Context, raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.logger.Error("dropping undecodable message", map[string]interface{}{"error": err})
		return
	}

	handler, ok := c.handlers[msg.Name]
	if !ok {
		c.logger.Warn("no handler for job", map[string]interface{}{
			"job":       msg.Name,
			"messageId": msg.ID,
		})
		return
	}

	c.logger.Info("dispatching job", map[string]interface{}{
		"job":       msg.Name,
		"messageId": msg.ID,
	})
	handler.Handle(ctx, &msg)
}

// Publish pushes a job envelope onto the queue and returns its message ID.
// Used by producers and tests; the workers themselves enqueue follow-up
// jobs through the platform API instead.
func Publish(ctx context.Context, client *redis.Client, queueKey, jobName string, data interface{}) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	msg := Message{
		ID:   uuid.NewString(),
		Name: jobName,
		Data: payload,
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}

	if err := client.LPush(ctx, queueKey, raw).Err(); err != nil {
		return "", err
	}
	return msg.ID, nil
}
