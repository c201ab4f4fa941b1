package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/fentz26/taskview/internal/models"
)

// TaskSource lists the full task collection.
type TaskSource interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
}

const tasksCacheKey = "taskview:tasks"

// Cache wraps a TaskSource with a Redis-backed copy of the collection.
// Redis failures fall through to the source.
type Cache struct {
	base  TaskSource
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching wrapper using the provided Redis client and TTL.
func NewCache(base TaskSource, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("store.NewCache: base source is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

func (c *Cache) ListTasks(ctx context.Context) ([]models.Task, error) {
	if tasks, ok := c.load(ctx); ok {
		return tasks, nil
	}

	tasks, err := c.base.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, tasks)
	return tasks, nil
}

// Invalidate drops the cached collection.
func (c *Cache) Invalidate(ctx context.Context) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, tasksCacheKey).Err(); err != nil {
		log.WithError(err).Warn("cache invalidate failed")
	}
}

func (c *Cache) load(ctx context.Context) ([]models.Task, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, tasksCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).Warn("cache read failed")
		}
		return nil, false
	}
	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		log.WithError(err).Warn("cache payload corrupt")
		return nil, false
	}
	return tasks, true
}

func (c *Cache) store(ctx context.Context, tasks []models.Task) {
	if c.redis == nil {
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, tasksCacheKey, data, c.ttl).Err(); err != nil {
		log.WithError(err).Warn("cache write failed")
	}
}
