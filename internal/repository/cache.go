package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/yukikurage/opsboard/internal/constants"
	"github.com/yukikurage/opsboard/internal/dto"
	"github.com/yukikurage/opsboard/internal/models"
)

// CachedTaskRepository serves the full board listing from Redis. Listings
// are stored under a key carrying the current generation, and every write
// bumps the generation, so a listing read from the database before a write
// lands under a key nobody reads again. Filtered listings and single
// lookups go straight to the base repository. Redis failures never fail a
// request; they only cost a cache miss.
type CachedTaskRepository struct {
	base  TaskRepository
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedTaskRepository wraps base with a Redis cache. A nil client or a
// zero TTL disables caching.
func NewCachedTaskRepository(base TaskRepository, client *redis.Client, ttl time.Duration) *CachedTaskRepository {
	if base == nil {
		panic("repository.NewCachedTaskRepository: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &CachedTaskRepository{base: base, redis: client, ttl: ttl}
}

func (c *CachedTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	if !filter.IsZero() {
		return c.base.List(ctx, filter)
	}
	key, ok := c.boardKey(ctx)
	if !ok {
		return c.base.List(ctx, filter)
	}
	if tasks, ok := c.loadBoard(ctx, key); ok {
		return tasks, nil
	}

	tasks, err := c.base.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	c.storeBoard(ctx, key, tasks)
	return tasks, nil
}

func (c *CachedTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	return c.base.FindByID(ctx, id)
}

func (c *CachedTaskRepository) CountByStatus(ctx context.Context, status models.TaskStatus) (int64, error) {
	return c.base.CountByStatus(ctx, status)
}

func (c *CachedTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := c.base.Create(ctx, task); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *CachedTaskRepository) Update(ctx context.Context, task *models.Task) error {
	if err := c.base.Update(ctx, task); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *CachedTaskRepository) Delete(ctx context.Context, id uint64) error {
	if err := c.base.Delete(ctx, id); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

// Reorder bumps the generation whether or not the batch applied.
func (c *CachedTaskRepository) Reorder(ctx context.Context, items []dto.ReorderItem) error {
	err := c.base.Reorder(ctx, items)
	c.evict(ctx)
	return err
}

// boardKey returns the listing key for the current generation. It must be
// read before the database so a concurrent write invalidates the result.
func (c *CachedTaskRepository) boardKey(ctx context.Context) (string, bool) {
	if c.redis == nil || c.ttl == 0 {
		return "", false
	}
	gen, err := c.redis.Get(ctx, constants.TaskBoardCacheGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.WithError(err).Warn("task cache generation read failed")
		return "", false
	}
	return BoardCacheKey(gen), true
}

// BoardCacheKey is the Redis key holding the board listing for gen.
func BoardCacheKey(gen int64) string {
	return constants.TaskBoardCacheKey + ":" + strconv.FormatInt(gen, 10)
}

func (c *CachedTaskRepository) loadBoard(ctx context.Context, key string) ([]models.Task, bool) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).Warn("task cache read failed")
			_ = c.redis.Del(ctx, key).Err()
		}
		return nil, false
	}
	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}
	return tasks, true
}

func (c *CachedTaskRepository) storeBoard(ctx context.Context, key string, tasks []models.Task) {
	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.WithError(err).Warn("task cache write failed")
	}
}

// evict moves to a new generation. Entries of older generations expire
// through their TTL.
func (c *CachedTaskRepository) evict(ctx context.Context) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Incr(ctx, constants.TaskBoardCacheGenKey).Err(); err != nil {
		log.WithError(err).Warn("task cache evict failed")
	}
}
