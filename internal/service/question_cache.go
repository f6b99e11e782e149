package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lshigami/placement/config"
	"github.com/lshigami/placement/internal/dto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	questionListKey       = "placement:questions:all"
	questionGenerationKey = "placement:questions:generation"
	cacheOpTimeout        = 500 * time.Millisecond
	defaultQuestionTTL    = 5 * time.Minute
)

// NoGeneration is returned by Get when the current generation could not be
// read. Set ignores it.
const NoGeneration int64 = -1

// QuestionCache holds the serialized question list. Misses and backend
// errors both report ok=false; callers fall back to the database.
//
// Every Invalidate bumps a generation counter. Get reports the generation it
// observed and Set only stores a list read under that same generation, so a
// list loaded before a concurrent write can never overwrite the invalidation.
type QuestionCache interface {
	Get() (questions []dto.QuestionResponse, generation int64, ok bool)
	Set(generation int64, questions []dto.QuestionResponse)
	Invalidate()
	Close() error
}

// cachedQuestions is the stored value; a Generation that no longer matches
// the counter marks the entry stale even if its key survived an Invalidate.
type cachedQuestions struct {
	Generation int64                  `json:"generation"`
	Questions  []dto.QuestionResponse `json:"questions"`
}

// NewQuestionCache returns a Redis-backed cache when REDIS_ADDR is configured
// and reachable, otherwise a cache that never hits.
func NewQuestionCache(cfg *config.Config) QuestionCache {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, question cache disabled")
		return noopQuestionCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, question cache disabled")
		_ = client.Close()
		return noopQuestionCache{}
	}

	ttl := cfg.Redis.TTL
	if ttl <= 0 {
		ttl = defaultQuestionTTL
	}
	log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", ttl).Msg("Question cache backed by Redis")
	return NewRedisQuestionCache(client, ttl)
}

type redisQuestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisQuestionCache(client *redis.Client, ttl time.Duration) QuestionCache {
	return &redisQuestionCache{client: client, ttl: ttl}
}

func (c *redisQuestionCache) Get() ([]dto.QuestionResponse, int64, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	vals, err := c.client.MGet(ctx, questionGenerationKey, questionListKey).Result()
	if err != nil {
		log.Warn().Err(err).Msg("Question cache read failed")
		return nil, NoGeneration, false
	}

	generation, err := parseGeneration(vals[0])
	if err != nil {
		log.Warn().Err(err).Msg("Question cache generation is corrupt")
		return nil, NoGeneration, false
	}

	raw, ok := vals[1].(string)
	if !ok {
		return nil, generation, false
	}

	var entry cachedQuestions
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Warn().Err(err).Msg("Question cache held undecodable data, dropping it")
		c.Invalidate()
		return nil, NoGeneration, false
	}
	if entry.Generation != generation {
		return nil, generation, false
	}
	return entry.Questions, generation, true
}

// Set stores questions only while the generation counter still equals
// generation. The counter is WATCHed, so an Invalidate that lands between
// the check and the write aborts the transaction.
func (c *redisQuestionCache) Set(generation int64, questions []dto.QuestionResponse) {
	if generation == NoGeneration {
		return
	}
	raw, err := json.Marshal(cachedQuestions{Generation: generation, Questions: questions})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to encode question list for cache")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, questionGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, questionListKey, raw, c.ttl)
			return nil
		})
		return err
	}, questionGenerationKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		log.Debug().Int64("generation", generation).Msg("Question list changed while loading, not caching it")
	default:
		log.Warn().Err(err).Msg("Question cache write failed")
	}
}

// Invalidate bumps the generation and drops the list. Any entry written
// under an older generation is a miss for Get even if its key survives.
func (c *redisQuestionCache) Invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, questionGenerationKey)
		pipe.Del(ctx, questionListKey)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("Question cache invalidation failed")
	}
}

func (c *redisQuestionCache) Close() error {
	return c.client.Close()
}

type noopQuestionCache struct{}

func (noopQuestionCache) Get() ([]dto.QuestionResponse, int64, bool) { return nil, NoGeneration, false }
func (noopQuestionCache) Set(int64, []dto.QuestionResponse)          {}
func (noopQuestionCache) Invalidate()                                {}
func (noopQuestionCache) Close() error                               { return nil }

var errStaleGeneration = errors.New("question cache generation changed")

func parseGeneration(v interface{}) (int64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected generation value %T", v)
	}
	return strconv.ParseInt(s, 10, 64)
}
