package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// ErrMiss is returned by StateCache.Get when nothing is cached.
var ErrMiss = errors.New("redis: cache miss")

// StateCache keeps the latest serialized reader state so a session can be
// rebuilt without a database round trip.
type StateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStateCache(client *redis.Client, ttl time.Duration) *StateCache {
	return &StateCache{client: client, ttl: ttl}
}

func stateKey(userID int) string {
	return fmt.Sprintf("reader:%d:state", userID)
}

func (c *StateCache) Get(ctx context.Context, userID int) (model.ReaderState, error) {
	raw, err := c.client.Get(ctx, stateKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.ReaderState{}, ErrMiss
	}
	if err != nil {
		return model.ReaderState{}, err
	}
	var state model.ReaderState
	if err := json.Unmarshal(raw, &state); err != nil {
		// a stale layout is treated as a miss and overwritten on next save
		log.Warn().Err(err).Int("user_id", userID).Msg("[redis] dropping undecodable reader state")
		c.client.Del(ctx, stateKey(userID))
		return model.ReaderState{}, ErrMiss
	}
	return state, nil
}

func (c *StateCache) Put(ctx context.Context, userID int, state model.ReaderState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, stateKey(userID), payload, c.ttl).Err()
}

func (c *StateCache) Invalidate(ctx context.Context, userID int) error {
	return c.client.Del(ctx, stateKey(userID)).Err()
}

// follow codes let a second device attach to a reader's position stream

func followKey(code string) string {
	return "follow:" + code
}

func (c *StateCache) PutFollowCode(ctx context.Context, code string, userID int, ttl time.Duration) error {
	return c.client.Set(ctx, followKey(code), userID, ttl).Err()
}

// ClaimFollowCode resolves a code to its reader and deletes it; codes are
// single use.
func (c *StateCache) ClaimFollowCode(ctx context.Context, code string) (int, error) {
	userID, err := c.client.GetDel(ctx, followKey(code)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, ErrMiss
	}
	return userID, err
}
