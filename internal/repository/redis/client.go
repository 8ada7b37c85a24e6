package redis

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/IdoSagiv/connect-four/internal/domain"
	"github.com/redis/go-redis/v9"
)

const scoresKey = "connectfour:scores"

var RedisClient *redis.Client
var redisEnabled bool

// InitRedis connects to addr. An unreachable server is not an error: the
// caller checks IsRedisEnabled and falls back to in-memory scores.
func InitRedis(addr, password string) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Warning: Could not connect to Redis: %v. Falling back to in-memory scores.", err)
		redisEnabled = false
		return nil
	}

	redisEnabled = true
	log.Println("[REDIS] Connected successfully")
	return nil
}

// IsRedisEnabled returns whether Redis is available
func IsRedisEnabled() bool {
	return redisEnabled
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// ScoreStore keeps win totals in one hash, one field per player identity.
type ScoreStore struct {
	client *redis.Client
	key    string
}

func NewScoreStore(client *redis.Client) *ScoreStore {
	return &ScoreStore{client: client, key: scoresKey}
}

func (s *ScoreStore) Increment(ctx context.Context, id domain.PlayerID) (int64, error) {
	total, err := s.client.HIncrBy(ctx, s.key, fieldFor(id), 1).Result()
	if err != nil {
		return 0, fmt.Errorf("redis hincrby: %w", err)
	}
	return total, nil
}

func (s *ScoreStore) Totals(ctx context.Context) (map[domain.PlayerID]int64, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	return parseTotals(fields), nil
}

func fieldFor(id domain.PlayerID) string {
	return strconv.Itoa(int(id))
}

// parseTotals skips fields that are not a known identity or not a number.
func parseTotals(fields map[string]string) map[domain.PlayerID]int64 {
	totals := make(map[domain.PlayerID]int64, len(fields))
	for field, raw := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		id := domain.PlayerID(n)
		if id != domain.PlayerA && id != domain.PlayerB {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Printf("[REDIS] Ignoring malformed score %q for player %s", raw, id)
			continue
		}
		totals[id] = v
	}
	return totals
}
