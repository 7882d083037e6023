package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cpsGrowth/domain"
)

// DiagnosisCache stores funnel diagnoses under a short TTL so repeated
// dashboard refreshes don't re-aggregate the same window.
type DiagnosisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDiagnosisCache(client *redis.Client, ttl time.Duration) *DiagnosisCache {
	return &DiagnosisCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(itemID string, lookbackDays int) string {
	return fmt.Sprintf("funnel:diagnosis:%s:%d", itemID, lookbackDays)
}

// Get returns the cached diagnosis, or nil on a miss.
func (c *DiagnosisCache) Get(ctx context.Context, itemID string, lookbackDays int) (*domain.Diagnosis, error) {
	val, err := c.client.Get(ctx, cacheKey(itemID, lookbackDays)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get diagnosis from Redis: %w", err)
	}

	var diag domain.Diagnosis
	if err := json.Unmarshal([]byte(val), &diag); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached diagnosis: %w", err)
	}

	return &diag, nil
}

func (c *DiagnosisCache) Set(ctx context.Context, itemID string, lookbackDays int, diag domain.Diagnosis) error {
	jsonData, err := json.Marshal(diag)
	if err != nil {
		return fmt.Errorf("failed to marshal diagnosis: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(itemID, lookbackDays), jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store diagnosis in Redis: %w", err)
	}

	return nil
}
