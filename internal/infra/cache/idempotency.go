package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "idempotency:booking"

// IdempotencyStore keeps one JSON record per (user, key) with a TTL.
// A claim is an atomic SETNX of a PROCESSING record.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *IdempotencyStore) Claim(ctx context.Context, userID uuid.UUID, key, requestHash string) (*shared.IdempotencyRecord, bool, error) {
	redisKey := idempotencyKey(userID, key)
	data, err := json.Marshal(shared.IdempotencyRecord{
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal idempotency record: %w", err)
	}

	ok, err := s.client.SetNX(ctx, redisKey, data, s.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}
	if ok {
		return nil, true, nil
	}

	val, err := s.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; treat as a fresh claim
		return s.Claim(ctx, userID, key, requestHash)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get idempotency record: %w", err)
	}

	var rec shared.IdempotencyRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal idempotency record: %w", err)
	}
	return &rec, false, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, userID uuid.UUID, key, requestHash string, bookingID uuid.UUID) error {
	data, err := json.Marshal(shared.IdempotencyRecord{
		Status:      shared.IdempotencyCompleted,
		RequestHash: requestHash,
		BookingID:   &bookingID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency record: %w", err)
	}

	if err := s.client.Set(ctx, idempotencyKey(userID, key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to complete idempotency key: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, userID uuid.UUID, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(userID, key)).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

func idempotencyKey(userID uuid.UUID, key string) string {
	return fmt.Sprintf("%s:%s:%s", idempotencyKeyPrefix, userID, key)
}
