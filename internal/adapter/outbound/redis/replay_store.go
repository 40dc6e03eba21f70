package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uniedit/orderflow/internal/port/outbound"
)

const (
	replayKeyPrefix  = "orderflow:replay:"
	replayLockSuffix = ":inflight"
)

type replayStore struct {
	client redis.UniversalClient
}

// NewReplayStore creates the idempotency replay store.
func NewReplayStore(client redis.UniversalClient) outbound.ReplayStorePort {
	return &replayStore{client: client}
}

func (s *replayStore) Load(ctx context.Context, key string) (*outbound.StoredResponse, error) {
	data, err := s.client.Get(ctx, replayKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load replay: %w", err)
	}

	var resp outbound.StoredResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	return &resp, nil
}

func (s *replayStore) Reserve(ctx context.Context, key string, hold time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, replayKeyPrefix+key+replayLockSuffix, "1", hold).Result()
	if err != nil {
		return false, fmt.Errorf("reserve replay: %w", err)
	}
	return ok, nil
}

func (s *replayStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, replayKeyPrefix+key+replayLockSuffix).Err()
}

func (s *replayStore) Save(ctx context.Context, key string, resp *outbound.StoredResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode replay: %w", err)
	}
	return s.client.Set(ctx, replayKeyPrefix+key, data, ttl).Err()
}

var _ outbound.ReplayStorePort = (*replayStore)(nil)
