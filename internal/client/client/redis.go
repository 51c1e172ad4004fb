package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each record as a JSON string at "<root>:<key>" and indexes
// keys in the sorted set "<root>", scored by timestamp.
type RedisStore struct {
	rdb  *redis.Client
	root string
}

func NewRedisStore(ctx context.Context, addr, password string, db int, root string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisStoreFromClient(rdb, root), nil
}

func NewRedisStoreFromClient(rdb *redis.Client, root string) *RedisStore {
	return &RedisStore{rdb: rdb, root: root}
}

func (s *RedisStore) docKey(key string) string {
	return s.root + ":" + key
}

// Append writes rec under a UUIDv7 key and indexes it, in one MULTI/EXEC.
func (s *RedisStore) Append(ctx context.Context, rec Record) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	key := id.String()
	rec.ID = HashKey(key)
	return key, s.put(ctx, key, rec)
}

func (s *RedisStore) put(ctx context.Context, key string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.docKey(key), data, 0)
		p.ZAdd(ctx, s.root, redis.Z{Score: float64(rec.Timestamp), Member: key})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Record, error) {
	data, err := s.rdb.Get(ctx, s.docKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) List(ctx context.Context) (map[string]Record, error) {
	keys, err := s.rdb.ZRange(ctx, s.root, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	result := make(map[string]Record, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	docKeys := make([]string, len(keys))
	for i, k := range keys {
		docKeys[i] = s.docKey(k)
	}
	vals, err := s.rdb.MGet(ctx, docKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			// indexed but the document is gone
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %s: %w", keys[i], err)
		}
		result[keys[i]] = rec
	}
	return result, nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, s.docKey(key))
		p.ZRem(ctx, s.root, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove record: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
