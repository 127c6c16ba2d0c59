package preference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisOptions Redis 連線設定
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStore 以 Redis 儲存偏好，選擇與忽略集合放在兩個 key 並以 MULTI/EXEC 一起寫入
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 建立連線並測試
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(client, opts.KeyPrefix), nil
}

// NewRedisStoreWithClient 使用既有的 client
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "canteen-finder:preferences"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) selectedKey(owner string) string {
	return fmt.Sprintf("%s:%s:selected", s.prefix, owner)
}

func (s *RedisStore) ignoredKey(owner string) string {
	return fmt.Sprintf("%s:%s:ignored", s.prefix, owner)
}

func (s *RedisStore) getList(ctx context.Context, key string) ([]string, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return list, true, nil
}

func encodeList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

// Selections 實作 Store
func (s *RedisStore) Selections(ctx context.Context, owner string) ([]string, error) {
	list, _, err := s.getList(ctx, s.selectedKey(owner))
	return list, err
}

// Ignored 實作 Store
func (s *RedisStore) Ignored(ctx context.Context, owner string) ([]string, bool, error) {
	return s.getList(ctx, s.ignoredKey(owner))
}

// CacheIgnored 實作 Store
func (s *RedisStore) CacheIgnored(ctx context.Context, owner string, ignored []string) error {
	data, err := encodeList(ignored)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.ignoredKey(owner), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to cache ignored categories: %w", err)
	}
	return nil
}

// Save 實作 Store
func (s *RedisStore) Save(ctx context.Context, owner string, selections, ignored []string) error {
	selData, err := encodeList(selections)
	if err != nil {
		return err
	}
	ignData, err := encodeList(ignored)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.selectedKey(owner), selData, 0)
		pipe.Set(ctx, s.ignoredKey(owner), ignData, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Clear 實作 Store
func (s *RedisStore) Clear(ctx context.Context, owner string) error {
	if err := s.client.Del(ctx, s.selectedKey(owner), s.ignoredKey(owner)).Err(); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	return nil
}

// Ping 檢查連線
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
