package token

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store 已签发 token 的白名单
// 登录时登记 jti，登出时吊销该用户的全部 jti
type Store interface {
	Add(ctx context.Context, userID, jti string, ttl time.Duration) error
	IsValid(ctx context.Context, userID, jti string) bool
	RevokeAll(ctx context.Context, userID string) error
}

type redisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) key(userID, jti string) string {
	return fmt.Sprintf("token:%s:%s", userID, jti)
}

// Add 登记 token，有效期与 JWT 过期时间一致
func (s *redisStore) Add(ctx context.Context, userID, jti string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.key(userID, jti), 1, ttl).Err()
}

// IsValid 检查 token 是否仍在白名单内
func (s *redisStore) IsValid(ctx context.Context, userID, jti string) bool {
	n, err := s.rdb.Exists(ctx, s.key(userID, jti)).Result()
	return err == nil && n > 0
}

// RevokeAll 吊销该用户的所有 token（SCAN 避免阻塞）
func (s *redisStore) RevokeAll(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("token:%s:*", userID)
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
