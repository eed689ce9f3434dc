package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"vidsocial/infrastructure/logger"
)

// NewCache connects to addr and pings it. A nil client with an error means the
// cache should be treated as disabled.
func NewCache(ctx context.Context, addr, username, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     username,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		logger.GetLogger().WithField("error", err).WithField("addr", addr).Warn("Redis not available")
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}
