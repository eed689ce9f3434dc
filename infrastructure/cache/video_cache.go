package cache

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/logger"
)

const defaultVideoTTL = 5 * time.Minute

type VideoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVideoCache returns a read-through cache for single videos. A nil client
// turns every call into a no-op.
func NewVideoCache(client *redis.Client, ttl time.Duration) repository.IVideoCache {
	if ttl <= 0 {
		ttl = defaultVideoTTL
	}
	return &VideoCache{client: client, ttl: ttl}
}

func videoKey(id bson.ObjectID) string {
	return "video:" + id.Hex()
}

// encodeVideo drops the populated owner; it is re-attached on every read.
func encodeVideo(v model.Video) ([]byte, error) {
	v.Owner = nil
	return json.Marshal(v)
}

func decodeVideo(data []byte) (model.Video, error) {
	var v model.Video
	err := json.Unmarshal(data, &v)
	return v, err
}

func (c *VideoCache) Get(ctx context.Context, id bson.ObjectID) (*model.Video, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, videoKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx).WithField("error", err).Warn("redis: get video failed")
		}
		return nil, false
	}
	video, err := decodeVideo(data)
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("redis: decode video failed")
		return nil, false
	}
	return &video, true
}

func (c *VideoCache) Set(ctx context.Context, video model.Video) {
	if c.client == nil {
		return
	}
	data, err := encodeVideo(video)
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("redis: encode video failed")
		return
	}
	if err := c.client.Set(ctx, videoKey(video.ID), data, c.ttl).Err(); err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("redis: set video failed")
	}
}

func (c *VideoCache) Invalidate(ctx context.Context, id bson.ObjectID) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, videoKey(id)).Err(); err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("redis: invalidate video failed")
	}
}
