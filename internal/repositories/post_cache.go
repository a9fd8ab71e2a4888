package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// ErrCacheMiss is returned when a post is not cached.
var ErrCacheMiss = errors.New("post not found in cache")

// PostCacheRepository caches single posts in Redis
type PostCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached posts
}

// NewPostCacheRepository creates a new cache repository
func NewPostCacheRepository(client *redis.Client, expiration time.Duration) *PostCacheRepository {
	return &PostCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func postKey(postID int64) string {
	return fmt.Sprintf("post:%d", postID)
}

// Get returns the cached post or ErrCacheMiss.
func (r *PostCacheRepository) Get(ctx context.Context, postID int64) (*models.PostDB, error) {
	key := postKey(postID)

	val, err := r.client.Get(ctx, key).Bytes()
	logger.FromContext(ctx).Debugw("cache get", "key", key, "error", err)
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var post models.PostDB
	if err := json.Unmarshal(val, &post); err != nil {
		return nil, fmt.Errorf("decode cached post %s: %w", key, err)
	}
	return &post, nil
}

// Set caches post until the repository expiration elapses.
func (r *PostCacheRepository) Set(ctx context.Context, post *models.PostDB) error {
	key := postKey(post.PostID)

	data, err := json.Marshal(post)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()
	logger.FromContext(ctx).Debugw("cache set", "key", key, "error", err)
	return err
}

// Delete drops a cached post. Deleting a missing key is not an error.
func (r *PostCacheRepository) Delete(ctx context.Context, postID int64) error {
	key := postKey(postID)

	err := r.client.Del(ctx, key).Err()
	logger.FromContext(ctx).Debugw("cache delete", "key", key, "error", err)
	return err
}
