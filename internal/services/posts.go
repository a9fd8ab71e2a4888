package services

//go:generate mockgen -source=posts.go -destination=posts_mock.go -package=services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/repositories"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrPostNotFound is returned when the requested post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotOwner is returned when a caller tries to change a post it does not own.
	ErrNotOwner = errors.New("post belongs to another user")
)

// PostReader defines post read operations.
type PostReader interface {
	GetByID(ctx context.Context, postID int64) (*models.PostDB, error)
	ListAll(ctx context.Context) ([]models.PostDB, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.PostDB, error)
}

// PostWriter defines post write operations. Update and Delete only touch rows owned by userID.
type PostWriter interface {
	Save(ctx context.Context, userID uuid.UUID, title, content string) (*models.PostDB, error)
	Update(ctx context.Context, postID int64, userID uuid.UUID, title, content string) (*models.PostDB, error)
	Delete(ctx context.Context, postID int64, userID uuid.UUID) error
}

// PostCache caches single posts.
type PostCache interface {
	Get(ctx context.Context, postID int64) (*models.PostDB, error)
	Set(ctx context.Context, post *models.PostDB) error
	Delete(ctx context.Context, postID int64) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// PostService manages posts and enforces that only the owner may change or delete one.
// cache and kafkaWriter are optional.
type PostService struct {
	reader      PostReader
	writer      PostWriter
	cache       PostCache
	kafkaWriter KafkaWriter
}

// NewPostService creates a new PostService.
func NewPostService(reader PostReader, writer PostWriter, cache PostCache, kafkaWriter KafkaWriter) *PostService {
	return &PostService{
		reader:      reader,
		writer:      writer,
		cache:       cache,
		kafkaWriter: kafkaWriter,
	}
}

// Create stores a post owned by caller.
func (s *PostService) Create(ctx context.Context, caller *models.UserDB, input models.PostInput) (*models.PostDB, error) {
	log := logger.FromContext(ctx)

	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	post, err := s.writer.Save(ctx, caller.UserID, input.Title, input.Content)
	if err != nil {
		log.Errorw("failed to save post", "userID", caller.UserID, "error", err)
		return nil, err
	}

	s.publish(ctx, models.PostCreated, post)
	return post, nil
}

// Get returns a post by id, serving it from the cache when possible.
func (s *PostService) Get(ctx context.Context, postID int64) (*models.PostDB, error) {
	log := logger.FromContext(ctx)

	if s.cache != nil {
		post, err := s.cache.Get(ctx, postID)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, repositories.ErrCacheMiss) {
			log.Warnw("failed to read post cache", "postID", postID, "error", err)
		}
	}

	post, err := s.reader.GetByID(ctx, postID)
	if err != nil {
		log.Errorw("failed to get post", "postID", postID, "error", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, post); err != nil {
			log.Warnw("failed to cache post", "postID", postID, "error", err)
		}
	}
	return post, nil
}

// ListAll returns every post.
func (s *PostService) ListAll(ctx context.Context) ([]models.PostDB, error) {
	posts, err := s.reader.ListAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list posts", "error", err)
		return nil, err
	}
	return posts, nil
}

// ListForOwner returns the posts owned by caller. An empty result is not an error.
func (s *PostService) ListForOwner(ctx context.Context, caller *models.UserDB) ([]models.PostDB, error) {
	posts, err := s.reader.ListByUserID(ctx, caller.UserID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list user posts", "userID", caller.UserID, "error", err)
		return nil, err
	}
	return posts, nil
}

// Update replaces title and content of a post owned by caller. The owner never changes.
func (s *PostService) Update(ctx context.Context, caller *models.UserDB, postID int64, input models.PostInput) (*models.PostDB, error) {
	log := logger.FromContext(ctx)

	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	if err := s.authorize(ctx, caller, postID); err != nil {
		return nil, err
	}

	post, err := s.writer.Update(ctx, postID, caller.UserID, input.Title, input.Content)
	if errors.Is(err, repositories.ErrPostNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		log.Errorw("failed to update post", "postID", postID, "error", err)
		return nil, err
	}

	s.invalidate(ctx, postID)
	s.publish(ctx, models.PostUpdated, post)
	return post, nil
}

// Delete removes a post owned by caller.
func (s *PostService) Delete(ctx context.Context, caller *models.UserDB, postID int64) error {
	log := logger.FromContext(ctx)

	if err := s.authorize(ctx, caller, postID); err != nil {
		return err
	}

	err := s.writer.Delete(ctx, postID, caller.UserID)
	if errors.Is(err, repositories.ErrPostNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		log.Errorw("failed to delete post", "postID", postID, "error", err)
		return err
	}

	s.invalidate(ctx, postID)
	s.publish(ctx, models.PostDeleted, &models.PostDB{PostID: postID, UserID: caller.UserID})
	return nil
}

// authorize reads the post from the store, bypassing the cache, and checks ownership.
func (s *PostService) authorize(ctx context.Context, caller *models.UserDB, postID int64) error {
	log := logger.FromContext(ctx)

	post, err := s.reader.GetByID(ctx, postID)
	if err != nil {
		log.Errorw("failed to get post", "postID", postID, "error", err)
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != caller.UserID {
		log.Warnw("post change by non-owner rejected", "postID", postID, "ownerID", post.UserID, "callerID", caller.UserID)
		return ErrNotOwner
	}
	return nil
}

func (s *PostService) invalidate(ctx context.Context, postID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, postID); err != nil {
		logger.FromContext(ctx).Warnw("failed to invalidate cached post", "postID", postID, "error", err)
	}
}

// publish sends a post event to Kafka. Failures are logged, not returned.
func (s *PostService) publish(ctx context.Context, operation string, post *models.PostDB) {
	log := logger.FromContext(ctx)

	if s.kafkaWriter == nil {
		log.Debugw("Kafka writer not configured, skipping publishing", "operation", operation, "postID", post.PostID)
		return
	}

	event := models.PostEvent{
		EventID:   uuid.NewString(),
		PostID:    post.PostID,
		UserID:    post.UserID.String(),
		Operation: operation,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorw("Failed to marshal post event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(post.PostID, 10)),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		log.Errorw("Failed to publish post event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		log.Infow("Post event published to Kafka", "event_id", event.EventID, "operation", operation)
	}
}
