package models

// Post event operations published to Kafka.
const (
	PostCreated = "post.created"
	PostUpdated = "post.updated"
	PostDeleted = "post.deleted"
)

// PostEvent describes a change to a post, published after the change is stored.
type PostEvent struct {
	EventID   string `json:"event_id"`  // Unique identifier of the event
	PostID    int64  `json:"post_id"`   // Affected post
	UserID    string `json:"user_id"`   // Owner who made the change
	Operation string `json:"operation"` // One of PostCreated, PostUpdated, PostDeleted
	Timestamp int64  `json:"timestamp"` // Unix timestamp (seconds)
}
