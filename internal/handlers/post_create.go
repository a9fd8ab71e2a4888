package handlers

//go:generate mockgen -source=post_create.go -destination=post_create_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
)

// PostCreator creates posts.
type PostCreator interface {
	Create(ctx context.Context, caller *models.UserDB, input models.PostInput) (*models.PostDB, error)
}

// PostRequest is the editable part of a post
// swagger:model PostRequest
type PostRequest struct {
	// Title
	// required: true
	// default: Hello
	Title string `json:"title"`

	// Body
	// required: true
	// default: First post
	Content string `json:"content"`
}

// CreatePostResponse represents a created post
// swagger:model CreatePostResponse
type CreatePostResponse struct {
	// Owner ID
	Details uuid.UUID `json:"details"`

	Post *models.PostDB `json:"post"`
}

// decodePostRequest reads a PostRequest body. It writes 422 when the body is not valid JSON.
func decodePostRequest(w http.ResponseWriter, r *http.Request) (models.PostInput, bool) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid format")
		return models.PostInput{}, false
	}
	return models.PostInput{Title: req.Title, Content: req.Content}, true
}

// NewCreatePostHandler returns an HTTP handler creating a post owned by the caller.
// @Summary Create post
// @Description Creates a post owned by the authenticated user
// @Tags posts
// @Accept json
// @Produce json
// @Param postRequest body handlers.PostRequest true "Post"
// @Success 200 {object} handlers.CreatePostResponse
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 422 {object} handlers.ErrorResponse "Invalid format"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /insert/post [post]
// @Security BearerAuth
func NewCreatePostHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		input, ok := decodePostRequest(w, r)
		if !ok {
			return
		}

		post, err := svc.Create(r.Context(), user, input)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrValidationFailed):
				writeError(w, http.StatusUnprocessableEntity, "Invalid format")
			default:
				logger.FromContext(r.Context()).Errorw("failed to create post", "userID", user.UserID, "error", err)
				writeError(w, http.StatusInternalServerError, errInternal)
			}
			return
		}

		writeJSON(w, http.StatusOK, CreatePostResponse{Details: user.UserID, Post: post})
	}
}
