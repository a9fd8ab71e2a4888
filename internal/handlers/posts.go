package handlers

//go:generate mockgen -source=posts.go -destination=posts_mock.go -package=handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// PostLister lists every post.
type PostLister interface {
	ListAll(ctx context.Context) ([]models.PostDB, error)
}

// OwnerPostLister lists the posts of one user.
type OwnerPostLister interface {
	ListForOwner(ctx context.Context, caller *models.UserDB) ([]models.PostDB, error)
}

// PostsResponse wraps a list of posts
// swagger:model PostsResponse
type PostsResponse struct {
	Posts []models.PostDB `json:"posts"`
}

// NewListPostsHandler returns an HTTP handler listing all posts.
// @Summary List posts
// @Description Returns every post, ordered by id
// @Tags posts
// @Produce json
// @Success 200 {object} handlers.PostsResponse
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /posts [get]
// @Security BearerAuth
func NewListPostsHandler(svc PostLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.ListAll(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Errorw("failed to list posts", "error", err)
			writeError(w, http.StatusInternalServerError, errInternal)
			return
		}

		writeJSON(w, http.StatusOK, PostsResponse{Posts: posts})
	}
}

// NewListMyPostsHandler returns an HTTP handler listing the caller's posts.
// @Summary List own posts
// @Description Returns the posts owned by the authenticated user
// @Tags posts
// @Produce json
// @Success 200 {array} models.PostDB
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} handlers.ErrorResponse "User has no posts"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /user/posts [get]
// @Security BearerAuth
func NewListMyPostsHandler(svc OwnerPostLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		posts, err := svc.ListForOwner(r.Context(), user)
		if err != nil {
			logger.FromContext(r.Context()).Errorw("failed to list user posts", "userID", user.UserID, "error", err)
			writeError(w, http.StatusInternalServerError, errInternal)
			return
		}
		if len(posts) == 0 {
			writeError(w, http.StatusNotFound, fmt.Sprintf("post with user ID: %s does not exist", user.UserID))
			return
		}

		writeJSON(w, http.StatusOK, posts)
	}
}
