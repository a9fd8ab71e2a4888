package handlers

//go:generate mockgen -source=post_get.go -destination=post_get_mock.go -package=handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
)

// PostGetter fetches a single post.
type PostGetter interface {
	Get(ctx context.Context, postID int64) (*models.PostDB, error)
}

// PostResponse wraps a single post
// swagger:model PostResponse
type PostResponse struct {
	Post *models.PostDB `json:"post"`
}

// NewGetPostHandler returns an HTTP handler fetching a post by id.
// @Summary Get post
// @Description Returns one post by id
// @Tags posts
// @Produce json
// @Param p_id path int true "Post ID"
// @Success 200 {object} handlers.PostResponse
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} handlers.ErrorResponse "Post does not exist"
// @Failure 422 {object} handlers.ErrorResponse "Invalid post ID"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /search/post/{p_id} [get]
// @Security BearerAuth
func NewGetPostHandler(svc PostGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := postIDParam(w, r)
		if !ok {
			return
		}

		post, err := svc.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPostNotFound):
				writeError(w, http.StatusNotFound, fmt.Sprintf("post with ID: %d does not exist", id))
			default:
				logger.FromContext(r.Context()).Errorw("failed to get post", "postID", id, "error", err)
				writeError(w, http.StatusInternalServerError, errInternal)
			}
			return
		}

		writeJSON(w, http.StatusOK, PostResponse{Post: post})
	}
}
