package handlers

//go:generate mockgen -source=post_delete.go -destination=post_delete_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/models"
)

// PostDeleter removes posts owned by the caller.
type PostDeleter interface {
	Delete(ctx context.Context, caller *models.UserDB, postID int64) error
}

// NewDeletePostHandler returns an HTTP handler deleting a post.
// @Summary Delete post
// @Description Deletes a post. Only its owner may do so.
// @Tags posts
// @Produce json
// @Param p_id path int true "Post ID"
// @Success 200 {object} handlers.StatusResponse
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 403 {object} handlers.ErrorResponse "Post belongs to another user"
// @Failure 404 {object} handlers.ErrorResponse "Post does not exist"
// @Failure 422 {object} handlers.ErrorResponse "Invalid post ID"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /delete/post/{p_id} [delete]
// @Security BearerAuth
func NewDeletePostHandler(svc PostDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		id, ok := postIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), user, id); err != nil {
			writePostChangeError(w, r, id, err)
			return
		}

		writeJSON(w, http.StatusOK, StatusResponse{Status: "Post Deleted Successfully"})
	}
}
