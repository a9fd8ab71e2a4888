package handlers

//go:generate mockgen -source=post_update.go -destination=post_update_mock.go -package=handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
)

// PostUpdater changes posts owned by the caller.
type PostUpdater interface {
	Update(ctx context.Context, caller *models.UserDB, postID int64, input models.PostInput) (*models.PostDB, error)
}

// NewUpdatePostHandler returns an HTTP handler replacing title and content of a post.
// @Summary Update post
// @Description Updates a post. Only its owner may do so.
// @Tags posts
// @Accept json
// @Produce json
// @Param p_id path int true "Post ID"
// @Param postRequest body handlers.PostRequest true "Post"
// @Success 200 {object} handlers.StatusResponse
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 403 {object} handlers.ErrorResponse "Post belongs to another user"
// @Failure 404 {object} handlers.ErrorResponse "Post does not exist"
// @Failure 422 {object} handlers.ErrorResponse "Invalid post ID or format"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /update/post/{p_id} [put]
// @Security BearerAuth
func NewUpdatePostHandler(svc PostUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		id, ok := postIDParam(w, r)
		if !ok {
			return
		}

		input, ok := decodePostRequest(w, r)
		if !ok {
			return
		}

		_, err := svc.Update(r.Context(), user, id, input)
		if err != nil {
			writePostChangeError(w, r, id, err)
			return
		}

		writeJSON(w, http.StatusOK, StatusResponse{Status: "Post Updated Successfully"})
	}
}

// writePostChangeError maps update and delete failures to responses.
func writePostChangeError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		writeError(w, http.StatusUnprocessableEntity, "Invalid format")
	case errors.Is(err, services.ErrPostNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("post with ID: %d does not exist", id))
	case errors.Is(err, services.ErrNotOwner):
		writeError(w, http.StatusForbidden, "Not enough permissions")
	default:
		logger.FromContext(r.Context()).Errorw("failed to change post", "postID", id, "error", err)
		writeError(w, http.StatusInternalServerError, errInternal)
	}
}
