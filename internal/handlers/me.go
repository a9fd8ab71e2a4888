package handlers

import (
	"net/http"
)

// NewMeHandler returns the caller's public record.
// @Summary Current user
// @Description Returns the authenticated user without the password hash
// @Tags auth
// @Produce json
// @Success 200 {object} models.UserDB
// @Failure 400 {object} handlers.ErrorResponse "Inactive user"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Router /users/me [get]
// @Security BearerAuth
func NewMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
