package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/stretchr/testify/require"
)

// newRequest builds a request carrying user and the p_id route parameter when set.
func newRequest(method, target string, body io.Reader, user *models.UserDB, postID string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := req.Context()
	if user != nil {
		ctx = middlewares.WithUser(ctx, user)
	}
	if postID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("p_id", postID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}
