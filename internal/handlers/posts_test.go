package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAlice = &models.UserDB{UserID: uuid.New(), Username: "alice", Email: "alice@example.com", PasswordHash: "secret-hash"}
	testPost  = &models.PostDB{PostID: 1, Title: "t", Content: "c", UserID: testAlice.UserID}
)

func TestMeHandler(t *testing.T) {
	t.Run("returns caller without hash", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewMeHandler().ServeHTTP(w, newRequest(http.MethodGet, "/users/me", nil, testAlice, ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "secret-hash")

		var got models.UserDB
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, testAlice.UserID, got.UserID)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("no caller", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewMeHandler().ServeHTTP(w, newRequest(http.MethodGet, "/users/me", nil, nil, ""))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})
}

func TestListPostsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockPostLister(ctrl)

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().ListAll(gomock.Any()).Return([]models.PostDB{*testPost}, nil)

		w := httptest.NewRecorder()
		NewListPostsHandler(mockSvc).ServeHTTP(w, newRequest(http.MethodGet, "/posts", nil, testAlice, ""))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp PostsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Posts, 1)
		assert.Equal(t, int64(1), resp.Posts[0].PostID)
	})

	t.Run("store error", func(t *testing.T) {
		mockSvc.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		NewListPostsHandler(mockSvc).ServeHTTP(w, newRequest(http.MethodGet, "/posts", nil, testAlice, ""))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestListMyPostsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockOwnerPostLister(ctrl)

	tests := []struct {
		name         string
		mockSetup    func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "has posts",
			mockSetup: func() {
				mockSvc.EXPECT().ListForOwner(gomock.Any(), testAlice).Return([]models.PostDB{*testPost}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name: "no posts",
			mockSetup: func() {
				mockSvc.EXPECT().ListForOwner(gomock.Any(), testAlice).Return([]models.PostDB{}, nil)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "store error",
			mockSetup: func() {
				mockSvc.EXPECT().ListForOwner(gomock.Any(), testAlice).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			NewListMyPostsHandler(mockSvc).ServeHTTP(w, newRequest(http.MethodGet, "/user/posts", nil, testAlice, ""))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var posts []models.PostDB
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
				assert.Len(t, posts, tt.expectedLen)
			}
		})
	}
}

func TestGetPostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockPostGetter(ctrl)

	tests := []struct {
		name         string
		postID       string
		mockSetup    func()
		expectedCode int
	}{
		{
			name:   "found",
			postID: "1",
			mockSetup: func() {
				mockSvc.EXPECT().Get(gomock.Any(), int64(1)).Return(testPost, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "not found",
			postID: "42",
			mockSetup: func() {
				mockSvc.EXPECT().Get(gomock.Any(), int64(42)).Return(nil, services.ErrPostNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "non-numeric id",
			postID:       "abc",
			mockSetup:    func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "store error",
			postID: "1",
			mockSetup: func() {
				mockSvc.EXPECT().Get(gomock.Any(), int64(1)).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			NewGetPostHandler(mockSvc).ServeHTTP(w, newRequest(http.MethodGet, "/search/post/"+tt.postID, nil, testAlice, tt.postID))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var resp PostResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, testPost.PostID, resp.Post.PostID)
			}
		})
	}
}

func TestCreatePostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockPostCreator(ctrl)
	input := models.PostInput{Title: "t", Content: "c"}

	tests := []struct {
		name         string
		body         string
		user         *models.UserDB
		mockSetup    func()
		expectedCode int
	}{
		{
			name: "success",
			body: `{"title":"t","content":"c"}`,
			user: testAlice,
			mockSetup: func() {
				mockSvc.EXPECT().Create(gomock.Any(), testAlice, input).Return(testPost, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "malformed body",
			body:         `{"title":`,
			user:         testAlice,
			mockSetup:    func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "validation failed",
			body: `{"title":"","content":"c"}`,
			user: testAlice,
			mockSetup: func() {
				mockSvc.EXPECT().Create(gomock.Any(), testAlice, models.PostInput{Content: "c"}).
					Return(nil, fmt.Errorf("%w: title: cannot be blank", services.ErrValidationFailed))
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "no caller",
			body:         `{"title":"t","content":"c"}`,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "store error",
			body: `{"title":"t","content":"c"}`,
			user: testAlice,
			mockSetup: func() {
				mockSvc.EXPECT().Create(gomock.Any(), testAlice, input).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			req := newRequest(http.MethodPost, "/insert/post", strings.NewReader(tt.body), tt.user, "")
			NewCreatePostHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var resp CreatePostResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, testAlice.UserID, resp.Details)
				assert.Equal(t, testPost.PostID, resp.Post.PostID)
			}
		})
	}
}

func TestUpdatePostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockPostUpdater(ctrl)
	input := models.PostInput{Title: "new", Content: "body"}
	body := `{"title":"new","content":"body"}`

	tests := []struct {
		name           string
		postID         string
		body           string
		mockSetup      func()
		expectedCode   int
		expectedStatus string
	}{
		{
			name:   "owner updates",
			postID: "1",
			body:   body,
			mockSetup: func() {
				mockSvc.EXPECT().Update(gomock.Any(), testAlice, int64(1), input).Return(testPost, nil)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "Post Updated Successfully",
		},
		{
			name:   "not owner",
			postID: "1",
			body:   body,
			mockSetup: func() {
				mockSvc.EXPECT().Update(gomock.Any(), testAlice, int64(1), input).Return(nil, services.ErrNotOwner)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name:   "not found",
			postID: "2",
			body:   body,
			mockSetup: func() {
				mockSvc.EXPECT().Update(gomock.Any(), testAlice, int64(2), input).Return(nil, services.ErrPostNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "bad id",
			postID:       "x1",
			body:         body,
			mockSetup:    func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "malformed body",
			postID:       "1",
			body:         `nope`,
			mockSetup:    func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			req := newRequest(http.MethodPut, "/update/post/"+tt.postID, strings.NewReader(tt.body), testAlice, tt.postID)
			NewUpdatePostHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedStatus != "" {
				var resp StatusResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedStatus, resp.Status)
			}
		})
	}
}

func TestDeletePostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockPostDeleter(ctrl)

	tests := []struct {
		name         string
		postID       string
		mockSetup    func()
		expectedCode int
	}{
		{
			name:   "owner deletes",
			postID: "1",
			mockSetup: func() {
				mockSvc.EXPECT().Delete(gomock.Any(), testAlice, int64(1)).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "not owner",
			postID: "1",
			mockSetup: func() {
				mockSvc.EXPECT().Delete(gomock.Any(), testAlice, int64(1)).Return(services.ErrNotOwner)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name:   "already gone",
			postID: "1",
			mockSetup: func() {
				mockSvc.EXPECT().Delete(gomock.Any(), testAlice, int64(1)).Return(services.ErrPostNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "store error",
			postID: "1",
			mockSetup: func() {
				mockSvc.EXPECT().Delete(gomock.Any(), testAlice, int64(1)).Return(errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "bad id",
			postID:       "one",
			mockSetup:    func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			req := newRequest(http.MethodDelete, "/delete/post/"+tt.postID, nil, testAlice, tt.postID)
			NewDeletePostHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
