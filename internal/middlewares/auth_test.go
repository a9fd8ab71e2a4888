package middlewares

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/jwt"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alice := &models.UserDB{UserID: uuid.New(), Username: "alice"}

	tests := []struct {
		name             string
		mockSetup        func(tok *MockTokener, res *MockIdentityResolver)
		expectedStatus   int
		expectedError    string
		expectChallenge  bool
		expectNextCalled bool
	}{
		{
			name: "NoToken",
			mockSetup: func(tok *MockTokener, res *MockIdentityResolver) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("no token"))
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedError:   "Could not validate credentials",
			expectChallenge: true,
		},
		{
			name: "InvalidToken",
			mockSetup: func(tok *MockTokener, res *MockIdentityResolver) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("sometoken", nil)
				res.EXPECT().ResolveActive(gomock.Any(), "sometoken").
					Return(nil, fmt.Errorf("%w: %w", services.ErrUnauthenticated, jwt.ErrInvalidToken))
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedError:   "Could not validate credentials",
			expectChallenge: true,
		},
		{
			name: "DisabledUser",
			mockSetup: func(tok *MockTokener, res *MockIdentityResolver) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("tok", nil)
				res.EXPECT().ResolveActive(gomock.Any(), "tok").Return(nil, services.ErrAccountDisabled)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Inactive user",
		},
		{
			name: "StoreFailure",
			mockSetup: func(tok *MockTokener, res *MockIdentityResolver) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("tok", nil)
				res.EXPECT().ResolveActive(gomock.Any(), "tok").Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal server error",
		},
		{
			name: "ValidToken",
			mockSetup: func(tok *MockTokener, res *MockIdentityResolver) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("validtoken", nil)
				res.EXPECT().ResolveActive(gomock.Any(), "validtoken").Return(alice, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			mockResolver := NewMockIdentityResolver(ctrl)
			tt.mockSetup(mockTokener, mockResolver)

			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, alice, GetUserFromContext(r.Context()))
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(mockTokener, mockResolver)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)

			if tt.expectChallenge {
				assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rr.Header().Get("WWW-Authenticate"))
			}

			if tt.expectedError != "" {
				var body errorBody
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body.Error)
			}
		})
	}
}

func TestGetUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetUserFromContext(req.Context()))
}
