package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dkemper/driftboard-api/internal/service/auth"
)

// MockJWTService is a mock implementation of auth.JWTService for testing
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return "", nil
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return nil, nil
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	validService := &MockJWTService{
		ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
			if tokenString == "good-token" {
				return &auth.Claims{UserID: userID}, nil
			}
			return nil, auth.ErrInvalidToken
		},
	}

	tests := []struct {
		name           string
		authHeader     string
		jwtService     auth.JWTService
		expectedStatus int
		expectUserID   bool
	}{
		{
			name:           "valid bearer token",
			authHeader:     "Bearer good-token",
			jwtService:     validService,
			expectedStatus: http.StatusOK,
			expectUserID:   true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			jwtService:     validService,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			jwtService:     validService,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer bad-token",
			jwtService:     validService,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer whatever",
			jwtService: &MockJWTService{
				ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
					return nil, auth.ErrExpiredToken
				},
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			middleware := NewAuthMiddleware(tc.jwtService)

			var seenUserID uuid.UUID
			var seenOK bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenUserID, seenOK = GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			middleware.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectUserID {
				assert.True(t, seenOK)
				assert.Equal(t, userID, seenUserID)
			}
		})
	}
}

func TestGetUserIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req)
	assert.False(t, ok)
}
