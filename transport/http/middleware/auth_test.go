package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"vista/config"
	"vista/infras/jwt"
	jwtMocks "vista/infras/jwt/mocks"
	"vista/infras/otel/mocks"
	"vista/permissions"
	"vista/shared/constant"
	"vista/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const internalKey = "internal-key"

func newAuthRouter(mockJWT jwt.JWT) http.Handler {
	cfg := &config.Config{}
	cfg.App.APIKey = internalKey

	rules := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/auth/sign-in", Method: http.MethodPost, Skip: true},
			{Path: "/v1/logs/{id}", Method: http.MethodDelete, Permissions: []string{constant.RoleManager}},
		},
	}

	mw := middleware.NewAuthRoleMiddleware(mockJWT, mocks.NewOtel(), rules, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		w.Header().Set("X-User", user)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Use(mw.APIKey, mw.Auth, mw.RBAC)
	router.Post("/v1/auth/sign-in", echo)
	router.Get("/v1/rooms", echo)
	router.Delete("/v1/logs/{id}", echo)

	return router
}

func claims(role string) *jwt.Claims {
	return &jwt.Claims{UserID: "user-1", Email: "ada@vista.example", Role: role, TokenID: "tok-1", SessionID: "sess-1"}
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		headers    map[string]string
		setupMock  func(mockJWT *jwtMocks.MockJWT)
		wantStatus int
		wantUser   string
	}{
		{
			name:       "public route without token",
			method:     http.MethodPost,
			path:       "/v1/auth/sign-in",
			setupMock:  func(_ *jwtMocks.MockJWT) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			method:     http.MethodGet,
			path:       "/v1/rooms",
			setupMock:  func(_ *jwtMocks.MockJWT) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer header",
			method:     http.MethodGet,
			path:       "/v1/rooms",
			headers:    map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			setupMock:  func(_ *jwtMocks.MockJWT) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			path:    "/v1/rooms",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer old"},
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "old", jwt.AccessToken).
					Return(nil, fmt.Errorf("parse: %w", jwt.ErrExpiredToken))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "claims without session",
			method:  http.MethodGet,
			path:    "/v1/rooms",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer t"},
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "user-1"}, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "any staff role on open route",
			method:  http.MethodGet,
			path:    "/v1/rooms",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer t"},
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).Return(claims(constant.RoleHousekeeping), nil)
			},
			wantStatus: http.StatusOK,
			wantUser:   "user-1",
		},
		{
			name:    "role not allowed",
			method:  http.MethodDelete,
			path:    "/v1/logs/log-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer t"},
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).Return(claims(constant.RoleHousekeeping), nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:    "manager allowed",
			method:  http.MethodDelete,
			path:    "/v1/logs/log-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer t"},
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).Return(claims(constant.RoleManager), nil)
			},
			wantStatus: http.StatusOK,
			wantUser:   "user-1",
		},
		{
			name:       "internal api key bypasses token and roles",
			method:     http.MethodDelete,
			path:       "/v1/logs/log-1",
			headers:    map[string]string{constant.RequestHeaderAPIKey: internalKey},
			setupMock:  func(_ *jwtMocks.MockJWT) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong api key",
			method:     http.MethodGet,
			path:       "/v1/rooms",
			headers:    map[string]string{constant.RequestHeaderAPIKey: "guess"},
			setupMock:  func(_ *jwtMocks.MockJWT) {},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockJWT := jwtMocks.NewMockJWT(ctrl)
			tt.setupMock(mockJWT)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newAuthRouter(mockJWT).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
		})
	}
}
