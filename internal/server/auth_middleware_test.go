package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"peached/internal/auth"
	"peached/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authTestApp(s *Server) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	echo := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userID":  c.Locals(localUserID),
			"user":    currentUser(c) != nil,
			"profile": currentProfile(c) != nil,
		})
	}
	app.Get("/protected", s.AuthRequired(), echo)
	app.Post("/protected", s.AuthRequired(), echo)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestServer_AuthRequired(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, 0)
	valid, err := tokens.Issue(7, "hash")
	require.NoError(t, err)
	other, err := auth.NewTokenService("another-secret-key-1234567890123456789", 0).Issue(7, "hash")
	require.NoError(t, err)
	unknown, err := tokens.Issue(404, "hash")
	require.NoError(t, err)
	gone, err := tokens.Issue(9, "hash")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("GetProfile", mock.Anything, uint(7)).Return(&models.Profile{ID: 7}, nil)
	repo.On("GetByID", mock.Anything, uint(7)).Return(&models.User{ID: 7}, nil)
	repo.On("GetProfile", mock.Anything, uint(404)).Return(nil, models.NewNotFoundError("user 404 not found"))
	repo.On("GetProfile", mock.Anything, uint(9)).Return(&models.Profile{ID: 9, Deactivated: true}, nil)
	repo.On("GetByID", mock.Anything, uint(9)).Return(&models.User{ID: 9, Deactivated: true}, nil)

	app := authTestApp(newMockServer(testConfig(), repo, nil))

	tests := []struct {
		name           string
		method         string
		token          string
		expectedStatus int
		expectedCode   string
		wantProfile    bool
	}{
		{name: "Missing Token", method: http.MethodGet, expectedStatus: http.StatusUnauthorized, expectedCode: models.CodeUnauthenticated},
		{name: "Garbage Token", method: http.MethodGet, token: "not-a-jwt", expectedStatus: http.StatusBadRequest, expectedCode: models.CodeInvalidToken},
		{name: "Wrong Secret", method: http.MethodGet, token: other, expectedStatus: http.StatusBadRequest, expectedCode: models.CodeInvalidToken},
		{name: "Unknown Subject", method: http.MethodGet, token: unknown, expectedStatus: http.StatusBadRequest, expectedCode: models.CodeInvalidToken},
		{name: "Deactivated Read", method: http.MethodGet, token: gone, expectedStatus: http.StatusBadRequest, expectedCode: models.CodeInvalidToken},
		{name: "Deactivated Write", method: http.MethodPost, token: gone, expectedStatus: http.StatusBadRequest, expectedCode: models.CodeInvalidToken},
		{name: "Read Gets Profile", method: http.MethodGet, token: valid, expectedStatus: http.StatusOK, wantProfile: true},
		{name: "Write Gets User", method: http.MethodPost, token: valid, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/protected", nil)
			if tt.token != "" {
				req.Header.Set(auth.TokenHeader, tt.token)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body := decodeBody(t, resp)
			if tt.expectedCode != "" {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.expectedCode, body["code"])
				return
			}
			assert.EqualValues(t, 7, body["userID"])
			assert.Equal(t, tt.wantProfile, body["profile"])
			assert.Equal(t, !tt.wantProfile, body["user"])
		})
	}
}

func TestServer_AuthRequiredFingerprint(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, 0)
	current, err := tokens.Issue(7, "current-hash")
	require.NoError(t, err)
	stale, err := tokens.Issue(7, "old-hash")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("GetProfile", mock.Anything, uint(7)).Return(&models.Profile{ID: 7}, nil)
	repo.On("GetPasswordHash", mock.Anything, uint(7)).Return("current-hash", nil)

	call := func(t *testing.T, app *fiber.App, token string) int {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(auth.TokenHeader, token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode
	}

	t.Run("disabled by default", func(t *testing.T) {
		app := authTestApp(newMockServer(testConfig(), repo, nil))
		assert.Equal(t, http.StatusOK, call(t, app, stale))
	})

	t.Run("config switch", func(t *testing.T) {
		cfg := testConfig()
		cfg.EnforceTokenFingerprint = true
		app := authTestApp(newMockServer(cfg, repo, nil))
		assert.Equal(t, http.StatusOK, call(t, app, current))
		assert.Equal(t, http.StatusBadRequest, call(t, app, stale))
	})

	t.Run("feature flag", func(t *testing.T) {
		cfg := testConfig()
		cfg.FeatureFlags = "token_fingerprint=true"
		app := authTestApp(newMockServer(cfg, repo, nil))
		assert.Equal(t, http.StatusBadRequest, call(t, app, stale))
	})
}
