package server

import (
	"bytes"
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

func TestBlockedWordHandlers(t *testing.T) {
	token, err := auth.NewTokenService(testSecret, 0).Issue(1, "hash")
	require.NoError(t, err)

	users := new(MockUserRepository)
	users.On("GetProfile", mock.Anything, uint(1)).Return(&models.Profile{ID: 1}, nil)
	users.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1}, nil)

	words := new(MockBlockedWordRepository)
	words.On("List", mock.Anything, uint(1)).Return([]string{"spoiler", "Spoiler"}, nil)
	words.On("Add", mock.Anything, uint(1), "spoiler").
		Return(models.NewConflictError("word already in blocked words list"))
	words.On("Add", mock.Anything, uint(1), "fresh").Return(nil)
	words.On("Remove", mock.Anything, uint(1), "missing").Return(false, nil)

	s := newMockServer(testConfig(), users, words)
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/blocked_words", s.AuthRequired(), s.GetBlockedWords)
	app.Post("/blocked_words", s.AuthRequired(), s.AddBlockedWord)
	app.Delete("/blocked_words", s.AuthRequired(), s.RemoveBlockedWord)

	tests := []struct {
		name           string
		method         string
		body           any
		expectedStatus int
		expectedMsg    string
	}{
		{name: "List", method: http.MethodGet, expectedStatus: http.StatusOK},
		{name: "Add", method: http.MethodPost, body: map[string]string{"new_word": "fresh"}, expectedStatus: http.StatusOK},
		{name: "Add Duplicate", method: http.MethodPost, body: map[string]string{"new_word": "spoiler"},
			expectedStatus: http.StatusBadRequest, expectedMsg: "word already in blocked words list"},
		{name: "Add Empty", method: http.MethodPost, body: map[string]string{"new_word": ""},
			expectedStatus: http.StatusBadRequest, expectedMsg: "missing word"},
		{name: "Remove Missing", method: http.MethodDelete, body: map[string]string{"word": "missing"},
			expectedStatus: http.StatusBadRequest, expectedMsg: "word not in blocked words list"},
		{name: "Malformed Body", method: http.MethodPost, body: "{",
			expectedStatus: http.StatusBadRequest, expectedMsg: "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reader *bytes.Reader
			switch b := tt.body.(type) {
			case nil:
				reader = bytes.NewReader(nil)
			case string:
				reader = bytes.NewReader([]byte(b))
			default:
				raw, _ := json.Marshal(b)
				reader = bytes.NewReader(raw)
			}
			req := httptest.NewRequest(tt.method, "/blocked_words", reader)
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(auth.TokenHeader, token)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body := decodeBody(t, resp)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, body["msg"])
				return
			}
			assert.Equal(t, true, body["success"])
		})
	}
	words.AssertExpectations(t)
}

func TestAvailabilityHandlers(t *testing.T) {
	users := new(MockUserRepository)
	users.On("UsernameExists", mock.Anything, "ada").Return(true, nil)
	users.On("UsernameExists", mock.Anything, "bob").Return(false, nil)
	users.On("EmailExists", mock.Anything, "ada@x.io").Return(true, nil)

	s := newMockServer(testConfig(), users, nil)
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/username_available/:username", s.UsernameAvailable)
	app.Get("/email_available/:email", s.EmailAvailable)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/username_available/bob", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["success"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/username_available/ada", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "username unavailable", body["msg"])
	assert.Equal(t, models.CodeConflict, body["code"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/email_available/ada@x.io", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email unavailable", decodeBody(t, resp)["msg"])
}
