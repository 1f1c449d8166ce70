package controllers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianaakuma/Projeto-Full-Stack1/utils"
)

func TestRegister(t *testing.T) {
	r, _ := setupRouter(t)

	_, _ = registerUser(t, r, "alice")

	tests := []struct {
		name           string
		body           gin.H
		expectedStatus int
	}{
		{
			name: "fresh username and email succeeds",
			body: gin.H{
				"username": "bob",
				"email":    "bob@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate username conflicts",
			body: gin.H{
				"username": "alice",
				"email":    "alice2@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "duplicate email conflicts",
			body: gin.H{
				"username": "alice2",
				"email":    "alice@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "missing password rejected",
			body: gin.H{
				"username": "carol",
				"email":    "carol@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email rejected",
			body: gin.H{
				"username": "carol",
				"email":    "not-an-email",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/auth/register", "", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestRegisterNeverExposesPasswordMaterial(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, strings.Contains(strings.ToLower(w.Body.String()), "password"))
}

func TestLoginTokenRoundtrip(t *testing.T) {
	r, _ := setupRouter(t)
	_, user := registerUser(t, r, "alice")

	w := doRequest(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var payload authPayload
	decodeData(t, w, &payload)
	require.NotEmpty(t, payload.Token)

	claims, err := utils.ParseToken(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := setupRouter(t)
	_, _ = registerUser(t, r, "alice")

	tests := []struct {
		name string
		body gin.H
	}{
		{
			name: "wrong password",
			body: gin.H{"email": "alice@example.com", "password": "wrong-password"},
		},
		{
			name: "unknown email",
			body: gin.H{"email": "nobody@example.com", "password": "password123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/auth/login", "", tt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestMe(t *testing.T) {
	r, _ := setupRouter(t)
	token, user := registerUser(t, r, "alice")

	w := doRequest(t, r, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		User struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	decodeData(t, w, &payload)
	assert.Equal(t, user.ID, payload.User.ID)
	assert.Equal(t, "alice", payload.User.Username)
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _ := setupRouter(t)
	token, _ := registerUser(t, r, "alice")

	w := doRequest(t, r, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
