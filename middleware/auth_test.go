package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianaakuma/Projeto-Full-Stack1/config"
	"github.com/marianaakuma/Projeto-Full-Stack1/middleware"
	"github.com/marianaakuma/Projeto-Full-Stack1/utils"
)

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", middleware.AuthRequired(), func(ctx *gin.Context) {
		userID := ctx.GetUint(middleware.ContextUserIDKey)
		username := ctx.GetString(middleware.ContextUsernameKey)
		ctx.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username})
	})
	return r
}

func probe(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "test-secret-key", GinMode: "test"})
	r := guardedRouter()

	valid, err := utils.GenerateToken(7, "alice", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token abc", expectedStatus: http.StatusUnauthorized},
		{name: "empty bearer token", header: "Bearer ", expectedStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.jwt", expectedStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + valid, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := probe(r, tt.header)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestAuthRequiredAttachesIdentity(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "test-secret-key", GinMode: "test"})
	r := guardedRouter()

	token, err := utils.GenerateToken(7, "alice", time.Hour)
	require.NoError(t, err)

	w := probe(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 7, "username": "alice"}`, w.Body.String())
}

func TestAuthRequiredRejectsRevokedToken(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "test-secret-key", GinMode: "test"})
	r := guardedRouter()

	token, err := utils.GenerateToken(7, "alice", time.Hour)
	require.NoError(t, err)
	utils.BlacklistToken(token, time.Now().Add(time.Hour))

	w := probe(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
