package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marianaakuma/Projeto-Full-Stack1/config"
	"github.com/marianaakuma/Projeto-Full-Stack1/models"
	"github.com/marianaakuma/Projeto-Full-Stack1/routes"
	"github.com/marianaakuma/Projeto-Full-Stack1/utils"
)

var initOnce sync.Once

// setupRouter builds the real router over a fresh in-memory SQLite database.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	initOnce.Do(func() {
		cfg := config.AppConfig{
			JWTSecret: "test-secret-key",
			GinMode:   "test",
		}
		config.Set(cfg)
		require.NoError(t, utils.InitLogger(config.Get()))
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see an empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))

	return routes.SetupRouter(db), db
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doRequest performs an HTTP request against the router, optionally with a
// JSON body and a bearer token.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the envelope's data field into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

type authPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// registerUser registers a fresh account through the API and returns its
// bearer token and user record.
func registerUser(t *testing.T, r *gin.Engine, username string) (string, models.User) {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payload authPayload
	decodeData(t, w, &payload)
	require.NotEmpty(t, payload.Token)
	return payload.Token, payload.User
}

// createPost creates a post through the API and returns it.
func createPost(t *testing.T, r *gin.Engine, token, title, content string) models.Post {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/posts", token, gin.H{
		"title":   title,
		"content": content,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payload struct {
		Post models.Post `json:"post"`
	}
	decodeData(t, w, &payload)
	return payload.Post
}

// createComment creates a comment through the API and returns it.
func createComment(t *testing.T, r *gin.Engine, token string, postID uint, content string) models.Comment {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/comments/%d", postID), token, gin.H{
		"content": content,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payload struct {
		Comment models.Comment `json:"comment"`
	}
	decodeData(t, w, &payload)
	return payload.Comment
}
