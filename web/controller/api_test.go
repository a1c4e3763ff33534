package controller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"medblog/database"
	"medblog/web/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func setupRouter() *gin.Engine {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
	os.Unsetenv("MEDBLOG_JWT_SECRET")

	userService := service.UserService{}
	userService.UpdateFirstUser("doc@example.com", "s3cret")

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	mailer := service.NewMailerService()
	media := service.NewMediaService()
	NewAuthController(engine.Group("/admin"))
	NewPostController(engine.Group("/api/posts"), mailer, media)
	NewFeedbackController(engine.Group("/api/feedback"))
	NewSubscriberController(engine.Group("/api/subscribers"), mailer)
	NewSettingController(engine.Group("/api/settings"))
	return engine
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func doJSON(engine *gin.Engine, method string, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, engine *gin.Engine) string {
	w := doJSON(engine, "POST", "/admin/login", gin.H{"email": "doc@example.com", "password": "s3cret"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])
	return body["token"]
}

func TestLoginEndpoint(t *testing.T) {
	engine := setupRouter()
	defer teardown()

	w := doJSON(engine, "POST", "/admin/login", gin.H{"email": "doc@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email + password required"}`, w.Body.String())

	w = doJSON(engine, "POST", "/admin/login", gin.H{"email": "doc@example.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())

	login(t, engine)
}

func TestAccessGuard(t *testing.T) {
	engine := setupRouter()
	defer teardown()

	// No token, malformed scheme and bad token all answer the same way
	for _, token := range []string{"", "bad-token"} {
		w := doJSON(engine, "GET", "/api/posts/admin/all", nil, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}

	token := login(t, engine)
	w := doJSON(engine, "GET", "/api/posts/admin/all", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPostLifecycle(t *testing.T) {
	engine := setupRouter()
	defer teardown()
	token := login(t, engine)

	// Create requires title and slug
	w := doJSON(engine, "POST", "/api/posts", gin.H{"title": "No slug"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Title and slug are required"}`, w.Body.String())

	w = doJSON(engine, "POST", "/api/posts", gin.H{
		"title":     "Hello",
		"slug":      "hello",
		"content":   "first post",
		"published": true,
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// Same slug again is an actionable client error
	w = doJSON(engine, "POST", "/api/posts", gin.H{"title": "Hello 2", "slug": "hello"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"This slug already exists. Please change the URL slug."}`, w.Body.String())

	// Draft slugs look like missing posts to the public
	w = doJSON(engine, "POST", "/api/posts", gin.H{"title": "Draft", "slug": "draft"}, token)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(engine, "GET", "/api/posts/draft", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(engine, "GET", "/api/posts/hello", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Public view counter
	w = doJSON(engine, "POST", "/api/posts/hello/view", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(engine, "POST", "/api/posts/missing/view", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Public listing hides the draft
	w = doJSON(engine, "GET", "/api/posts", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Posts []struct {
			Slug  string `json:"slug"`
			Views int64  `json:"views"`
		} `json:"posts"`
		Total int64 `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Posts, 1)
	assert.Equal(t, "hello", page.Posts[0].Slug)
	assert.Equal(t, int64(1), page.Posts[0].Views)
}

func TestSubscribeEndpoint(t *testing.T) {
	engine := setupRouter()
	defer teardown()

	w := doJSON(engine, "POST", "/api/subscribers/subscribe", gin.H{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email required"}`, w.Body.String())

	w = doJSON(engine, "POST", "/api/subscribers/subscribe", gin.H{"email": "reader@example.com"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"email":"reader@example.com"}`, w.Body.String())

	w = doJSON(engine, "POST", "/api/subscribers/subscribe", gin.H{"email": "reader@example.com"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Already subscribed"}`, w.Body.String())

	// Admin listing sits behind the guard
	w = doJSON(engine, "GET", "/api/subscribers/admin/all", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, engine)
	w = doJSON(engine, "GET", "/api/subscribers/admin/all", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSettingsEndpoint(t *testing.T) {
	engine := setupRouter()
	defer teardown()

	w := doJSON(engine, "GET", "/api/settings", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"theme":"professional"}`, w.Body.String())

	w = doJSON(engine, "PUT", "/api/settings/theme", gin.H{"theme": "personal"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, engine)
	w = doJSON(engine, "PUT", "/api/settings/theme", gin.H{"theme": "personal"}, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"theme":"personal"}`, w.Body.String())

	w = doJSON(engine, "PUT", "/api/settings/theme", gin.H{"theme": "neon"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Unknown theme"}`, w.Body.String())
}

func TestFeedbackEndpoint(t *testing.T) {
	engine := setupRouter()
	defer teardown()

	w := doJSON(engine, "POST", "/api/feedback", gin.H{"message": "love the blog"}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(engine, "POST", "/api/feedback", gin.H{"email": "x@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(engine, "GET", "/api/feedback", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, engine)
	w = doJSON(engine, "GET", "/api/feedback", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	var list []struct {
		Email string `json:"email"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
	assert.Equal(t, "Anonymous", list[0].Email)
}
