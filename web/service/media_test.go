package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestMediaService(baseURL string) *MediaService {
	return &MediaService{
		CloudName: "test-cloud",
		APIKey:    "media-key",
		APISecret: "media-secret",
		Folder:    "medblog",
		BaseURL:   baseURL,
		Client:    &http.Client{Timeout: time.Second},
	}
}

func TestMediaUpload(t *testing.T) {
	var receivedPath string
	var receivedFolder string
	mockHost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		r.ParseMultipartForm(1 << 20)
		receivedFolder = r.FormValue("folder")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://cdn.example.com/img.png"}`))
	}))
	defer mockHost.Close()

	service := newTestMediaService(mockHost.URL)

	url, err := service.Upload(strings.NewReader("fake image bytes"))
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img.png", url)
	assert.Equal(t, "/v1_1/test-cloud/image/upload", receivedPath)
	assert.Equal(t, "medblog", receivedFolder)
}

func TestMediaUploadRejected(t *testing.T) {
	mockHost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer mockHost.Close()

	service := newTestMediaService(mockHost.URL)

	_, err := service.Upload(strings.NewReader("fake image bytes"))
	assert.Error(t, err)
}

func TestMediaListFolder(t *testing.T) {
	var receivedPrefix string
	var receivedUser string
	mockHost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPrefix = r.URL.Query().Get("prefix")
		receivedUser, _, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"resources":[
			{"public_id":"medblog/a","format":"png","secure_url":"https://cdn.example.com/a.png"},
			{"public_id":"medblog/b","format":"jpg","secure_url":"https://cdn.example.com/b.jpg"}
		]}`))
	}))
	defer mockHost.Close()

	service := newTestMediaService(mockHost.URL)

	images, err := service.ListFolder("")
	assert.NoError(t, err)
	assert.Len(t, images, 2)
	assert.Equal(t, "medblog/a", images[0].PublicId)
	assert.Equal(t, "png", images[0].Format)
	assert.Equal(t, "medblog", receivedPrefix)
	assert.Equal(t, "media-key", receivedUser)
}

func TestMediaUnconfigured(t *testing.T) {
	service := &MediaService{Client: &http.Client{Timeout: time.Second}}

	_, err := service.Upload(strings.NewReader("bytes"))
	assert.ErrorIs(t, err, ErrMediaNotConfigured)

	_, err = service.ListFolder("")
	assert.ErrorIs(t, err, ErrMediaNotConfigured)
}
