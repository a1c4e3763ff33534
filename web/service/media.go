package service

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"medblog/util/common"
	"medblog/web/entity"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const defaultMediaFolder = "medblog"

// ErrMediaNotConfigured is returned when the media host credentials are
// missing. Unlike mail, media failures are user visible.
var ErrMediaNotConfigured = common.NewError("media host not configured")

type uploadResponse struct {
	SecureUrl string `json:"secure_url"`
}

type resourcesResponse struct {
	Resources []struct {
		PublicId  string `json:"public_id"`
		Format    string `json:"format"`
		SecureUrl string `json:"secure_url"`
	} `json:"resources"`
}

// MediaService is a thin pass-through to the Cloudinary-compatible media
// host for uploads and folder listings.
type MediaService struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	BaseURL   string
	Client    *http.Client
}

func NewMediaService() *MediaService {
	folder := os.Getenv("CLOUDINARY_FOLDER")
	if folder == "" {
		folder = defaultMediaFolder
	}
	return &MediaService{
		CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		Folder:    folder,
		BaseURL:   "https://api.cloudinary.com",
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *MediaService) Configured() bool {
	return s.CloudName != "" && s.APIKey != "" && s.APISecret != ""
}

// sign produces the request signature the upload API expects: the sorted
// parameter string followed by the API secret, SHA-1 hexed.
func (s *MediaService) sign(params string) string {
	sum := sha1.Sum([]byte(params + s.APISecret))
	return hex.EncodeToString(sum[:])
}

// Upload sends an image to the media host and returns its public URL.
func (s *MediaService) Upload(file io.Reader) (string, error) {
	if !s.Configured() {
		return "", ErrMediaNotConfigured
	}

	publicId := uuid.New().String()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := s.sign(fmt.Sprintf("folder=%s&public_id=%s&timestamp=%s", s.Folder, publicId, timestamp))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", publicId)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	for key, value := range map[string]string{
		"api_key":   s.APIKey,
		"timestamp": timestamp,
		"public_id": publicId,
		"folder":    s.Folder,
		"signature": signature,
	} {
		if err := writer.WriteField(key, value); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	uploadURL := fmt.Sprintf("%s/v1_1/%s/image/upload", s.BaseURL, s.CloudName)
	req, err := http.NewRequest("POST", uploadURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", common.NewErrorf("media host responded %d", resp.StatusCode)
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.SecureUrl, nil
}

// ListFolder returns the images stored under the given folder prefix.
func (s *MediaService) ListFolder(folder string) ([]entity.MediaImage, error) {
	if !s.Configured() {
		return nil, ErrMediaNotConfigured
	}
	if folder == "" {
		folder = s.Folder
	}

	listURL := fmt.Sprintf("%s/v1_1/%s/resources/image/upload?prefix=%s&max_results=500",
		s.BaseURL, s.CloudName, url.QueryEscape(folder))
	req, err := http.NewRequest("GET", listURL, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(s.APIKey, s.APISecret)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, common.NewErrorf("media host responded %d", resp.StatusCode)
	}

	var result resourcesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	images := make([]entity.MediaImage, 0, len(result.Resources))
	for _, resource := range result.Resources {
		images = append(images, entity.MediaImage{
			PublicId:  resource.PublicId,
			Format:    resource.Format,
			SecureUrl: resource.SecureUrl,
		})
	}
	return images, nil
}
