// Package storage talks to the Cloudinary image API, which backs the
// gallery. Uploads are signed with the account secret (SHA-1 over the sorted
// parameters, per the Cloudinary signing scheme); no SDK is involved.
package storage

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// BlobStore is a Cloudinary client for one account/folder.
type BlobStore struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string

	httpClient *http.Client
}

// ErrNotConfigured is returned when the Cloudinary credentials are absent.
// Gallery uploads are unavailable in that case; the rest of the API works.
var ErrNotConfigured = errors.New("blob storage not configured")

// NewBlobStoreFromEnv reads CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY,
// CLOUDINARY_API_SECRET and the optional CLOUDINARY_FOLDER.
func NewBlobStoreFromEnv() *BlobStore {
	return &BlobStore{
		CloudName:  os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:     os.Getenv("CLOUDINARY_API_KEY"),
		APISecret:  os.Getenv("CLOUDINARY_API_SECRET"),
		Folder:     os.Getenv("CLOUDINARY_FOLDER"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *BlobStore) configured() bool {
	return s.CloudName != "" && s.APIKey != "" && s.APISecret != ""
}

// Upload sends a base64-encoded image (raw or data-URL form) to Cloudinary
// under the given public ID and returns the hosted URL.
func (s *BlobStore) Upload(ctx context.Context, base64Image, publicID string) (string, error) {
	if !s.configured() {
		return "", ErrNotConfigured
	}
	if base64Image == "" {
		return "", errors.New("empty image payload")
	}
	payload := base64Image
	if i := strings.Index(base64Image, ","); i != -1 {
		payload = base64Image[i+1:]
	}
	publicID = s.qualify(publicID)

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", s.APIKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", s.sign(fmt.Sprintf("public_id=%s&timestamp=%s", publicID, timestamp)))

	endpoint := "https://api.cloudinary.com/v1_1/" + s.CloudName + "/image/upload"
	body, err := s.post(ctx, endpoint, form)
	if err != nil {
		return "", err
	}

	var res struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", res.Error.Message)
	}
	if res.SecureURL != "" {
		return res.SecureURL, nil
	}
	if res.URL != "" {
		return res.URL, nil
	}
	return "", errors.New("cloudinary: no url in response")
}

// Destroy deletes a previously uploaded image. Cloudinary answers
// `{"result":"ok"}` on success and `{"result":"not found"}` for unknown
// public IDs; the latter is treated as success so a gallery row whose blob
// already vanished can still be cleaned up.
func (s *BlobStore) Destroy(ctx context.Context, publicID string) error {
	if !s.configured() {
		return ErrNotConfigured
	}
	if publicID == "" {
		return nil
	}
	publicID = s.qualify(publicID)

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form := url.Values{}
	form.Add("api_key", s.APIKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", s.sign(fmt.Sprintf("public_id=%s&timestamp=%s", publicID, timestamp)))

	endpoint := "https://api.cloudinary.com/v1_1/" + s.CloudName + "/image/destroy"
	body, err := s.post(ctx, endpoint, form)
	if err != nil {
		return err
	}

	var res struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return err
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: %s", res.Result)
	}
	return nil
}

// qualify prepends the configured folder so Upload and Destroy always
// address the same Cloudinary public ID. Callers store the bare ID.
func (s *BlobStore) qualify(publicID string) string {
	if s.Folder != "" && !strings.HasPrefix(publicID, s.Folder+"/") {
		return s.Folder + "/" + publicID
	}
	return publicID
}

// sign computes the Cloudinary request signature: SHA-1 of the parameter
// string with the secret appended.
func (s *BlobStore) sign(params string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(params+s.APISecret)))
}

func (s *BlobStore) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := s.httpClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloudinary: http %d: %s", res.StatusCode, string(body))
	}
	return body, nil
}
