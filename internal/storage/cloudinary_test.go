package storage

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport answers every Cloudinary call with a canned body and
// keeps the decoded form of each request.
type recordingTransport struct {
	forms []url.Values
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	form, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, err
	}
	t.forms = append(t.forms, form)

	body := `{"result":"ok"}`
	if strings.HasSuffix(req.URL.Path, "/upload") {
		body = `{"secure_url":"https://res.example.com/img.jpg"}`
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func TestSignMatchesCloudinaryScheme(t *testing.T) {
	s := &BlobStore{APISecret: "topsecret"}
	params := "public_id=abc&timestamp=1700000000"
	want := fmt.Sprintf("%x", sha1.Sum([]byte(params+"topsecret")))
	assert.Equal(t, want, s.sign(params))
}

func TestUnconfiguredStoreFailsClosed(t *testing.T) {
	s := &BlobStore{}
	_, err := s.Upload(context.Background(), "aGVsbG8=", "id-1")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, s.Destroy(context.Background(), "id-1"), ErrNotConfigured)
}

func TestDestroyTargetsTheUploadedPublicID(t *testing.T) {
	// With a folder configured, Upload signs and sends a folder-prefixed
	// public ID. Destroy must address exactly the same ID or Cloudinary
	// reports "not found" and the blob is orphaned.
	rt := &recordingTransport{}
	s := &BlobStore{
		CloudName:  "demo",
		APIKey:     "key",
		APISecret:  "secret",
		Folder:     "wedding",
		httpClient: &http.Client{Transport: rt},
	}

	_, err := s.Upload(context.Background(), "aGVsbG8=", "pid-123")
	require.NoError(t, err)
	require.NoError(t, s.Destroy(context.Background(), "pid-123"))

	require.Len(t, rt.forms, 2)
	uploaded := rt.forms[0].Get("public_id")
	destroyed := rt.forms[1].Get("public_id")
	assert.Equal(t, "wedding/pid-123", uploaded)
	assert.Equal(t, uploaded, destroyed)
}

func TestDestroyWithoutFolderKeepsBareID(t *testing.T) {
	rt := &recordingTransport{}
	s := &BlobStore{
		CloudName:  "demo",
		APIKey:     "key",
		APISecret:  "secret",
		httpClient: &http.Client{Transport: rt},
	}
	require.NoError(t, s.Destroy(context.Background(), "pid-123"))
	require.Len(t, rt.forms, 1)
	assert.Equal(t, "pid-123", rt.forms[0].Get("public_id"))
}

func TestPostDefaultsClientWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	}))
	defer srv.Close()

	// A struct-literal store has no httpClient; post must not panic.
	s := &BlobStore{CloudName: "demo", APIKey: "key", APISecret: "secret"}
	body, err := s.post(context.Background(), srv.URL, url.Values{"public_id": {"x"}})
	require.NoError(t, err)
	assert.Contains(t, string(body), "ok")
}

func TestDestroyEmptyPublicIDIsNoop(t *testing.T) {
	s := &BlobStore{CloudName: "demo", APIKey: "key", APISecret: "secret"}
	// An empty public ID has nothing to delete; no request is made.
	assert.NoError(t, s.Destroy(context.Background(), ""))
}
