package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/repository"
)

// fakeBlobStore stands in for Cloudinary in handler tests.
type fakeBlobStore struct {
	uploadErr  error
	destroyErr error
	uploaded   []string
	destroyed  []string
}

func (f *fakeBlobStore) Upload(ctx context.Context, base64Image, publicID string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = append(f.uploaded, publicID)
	return "https://res.example.com/" + publicID + ".jpg", nil
}

func (f *fakeBlobStore) Destroy(ctx context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return f.destroyErr
}

func galleryDeleteContext(t *testing.T, id string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func galleryItemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "image_url", "public_id", "position", "created_at"}).
		AddRow(7, "Plener", "https://res.example.com/pid-7.jpg", "pid-7", 1, time.Now())
}

func TestGalleryDeleteRollsBackWhenBlobDeleteFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM gallery_items WHERE id").WillReturnRows(galleryItemRows())
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM gallery_items").WillReturnResult(sqlmock.NewResult(0, 1))
	// The blob store fails, so the row delete must not commit.
	mock.ExpectRollback()

	blobs := &fakeBlobStore{destroyErr: errors.New("cloudinary down")}
	h := &AdminGalleryHandler{
		Gallery: repository.NewGalleryRepo(db),
		Blobs:   blobs,
		Log:     zap.NewNop(),
	}

	c, rec := galleryDeleteContext(t, "7")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, []string{"pid-7"}, blobs.destroyed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryDeleteCommitsAfterBlobDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM gallery_items WHERE id").WillReturnRows(galleryItemRows())
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM gallery_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	blobs := &fakeBlobStore{}
	h := &AdminGalleryHandler{
		Gallery: repository.NewGalleryRepo(db),
		Blobs:   blobs,
		Log:     zap.NewNop(),
	}

	c, rec := galleryDeleteContext(t, "7")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"pid-7"}, blobs.destroyed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryUploadCleansUpBlobWhenInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO gallery_items").WillReturnError(errors.New("disk full"))

	blobs := &fakeBlobStore{}
	h := &AdminGalleryHandler{
		Gallery: repository.NewGalleryRepo(db),
		Blobs:   blobs,
		Log:     zap.NewNop(),
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"title":"Plener","image":"aGVsbG8=","position":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Upload(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The uploaded blob is removed again so it does not leak.
	require.Len(t, blobs.uploaded, 1)
	assert.Equal(t, blobs.uploaded, blobs.destroyed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
