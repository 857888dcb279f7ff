package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"tenantli-inspect/internal/uploader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePhotoUploader struct {
	failNames  map[string]bool
	propertyID string
	roomID     string
	received   []uploader.FileUpload
}

func (f *fakePhotoUploader) UploadRoomPhotos(_ context.Context, propertyID, roomID string, files []uploader.FileUpload) (int, []uploader.UploadFailure) {
	f.propertyID = propertyID
	f.roomID = roomID
	f.received = files

	succeeded := 0
	var failures []uploader.UploadFailure
	for _, file := range files {
		if f.failNames[file.Name] {
			failures = append(failures, uploader.UploadFailure{Name: file.Name, Err: errors.New("rejected")})
			continue
		}
		succeeded++
	}
	return succeeded, failures
}

func newUploadRouter(photos PhotoUploader) *Router {
	router := NewRouter(zap.NewNop())
	router.RegisterRoomRoutes(NewRoomHandler(&fakeRoomSaver{}, zap.NewNop()), NewUploadHandler(photos, zap.NewNop()))
	return router
}

func multipartBody(t *testing.T, note string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("photo", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	if note != "" {
		require.NoError(t, w.WriteField("note", note))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadRoomPhotos(t *testing.T) {
	photos := &fakePhotoUploader{}
	router := newUploadRouter(photos)

	body, contentType := multipartBody(t, "scratched wall", map[string][]byte{
		"a.jpg": []byte("aaa"),
		"b.jpg": []byte("bbb"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties/p1/rooms/room-2/photos", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res Result[uploadResult]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, ResultSuccess, res.Code)
	assert.Equal(t, 2, res.Result.Succeeded)
	assert.Empty(t, res.Result.Failed)

	assert.Equal(t, "p1", photos.propertyID)
	assert.Equal(t, "room-2", photos.roomID)
	require.Len(t, photos.received, 2)
	for _, file := range photos.received {
		assert.Equal(t, "scratched wall", file.Note)
	}
}

// 部分失败不回滚成功的文件，失败文件名显式返回
func TestUploadRoomPhotosPartialFailure(t *testing.T) {
	photos := &fakePhotoUploader{failNames: map[string]bool{"bad.jpg": true}}
	router := newUploadRouter(photos)

	body, contentType := multipartBody(t, "", map[string][]byte{
		"good.jpg": []byte("g"),
		"bad.jpg":  []byte("b"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties/p1/rooms/room-2/photos", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res Result[uploadResult]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Result.Succeeded)
	assert.Equal(t, []string{"bad.jpg"}, res.Result.Failed)
}

func TestUploadRoomPhotosEmptyBatch(t *testing.T) {
	router := newUploadRouter(&fakePhotoUploader{})

	body, contentType := multipartBody(t, "note only", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties/p1/rooms/room-2/photos", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
