package httpapi

import (
	"context"
	"io"
	"net/http"

	"tenantli-inspect/internal/uploader"

	"go.uber.org/zap"
)

// maxUploadBytes 单个请求的上传体积上限
const maxUploadBytes = 32 << 20

// PhotoUploader defines the upload pipeline interface (for test mocking)
type PhotoUploader interface {
	UploadRoomPhotos(ctx context.Context, propertyID, roomID string, files []uploader.FileUpload) (int, []uploader.UploadFailure)
}

// uploadResult 批量上传结果：部分失败显式列出，不回滚已成功的
type uploadResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    []string `json:"failed,omitempty"`
}

// UploadHandler 向导的房间照片上传接口
type UploadHandler struct {
	photos PhotoUploader
	logger *zap.Logger
}

func NewUploadHandler(photos PhotoUploader, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{photos: photos, logger: logger}
}

// UploadRoomPhotos POST /api/v1/properties/{id}/rooms/{roomId}/photos
// multipart 表单，photo 字段可重复；note 为可选的整批备注
func (h *UploadHandler) UploadRoomPhotos(w http.ResponseWriter, r *http.Request, propertyID, roomID string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid multipart body"))
		return
	}
	form := r.MultipartForm
	if form == nil || len(form.File["photo"]) == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("at least one photo is required"))
		return
	}
	note := r.FormValue("note")

	var files []uploader.FileUpload
	for _, header := range form.File["photo"] {
		f, err := header.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("failed to read uploaded file"))
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("failed to read uploaded file"))
			return
		}
		files = append(files, uploader.FileUpload{
			Name:    header.Filename,
			Content: content,
			Note:    note,
		})
	}

	succeeded, failures := h.photos.UploadRoomPhotos(r.Context(), propertyID, roomID, files)

	result := uploadResult{Succeeded: succeeded}
	for _, failure := range failures {
		result.Failed = append(result.Failed, failure.Name)
	}
	if succeeded == 0 && len(failures) > 0 {
		writeJSON(w, http.StatusBadGateway, Result[uploadResult]{
			Code: ResultError, Type: "error", Message: "all uploads failed", Result: result,
		})
		return
	}
	writeJSON(w, http.StatusOK, Ok(result))
}
