package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tenantli-inspect/internal/domain"

	"go.uber.org/zap"
)

// APIPhotosRepo reads photo records from the backend's three photo surfaces:
// whole-property (primary), per-room (secondary) and report-scoped (public
// with authenticated fallback).
type APIPhotosRepo struct {
	client *APIClient
	logger *zap.Logger
}

func NewAPIPhotosRepo(client *APIClient, logger *zap.Logger) *APIPhotosRepo {
	return &APIPhotosRepo{client: client, logger: logger}
}

// ListByProperty 获取整个房产的照片 GET /api/photos/property/:id
// 主形状：{ photosByRoom: { [roomId]: { photos: [...] } } }，拍平成一个
// 列表并把 roomId 写回每条记录
func (r *APIPhotosRepo) ListByProperty(ctx context.Context, propertyID string) ([]domain.PhotoRecord, error) {
	endpoint := fmt.Sprintf("/api/photos/property/%s", propertyID)

	resp, err := r.client.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch property photos: %w", err)
	}
	if err := checkStatus(resp, endpoint); err != nil {
		return nil, err
	}

	var payload struct {
		PhotosByRoom map[string]struct {
			Photos []photoRecordWire `json:"photos"`
		} `json:"photosByRoom"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode property photos payload: %w", err)
	}

	var records []domain.PhotoRecord
	for roomID, group := range payload.PhotosByRoom {
		for _, rec := range decodePhotoList(group.Photos) {
			// the grouping key is authoritative over whatever the record carries
			rec.RoomID = roomID
			records = append(records, rec)
		}
	}
	return records, nil
}

// ListByRoom 获取单个房间的照片（次级形状）
// GET /api/photos/room/:propertyId/:roomId?move_out=bool
func (r *APIPhotosRepo) ListByRoom(ctx context.Context, propertyID, roomID string, moveOut bool) ([]domain.PhotoRecord, error) {
	endpoint := fmt.Sprintf("/api/photos/room/%s/%s", propertyID, roomID)

	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("move_out", fmt.Sprintf("%t", moveOut)).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room photos: %w", err)
	}
	if err := checkStatus(resp, endpoint); err != nil {
		return nil, err
	}

	var payload struct {
		Photos []photoRecordWire `json:"photos"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode room photos payload: %w", err)
	}

	records := decodePhotoList(payload.Photos)
	for i := range records {
		if records[i].RoomID == "" {
			records[i].RoomID = roomID
		}
	}
	return records, nil
}

// ListByReport 获取报告范围的照片
// 先走公开端点 GET /api/photos/public-report/:reportId；
// 公开端点失败（HTTP 错误或 schema drift）时尝试一次认证端点
// GET /api/photos/report/:reportId，失败后不再降级
func (r *APIPhotosRepo) ListByReport(ctx context.Context, reportID, authToken string) ([]domain.PhotoRecord, error) {
	records, publicErr := r.fetchReportPhotos(ctx, fmt.Sprintf("/api/photos/public-report/%s", reportID), "")
	if publicErr == nil {
		return records, nil
	}

	var statusErr *HTTPStatusError
	if !errors.As(publicErr, &statusErr) && !isDecodeError(publicErr) {
		// network failure: the authenticated endpoint shares the same origin,
		// retrying it would fail the same way
		return nil, publicErr
	}

	r.logger.Warn("Public report photos endpoint failed, trying authenticated endpoint",
		zap.String("report_id", reportID),
		zap.Error(publicErr),
	)
	return r.fetchReportPhotos(ctx, fmt.Sprintf("/api/photos/report/%s", reportID), authToken)
}

func (r *APIPhotosRepo) fetchReportPhotos(ctx context.Context, endpoint, authToken string) ([]domain.PhotoRecord, error) {
	req := r.client.R().SetContext(ctx)
	if authToken != "" {
		req.SetAuthToken(authToken)
	}
	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report photos: %w", err)
	}
	if err := checkStatus(resp, endpoint); err != nil {
		return nil, err
	}

	// 两种形状：{photos: [...]} 或裸数组
	var wrapped struct {
		Photos []photoRecordWire `json:"photos"`
	}
	if err := json.Unmarshal(resp.Body(), &wrapped); err == nil && wrapped.Photos != nil {
		return decodePhotoList(wrapped.Photos), nil
	}
	var bare []photoRecordWire
	if err := json.Unmarshal(resp.Body(), &bare); err != nil {
		return nil, &decodeError{endpoint: endpoint, err: err}
	}
	return decodePhotoList(bare), nil
}

// decodeError 标记 schema drift（响应解析失败），触发备选端点
type decodeError struct {
	endpoint string
	err      error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("failed to decode payload from %s: %v", e.endpoint, e.err)
}

func (e *decodeError) Unwrap() error { return e.err }

func isDecodeError(err error) bool {
	var de *decodeError
	return errors.As(err, &de)
}
