package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tenantli-inspect/internal/domain"

	"go.uber.org/zap"
)

// APIReportsRepo reads report aggregates by share-link UUID.
type APIReportsRepo struct {
	client *APIClient
	logger *zap.Logger
}

func NewAPIReportsRepo(client *APIClient, logger *zap.Logger) *APIReportsRepo {
	return &APIReportsRepo{client: client, logger: logger}
}

// reportWire GET /api/reports/uuid/:uuid 的原始形状
type reportWire struct {
	ID         flexString    `json:"id"`
	UUID       string        `json:"uuid"`
	Type       string        `json:"type"`
	PropertyID flexString    `json:"property_id"`
	Property   *propertyWire `json:"property"`
	Rooms      []roomWire    `json:"rooms"`
	MoveInData *struct {
		Rooms []struct {
			ID     flexString        `json:"id"`
			RoomID flexString        `json:"room_id"`
			Name   string            `json:"name"`
			Photos []photoRecordWire `json:"photos"`
			Notes  []string          `json:"notes"`
		} `json:"rooms"`
	} `json:"moveInData"`
	Photos         []photoRecordWire `json:"photos"`
	ApprovalStatus *string           `json:"approval_status"`
	CreatedAt      string            `json:"created_at"`
}

// GetByUUID 按分享链接 UUID 获取报告聚合
func (r *APIReportsRepo) GetByUUID(ctx context.Context, uuid string) (*ReportPayload, error) {
	endpoint := fmt.Sprintf("/api/reports/uuid/%s", uuid)

	resp, err := r.client.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	if resp.StatusCode() == 404 {
		return nil, ErrReportNotFound
	}
	if err := checkStatus(resp, endpoint); err != nil {
		return nil, err
	}

	var wire reportWire
	if err := json.Unmarshal(resp.Body(), &wire); err != nil {
		return nil, fmt.Errorf("failed to decode report payload: %w", err)
	}

	payload := &ReportPayload{
		ID:             string(wire.ID),
		UUID:           firstNonEmpty(wire.UUID, uuid),
		Type:           normalizeReportType(wire.Type),
		PropertyID:     string(wire.PropertyID),
		Rooms:          decodeRoomList(wire.Rooms),
		Photos:         decodePhotoList(wire.Photos),
		ApprovalStatus: wire.ApprovalStatus,
	}
	if wire.Property != nil {
		property := wire.Property.toDomain()
		payload.Property = &property
		if payload.PropertyID == "" {
			payload.PropertyID = property.PropertyID
		}
	}
	if ts, err := time.Parse(time.RFC3339, wire.CreatedAt); err == nil {
		payload.CreatedAt = ts
	}

	// 入住基线（仅 move-out 报告携带）
	if wire.MoveInData != nil {
		snapshot := &domain.MoveInSnapshot{}
		for _, rw := range wire.MoveInData.Rooms {
			snapshot.Rooms = append(snapshot.Rooms, domain.MoveInSnapshotRoom{
				RoomID: firstNonEmpty(string(rw.ID), string(rw.RoomID)),
				Name:   rw.Name,
				Photos: decodePhotoList(rw.Photos),
				Notes:  rw.Notes,
			})
		}
		payload.MoveInData = snapshot
	}

	return payload, nil
}

// normalizeReportType 把历史上出现过的报告类型拼写归一
func normalizeReportType(t string) domain.ReportType {
	switch t {
	case "move-in", "move_in", "moveIn":
		return domain.ReportMoveIn
	case "move-out", "move_out", "moveOut":
		return domain.ReportMoveOut
	default:
		return domain.ReportGeneral
	}
}

// IsNotFound 报告是否确定不存在（与网络/服务故障区分）
func IsNotFound(err error) bool {
	return errors.Is(err, ErrReportNotFound)
}
