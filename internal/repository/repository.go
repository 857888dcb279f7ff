package repository

import (
	"context"
	"errors"
	"time"

	"tenantli-inspect/internal/domain"
)

// ErrReportNotFound 报告不存在（UUID 无效或已删除）
var ErrReportNotFound = errors.New("report not found")

// PropertyRepository 房产Repository接口
// 使用强类型领域模型，不使用map[string]any
type PropertyRepository interface {
	GetProperty(ctx context.Context, propertyID string) (*domain.Property, error)
}

// RoomsRepository 房间列表Repository接口
// SaveRooms 是 read-modify-write：先重读服务端当前列表，逐个房间
// update-in-place 或 append，再整体写回（见 assembler.Registry.MergeOnSave）
type RoomsRepository interface {
	ListRooms(ctx context.Context, propertyID string) ([]domain.Room, error)
	SaveRooms(ctx context.Context, propertyID string, changed []domain.Room) ([]domain.Room, error)
}

// PhotosRepository 照片Repository接口
// 同一份数据可能同时来自按房产和按房间两个端点；binder 负责去重
type PhotosRepository interface {
	ListByProperty(ctx context.Context, propertyID string) ([]domain.PhotoRecord, error)
	ListByRoom(ctx context.Context, propertyID, roomID string, moveOut bool) ([]domain.PhotoRecord, error)
	ListByReport(ctx context.Context, reportID, authToken string) ([]domain.PhotoRecord, error)
}

// ReportsRepository 报告Repository接口
type ReportsRepository interface {
	GetByUUID(ctx context.Context, uuid string) (*ReportPayload, error)
}

// ReportPayload GET /api/reports/uuid/:uuid 返回的原始聚合
// rooms 内嵌；moveInData / photos 可选（photos 为扁平列表，按 room_id
// 由 binder 分发到各房间）
type ReportPayload struct {
	ID             string
	UUID           string
	Type           domain.ReportType
	PropertyID     string
	Property       *domain.Property
	Rooms          []domain.Room
	MoveInData     *domain.MoveInSnapshot
	Photos         []domain.PhotoRecord
	ApprovalStatus *string
	CreatedAt      time.Time
}
