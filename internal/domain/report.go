package domain

import "time"

// ReportType 检查报告类型
type ReportType string

const (
	ReportMoveIn  ReportType = "move-in"
	ReportMoveOut ReportType = "move-out"
	ReportGeneral ReportType = "general"
)

// InspectionReport 组装完成的检查报告（查看器消费的聚合）
// 创建后不可变；ApprovalStatus 由独立的审批流程设置（approved/rejected/nil）
type InspectionReport struct {
	ID               string           `json:"id"`
	UUID             string           `json:"uuid"`
	Type             ReportType       `json:"type"`
	Property         Property         `json:"property"`
	Rooms            []Room           `json:"rooms"`
	Comparisons      []RoomComparison `json:"comparisons,omitempty"` // 仅 move-out
	UnassignedPhotos []PhotoRecord    `json:"unassigned_photos,omitempty"`
	ApprovalStatus   *string          `json:"approval_status"`
	Error            bool             `json:"error,omitempty"` // 占位报告标记（网络/HTTP 失败时）
	CreatedAt        time.Time        `json:"created_at"`
}

// RoomSide 对比的一侧（照片 + 备注）
// Available=false 表示基线从未采集，查看器渲染为显式的 "not available"
type RoomSide struct {
	Photos    []PhotoRecord `json:"photos"`
	Notes     []string      `json:"notes"`
	Available bool          `json:"available"`
}

// RoomComparison 单个房间的入住/退租对比（move-out 报告的渲染单元）
// 不变式：MoveOut 一侧永远存在（房间必须存在于当前检查中）；
// MoveIn 可以为空但不为 nil
type RoomComparison struct {
	RoomID  string   `json:"room_id"`
	Name    string   `json:"name"`
	MoveIn  RoomSide `json:"move_in"`
	MoveOut RoomSide `json:"move_out"`
}

// MoveInSnapshotRoom 入住基线里的单个房间
type MoveInSnapshotRoom struct {
	RoomID string        `json:"id"`
	Name   string        `json:"name"`
	Photos []PhotoRecord `json:"photos"`
	Notes  []string      `json:"notes"`
}

// MoveInSnapshot 历史入住基线（move-out 报告的左侧）
type MoveInSnapshot struct {
	Rooms []MoveInSnapshotRoom `json:"rooms"`
}
