package domain

import (
	"strings"
	"time"
)

// RoomType 房间类型
type RoomType string

const (
	RoomTypeLiving   RoomType = "living"
	RoomTypeBedroom  RoomType = "bedroom"
	RoomTypeKitchen  RoomType = "kitchen"
	RoomTypeBathroom RoomType = "bathroom"
	RoomTypeOther    RoomType = "other"
	RoomTypeCustom   RoomType = "custom"
)

// Quality 房间状况评估结果
type Quality string

const (
	QualityUnset     Quality = ""
	QualityGood      Quality = "good"
	QualityAttention Quality = "attention"
)

// MaxIssueNotes 每个房间问题备注上限
const MaxIssueNotes = 15

// Room 房间领域模型
// RoomID 的生命周期：客户端临时 ID → 后端确认/重新分配 → 作为规范 ID 使用
type Room struct {
	RoomID       string    `json:"id"`
	Name         string    `json:"name"`
	Type         RoomType  `json:"type"`
	PhotoCount   int       `json:"photo_count"`
	Quality      Quality   `json:"quality"`
	IssueNotes   []string  `json:"issue_notes"`
	MoveOutNotes []string  `json:"move_out_notes"` // 与 IssueNotes（入住）分开存储
	// Photos 组装阶段由 binder 填充；不变式：每张照片只出现在一个房间里，
	// 且 PhotoCount == len(Photos)
	Photos    []PhotoRecord `json:"photos,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// CompletionState 房间录入完成度状态机
type CompletionState string

const (
	CompletionNotStarted      CompletionState = "not_started"
	CompletionPhotosAdded     CompletionState = "photos_added"
	CompletionQualityAssessed CompletionState = "quality_assessed"
	CompletionComplete        CompletionState = "complete"
)

// Completion 计算房间的完成度状态
// NotStarted → PhotosAdded (photoCount>0) → QualityAssessed (quality 已设置) → Complete
// quality == attention 时，Complete 还要求至少一条非空问题备注
func (r *Room) Completion() CompletionState {
	if r.PhotoCount <= 0 {
		return CompletionNotStarted
	}
	if r.Quality == QualityUnset {
		return CompletionPhotosAdded
	}
	if r.Quality == QualityAttention && !hasNonBlankNote(r.IssueNotes) {
		return CompletionQualityAssessed
	}
	return CompletionComplete
}

func hasNonBlankNote(notes []string) bool {
	for _, n := range notes {
		if strings.TrimSpace(n) != "" {
			return true
		}
	}
	return false
}
