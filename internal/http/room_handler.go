package httpapi

import (
	"context"
	"errors"
	"net/http"

	"tenantli-inspect/internal/assembler"
	"tenantli-inspect/internal/domain"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RoomSaver defines the room service interface (for test mocking)
type RoomSaver interface {
	CreateRoom(ctx context.Context, propertyID, name string, roomType domain.RoomType, editingID string) (domain.Room, error)
	UpdateRoom(ctx context.Context, propertyID string, room domain.Room) (domain.Room, error)
}

// saveRoomRequest 向导房间保存请求
// 校验失败同步返回，定位到具体字段，不做静默吞掉
type saveRoomRequest struct {
	RoomID     string   `json:"room_id"`
	Name       string   `json:"name" validate:"required,max=50"`
	Type       string   `json:"type" validate:"required,oneof=living bedroom kitchen bathroom other custom"`
	Quality    string   `json:"quality" validate:"omitempty,oneof=good attention"`
	IssueNotes []string `json:"issue_notes" validate:"max=15,dive,max=500"`
	EditingID  string   `json:"editing_id"` // 改名流程：被编辑房间的 ID
}

// RoomHandler 向导的房间保存接口
type RoomHandler struct {
	rooms    RoomSaver
	validate *validator.Validate
	logger   *zap.Logger
}

func NewRoomHandler(rooms RoomSaver, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{
		rooms:    rooms,
		validate: validator.New(),
		logger:   logger,
	}
}

// SaveRoom POST /api/v1/properties/{id}/rooms
// 新建走重名检查 + 临时 ID；已有 RoomID 的走 update 流程
func (h *RoomHandler) SaveRoom(w http.ResponseWriter, r *http.Request, propertyID string) {
	var req saveRoomRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(validationMessage(err)))
		return
	}

	var (
		room domain.Room
		err  error
	)
	if req.RoomID == "" {
		room, err = h.rooms.CreateRoom(r.Context(), propertyID, req.Name, domain.RoomType(req.Type), req.EditingID)
	} else {
		room, err = h.rooms.UpdateRoom(r.Context(), propertyID, domain.Room{
			RoomID:     req.RoomID,
			Name:       req.Name,
			Type:       domain.RoomType(req.Type),
			Quality:    domain.Quality(req.Quality),
			IssueNotes: req.IssueNotes,
		})
	}
	if err != nil {
		if errors.Is(err, assembler.ErrDuplicateRoomName) {
			writeJSON(w, http.StatusConflict, Fail("a room with this name already exists"))
			return
		}
		if errors.Is(err, assembler.ErrEmptyRoomName) {
			writeJSON(w, http.StatusBadRequest, Fail("room name is required"))
			return
		}
		h.logger.Error("Room save failed",
			zap.String("property_id", propertyID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadGateway, Fail("failed to save room"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(room))
}

// validationMessage 把 validator 错误压成指向首个问题字段的提示
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		switch f.Tag() {
		case "required":
			return f.Field() + " is required"
		case "max":
			return f.Field() + " exceeds the allowed length"
		case "oneof":
			return f.Field() + " has an unsupported value"
		}
		return f.Field() + " is invalid"
	}
	return "invalid request"
}
