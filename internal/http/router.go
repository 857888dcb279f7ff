package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterReportRoutes 注册查看器路由（分享链接只读）
func (r *Router) RegisterReportRoutes(h *ReportHandler) {
	// report by share-link uuid: /api/v1/reports/uuid/{uuid}[/export]
	r.Handle("/api/v1/reports/uuid/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		rest := strings.TrimPrefix(req.URL.Path, "/api/v1/reports/uuid/")
		if uuid, ok := strings.CutSuffix(rest, "/export"); ok {
			h.ExportReport(w, req, strings.Trim(uuid, "/"))
			return
		}
		h.GetReport(w, req, strings.Trim(rest, "/"))
	})
}

// RegisterRoomRoutes 注册向导的房间保存与照片上传路由
func (r *Router) RegisterRoomRoutes(h *RoomHandler, u *UploadHandler) {
	// /api/v1/properties/{id}/rooms
	// /api/v1/properties/{id}/rooms/{roomId}/photos
	r.Handle("/api/v1/properties/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/api/v1/properties/")

		if inner, ok := strings.CutSuffix(rest, "/photos"); ok && u != nil {
			propertyID, roomID, found := strings.Cut(inner, "/rooms/")
			if !found || propertyID == "" || roomID == "" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			u.UploadRoomPhotos(w, req, propertyID, roomID)
			return
		}

		propertyID, ok := strings.CutSuffix(rest, "/rooms")
		if !ok || propertyID == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch req.Method {
		case http.MethodPost:
			h.SaveRoom(w, req, propertyID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}
