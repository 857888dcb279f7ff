package domain

// PhotoRecord 照片记录（多个遗留后端版本的并集形状）
// 身份字段（ID/URL/FilePath/Path/FileName/Raw）都可能缺失，
// 具体取哪个由 assembler 的 Photo Locator 按优先级决定
type PhotoRecord struct {
	ID       int64    `json:"id"`
	URL      string   `json:"url"`
	FilePath string   `json:"file_path"`
	Path     string   `json:"path"`
	FileName string   `json:"file_name"`
	Raw      string   `json:"-"` // 裸字符串形状的记录（最老的 schema）
	RoomID   string   `json:"room_id"`
	MoveOut  bool     `json:"move_out"`
	Note     string   `json:"note"`
	Tags     []string `json:"tags"`
}

// SamePhoto 判断两条记录是否为同一张照片
// 规则（与已存数据兼容，不可更改）：numericId / filePath / url 任一匹配即相同
func SamePhoto(a, b PhotoRecord) bool {
	if a.ID != 0 && a.ID == b.ID {
		return true
	}
	if a.FilePath != "" && a.FilePath == b.FilePath {
		return true
	}
	if a.URL != "" && a.URL == b.URL {
		return true
	}
	return false
}
