package repository

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"tenantli-inspect/internal/domain"
)

// The backend has drifted across schema versions: IDs arrive as numbers or
// strings, field names switched between snake_case and camelCase, booleans
// arrive as 0/1, and the oldest photo records are bare strings. The wire
// types below absorb all of that in one place so the rest of the engine only
// ever sees domain types.

// flexInt64 decodes a number or a numeric string.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			// non-numeric string id: not this field's shape, ignore
			*f = 0
			return nil
		}
		*f = flexInt64(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt64(n)
	return nil
}

// flexString decodes a string or a number into a string.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexBool decodes true/false, 0/1 or "true"/"false".
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch strings.Trim(string(b), `"`) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// photoWire is the union of every object-shaped photo record the backend
// has ever returned.
type photoWire struct {
	ID          flexInt64  `json:"id"`
	URL         string     `json:"url"`
	FilePath    string     `json:"file_path"`
	FilePathAlt string     `json:"filePath"`
	Path        string     `json:"path"`
	FileName    string     `json:"file_name"`
	FileNameAlt string     `json:"fileName"`
	RoomID      flexString `json:"room_id"`
	RoomIDAlt   flexString `json:"roomId"`
	MoveOut     flexBool   `json:"move_out"`
	MoveOutAlt  flexBool   `json:"moveOut"`
	Note        string     `json:"note"`
	Tags        []string   `json:"tags"`
}

func (w photoWire) toDomain() domain.PhotoRecord {
	return domain.PhotoRecord{
		ID:       int64(w.ID),
		URL:      w.URL,
		FilePath: firstNonEmpty(w.FilePath, w.FilePathAlt),
		Path:     w.Path,
		FileName: firstNonEmpty(w.FileName, w.FileNameAlt),
		RoomID:   firstNonEmpty(string(w.RoomID), string(w.RoomIDAlt)),
		MoveOut:  bool(w.MoveOut) || bool(w.MoveOutAlt),
		Note:     w.Note,
		Tags:     w.Tags,
	}
}

// photoRecordWire decodes either an object-shaped record or the oldest
// schema's bare string.
type photoRecordWire struct {
	rec domain.PhotoRecord
}

func (w *photoRecordWire) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		w.rec = domain.PhotoRecord{Raw: s}
		return nil
	}
	var obj photoWire
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	w.rec = obj.toDomain()
	return nil
}

func decodePhotoList(wires []photoRecordWire) []domain.PhotoRecord {
	out := make([]domain.PhotoRecord, len(wires))
	for i, w := range wires {
		out[i] = w.rec
	}
	return out
}

// roomWire tolerates both snake_case and camelCase room payloads.
type roomWire struct {
	ID            flexString `json:"id"`
	RoomID        flexString `json:"room_id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	RoomType      string     `json:"room_type"`
	PhotoCount    int        `json:"photo_count"`
	PhotoCountC   int        `json:"photoCount"`
	Quality       string     `json:"quality"`
	IssueNotes    []string   `json:"issue_notes"`
	IssueNotesC   []string   `json:"issueNotes"`
	MoveOutNotes  []string   `json:"move_out_notes"`
	MoveOutNotesC []string   `json:"moveOutNotes"`
	CreatedAt     string     `json:"created_at"`
}

func (w roomWire) toDomain() domain.Room {
	room := domain.Room{
		RoomID:       firstNonEmpty(string(w.ID), string(w.RoomID)),
		Name:         w.Name,
		Type:         domain.RoomType(firstNonEmpty(w.Type, w.RoomType)),
		PhotoCount:   firstNonZero(w.PhotoCount, w.PhotoCountC),
		Quality:      domain.Quality(w.Quality),
		IssueNotes:   firstNonNil(w.IssueNotes, w.IssueNotesC),
		MoveOutNotes: firstNonNil(w.MoveOutNotes, w.MoveOutNotesC),
	}
	if ts, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
		room.CreatedAt = ts
	}
	return room
}

func decodeRoomList(wires []roomWire) []domain.Room {
	out := make([]domain.Room, len(wires))
	for i, w := range wires {
		out[i] = w.toDomain()
	}
	return out
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func firstNonNil(a, b []string) []string {
	if a != nil {
		return a
	}
	return b
}
