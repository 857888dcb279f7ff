package assembler

import (
	"tenantli-inspect/internal/domain"
)

// BindResult groups a flat photo collection under owning rooms.
// Unassigned holds records whose RoomID matches no known room; they are
// surfaced to the caller rather than silently dropped.
type BindResult struct {
	ByRoom     map[string][]domain.PhotoRecord
	Unassigned []domain.PhotoRecord
}

// NewBindResult creates an empty bind result.
func NewBindResult() *BindResult {
	return &BindResult{ByRoom: make(map[string][]domain.PhotoRecord)}
}

// Bind groups photo records under their owning room, deduplicating by the
// SamePhoto rule. Re-binding the same records is a no-op (idempotent).
func Bind(records []domain.PhotoRecord, rooms []domain.Room) *BindResult {
	result := NewBindResult()
	BindInto(result, records, rooms)
	return result
}

// BindInto union-merges one photo source into an existing bind result.
// Photo data can arrive from a per-room endpoint and a whole-property
// endpoint at the same time; calling this once per source with overlapping
// data is safe because duplicates are skipped by the SamePhoto rule.
func BindInto(result *BindResult, records []domain.PhotoRecord, rooms []domain.Room) {
	known := make(map[string]bool, len(rooms))
	for _, r := range rooms {
		known[r.RoomID] = true
	}

	for _, rec := range records {
		if rec.RoomID == "" || !known[rec.RoomID] {
			if !containsPhoto(result.Unassigned, rec) {
				result.Unassigned = append(result.Unassigned, rec)
			}
			continue
		}
		if containsPhoto(result.ByRoom[rec.RoomID], rec) {
			continue
		}
		result.ByRoom[rec.RoomID] = append(result.ByRoom[rec.RoomID], rec)
	}
}

func containsPhoto(list []domain.PhotoRecord, rec domain.PhotoRecord) bool {
	for _, p := range list {
		if domain.SamePhoto(p, rec) {
			return true
		}
	}
	return false
}
