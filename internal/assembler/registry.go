package assembler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tenantli-inspect/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrDuplicateRoomName means a room with the same (case-insensitive) name
// already exists in the property.
var ErrDuplicateRoomName = errors.New("duplicate room name")

// ErrEmptyRoomName means the trimmed room name is blank.
var ErrEmptyRoomName = errors.New("room name is empty")

// Registry maintains the canonical room set for a property: name uniqueness,
// temporary-vs-server ID reconciliation and optimistic merge-on-save.
type Registry struct {
	logger *zap.Logger
}

// NewRegistry creates a room registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{logger: logger}
}

// CreateRoom builds a new room with a client-minted temporary ID.
// Duplicate detection is a case-insensitive exact match on the trimmed name;
// the room whose ID equals editingID is excluded so renaming a room to its
// own current name succeeds.
func (g *Registry) CreateRoom(name string, roomType domain.RoomType, existing []domain.Room, editingID string) (domain.Room, error) {
	trimmed, err := g.CheckName(name, existing, editingID)
	if err != nil {
		return domain.Room{}, err
	}

	return domain.Room{
		RoomID:    newTemporaryID(),
		Name:      trimmed,
		Type:      roomType,
		CreatedAt: time.Now(),
	}, nil
}

// CheckName validates a proposed room name against the property's current
// list: trimmed, non-empty, unique case-insensitively. Every name change
// goes through this check, create and rename alike; editingID excludes the
// room being renamed so keeping its own name succeeds.
func (g *Registry) CheckName(name string, existing []domain.Room, editingID string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyRoomName
	}

	lower := strings.ToLower(trimmed)
	for _, r := range existing {
		if editingID != "" && r.RoomID == editingID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(r.Name)) == lower {
			return "", fmt.Errorf("%w: %q", ErrDuplicateRoomName, trimmed)
		}
	}
	return trimmed, nil
}

// Reconcile merges the locally-known room list with the server's list after
// a save. The server list is canonical:
//  1. a local room holding a temporary ID adopts the server ID when a server
//     room matches by (name, type);
//  2. unmatched local rooms keep the temporary ID as canonical (degraded but
//     defined; logged so operators can spot permanent ID drift);
//  3. server rooms unknown locally are carried through (another device may
//     have created them).
//
// Output order: server order first, then unmatched local rooms in input order.
func (g *Registry) Reconcile(local, server []domain.Room) []domain.Room {
	matchedLocal := make(map[int]bool, len(local))
	out := make([]domain.Room, 0, len(server)+len(local))

	for _, srv := range server {
		merged := srv
		for i, loc := range local {
			if matchedLocal[i] {
				continue
			}
			if loc.RoomID == srv.RoomID || (isTemporaryID(loc.RoomID) && sameRoomIdentity(loc, srv)) {
				// Local wizard state (quality, notes) is fresher than what
				// the server echoed; the server owns the ID.
				merged = loc
				merged.RoomID = srv.RoomID
				matchedLocal[i] = true
				break
			}
		}
		out = append(out, merged)
	}

	for i, loc := range local {
		if matchedLocal[i] {
			continue
		}
		if isTemporaryID(loc.RoomID) {
			g.logger.Warn("Room save not confirmed by server, keeping temporary ID",
				zap.String("room_id", loc.RoomID),
				zap.String("room_name", loc.Name),
			)
		}
		out = append(out, loc)
	}

	return out
}

// MergeOnSave applies one saved room to the current server list:
// update-in-place when the RoomID is known, append otherwise. The collection
// is never blindly overwritten, so concurrent edits from another device
// survive (last write observed wins per room).
func (g *Registry) MergeOnSave(current []domain.Room, saved domain.Room) []domain.Room {
	out := make([]domain.Room, len(current))
	copy(out, current)
	for i, r := range out {
		if r.RoomID == saved.RoomID {
			out[i] = saved
			return out
		}
	}
	return append(out, saved)
}

// sameRoomIdentity matches a room by (name, type), case-insensitive on the
// trimmed name. Used for adopting server-assigned IDs after a save.
func sameRoomIdentity(a, b domain.Room) bool {
	return strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(b.Name)) && a.Type == b.Type
}

const temporaryIDPrefix = "tmp-"

// newTemporaryID mints a client-side room ID: timestamp + random suffix.
func newTemporaryID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%d-%s", temporaryIDPrefix, time.Now().UnixMilli(), suffix)
}

func isTemporaryID(id string) bool {
	return strings.HasPrefix(id, temporaryIDPrefix)
}
