package assembler

import (
	"strings"

	"tenantli-inspect/internal/domain"
)

// Merge pairs each current room against its move-in baseline and produces
// the two-sided comparison list for a move-out report.
//
// The current room list is authoritative:
//   - a room absent from the baseline still appears, with an explicit
//     "not available" move-in side;
//   - rooms present only in the baseline (removed before move-out) are not
//     included — the move-out report describes the property as it currently
//     exists. This asymmetry is deliberate.
func Merge(currentRooms []domain.Room, photosByRoom map[string][]domain.PhotoRecord, snapshot *domain.MoveInSnapshot) []domain.RoomComparison {
	comparisons := make([]domain.RoomComparison, 0, len(currentRooms))

	for _, room := range currentRooms {
		cmp := domain.RoomComparison{
			RoomID: room.RoomID,
			Name:   room.Name,
			MoveOut: domain.RoomSide{
				Photos:    moveOutPhotos(photosByRoom[room.RoomID]),
				Notes:     room.MoveOutNotes,
				Available: true,
			},
			MoveIn: domain.RoomSide{Available: false},
		}

		if base := lookupBaseline(snapshot, room); base != nil {
			cmp.MoveIn = domain.RoomSide{
				Photos:    base.Photos,
				Notes:     base.Notes,
				Available: true,
			}
		}

		comparisons = append(comparisons, cmp)
	}

	return comparisons
}

// moveOutPhotos keeps only photos captured during the move-out inspection.
// Photos with MoveOut=false in the current data set belong to the baseline
// and must not be double-counted on the right-hand side.
func moveOutPhotos(photos []domain.PhotoRecord) []domain.PhotoRecord {
	out := make([]domain.PhotoRecord, 0, len(photos))
	for _, p := range photos {
		if p.MoveOut {
			out = append(out, p)
		}
	}
	return out
}

// lookupBaseline finds a room's move-in baseline: RoomID match first, then
// case-insensitive name match. Rooms are sometimes recreated with a new ID
// but the same name between inspections.
func lookupBaseline(snapshot *domain.MoveInSnapshot, room domain.Room) *domain.MoveInSnapshotRoom {
	if snapshot == nil {
		return nil
	}
	for i := range snapshot.Rooms {
		if snapshot.Rooms[i].RoomID != "" && snapshot.Rooms[i].RoomID == room.RoomID {
			return &snapshot.Rooms[i]
		}
	}
	for i := range snapshot.Rooms {
		if strings.EqualFold(strings.TrimSpace(snapshot.Rooms[i].Name), strings.TrimSpace(room.Name)) {
			return &snapshot.Rooms[i]
		}
	}
	return nil
}
