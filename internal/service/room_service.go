package service

import (
	"context"
	"fmt"

	"tenantli-inspect/internal/assembler"
	"tenantli-inspect/internal/domain"
	"tenantli-inspect/internal/repository"

	"go.uber.org/zap"
)

// RoomService handles wizard room creation and saves against the canonical
// server list. When a fallback cache is present, the in-progress room list is
// mirrored under the property's "incomplete" section so the wizard survives
// a degraded network; the mirror is never authoritative.
type RoomService struct {
	rooms    repository.RoomsRepository
	cache    *repository.FallbackCache
	registry *assembler.Registry
	logger   *zap.Logger
}

func NewRoomService(rooms repository.RoomsRepository, cache *repository.FallbackCache, logger *zap.Logger) *RoomService {
	return &RoomService{
		rooms:    rooms,
		cache:    cache,
		registry: assembler.NewRegistry(logger),
		logger:   logger,
	}
}

// CreateRoom validates name uniqueness against the server's current list,
// mints a temporary ID and persists through the optimistic merge-on-save
// path. The returned room carries the canonical (server-confirmed) ID when
// the backend echoed one.
func (s *RoomService) CreateRoom(ctx context.Context, propertyID, name string, roomType domain.RoomType, editingID string) (domain.Room, error) {
	// 1. Duplicate check needs the freshest list we can get; a stale mirror
	//    beats refusing the wizard outright when the network is down
	existing, err := s.rooms.ListRooms(ctx, propertyID)
	if err != nil {
		if cached, cerr := s.loadMirror(ctx, propertyID); cerr == nil {
			s.logger.Warn("Rooms list failed, duplicate check against cached mirror",
				zap.String("property_id", propertyID), zap.Error(err))
			existing = cached
		} else {
			return domain.Room{}, fmt.Errorf("failed to list rooms for duplicate check: %w", err)
		}
	}

	room, err := s.registry.CreateRoom(name, roomType, existing, editingID)
	if err != nil {
		return domain.Room{}, err
	}
	if editingID != "" {
		// rename flow: keep the existing canonical ID and everything the
		// wizard has already recorded; only name and type change
		if stored, ok := findRoom(existing, editingID); ok {
			renamed := stored
			renamed.Name = room.Name
			renamed.Type = room.Type
			room = renamed
		} else {
			room.RoomID = editingID
		}
	}

	// 2. Persist; SaveRooms re-reads and merges per room before writing
	saved, err := s.rooms.SaveRooms(ctx, propertyID, []domain.Room{room})
	if err != nil {
		s.saveMirror(ctx, propertyID, append(existing, room))
		return domain.Room{}, fmt.Errorf("failed to save room: %w", err)
	}
	s.saveMirror(ctx, propertyID, saved)

	// 3. Find our room in the reconciled list (ID may have been reassigned)
	for _, r := range saved {
		if r.RoomID == room.RoomID || sameName(r, room) {
			return r, nil
		}
	}
	// degraded but defined: the save went through, echo was unusable
	return room, nil
}

// UpdateRoom saves wizard changes for an existing room. Only the fields the
// wizard edits (name, type, quality, issue notes) are applied; server-side
// state the request never carries, like move-out notes and the photo count,
// is preserved from the stored room.
func (s *RoomService) UpdateRoom(ctx context.Context, propertyID string, room domain.Room) (domain.Room, error) {
	if len(room.IssueNotes) > domain.MaxIssueNotes {
		return domain.Room{}, fmt.Errorf("issue notes limited to %d per room", domain.MaxIssueNotes)
	}

	existing, err := s.rooms.ListRooms(ctx, propertyID)
	if err != nil {
		if cached, cerr := s.loadMirror(ctx, propertyID); cerr == nil {
			s.logger.Warn("Rooms list failed, updating against cached mirror",
				zap.String("property_id", propertyID), zap.Error(err))
			existing = cached
		} else {
			return domain.Room{}, fmt.Errorf("failed to list rooms before update: %w", err)
		}
	}

	// renaming to another room's name is rejected the same way create is
	trimmed, err := s.registry.CheckName(room.Name, existing, room.RoomID)
	if err != nil {
		return domain.Room{}, err
	}

	merged := room
	merged.Name = trimmed
	if stored, ok := findRoom(existing, room.RoomID); ok {
		merged = stored
		merged.Name = trimmed
		merged.Type = room.Type
		merged.Quality = room.Quality
		merged.IssueNotes = room.IssueNotes
	}

	saved, err := s.rooms.SaveRooms(ctx, propertyID, []domain.Room{merged})
	if err != nil {
		return domain.Room{}, fmt.Errorf("failed to save room: %w", err)
	}
	s.saveMirror(ctx, propertyID, saved)
	for _, r := range saved {
		if r.RoomID == merged.RoomID {
			return r, nil
		}
	}
	return merged, nil
}

func findRoom(rooms []domain.Room, roomID string) (domain.Room, bool) {
	for _, r := range rooms {
		if r.RoomID == roomID {
			return r, true
		}
	}
	return domain.Room{}, false
}

func (s *RoomService) loadMirror(ctx context.Context, propertyID string) ([]domain.Room, error) {
	if s.cache == nil {
		return nil, repository.ErrCacheMiss
	}
	var rooms []domain.Room
	if err := s.cache.Load(ctx, propertyID, repository.SectionIncomplete, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *RoomService) saveMirror(ctx context.Context, propertyID string, rooms []domain.Room) {
	if s.cache == nil {
		return
	}
	s.cache.Save(ctx, propertyID, repository.SectionIncomplete, rooms)
}

func sameName(a, b domain.Room) bool {
	return a.Name == b.Name && a.Type == b.Type
}
