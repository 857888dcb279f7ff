package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"tenantli-inspect/internal/assembler"
	"tenantli-inspect/internal/domain"

	"go.uber.org/zap"
)

// APIRoomsRepo reads and saves the per-property room list.
type APIRoomsRepo struct {
	client   *APIClient
	registry *assembler.Registry
	logger   *zap.Logger
}

func NewAPIRoomsRepo(client *APIClient, logger *zap.Logger) *APIRoomsRepo {
	return &APIRoomsRepo{
		client:   client,
		registry: assembler.NewRegistry(logger),
		logger:   logger,
	}
}

// ListRooms 获取房间列表 GET /api/properties/:id/rooms
// 兼容两种响应形状：裸数组和 {rooms: [...]}
func (r *APIRoomsRepo) ListRooms(ctx context.Context, propertyID string) ([]domain.Room, error) {
	endpoint := fmt.Sprintf("/api/properties/%s/rooms", propertyID)

	resp, err := r.client.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	if err := checkStatus(resp, endpoint); err != nil {
		return nil, err
	}

	return decodeRoomsPayload(resp.Body())
}

// SaveRooms persists changed rooms using the optimistic merge contract:
//  1. re-read the server's current room list (never trust the local echo);
//  2. apply each changed room update-in-place or append;
//  3. POST the merged full array back.
//
// Two concurrent editors can still race between steps 1 and 3; the policy is
// last write observed wins per room (no version token on the backend).
func (r *APIRoomsRepo) SaveRooms(ctx context.Context, propertyID string, changed []domain.Room) ([]domain.Room, error) {
	// 1. Re-read before mutating
	current, err := r.ListRooms(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read rooms before save: %w", err)
	}

	// 2. Merge per room, never blind-overwrite the collection
	merged := current
	for _, room := range changed {
		merged = r.registry.MergeOnSave(merged, room)
	}

	// 3. Write the merged list back
	endpoint := fmt.Sprintf("/api/properties/%s/rooms", propertyID)
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"rooms": merged}).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to save rooms: %w", err)
	}
	if err := checkStatus(resp, endpoint); err != nil {
		return nil, err
	}

	// The backend may confirm or reassign IDs in its echo; reconcile so the
	// caller continues with canonical IDs.
	echoed, decodeErr := decodeRoomsPayload(resp.Body())
	if decodeErr != nil || len(echoed) == 0 {
		// Degraded but defined: keep what we sent, temporary IDs included.
		r.logger.Warn("Room save returned no usable room list, keeping local IDs",
			zap.String("property_id", propertyID),
		)
		return merged, nil
	}
	return r.registry.Reconcile(merged, echoed), nil
}

// decodeRoomsPayload 解析两种房间列表形状
func decodeRoomsPayload(body []byte) ([]domain.Room, error) {
	var bare []roomWire
	if err := json.Unmarshal(body, &bare); err == nil {
		return decodeRoomList(bare), nil
	}

	var wrapped struct {
		Rooms []roomWire `json:"rooms"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode rooms payload: %w", err)
	}
	return decodeRoomList(wrapped.Rooms), nil
}
