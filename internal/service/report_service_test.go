package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tenantli-inspect/internal/assembler"
	"tenantli-inspect/internal/domain"
	"tenantli-inspect/internal/repository"
	"tenantli-inspect/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fake repositories (interface substitution, same pattern as mocking the
// card repository in the aggregator tests)

type fakeReportsRepo struct {
	payload *repository.ReportPayload
	err     error
}

func (f *fakeReportsRepo) GetByUUID(ctx context.Context, uuid string) (*repository.ReportPayload, error) {
	return f.payload, f.err
}

type fakePropertiesRepo struct {
	property *domain.Property
	err      error
}

func (f *fakePropertiesRepo) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	return f.property, f.err
}

type fakeRoomsRepo struct {
	rooms   []domain.Room
	saved   [][]domain.Room
	listErr error
	saveErr error
}

func (f *fakeRoomsRepo) ListRooms(ctx context.Context, propertyID string) ([]domain.Room, error) {
	return f.rooms, f.listErr
}

func (f *fakeRoomsRepo) SaveRooms(ctx context.Context, propertyID string, changed []domain.Room) ([]domain.Room, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, changed)
	// echo like the backend: update-in-place or append
	out := append([]domain.Room{}, f.rooms...)
	for _, room := range changed {
		replaced := false
		for i := range out {
			if out[i].RoomID == room.RoomID {
				out[i] = room
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, room)
		}
	}
	return out, nil
}

type fakePhotosRepo struct {
	byProperty []domain.PhotoRecord
	byReport   []domain.PhotoRecord
	propErr    error
	reportErr  error
}

func (f *fakePhotosRepo) ListByProperty(ctx context.Context, propertyID string) ([]domain.PhotoRecord, error) {
	return f.byProperty, f.propErr
}

func (f *fakePhotosRepo) ListByRoom(ctx context.Context, propertyID, roomID string, moveOut bool) ([]domain.PhotoRecord, error) {
	return nil, nil
}

func (f *fakePhotosRepo) ListByReport(ctx context.Context, reportID, authToken string) ([]domain.PhotoRecord, error) {
	return f.byReport, f.reportErr
}

func newTestReportService(reports repository.ReportsRepository, properties repository.PropertyRepository, rooms repository.RoomsRepository, photos repository.PhotosRepository) *ReportService {
	logger := zap.NewNop()
	return NewReportService(reports, properties, rooms, photos,
		assembler.NewAssembler("http://localhost:5050", logger), logger)
}

func TestGetReportByUUID_AssemblesFullReport(t *testing.T) {
	svc := newTestReportService(
		&fakeReportsRepo{payload: &repository.ReportPayload{
			ID:         "9",
			UUID:       "u-1",
			Type:       domain.ReportMoveOut,
			PropertyID: "p1",
			Photos: []domain.PhotoRecord{
				{ID: 2, RoomID: "r1", MoveOut: true}, // embedded flat photo, overlaps property endpoint
			},
			MoveInData: &domain.MoveInSnapshot{Rooms: []domain.MoveInSnapshotRoom{
				{RoomID: "r1", Name: "Kitchen", Photos: []domain.PhotoRecord{{ID: 90}}},
			}},
		}},
		&fakePropertiesRepo{property: &domain.Property{PropertyID: "p1", Address: "12 Main St"}},
		&fakeRoomsRepo{rooms: []domain.Room{{RoomID: "r1", Name: "Kitchen"}}},
		&fakePhotosRepo{byProperty: []domain.PhotoRecord{
			{ID: 1, RoomID: "r1", MoveOut: true},
			{ID: 2, RoomID: "r1", MoveOut: true},
		}},
	)

	report := svc.GetReportByUUID(context.Background(), "u-1")

	assert.False(t, report.Error)
	assert.Equal(t, "12 Main St", report.Property.Address)
	require.Len(t, report.Rooms, 1)
	// 1 and 2 from the property endpoint, embedded 2 deduplicated
	assert.Equal(t, 2, report.Rooms[0].PhotoCount)
	require.Len(t, report.Comparisons, 1)
	assert.Len(t, report.Comparisons[0].MoveOut.Photos, 2)
	assert.True(t, report.Comparisons[0].MoveIn.Available)
}

func TestGetReportByUUID_PlaceholderOnFetchFailure(t *testing.T) {
	svc := newTestReportService(
		&fakeReportsRepo{err: errors.New("connection refused")},
		&fakePropertiesRepo{}, &fakeRoomsRepo{}, &fakePhotosRepo{},
	)

	report := svc.GetReportByUUID(context.Background(), "u-1")

	require.NotNil(t, report) // viewer must always render something
	assert.True(t, report.Error)
	assert.Equal(t, "u-1", report.UUID)
	assert.NotEmpty(t, report.Property.Address)
}

func TestGetReportByUUID_SecondaryFetchFallbacks(t *testing.T) {
	// property and rooms endpoints down: embedded payload data carries the report
	svc := newTestReportService(
		&fakeReportsRepo{payload: &repository.ReportPayload{
			ID:         "9",
			UUID:       "u-2",
			Type:       domain.ReportGeneral,
			PropertyID: "p1",
			Property:   &domain.Property{PropertyID: "p1", Address: "Embedded Ave"},
			Rooms:      []domain.Room{{RoomID: "r1", Name: "Kitchen"}},
			Photos:     []domain.PhotoRecord{{ID: 1, RoomID: "r1"}},
		}},
		&fakePropertiesRepo{err: errors.New("boom")},
		&fakeRoomsRepo{listErr: errors.New("boom")},
		&fakePhotosRepo{propErr: errors.New("unknown column"), byReport: []domain.PhotoRecord{{ID: 7, RoomID: "r1"}}},
	)

	report := svc.GetReportByUUID(context.Background(), "u-2")

	assert.False(t, report.Error)
	assert.Equal(t, "Embedded Ave", report.Property.Address)
	require.Len(t, report.Rooms, 1)
	// report-scoped alternate endpoint (7) plus embedded flat photo (1)
	assert.Equal(t, 2, report.Rooms[0].PhotoCount)
}

func TestRoomService_CreateRoom(t *testing.T) {
	rooms := &fakeRoomsRepo{rooms: []domain.Room{{RoomID: "r1", Name: "Kitchen", Type: domain.RoomTypeKitchen}}}
	svc := NewRoomService(rooms, nil, zap.NewNop())

	// duplicate rejected, error surfaced synchronously and typed
	_, err := svc.CreateRoom(context.Background(), "p1", "kitchen", domain.RoomTypeKitchen, "")
	assert.ErrorIs(t, err, assembler.ErrDuplicateRoomName)

	// new name goes through the save path
	room, err := svc.CreateRoom(context.Background(), "p1", "Bedroom 1", domain.RoomTypeBedroom, "")
	require.NoError(t, err)
	assert.Equal(t, "Bedroom 1", room.Name)
	require.Len(t, rooms.saved, 1)

	// rename-to-self allowed
	_, err = svc.CreateRoom(context.Background(), "p1", "Kitchen", domain.RoomTypeKitchen, "r1")
	assert.NoError(t, err)
}

// Renaming must not discard what the wizard already recorded for the room.
func TestRoomService_RenameKeepsWizardState(t *testing.T) {
	rooms := &fakeRoomsRepo{rooms: []domain.Room{{
		RoomID:       "r1",
		Name:         "Kitchen",
		Type:         domain.RoomTypeKitchen,
		Quality:      domain.QualityAttention,
		IssueNotes:   []string{"cracked tile"},
		MoveOutNotes: []string{"tile still cracked"},
		PhotoCount:   3,
	}}}
	svc := NewRoomService(rooms, nil, zap.NewNop())

	room, err := svc.CreateRoom(context.Background(), "p1", "Chef Kitchen", domain.RoomTypeKitchen, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Chef Kitchen", room.Name)
	assert.Equal(t, "r1", room.RoomID)
	assert.Equal(t, domain.QualityAttention, room.Quality)
	assert.Equal(t, []string{"cracked tile"}, room.IssueNotes)
	assert.Equal(t, []string{"tile still cracked"}, room.MoveOutNotes)
	assert.Equal(t, 3, room.PhotoCount)
}

// The update request only carries the wizard-editable fields; everything
// else must survive the save untouched.
func TestRoomService_UpdateRoom_PreservesServerState(t *testing.T) {
	rooms := &fakeRoomsRepo{rooms: []domain.Room{{
		RoomID:       "r1",
		Name:         "Kitchen",
		Type:         domain.RoomTypeKitchen,
		MoveOutNotes: []string{"stove scratched"},
		PhotoCount:   5,
	}}}
	svc := NewRoomService(rooms, nil, zap.NewNop())

	room, err := svc.UpdateRoom(context.Background(), "p1", domain.Room{
		RoomID:     "r1",
		Name:       "Kitchen",
		Type:       domain.RoomTypeKitchen,
		Quality:    domain.QualityGood,
		IssueNotes: []string{"minor wear"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.QualityGood, room.Quality)
	assert.Equal(t, []string{"minor wear"}, room.IssueNotes)
	assert.Equal(t, []string{"stove scratched"}, room.MoveOutNotes)
	assert.Equal(t, 5, room.PhotoCount)
}

// Renaming an existing room to another room's name (any case) is a
// duplicate, exactly like create.
func TestRoomService_UpdateRoom_RejectsDuplicateName(t *testing.T) {
	rooms := &fakeRoomsRepo{rooms: []domain.Room{
		{RoomID: "r1", Name: "Kitchen", Type: domain.RoomTypeKitchen},
		{RoomID: "r2", Name: "Bedroom 1", Type: domain.RoomTypeBedroom},
	}}
	svc := NewRoomService(rooms, nil, zap.NewNop())

	_, err := svc.UpdateRoom(context.Background(), "p1", domain.Room{
		RoomID: "r2", Name: "kitchen", Type: domain.RoomTypeBedroom,
	})
	assert.ErrorIs(t, err, assembler.ErrDuplicateRoomName)
	assert.Empty(t, rooms.saved)

	// keeping its own name is not a duplicate
	_, err = svc.UpdateRoom(context.Background(), "p1", domain.Room{
		RoomID: "r2", Name: "Bedroom 1", Type: domain.RoomTypeBedroom,
	})
	assert.NoError(t, err)
}

func TestRoomService_UpdateRoom_NoteLimit(t *testing.T) {
	svc := NewRoomService(&fakeRoomsRepo{}, nil, zap.NewNop())

	notes := make([]string, domain.MaxIssueNotes+1)
	for i := range notes {
		notes[i] = "n"
	}
	_, err := svc.UpdateRoom(context.Background(), "p1", domain.Room{RoomID: "r1", IssueNotes: notes})
	assert.Error(t, err)
}

type memKV struct {
	data map[string]string
}

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (m *memKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// 网络不可用时，重名检查退到本地镜像而不是直接拒绝向导
func TestRoomService_CreateRoom_MirrorFallback(t *testing.T) {
	kv := &memKV{data: map[string]string{}}
	cache := repository.NewFallbackCache(kv, zap.NewNop())

	// seed the mirror the way a previous successful save would have
	cache.Save(context.Background(), "p1", repository.SectionIncomplete,
		[]domain.Room{{RoomID: "r1", Name: "Kitchen", Type: domain.RoomTypeKitchen}})

	rooms := &fakeRoomsRepo{listErr: errors.New("connection refused")}
	svc := NewRoomService(rooms, cache, zap.NewNop())

	// duplicate against the mirrored list still rejected
	_, err := svc.CreateRoom(context.Background(), "p1", "kitchen", domain.RoomTypeKitchen, "")
	assert.ErrorIs(t, err, assembler.ErrDuplicateRoomName)

	// fresh name saves; the mirror is refreshed from the save echo
	room, err := svc.CreateRoom(context.Background(), "p1", "Bedroom 1", domain.RoomTypeBedroom, "")
	require.NoError(t, err)
	assert.Equal(t, "Bedroom 1", room.Name)
	assert.Contains(t, kv.data, "property_p1_incomplete")
}
