package assembler

import (
	"time"

	"tenantli-inspect/internal/domain"

	"go.uber.org/zap"
)

// AssembleInput carries the already-fetched raw records for one report.
// All network fetching happens at the caller; assembly is a pure
// transformation over these inputs.
type AssembleInput struct {
	ReportID       string
	UUID           string
	Type           domain.ReportType
	Property       domain.Property
	LocalRooms     []domain.Room // optimistic wizard echo, may be empty
	ServerRooms    []domain.Room // canonical fetch
	PhotoSources   [][]domain.PhotoRecord
	Snapshot       *domain.MoveInSnapshot // move-out only, may be nil
	ApprovalStatus *string
	CreatedAt      time.Time
}

// Assembler is the top-level orchestrator: it turns scattered room/photo/
// note records into one canonical, deduplicated InspectionReport.
type Assembler struct {
	registry *Registry
	apiBase  string
	logger   *zap.Logger
}

// NewAssembler creates a report assembler.
func NewAssembler(apiBase string, logger *zap.Logger) *Assembler {
	return &Assembler{
		registry: NewRegistry(logger),
		apiBase:  apiBase,
		logger:   logger,
	}
}

// Assemble drives registry → binder → merger and emits the final report.
// For move-in/general reports the merger is skipped and rooms carry their
// photos directly; for move-out reports a RoomComparison is emitted per room.
func (a *Assembler) Assemble(in AssembleInput) *domain.InspectionReport {
	// 1. Build the canonical room list
	rooms := a.registry.Reconcile(in.LocalRooms, in.ServerRooms)

	// 2. Attach photos: union-merge every source under the same dedup rule.
	//    Binding sees the raw records; URL resolution happens after dedup,
	//    otherwise identity-less records would all share the placeholder URL
	//    and collapse into one photo.
	bound := NewBindResult()
	for _, source := range in.PhotoSources {
		BindInto(bound, source, rooms)
	}
	for roomID, photos := range bound.ByRoom {
		bound.ByRoom[roomID] = a.resolveAll(photos)
	}
	bound.Unassigned = a.resolveAll(bound.Unassigned)

	// 3. Attach bound photos and reconcile the stored photoCount with what
	//    is actually bound
	for i := range rooms {
		rooms[i].Photos = bound.ByRoom[rooms[i].RoomID]
		rooms[i].PhotoCount = len(rooms[i].Photos)
	}

	report := &domain.InspectionReport{
		ID:               in.ReportID,
		UUID:             in.UUID,
		Type:             in.Type,
		Property:         in.Property,
		Rooms:            rooms,
		UnassignedPhotos: bound.Unassigned,
		ApprovalStatus:   in.ApprovalStatus,
		CreatedAt:        in.CreatedAt,
	}

	// 4. Pair current state against the move-in baseline (move-out only)
	if in.Type == domain.ReportMoveOut {
		report.Comparisons = Merge(rooms, bound.ByRoom, in.Snapshot)
	}

	if len(bound.Unassigned) > 0 {
		a.logger.Warn("Photos with unknown room left unassigned",
			zap.String("report_uuid", in.UUID),
			zap.Int("count", len(bound.Unassigned)),
		)
	}

	return report
}

// resolveAll normalizes every record's URL through the locator policy so the
// viewer always receives a fetchable URL, whatever shape the record arrived in.
func (a *Assembler) resolveAll(records []domain.PhotoRecord) []domain.PhotoRecord {
	out := make([]domain.PhotoRecord, len(records))
	for i, rec := range records {
		rec.URL = ResolvePhotoURL(rec, a.apiBase)
		out[i] = rec
	}
	return out
}

// PlaceholderReport builds the minimal report shown when the backend cannot
// be reached: the viewer must always render something, so fetch failures
// surface as readable placeholder fields instead of an exception.
func PlaceholderReport(uuid string) *domain.InspectionReport {
	return &domain.InspectionReport{
		UUID: uuid,
		Type: domain.ReportGeneral,
		Property: domain.Property{
			Address: "Report temporarily unavailable",
			City:    "Please try again later",
		},
		Rooms:     []domain.Room{},
		Error:     true,
		CreatedAt: time.Now(),
	}
}
