package service

import (
	"context"
	"sync"

	"tenantli-inspect/internal/assembler"
	"tenantli-inspect/internal/domain"
	"tenantli-inspect/internal/repository"

	"go.uber.org/zap"
)

// ReportService fetches the scattered inputs for one report and drives the
// assembly engine. All recoverable backend failures are absorbed here, one
// layer above the engine: the viewer always receives something renderable.
type ReportService struct {
	reports    repository.ReportsRepository
	properties repository.PropertyRepository
	rooms      repository.RoomsRepository
	photos     repository.PhotosRepository
	asm        *assembler.Assembler
	logger     *zap.Logger
}

// NewReportService creates the report orchestrator.
func NewReportService(
	reports repository.ReportsRepository,
	properties repository.PropertyRepository,
	rooms repository.RoomsRepository,
	photos repository.PhotosRepository,
	asm *assembler.Assembler,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reports:    reports,
		properties: properties,
		rooms:      rooms,
		photos:     photos,
		asm:        asm,
		logger:     logger,
	}
}

// GetReportByUUID resolves a share-link UUID to an assembled report.
// Total: network failures and HTTP errors yield the placeholder report
// (Error=true) rather than an error — the viewer must always render.
func (s *ReportService) GetReportByUUID(ctx context.Context, uuid string) *domain.InspectionReport {
	// 1. The report aggregate is the anchor; without it there is nothing
	//    to assemble
	payload, err := s.reports.GetByUUID(ctx, uuid)
	if err != nil {
		s.logger.Error("Report fetch failed, serving placeholder",
			zap.String("uuid", uuid),
			zap.Error(err),
		)
		return assembler.PlaceholderReport(uuid)
	}

	// 2. Secondary fetches have no ordering dependency; issue them
	//    concurrently and join before assembly
	var (
		wg             sync.WaitGroup
		property       *domain.Property
		serverRooms    []domain.Room
		propertyPhotos []domain.PhotoRecord
	)
	if payload.PropertyID != "" {
		wg.Add(3)
		go func() {
			defer wg.Done()
			p, err := s.properties.GetProperty(ctx, payload.PropertyID)
			if err != nil {
				s.logger.Warn("Property fetch failed, using embedded property",
					zap.String("property_id", payload.PropertyID), zap.Error(err))
				return
			}
			property = p
		}()
		go func() {
			defer wg.Done()
			rooms, err := s.rooms.ListRooms(ctx, payload.PropertyID)
			if err != nil {
				s.logger.Warn("Rooms fetch failed, using embedded rooms",
					zap.String("property_id", payload.PropertyID), zap.Error(err))
				return
			}
			serverRooms = rooms
		}()
		go func() {
			defer wg.Done()
			photos, err := s.photos.ListByProperty(ctx, payload.PropertyID)
			if err != nil {
				// schema drift path: one alternate (report-scoped) endpoint
				photos, err = s.photos.ListByReport(ctx, payload.ID, "")
			}
			if err != nil {
				s.logger.Warn("Photo fetch failed, report will use embedded photos only",
					zap.String("property_id", payload.PropertyID), zap.Error(err))
				return
			}
			propertyPhotos = photos
		}()
		wg.Wait()
	}

	// 3. Fall back to whatever the report payload embeds
	if property == nil {
		property = payload.Property
	}
	if property == nil {
		property = &domain.Property{PropertyID: payload.PropertyID}
	}
	if serverRooms == nil {
		serverRooms = payload.Rooms
	}

	// 4. Assemble: embedded flat photos and the property endpoint both feed
	//    the binder; overlaps are deduplicated there
	return s.asm.Assemble(assembler.AssembleInput{
		ReportID:       payload.ID,
		UUID:           payload.UUID,
		Type:           payload.Type,
		Property:       *property,
		ServerRooms:    serverRooms,
		PhotoSources:   [][]domain.PhotoRecord{propertyPhotos, payload.Photos},
		Snapshot:       payload.MoveInData,
		ApprovalStatus: payload.ApprovalStatus,
		CreatedAt:      payload.CreatedAt,
	})
}
