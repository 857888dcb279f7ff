package httpapi

import (
	"bytes"
	"testing"

	"tenantli-inspect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateReportExportMoveOut(t *testing.T) {
	report := &domain.InspectionReport{
		UUID: "uuid-1",
		Type: domain.ReportMoveOut,
		Rooms: []domain.Room{
			{RoomID: "room-1", Name: "Kitchen", Type: domain.RoomTypeKitchen},
			{RoomID: "room-2", Name: "Garage", Type: domain.RoomTypeOther},
		},
		Comparisons: []domain.RoomComparison{
			{
				RoomID: "room-1",
				Name:   "Kitchen",
				MoveIn: domain.RoomSide{
					Photos:    []domain.PhotoRecord{{ID: 1}, {ID: 2}},
					Notes:     []string{"clean"},
					Available: true,
				},
				MoveOut: domain.RoomSide{
					Photos:    []domain.PhotoRecord{{ID: 3}},
					Notes:     []string{"stove scratched"},
					Available: true,
				},
			},
			{
				RoomID:  "room-2",
				Name:    "Garage",
				MoveIn:  domain.RoomSide{Photos: []domain.PhotoRecord{}, Notes: []string{}},
				MoveOut: domain.RoomSide{Available: true},
			},
		},
	}

	data, err := GenerateReportExport(report)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inspection Report")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, ReportExportHeader, rows[0])

	assert.Equal(t, "Kitchen", rows[1][0])
	assert.Equal(t, "2", rows[1][3])
	assert.Equal(t, "clean", rows[1][4])
	assert.Equal(t, "1", rows[1][5])
	assert.Equal(t, "stove scratched", rows[1][6])

	// 从未采集基线的房间显式标为 not available
	assert.Equal(t, "Garage", rows[2][0])
	assert.Equal(t, "not available", rows[2][3])
}

func TestGenerateReportExportMoveIn(t *testing.T) {
	report := &domain.InspectionReport{
		UUID: "uuid-2",
		Type: domain.ReportMoveIn,
		Rooms: []domain.Room{
			{
				RoomID:     "room-1",
				Name:       "Bedroom 1",
				Type:       domain.RoomTypeBedroom,
				PhotoCount: 4,
				Quality:    domain.QualityAttention,
				IssueNotes: []string{"wall stain", "loose handle"},
			},
		},
	}

	data, err := GenerateReportExport(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inspection Report")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Bedroom 1", rows[1][0])
	assert.Equal(t, "4", rows[1][5])
	assert.Equal(t, "wall stain; loose handle", rows[1][6])
}
