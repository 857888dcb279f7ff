package httpapi

import (
	"bytes"
	"fmt"
	"strings"

	"tenantli-inspect/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ReportExportHeader 报告导出表头（每房间一行）
var ReportExportHeader = []string{
	"Room",
	"Type",
	"Completion",
	"Move-In Photos",
	"Move-In Notes",
	"Move-Out Photos",
	"Move-Out Notes",
}

// GenerateReportExport 生成检查报告 Excel 文件
// move-out 报告按对比（两侧）导出；其它类型只填右侧当前数据列
func GenerateReportExport(report *domain.InspectionReport) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Inspection Report"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// 写入表头
	for col, header := range ReportExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	// 列宽
	columnWidths := []float64{20, 12, 16, 16, 40, 16, 40}
	for i := range ReportExportHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	// 写入数据
	for rowIdx, values := range exportRows(report) {
		row := rowIdx + 2 // 从第2行开始（第1行是表头）
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportRows(report *domain.InspectionReport) [][]any {
	var rows [][]any
	if report.Type == domain.ReportMoveOut {
		for _, cmp := range report.Comparisons {
			room := findRoom(report.Rooms, cmp.RoomID)
			moveInPhotos := "not available"
			moveInNotes := ""
			if cmp.MoveIn.Available {
				moveInPhotos = fmt.Sprintf("%d", len(cmp.MoveIn.Photos))
				moveInNotes = strings.Join(cmp.MoveIn.Notes, "; ")
			}
			rows = append(rows, []any{
				cmp.Name,
				string(room.Type),
				string(room.Completion()),
				moveInPhotos,
				moveInNotes,
				len(cmp.MoveOut.Photos),
				strings.Join(cmp.MoveOut.Notes, "; "),
			})
		}
		return rows
	}

	for _, room := range report.Rooms {
		rows = append(rows, []any{
			room.Name,
			string(room.Type),
			string(room.Completion()),
			"", // no baseline columns outside move-out
			"",
			room.PhotoCount,
			strings.Join(room.IssueNotes, "; "),
		})
	}
	return rows
}

func findRoom(rooms []domain.Room, roomID string) domain.Room {
	for _, r := range rooms {
		if r.RoomID == roomID {
			return r
		}
	}
	return domain.Room{}
}
